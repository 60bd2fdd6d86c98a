package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL. The frontend maps these to messages.

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput    = "VALIDATION_INVALID_INPUT"    // malformed payload
	ValidationInvalidID       = "VALIDATION_INVALID_ID"       // non-numeric id
	ValidationInvalidQuantity = "VALIDATION_INVALID_QUANTITY" // quantity < 1

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound = "RESOURCE_NOT_FOUND"
	ResourceConflict = "RESOURCE_CONFLICT"

	// ==================== Catalog (PRODUCT_/CATEGORY_) ====================
	ProductNotFound  = "PRODUCT_NOT_FOUND"
	CategoryNotFound = "CATEGORY_NOT_FOUND"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound   = "ORDER_NOT_FOUND"
	OrderEmptyItems = "ORDER_EMPTY_ITEMS"

	// ==================== Checkout (CHECKOUT_) ====================
	CheckoutInvalidPayload = "CHECKOUT_INVALID_PAYLOAD"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
