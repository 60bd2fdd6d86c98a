package service

import (
	"errors"

	"github.com/fitshop/fitshop-backend/internal/app/repository"
	"github.com/fitshop/fitshop-backend/pkg/logger"
	"github.com/fitshop/fitshop-backend/pkg/whatsapp"
)

var (
	ErrEmptyCheckout      = errors.New("checkout has no items")
	ErrInvalidCheckout    = errors.New("checkout payload is invalid")
	ErrMissingPhoneNumber = errors.New("checkout has no destination phone number")
)

// CheckoutItemInput is one order line as submitted by the client
// application. Prices arrive already resolved to the effective value the
// shopper saw, so the message mirrors exactly what was in the cart.
type CheckoutItemInput struct {
	ProductID uint
	Name      string
	Quantity  int
	UnitPrice float64
}

type CheckoutInput struct {
	Phone string
	Items []CheckoutItemInput
	Total float64
}

// CheckoutResult carries the rendered message and the ready-to-open link.
type CheckoutResult struct {
	Message string
	Link    string
}

// CheckoutService turns a submitted cart into a messaging deep link and
// feeds the purchase popularity counters.
type CheckoutService interface {
	ProcessCheckout(input CheckoutInput) (*CheckoutResult, error)
}

type checkoutService struct {
	counterRepo repository.CounterRepository
	builder     whatsapp.Builder
}

func NewCheckoutService(counterRepo repository.CounterRepository, host string) CheckoutService {
	return &checkoutService{
		counterRepo: counterRepo,
		builder: whatsapp.Builder{
			Host:     host,
			Greeting: whatsapp.StoreGreeting,
		},
	}
}

// ProcessCheckout validates the payload, bumps purchase counters for each
// line and returns the composed message plus deep link. Counter failures
// are logged but never block the checkout.
func (s *checkoutService) ProcessCheckout(input CheckoutInput) (*CheckoutResult, error) {
	logger.Info("Processing checkout", map[string]interface{}{
		"item_count": len(input.Items),
		"total":      input.Total,
	})

	if len(input.Items) == 0 {
		logger.Warn("Cannot process checkout: no items submitted")
		return nil, ErrEmptyCheckout
	}
	if whatsapp.DigitsOnly(input.Phone) == "" {
		logger.Warn("Cannot process checkout: phone number has no digits")
		return nil, ErrMissingPhoneNumber
	}

	items := make([]whatsapp.Item, 0, len(input.Items))
	increments := make([]repository.PurchaseIncrement, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Name == "" || item.Quantity < 1 || item.UnitPrice < 0 {
			logger.Warn("Cannot process checkout: invalid item", map[string]interface{}{
				"product_id": item.ProductID,
				"quantity":   item.Quantity,
			})
			return nil, ErrInvalidCheckout
		}
		items = append(items, whatsapp.Item{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
		if item.ProductID != 0 {
			increments = append(increments, repository.PurchaseIncrement{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}
	}

	if err := s.counterRepo.IncrementPurchases(increments); err != nil {
		logger.Warn("Failed to record purchase popularity", map[string]interface{}{
			"error":      err.Error(),
			"item_count": len(increments),
		})
	}

	message, link := s.builder.OrderLink(input.Phone, items, input.Total)

	logger.Info("Checkout processed successfully", map[string]interface{}{
		"item_count": len(items),
	})
	return &CheckoutResult{Message: message, Link: link}, nil
}
