// Package cart is the client-resident shopping cart: line merging,
// quantity rules, totals with promotional pricing and checkout message
// generation. State lives in memory and is mirrored to a Storage after
// every mutation, the way the storefront mirrored it to browser storage.
package cart

import (
	"errors"

	"github.com/fitshop/fitshop-backend/pkg/logger"
	"github.com/fitshop/fitshop-backend/pkg/whatsapp"
)

// ErrInvalidQuantity rejects non-positive quantities. Mutations never
// clamp: a bad quantity leaves the cart untouched.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// Line is one cart entry. JSON field names follow the storefront's
// pt-BR wire format so persisted carts read like the original ones.
type Line struct {
	ProductID        uint     `json:"id"`
	Name             string   `json:"nome"`
	Price            float64  `json:"preco"`
	PromotionalPrice *float64 `json:"precoPromocional,omitempty"`
	OnPromotion      bool     `json:"promocao"`
	ImageURL         string   `json:"imagem,omitempty"`
	Category         string   `json:"categoria,omitempty"`
	Quantity         int      `json:"quantidade"`
}

// EffectivePrice is the unit price actually charged: promotional only when
// the flag is set AND a promotional value is present.
func (l Line) EffectivePrice() float64 {
	if l.OnPromotion && l.PromotionalPrice != nil {
		return *l.PromotionalPrice
	}
	return l.Price
}

// Subtotal is the line total at the effective price.
func (l Line) Subtotal() float64 {
	return l.EffectivePrice() * float64(l.Quantity)
}

// Item is a product as it enters the cart, without a quantity.
type Item struct {
	ProductID        uint
	Name             string
	Price            float64
	PromotionalPrice *float64
	OnPromotion      bool
	ImageURL         string
	Category         string
}

// Cart holds the order lines. It is not safe for concurrent use; the
// client application drives it from a single goroutine.
type Cart struct {
	lines   []Line
	storage Storage
	builder whatsapp.Builder
}

// New loads any persisted lines from storage. Load failures are treated as
// an empty cart: a corrupt or missing file never blocks the shopper.
func New(storage Storage) *Cart {
	c := &Cart{
		storage: storage,
		builder: whatsapp.Builder{Greeting: whatsapp.ClientGreeting},
	}

	lines, err := storage.Load()
	if err != nil {
		logger.Warn("Failed to load persisted cart, starting empty", map[string]interface{}{
			"error": err.Error(),
		})
		return c
	}
	c.lines = lines
	return c
}

// AddItem puts quantity units of item in the cart. An existing line for
// the same product absorbs the quantity; the line's price data is
// refreshed from the incoming item.
func (c *Cart) AddItem(item Item, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	if line := c.find(item.ProductID); line != nil {
		line.Quantity += quantity
		line.Name = item.Name
		line.Price = item.Price
		line.PromotionalPrice = item.PromotionalPrice
		line.OnPromotion = item.OnPromotion
		line.ImageURL = item.ImageURL
		line.Category = item.Category
	} else {
		c.lines = append(c.lines, Line{
			ProductID:        item.ProductID,
			Name:             item.Name,
			Price:            item.Price,
			PromotionalPrice: item.PromotionalPrice,
			OnPromotion:      item.OnPromotion,
			ImageURL:         item.ImageURL,
			Category:         item.Category,
			Quantity:         quantity,
		})
	}

	c.persist()
	return nil
}

// RemoveItem drops the line for productID. Removing an absent product is
// a no-op.
func (c *Cart) RemoveItem(productID uint) {
	for i, line := range c.lines {
		if line.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.persist()
			return
		}
	}
}

// SetQuantity replaces the quantity of an existing line. Quantities below
// one are rejected; use RemoveItem to drop a line.
func (c *Cart) SetQuantity(productID uint, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	line := c.find(productID)
	if line == nil {
		return nil
	}
	line.Quantity = quantity
	c.persist()
	return nil
}

// Increment bumps the line's quantity by one. Absent products are ignored.
func (c *Cart) Increment(productID uint) {
	if line := c.find(productID); line != nil {
		line.Quantity++
		c.persist()
	}
}

// Decrement lowers the line's quantity by one; at one unit the line is
// removed instead of reaching zero.
func (c *Cart) Decrement(productID uint) {
	line := c.find(productID)
	if line == nil {
		return
	}
	if line.Quantity <= 1 {
		c.RemoveItem(productID)
		return
	}
	line.Quantity--
	c.persist()
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
	c.persist()
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalQuantity is the unit count across all lines.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// TotalValue is the order total at effective prices.
func (c *Cart) TotalValue() float64 {
	total := 0.0
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}

// CheckoutMessage renders the order summary and its messaging deep link
// for the given phone number. An empty cart yields empty strings.
func (c *Cart) CheckoutMessage(phone string) (message, link string) {
	items := make([]whatsapp.Item, 0, len(c.lines))
	for _, line := range c.lines {
		items = append(items, whatsapp.Item{
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.EffectivePrice(),
		})
	}
	return c.builder.OrderLink(phone, items, c.TotalValue())
}

func (c *Cart) find(productID uint) *Line {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return &c.lines[i]
		}
	}
	return nil
}

// persist mirrors the cart to storage. Failures are logged, never
// surfaced: losing persistence must not break the in-memory cart.
func (c *Cart) persist() {
	if err := c.storage.Save(c.lines); err != nil {
		logger.Warn("Failed to persist cart", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
