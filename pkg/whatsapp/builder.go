// Package whatsapp builds the human-readable order summary and the wa.me
// deep link used by the checkout flow. It is pure: no state, no I/O.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fitshop/fitshop-backend/pkg/currency"
)

// DefaultHost is the messaging-service host used for deep links.
const DefaultHost = "wa.me"

const (
	// ClientGreeting opens messages composed on the shopper's device.
	ClientGreeting = "Olá! Gostaria de fazer o seguinte pedido:"
	// StoreGreeting opens messages composed by the backend on checkout.
	StoreGreeting = "Olá! A loja FitShop recebeu seu pedido, gostaria de seguir com ele:"
)

// Item is one order line as it appears in the message. UnitPrice is the
// effective price: promotional when the promotion applies, regular otherwise.
type Item struct {
	Name      string
	Quantity  int
	UnitPrice float64
}

// Subtotal returns the line total.
func (i Item) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Builder composes order messages and deep links.
type Builder struct {
	Host     string // messaging host; DefaultHost when empty
	Greeting string // first line of the message; ClientGreeting when empty
}

// Message renders the order summary: greeting, one block per item
// (bold name, quantity, unit price, subtotal), then a bold grand total.
func (b Builder) Message(items []Item, total float64) string {
	greeting := b.Greeting
	if greeting == "" {
		greeting = ClientGreeting
	}

	var msg strings.Builder
	msg.WriteString(greeting)
	msg.WriteString("\n\n")

	for _, item := range items {
		fmt.Fprintf(&msg, "*%s*\n", item.Name)
		fmt.Fprintf(&msg, "Quantidade: %d\n", item.Quantity)
		fmt.Fprintf(&msg, "Preço unitário: %s\n", currency.FormatBRL(item.UnitPrice))
		fmt.Fprintf(&msg, "Subtotal: %s\n\n", currency.FormatBRL(item.Subtotal()))
	}

	fmt.Fprintf(&msg, "*Total do pedido: %s*\n\n", currency.FormatBRL(total))
	return msg.String()
}

// Link combines the host, the digits-only phone number and the
// percent-encoded message. The phone is not validated: a number that strips
// to an empty digit string still yields a link.
func (b Builder) Link(phone, message string) string {
	host := b.Host
	if host == "" {
		host = DefaultHost
	}

	params := url.Values{}
	params.Set("text", message)

	return fmt.Sprintf("https://%s/%s?%s", host, DigitsOnly(phone), params.Encode())
}

// OrderLink is Message followed by Link. An empty item list yields empty
// strings and no link.
func (b Builder) OrderLink(phone string, items []Item, total float64) (message, link string) {
	if len(items) == 0 {
		return "", ""
	}
	message = b.Message(items, total)
	return message, b.Link(phone, message)
}

// DigitsOnly strips every non-digit character, control characters included.
func DigitsOnly(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return digits.String()
}
