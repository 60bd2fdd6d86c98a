package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/fitshop/fitshop-backend/pkg/currency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "5511912345678", DigitsOnly("+55 11 91234-5678"))
	assert.Equal(t, "5511912345678", DigitsOnly("(55) 11 91234.5678"))
	assert.Equal(t, "", DigitsOnly("abc \t\n"))
	assert.Equal(t, "123", DigitsOnly("1\x002\x013"))
}

func TestBuilder_Message(t *testing.T) {
	b := Builder{}
	msg := b.Message([]Item{
		{Name: "Whey Protein Gold Standard", Quantity: 2, UnitPrice: 135.00},
		{Name: "Creatina Monohidratada 300g", Quantity: 1, UnitPrice: 79.90},
	}, 349.90)

	assert.True(t, strings.HasPrefix(msg, ClientGreeting+"\n\n"))
	assert.Contains(t, msg, "*Whey Protein Gold Standard*")
	assert.Contains(t, msg, "Quantidade: 2")
	assert.Contains(t, msg, "Preço unitário: "+currency.FormatBRL(135.00))
	assert.Contains(t, msg, "Subtotal: "+currency.FormatBRL(270.00))
	assert.Contains(t, msg, "*Creatina Monohidratada 300g*")
	assert.Contains(t, msg, "*Total do pedido: "+currency.FormatBRL(349.90)+"*")
}

func TestBuilder_Message_CustomGreeting(t *testing.T) {
	b := Builder{Greeting: StoreGreeting}
	msg := b.Message([]Item{{Name: "Barra de Proteína", Quantity: 1, UnitPrice: 9.90}}, 9.90)
	assert.True(t, strings.HasPrefix(msg, StoreGreeting))
}

func TestBuilder_Link_EncodesMessage(t *testing.T) {
	b := Builder{}
	// Asterisks delimit bold markup and must survive the round trip.
	link := b.Link("+55 11 91234-5678", "*Luvas & Cordas* 100%")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "https", parsed.Scheme)
	assert.Equal(t, DefaultHost, parsed.Host)
	assert.Equal(t, "/5511912345678", parsed.Path)
	assert.Equal(t, "*Luvas & Cordas* 100%", parsed.Query().Get("text"))
}

func TestBuilder_Link_EmptyDigits(t *testing.T) {
	// No phone validation: an empty digit string still produces a link.
	b := Builder{}
	link := b.Link("sem numero", "oi")
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/", parsed.Path)
	assert.Equal(t, "oi", parsed.Query().Get("text"))
}

func TestBuilder_OrderLink(t *testing.T) {
	b := Builder{}
	items := []Item{
		{Name: "Whey", Quantity: 2, UnitPrice: 135.00},
		{Name: "Creatina", Quantity: 1, UnitPrice: 89.90},
	}

	msg, link := b.OrderLink("+55 11 91234-5678", items, 359.90)
	require.NotEmpty(t, link)

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/5511912345678", parsed.Path)

	decoded := parsed.Query().Get("text")
	assert.Equal(t, msg, decoded)
	assert.Contains(t, decoded, "Whey")
	assert.Contains(t, decoded, "Creatina")
	assert.Contains(t, decoded, currency.FormatBRL(359.90))
}

func TestBuilder_OrderLink_EmptyCart(t *testing.T) {
	msg, link := Builder{}.OrderLink("+55 11 91234-5678", nil, 0)
	assert.Empty(t, msg)
	assert.Empty(t, link)
}
