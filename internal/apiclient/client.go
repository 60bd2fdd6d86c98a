// Package apiclient is the HTTP client the shopper-facing application
// uses to talk to the storefront API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fitshop/fitshop-backend/internal/app/model"
)

var (
	// ErrNetworkError wraps transport-level failures; the caller keeps
	// its local state (cart included) when it sees this.
	ErrNetworkError = errors.New("network error")
	// ErrNotFound maps a 404 from the API.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidRequest maps a 400 from the API.
	ErrInvalidRequest = errors.New("invalid request")
)

// Client talks to the storefront API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListProducts fetches the catalog, optionally narrowed by search term
// and category.
func (c *Client) ListProducts(ctx context.Context, term, category string) ([]model.Product, error) {
	params := url.Values{}
	if term != "" {
		params.Set("termo", term)
	}
	if category != "" {
		params.Set("categoria", category)
	}

	var products []model.Product
	if err := c.get(ctx, "/api/produtos", params, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product.
func (c *Client) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := c.get(ctx, fmt.Sprintf("/api/produtos/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Promotions fetches products currently on promotion.
func (c *Client) Promotions(ctx context.Context, term string) ([]model.Product, error) {
	params := url.Values{}
	if term != "" {
		params.Set("termo", term)
	}

	var products []model.Product
	if err := c.get(ctx, "/api/produtos/promocoes", params, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// NewArrivals fetches products flagged as new.
func (c *Client) NewArrivals(ctx context.Context, term string) ([]model.Product, error) {
	params := url.Values{}
	if term != "" {
		params.Set("termo", term)
	}

	var products []model.Product
	if err := c.get(ctx, "/api/produtos/novidades", params, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Categories fetches all categories.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.get(ctx, "/api/categorias", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// OrderItem is one line of an order submission.
type OrderItem struct {
	ProductID uint `json:"produtoId"`
	Quantity  int  `json:"quantidade"`
}

// CreateOrderRequest is the order submission payload.
type CreateOrderRequest struct {
	Items []OrderItem `json:"produtos"`
}

// CreateOrder submits an order and returns the persisted record.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*model.Order, error) {
	var order model.Order
	if err := c.post(ctx, "/api/pedidos", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CheckoutItem is one line of a checkout submission.
type CheckoutItem struct {
	ProductID uint    `json:"produtoId"`
	Name      string  `json:"nome"`
	Quantity  int     `json:"quantidade"`
	Price     float64 `json:"preco"`
}

// CheckoutRequest is the checkout payload sent to the messaging endpoint.
type CheckoutRequest struct {
	Phone string         `json:"telefone"`
	Items []CheckoutItem `json:"produtos"`
	Total float64        `json:"valorTotal"`
}

// CheckoutResponse carries the generated deep link and message.
type CheckoutResponse struct {
	URL     string `json:"url"`
	Message string `json:"mensagem"`
}

// SendOrder submits the checkout and returns the messaging deep link.
func (c *Client) SendOrder(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	var result CheckoutResponse
	if err := c.post(ctx, "/api/whatsapp/enviar-pedido", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		// The API error payload carries a code plus a pt-BR message.
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		msg := strings.TrimSpace(string(body))
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
			msg = apiErr.Message
		}

		switch resp.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, msg)
		case http.StatusBadRequest:
			return fmt.Errorf("%w: %s", ErrInvalidRequest, msg)
		default:
			return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, msg)
		}
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
