package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/fitshop/fitshop-backend/internal/app/model"
	"github.com/fitshop/fitshop-backend/internal/app/service"
	apperrors "github.com/fitshop/fitshop-backend/internal/errors"
	"github.com/fitshop/fitshop-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"produtos" binding:"required"`
}

type OrderItemRequest struct {
	ProductID uint `json:"produtoId" binding:"required"`
	Quantity  int  `json:"quantidade" binding:"required"`
}

// OrderResponse flattens the preloaded product name into each line so the
// storefront can render past orders without extra lookups.
type OrderResponse struct {
	ID    uint                `json:"id"`
	Total float64             `json:"valorTotal"`
	Date  time.Time           `json:"data"`
	Items []OrderItemResponse `json:"produtos"`
}

type OrderItemResponse struct {
	ProductID   uint    `json:"produtoId"`
	ProductName string  `json:"nomeProduto"`
	Quantity    int     `json:"quantidade"`
	Price       float64 `json:"preco"`
}

func toOrderResponse(order *model.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return OrderResponse{
		ID:    order.ID,
		Total: order.Total,
		Date:  order.CreatedAt,
		Items: items,
	}
}

// GetOrders returns all orders, newest first.
// GET /api/pedidos
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.GetOrders()
	if err != nil {
		log.Error("Failed to fetch orders", err, nil)
		apperrors.InternalError(c, "Não foi possível listar os pedidos")
		return
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, toOrderResponse(&orders[i]))
	}

	c.JSON(http.StatusOK, responses)
}

// GetOrderByID returns a single order.
// GET /api/pedidos/:id
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "pedido")
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetOrderByID(id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			log.Warn("Order not found", map[string]interface{}{
				"order_id": id,
			})
			apperrors.NotFound(c, apperrors.OrderNotFound, "Pedido não encontrado")
			return
		}
		log.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": id,
		})
		apperrors.InternalError(c, "Não foi possível buscar o pedido")
		return
	}

	response := toOrderResponse(order)
	c.JSON(http.StatusOK, response)
}

// CreateOrder persists an order with price snapshots from the catalog.
// POST /api/pedidos
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid order creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados do pedido inválidos")
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := ctrl.orderService.CreateOrder(items)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyOrder):
			log.Warn("Order creation rejected: no items")
			apperrors.BadRequest(c, apperrors.OrderEmptyItems, "O pedido precisa de pelo menos um produto")
		case errors.Is(err, service.ErrInvalidQuantity):
			log.Warn("Order creation rejected: invalid quantity")
			apperrors.BadRequest(c, apperrors.ValidationInvalidQuantity, "Quantidade precisa ser um número inteiro positivo")
		case errors.Is(err, service.ErrProductNotFound):
			log.Warn("Order creation rejected: unknown product")
			apperrors.NotFound(c, apperrors.ProductNotFound, "Produto não encontrado")
		default:
			log.Error("Failed to create order", err, nil)
			apperrors.InternalError(c, "Não foi possível registrar o pedido")
		}
		return
	}

	log.Info("Order created successfully", map[string]interface{}{
		"order_id": order.ID,
		"total":    order.Total,
	})

	response := toOrderResponse(order)
	c.JSON(http.StatusCreated, response)
}
