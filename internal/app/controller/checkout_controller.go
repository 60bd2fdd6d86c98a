package controller

import (
	"errors"
	"net/http"

	"github.com/fitshop/fitshop-backend/internal/app/service"
	apperrors "github.com/fitshop/fitshop-backend/internal/errors"
	"github.com/fitshop/fitshop-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	checkoutService service.CheckoutService
}

func NewCheckoutController(checkoutService service.CheckoutService) *CheckoutController {
	return &CheckoutController{checkoutService: checkoutService}
}

type CheckoutRequest struct {
	Phone string                `json:"telefone" binding:"required"`
	Items []CheckoutItemRequest `json:"produtos" binding:"required"`
	Total float64               `json:"valorTotal"`
}

type CheckoutItemRequest struct {
	ProductID uint    `json:"produtoId"`
	Name      string  `json:"nome" binding:"required"`
	Quantity  int     `json:"quantidade" binding:"required"`
	Price     float64 `json:"preco"`
}

type CheckoutResponse struct {
	URL     string `json:"url"`
	Message string `json:"mensagem"`
}

// SendOrder turns a submitted cart into a messaging deep link.
// POST /api/whatsapp/enviar-pedido
func (ctrl *CheckoutController) SendOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid checkout request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.CheckoutInvalidPayload, "Dados do pedido inválidos")
		return
	}

	items := make([]service.CheckoutItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CheckoutItemInput{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		})
	}

	result, err := ctrl.checkoutService.ProcessCheckout(service.CheckoutInput{
		Phone: req.Phone,
		Items: items,
		Total: req.Total,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCheckout):
			log.Warn("Checkout rejected: no items")
			apperrors.BadRequest(c, apperrors.CheckoutInvalidPayload, "O pedido precisa de pelo menos um produto")
		case errors.Is(err, service.ErrMissingPhoneNumber):
			log.Warn("Checkout rejected: phone number has no digits")
			apperrors.BadRequest(c, apperrors.CheckoutInvalidPayload, "Número de telefone inválido")
		case errors.Is(err, service.ErrInvalidCheckout):
			log.Warn("Checkout rejected: malformed item")
			apperrors.BadRequest(c, apperrors.CheckoutInvalidPayload, "Dados do pedido inválidos")
		default:
			log.Error("Failed to process checkout", err, nil)
			apperrors.InternalError(c, "Não foi possível processar o pedido")
		}
		return
	}

	log.Info("Checkout link generated", map[string]interface{}{
		"item_count": len(items),
	})

	c.JSON(http.StatusOK, CheckoutResponse{
		URL:     result.Link,
		Message: result.Message,
	})
}
