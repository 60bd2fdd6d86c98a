package controller

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "github.com/fitshop/fitshop-backend/internal/errors"
	"github.com/fitshop/fitshop-backend/internal/app/model"
	"github.com/fitshop/fitshop-backend/internal/app/service"
	"github.com/fitshop/fitshop-backend/internal/middleware"
	"github.com/fitshop/fitshop-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService    service.ProductService
	popularityService service.PopularityService
}

func NewProductController(
	productService service.ProductService,
	popularityService service.PopularityService,
) *ProductController {
	return &ProductController{
		productService:    productService,
		popularityService: popularityService,
	}
}

// CreateProductRequest carries the storefront's pt-BR wire format.
type CreateProductRequest struct {
	Name             string   `json:"nome" binding:"required"`
	Description      string   `json:"descricao"`
	Price            float64  `json:"preco" binding:"required,gt=0"`
	Category         string   `json:"categoria"`
	ImageURL         string   `json:"imagem"`
	Stock            int      `json:"estoque" binding:"gte=0"`
	NewArrival       bool     `json:"novidade"`
	OnPromotion      bool     `json:"promocao"`
	PromotionalPrice *float64 `json:"precoPromocional"`
}

// UpdateProductRequest is a partial update; absent fields keep the stored
// value.
type UpdateProductRequest struct {
	Name             *string  `json:"nome"`
	Description      *string  `json:"descricao"`
	Price            *float64 `json:"preco"`
	Category         *string  `json:"categoria"`
	ImageURL         *string  `json:"imagem"`
	Stock            *int     `json:"estoque"`
	NewArrival       *bool    `json:"novidade"`
	OnPromotion      *bool    `json:"promocao"`
	PromotionalPrice *float64 `json:"precoPromocional"`
}

// GetProducts returns the catalog, optionally narrowed by search term and
// category.
// GET /api/produtos?termo=&categoria=
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.productService.ListProducts(service.ProductListOptions{
		Term:     c.Query("termo"),
		Category: c.Query("categoria"),
	})
	if err != nil {
		log.Error("Failed to fetch products", err, nil)
		apperrors.InternalError(c, "Não foi possível listar os produtos")
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProductByID returns a single product.
// GET /api/produtos/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "produto")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Produto não encontrado")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Não foi possível buscar o produto")
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetPromotions returns products currently on promotion.
// GET /api/produtos/promocoes?termo=
func (ctrl *ProductController) GetPromotions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.productService.ListPromotions(c.Query("termo"))
	if err != nil {
		log.Error("Failed to fetch promotions", err, nil)
		apperrors.InternalError(c, "Não foi possível listar as promoções")
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetNewArrivals returns products flagged as new.
// GET /api/produtos/novidades?termo=
func (ctrl *ProductController) GetNewArrivals(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.productService.ListNewArrivals(c.Query("termo"))
	if err != nil {
		log.Error("Failed to fetch new arrivals", err, nil)
		apperrors.InternalError(c, "Não foi possível listar as novidades")
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetMostSearched returns the search popularity ranking.
// GET /api/produtos/mais-pesquisados
func (ctrl *ProductController) GetMostSearched(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	rankings, err := ctrl.popularityService.MostSearched(c.Request.Context())
	if err != nil {
		log.Error("Failed to fetch most searched products", err, nil)
		apperrors.InternalError(c, "Não foi possível listar os produtos mais pesquisados")
		return
	}

	c.JSON(http.StatusOK, rankings)
}

// GetMostPurchased returns the purchase popularity ranking.
// GET /api/produtos/mais-comprados
func (ctrl *ProductController) GetMostPurchased(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	rankings, err := ctrl.popularityService.MostPurchased(c.Request.Context())
	if err != nil {
		log.Error("Failed to fetch most purchased products", err, nil)
		apperrors.InternalError(c, "Não foi possível listar os produtos mais comprados")
		return
	}

	c.JSON(http.StatusOK, rankings)
}

// CreateProduct creates a new catalog item.
// POST /api/produtos
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados do produto inválidos")
		return
	}

	product := &model.Product{
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		Category:         req.Category,
		ImageURL:         req.ImageURL,
		Stock:            req.Stock,
		NewArrival:       req.NewArrival,
		OnPromotion:      req.OnPromotion,
		PromotionalPrice: req.PromotionalPrice,
	}

	if err := ctrl.productService.CreateProduct(product); err != nil {
		log.Error("Failed to create product", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.InternalError(c, "Não foi possível cadastrar o produto")
		return
	}

	log.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
	})
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct applies a partial update.
// PUT /api/produtos/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "produto")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product update request", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados do produto inválidos")
		return
	}

	_, err := ctrl.productService.UpdateProduct(id, service.ProductUpdate{
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		Category:         req.Category,
		ImageURL:         req.ImageURL,
		Stock:            req.Stock,
		NewArrival:       req.NewArrival,
		OnPromotion:      req.OnPromotion,
		PromotionalPrice: req.PromotionalPrice,
	})
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for update", map[string]interface{}{
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Produto não encontrado")
			return
		}
		log.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Não foi possível atualizar o produto")
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteProduct removes a catalog item.
// DELETE /api/produtos/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "produto")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for deletion", map[string]interface{}{
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Produto não encontrado")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Não foi possível remover o produto")
		return
	}

	c.Status(http.StatusNoContent)
}

// parseID reads the :id path parameter, responding 400 on garbage.
func parseID(c *gin.Context, log *logger.Logger, resource string) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid ID format", map[string]interface{}{
			"resource": resource,
			"id":       idStr,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Identificador inválido")
		return 0, false
	}
	return uint(id), true
}
