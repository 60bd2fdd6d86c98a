package controller

import (
	"errors"
	"net/http"

	"github.com/fitshop/fitshop-backend/internal/app/model"
	"github.com/fitshop/fitshop-backend/internal/app/service"
	apperrors "github.com/fitshop/fitshop-backend/internal/errors"
	"github.com/fitshop/fitshop-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

type CreateCategoryRequest struct {
	Name string `json:"nome" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"nome"`
	Slug *string `json:"slug"`
}

// GetCategories returns all categories.
// GET /api/categorias
func (ctrl *CategoryController) GetCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.categoryService.ListCategories()
	if err != nil {
		log.Error("Failed to fetch categories", err, nil)
		apperrors.InternalError(c, "Não foi possível listar as categorias")
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetCategoryByID returns a single category.
// GET /api/categorias/:id
func (ctrl *CategoryController) GetCategoryByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "categoria")
	if !ok {
		return
	}

	category, err := ctrl.categoryService.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			log.Warn("Category not found", map[string]interface{}{
				"category_id": id,
			})
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Categoria não encontrada")
			return
		}
		log.Error("Failed to fetch category", err, map[string]interface{}{
			"category_id": id,
		})
		apperrors.InternalError(c, "Não foi possível buscar a categoria")
		return
	}

	c.JSON(http.StatusOK, category)
}

// CreateCategory creates a category.
// POST /api/categorias
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid category creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados da categoria inválidos")
		return
	}

	category := &model.Category{
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := ctrl.categoryService.CreateCategory(category); err != nil {
		info := apperrors.ParseError(err, "categoria")
		if info.Code == apperrors.ResourceConflict {
			log.Warn("Category slug already exists", map[string]interface{}{
				"slug": req.Slug,
			})
			apperrors.Conflict(c, info.Code, info.Message)
			return
		}
		log.Error("Failed to create category", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.InternalError(c, "Não foi possível cadastrar a categoria")
		return
	}

	log.Info("Category created successfully", map[string]interface{}{
		"category_id": category.ID,
	})
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory applies a partial update.
// PUT /api/categorias/:id
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "categoria")
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid category update request", map[string]interface{}{
			"category_id": id,
			"error":       err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados da categoria inválidos")
		return
	}

	_, err := ctrl.categoryService.UpdateCategory(id, service.CategoryUpdate{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			log.Warn("Category not found for update", map[string]interface{}{
				"category_id": id,
			})
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Categoria não encontrada")
			return
		}
		log.Error("Failed to update category", err, map[string]interface{}{
			"category_id": id,
		})
		apperrors.InternalError(c, "Não foi possível atualizar a categoria")
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteCategory removes a category.
// DELETE /api/categorias/:id
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, log, "categoria")
	if !ok {
		return
	}

	if err := ctrl.categoryService.DeleteCategory(id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			log.Warn("Category not found for deletion", map[string]interface{}{
				"category_id": id,
			})
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Categoria não encontrada")
			return
		}
		log.Error("Failed to delete category", err, map[string]interface{}{
			"category_id": id,
		})
		apperrors.InternalError(c, "Não foi possível remover a categoria")
		return
	}

	c.Status(http.StatusNoContent)
}
