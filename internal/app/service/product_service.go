package service

import (
	"errors"

	"github.com/fitshop/fitshop-backend/internal/app/model"
	"github.com/fitshop/fitshop-backend/internal/app/repository"
	"github.com/fitshop/fitshop-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// ProductListOptions narrows the catalog listing. A non-empty Term has a
// side effect: search counters are bumped for every matching product.
type ProductListOptions struct {
	Term     string
	Category string
	Limit    int
	Offset   int
}

// ProductUpdate carries a partial update; nil fields keep the stored value.
type ProductUpdate struct {
	Name             *string
	Description      *string
	Price            *float64
	Category         *string
	ImageURL         *string
	Stock            *int
	NewArrival       *bool
	OnPromotion      *bool
	PromotionalPrice *float64
}

type ProductService interface {
	ListProducts(opts ProductListOptions) ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	ListPromotions(term string) ([]model.Product, error)
	ListNewArrivals(term string) ([]model.Product, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(id uint, update ProductUpdate) (*model.Product, error)
	DeleteProduct(id uint) error
}

type productService struct {
	productRepo repository.ProductRepository
	counterRepo repository.CounterRepository
}

func NewProductService(productRepo repository.ProductRepository, counterRepo repository.CounterRepository) ProductService {
	return &productService{
		productRepo: productRepo,
		counterRepo: counterRepo,
	}
}

func (s *productService) ListProducts(opts ProductListOptions) ([]model.Product, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"term":     opts.Term,
		"category": opts.Category,
		"limit":    opts.Limit,
		"offset":   opts.Offset,
	})

	products, err := s.productRepo.FindWithFilter(repository.ProductFilter{
		Term:     opts.Term,
		Category: opts.Category,
		Limit:    opts.Limit,
		Offset:   opts.Offset,
	})
	if err != nil {
		logger.Error("Failed to list products", err, map[string]interface{}{
			"term":     opts.Term,
			"category": opts.Category,
		})
		return nil, err
	}

	if opts.Term != "" {
		s.recordSearch(opts.Term)
	}

	logger.Info("Products listed successfully", map[string]interface{}{
		"count": len(products),
		"term":  opts.Term,
	})
	return products, nil
}

// recordSearch bumps the search counter for every product matching the
// term, independent of any category filter applied to the listing itself.
// A failed bump never fails the search: the counter is analytics, the
// listing is the product.
func (s *productService) recordSearch(term string) {
	matches, err := s.productRepo.FindWithFilter(repository.ProductFilter{Term: term})
	if err != nil {
		logger.Warn("Failed to resolve products for search counter", map[string]interface{}{
			"term":  term,
			"error": err.Error(),
		})
		return
	}

	ids := make([]uint, 0, len(matches))
	for _, p := range matches {
		ids = append(ids, p.ID)
	}

	if err := s.counterRepo.IncrementSearches(ids); err != nil {
		logger.Warn("Failed to increment search counters", map[string]interface{}{
			"term":  term,
			"error": err.Error(),
		})
	}
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func (s *productService) ListPromotions(term string) ([]model.Product, error) {
	return s.productRepo.FindWithFilter(repository.ProductFilter{
		Term:           term,
		PromotionsOnly: true,
	})
}

func (s *productService) ListNewArrivals(term string) ([]model.Product, error) {
	return s.productRepo.FindWithFilter(repository.ProductFilter{
		Term:            term,
		NewArrivalsOnly: true,
	})
}

func (s *productService) CreateProduct(product *model.Product) error {
	logger.Info("Creating product", map[string]interface{}{
		"name":     product.Name,
		"category": product.Category,
		"price":    product.Price,
	})

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (s *productService) UpdateProduct(id uint, update ProductUpdate) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.ImageURL != nil {
		product.ImageURL = *update.ImageURL
	}
	if update.Stock != nil {
		product.Stock = *update.Stock
	}
	if update.NewArrival != nil {
		product.NewArrival = *update.NewArrival
	}
	if update.OnPromotion != nil {
		product.OnPromotion = *update.OnPromotion
	}
	if update.PromotionalPrice != nil {
		product.PromotionalPrice = update.PromotionalPrice
	}

	if err := s.productRepo.Update(product); err != nil {
		// A delete racing this update surfaces as not-found after recheck.
		if exists, checkErr := s.productRepo.Exists(id); checkErr == nil && !exists {
			logger.Warn("Product vanished during update", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	logger.Info("Product updated successfully", map[string]interface{}{
		"product_id": product.ID,
	})
	return product, nil
}

func (s *productService) DeleteProduct(id uint) error {
	exists, err := s.productRepo.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		logger.Warn("Product not found for deletion", map[string]interface{}{
			"product_id": id,
		})
		return ErrProductNotFound
	}

	if err := s.productRepo.Delete(id); err != nil {
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})
	return nil
}
