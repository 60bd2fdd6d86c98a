package service

import (
	"errors"
	"fmt"

	"github.com/fitshop/fitshop-backend/internal/app/model"
	"github.com/fitshop/fitshop-backend/internal/app/repository"
	"github.com/fitshop/fitshop-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrEmptyOrder      = errors.New("order has no items")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

// OrderItemInput is one submitted order line. Quantities are client
// provided and validated for shape only, never against stock.
type OrderItemInput struct {
	ProductID uint
	Quantity  int
}

type OrderService interface {
	CreateOrder(items []OrderItemInput) (*model.Order, error)
	GetOrders() ([]model.Order, error)
	GetOrderByID(id uint) (*model.Order, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	db          *gorm.DB
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	db *gorm.DB,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		db:          db,
	}
}

// CreateOrder persists an order header plus line items. Each line snapshots
// the product's effective price at submission time, and the grand total is
// computed from those snapshots rather than trusted from the client.
func (s *orderService) CreateOrder(items []OrderItemInput) (*model.Order, error) {
	logger.Info("Creating order", map[string]interface{}{
		"item_count": len(items),
	})

	if len(items) == 0 {
		logger.Warn("Cannot create order: no items submitted")
		return nil, ErrEmptyOrder
	}
	for _, item := range items {
		if item.Quantity < 1 {
			logger.Warn("Cannot create order: invalid quantity", map[string]interface{}{
				"product_id": item.ProductID,
				"quantity":   item.Quantity,
			})
			return nil, ErrInvalidQuantity
		}
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during order creation, rolling back", fmt.Errorf("panic: %v", r))
		}
	}()

	var (
		total      float64
		orderItems []model.OrderItem
	)

	for _, item := range items {
		var product model.Product
		if err := tx.First(&product, item.ProductID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Product not found during order creation", map[string]interface{}{
					"product_id": item.ProductID,
				})
				return nil, ErrProductNotFound
			}
			logger.Error("Failed to fetch product during order creation", err, map[string]interface{}{
				"product_id": item.ProductID,
			})
			return nil, err
		}

		price := product.EffectivePrice()
		total += price * float64(item.Quantity)
		orderItems = append(orderItems, model.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			Price:     price,
		})
	}

	order := &model.Order{
		Total: total,
		Items: orderItems,
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"item_count": len(items),
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit order", err)
		return nil, err
	}

	created, err := s.orderRepo.FindByID(order.ID)
	if err != nil {
		logger.Error("Failed to reload created order", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return nil, err
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"order_id": created.ID,
		"total":    created.Total,
	})
	return created, nil
}

func (s *orderService) GetOrders() ([]model.Order, error) {
	orders, err := s.orderRepo.FindAll()
	if err != nil {
		logger.Error("Failed to fetch orders", err)
		return nil, err
	}
	return orders, nil
}

func (s *orderService) GetOrderByID(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order not found", map[string]interface{}{
				"order_id": id,
			})
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}
	return order, nil
}
