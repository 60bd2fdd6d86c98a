package repository

import (
	"github.com/fitshop/fitshop-backend/internal/app/model"
	"github.com/fitshop/fitshop-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PurchaseIncrement is one checkout line feeding the purchase counter.
type PurchaseIncrement struct {
	ProductID uint
	Quantity  int
}

// CounterRepository maintains the per-product popularity counters.
// Increments are single-statement upserts (INSERT ... ON CONFLICT DO
// UPDATE), so concurrent bumps on the same product never lose updates.
type CounterRepository interface {
	IncrementSearches(productIDs []uint) error
	IncrementPurchases(increments []PurchaseIncrement) error
	MostSearched(limit int) ([]model.ProductRanking, error)
	MostPurchased(limit int) ([]model.ProductRanking, error)
}

type counterRepository struct {
	db *gorm.DB
}

func NewCounterRepository(db *gorm.DB) CounterRepository {
	return &counterRepository{db: db}
}

func (r *counterRepository) IncrementSearches(productIDs []uint) error {
	if len(productIDs) == 0 {
		return nil
	}

	logger.Debug("Incrementing search counters", map[string]interface{}{
		"product_count": len(productIDs),
	})

	counters := make([]model.SearchCounter, 0, len(productIDs))
	for _, id := range productIDs {
		counters = append(counters, model.SearchCounter{ProductID: id, Total: 1})
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total": gorm.Expr("search_counters.total + excluded.total"),
		}),
	}).Create(&counters).Error
	if err != nil {
		logger.Error("Failed to increment search counters", err, map[string]interface{}{
			"product_count": len(productIDs),
		})
		return err
	}
	return nil
}

func (r *counterRepository) IncrementPurchases(increments []PurchaseIncrement) error {
	if len(increments) == 0 {
		return nil
	}

	logger.Debug("Incrementing purchase counters", map[string]interface{}{
		"item_count": len(increments),
	})

	counters := make([]model.PurchaseCounter, 0, len(increments))
	for _, inc := range increments {
		counters = append(counters, model.PurchaseCounter{
			ProductID: inc.ProductID,
			Total:     int64(inc.Quantity),
		})
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total": gorm.Expr("purchase_counters.total + excluded.total"),
		}),
	}).Create(&counters).Error
	if err != nil {
		logger.Error("Failed to increment purchase counters", err, map[string]interface{}{
			"item_count": len(increments),
		})
		return err
	}
	return nil
}

func (r *counterRepository) MostSearched(limit int) ([]model.ProductRanking, error) {
	var counters []model.SearchCounter
	err := r.db.Preload("Product").
		Order("total DESC").
		Limit(limit).
		Find(&counters).Error
	if err != nil {
		logger.Error("Failed to fetch most searched products", err)
		return nil, err
	}

	rankings := make([]model.ProductRanking, 0, len(counters))
	for _, c := range counters {
		// Skip counters whose product has since been deleted.
		if c.Product.ID == 0 {
			continue
		}
		rankings = append(rankings, model.ProductRanking{Product: c.Product, Total: c.Total})
	}
	return rankings, nil
}

func (r *counterRepository) MostPurchased(limit int) ([]model.ProductRanking, error) {
	var counters []model.PurchaseCounter
	err := r.db.Preload("Product").
		Order("total DESC").
		Limit(limit).
		Find(&counters).Error
	if err != nil {
		logger.Error("Failed to fetch most purchased products", err)
		return nil, err
	}

	rankings := make([]model.ProductRanking, 0, len(counters))
	for _, c := range counters {
		if c.Product.ID == 0 {
			continue
		}
		rankings = append(rankings, model.ProductRanking{Product: c.Product, Total: c.Total})
	}
	return rankings, nil
}
