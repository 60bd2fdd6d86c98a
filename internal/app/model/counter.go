package model

import "time"

// SearchCounter tallies how many catalog searches matched a product.
// One row per product; bumped with an atomic upsert.
type SearchCounter struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex" json:"produtoId"`
	Total     int64     `gorm:"not null;default:0" json:"totalPesquisas"`
	UpdatedAt time.Time `json:"-"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (SearchCounter) TableName() string {
	return "search_counters"
}

// PurchaseCounter tallies quantities submitted at checkout per product.
// Client-provided quantities are trusted; no stock cross-check.
type PurchaseCounter struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex" json:"produtoId"`
	Total     int64     `gorm:"not null;default:0" json:"totalCompras"`
	UpdatedAt time.Time `json:"-"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (PurchaseCounter) TableName() string {
	return "purchase_counters"
}

// ProductRanking pairs a product with its counter total, for the
// most-searched / most-purchased merchandising surfaces.
type ProductRanking struct {
	Product Product `json:"produto"`
	Total   int64   `json:"total"`
}
