package model

import (
	"time"

	"gorm.io/gorm"
)

// Order is the persisted order header. Line items snapshot the catalog
// price at submission time.
type Order struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Total     float64        `gorm:"not null" json:"valorTotal"`
	CreatedAt time.Time      `json:"data"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"produtos,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	OrderID   uint           `gorm:"not null;index" json:"-"`
	ProductID uint           `gorm:"not null;index" json:"produtoId"`
	Quantity  int            `gorm:"not null;default:1" json:"quantidade"`
	Price     float64        `gorm:"not null" json:"preco"`
	CreatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
