package model

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog item. JSON field names follow the storefront's
// pt-BR wire format.
type Product struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	Name             string         `gorm:"not null" json:"nome"`
	Description      string         `gorm:"type:text" json:"descricao,omitempty"`
	Price            float64        `gorm:"not null" json:"preco"`
	Category         string         `gorm:"type:varchar(255)" json:"categoria,omitempty"`
	ImageURL         string         `gorm:"type:varchar(500)" json:"imagem,omitempty"`
	Stock            int            `gorm:"default:0" json:"estoque"`
	NewArrival       bool           `gorm:"default:false" json:"novidade"`
	OnPromotion      bool           `gorm:"default:false" json:"promocao"`
	PromotionalPrice *float64       `json:"precoPromocional,omitempty"`
	CreatedAt        time.Time      `json:"-"`
	UpdatedAt        time.Time      `json:"-"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	OrderItems []OrderItem `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// EffectivePrice is the price actually charged: the promotional price only
// when the promotion flag is set AND a promotional value is present.
func (p Product) EffectivePrice() float64 {
	if p.OnPromotion && p.PromotionalPrice != nil {
		return *p.PromotionalPrice
	}
	return p.Price
}
