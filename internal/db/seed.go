package db

import (
	"github.com/fitshop/fitshop-backend/internal/app/model"
	"github.com/fitshop/fitshop-backend/pkg/logger"
	"gorm.io/gorm"
)

func promoPrice(v float64) *float64 { return &v }

// SeedCategories are the storefront's launch categories.
var SeedCategories = []model.Category{
	{Name: "Suplementos", Slug: "suplementos"},
	{Name: "Acessórios", Slug: "acessorios"},
	{Name: "Roupas Fitness", Slug: "roupas"},
	{Name: "Equipamentos", Slug: "equipamentos"},
	{Name: "Nutrição", Slug: "nutricao"},
}

// SeedProducts is the launch catalog.
var SeedProducts = []model.Product{
	{
		Name:             "Whey Protein Gold Standard",
		Description:      "Whey Protein de alta qualidade com 24g de proteína por dose. Ideal para recuperação muscular e ganho de massa magra.",
		Price:            149.90,
		Category:         "Suplementos",
		ImageURL:         "https://images.pexels.com/photos/8844577/pexels-photo-8844577.jpeg?auto=compress&cs=tinysrgb&w=600",
		Stock:            50,
		NewArrival:       true,
		OnPromotion:      true,
		PromotionalPrice: promoPrice(135.00),
	},
	{
		Name:             "Creatina Monohidratada 300g",
		Description:      "Creatina pura para aumento de força e resistência durante os treinos. 5g por dose diária.",
		Price:            89.90,
		Category:         "Suplementos",
		ImageURL:         "https://images.pexels.com/photos/12304205/pexels-photo-12304205.jpeg?auto=compress&cs=tinysrgb&w=600",
		Stock:            30,
		OnPromotion:      true,
		PromotionalPrice: promoPrice(79.90),
	},
	{
		Name:        "Luvas de Treino Premium",
		Description: "Luvas de alta qualidade para proteção das mãos durante treinos de musculação. Material respirável.",
		Price:       59.90,
		Category:    "Acessórios",
		ImageURL:    "https://images.pexels.com/photos/6456264/pexels-photo-6456264.jpeg?auto=compress&cs=tinysrgb&w=600",
		Stock:       15,
		NewArrival:  true,
	},
	{
		Name:        "Camiseta Dry-Fit Performance",
		Description: "Camiseta com tecnologia que absorve o suor e mantém o corpo seco durante a atividade física.",
		Price:       79.90,
		Category:    "Roupas",
		ImageURL:    "https://images.pexels.com/photos/6311251/pexels-photo-6311251.jpeg?auto=compress&cs=tinysrgb&w=600",
		Stock:       25,
		NewArrival:  true,
	},
	{
		Name:             "Barra de Proteína Crunchy",
		Description:      "Barra de proteína com 20g de proteína e baixo teor de açúcar. Perfeita para lanches entre refeições.",
		Price:            12.90,
		Category:         "Suplementos",
		ImageURL:         "https://images.pexels.com/photos/6249089/pexels-photo-6249089.jpeg?auto=compress&cs=tinysrgb&w=600",
		Stock:            100,
		OnPromotion:      true,
		PromotionalPrice: promoPrice(9.90),
	},
	{
		Name:        "Corda de Pular Profissional",
		Description: "Corda de pular com cabo de aço revestido e rolamentos para alta velocidade.",
		Price:       45.90,
		Category:    "Acessórios",
		ImageURL:    "https://images.pexels.com/photos/4473608/pexels-photo-4473608.jpeg?auto=compress&cs=tinysrgb&w=600",
		Stock:       20,
		NewArrival:  true,
	},
	{
		Name:             "Legging Compressão Feminina",
		Description:      "Legging de compressão para mulheres com tecido respirável e cintura alta.",
		Price:            89.90,
		Category:         "Roupas",
		ImageURL:         "https://images.pexels.com/photos/6550839/pexels-photo-6550839.jpeg?auto=compress&cs=tinysrgb&w=600",
		Stock:            30,
		NewArrival:       true,
		OnPromotion:      true,
		PromotionalPrice: promoPrice(75.00),
	},
	{
		Name:        "BCAA 2:1:1 - 60 cápsulas",
		Description: "Suplemento de aminoácidos para preservação muscular e melhor recuperação.",
		Price:       69.90,
		Category:    "Suplementos",
		ImageURL:    "https://images.pexels.com/photos/4464819/pexels-photo-4464819.jpeg?auto=compress&cs=tinysrgb&w=600",
		Stock:       40,
	},
}

// Seed inserts the launch catalog when the tables are still empty.
func Seed() error {
	return SeedInto(DB)
}

// SeedInto seeds an explicit connection (used by cmd/seed and tests).
func SeedInto(db *gorm.DB) error {
	logger.Info("Seeding initial catalog data...")

	var categoryCount int64
	if err := db.Model(&model.Category{}).Count(&categoryCount).Error; err != nil {
		return err
	}
	if categoryCount == 0 {
		categories := make([]model.Category, len(SeedCategories))
		copy(categories, SeedCategories)
		if err := db.Create(&categories).Error; err != nil {
			logger.Error("Failed to seed categories", err)
			return err
		}
	} else {
		logger.Info("Categories already seeded, skipping...", map[string]interface{}{
			"existing_count": categoryCount,
		})
	}

	var productCount int64
	if err := db.Model(&model.Product{}).Count(&productCount).Error; err != nil {
		return err
	}
	if productCount == 0 {
		products := make([]model.Product, len(SeedProducts))
		copy(products, SeedProducts)
		if err := db.Create(&products).Error; err != nil {
			logger.Error("Failed to seed products", err)
			return err
		}
	} else {
		logger.Info("Products already seeded, skipping...", map[string]interface{}{
			"existing_count": productCount,
		})
	}

	logger.Info("Initial catalog data seeded successfully")
	return nil
}
