package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fitshop/fitshop-backend/internal/app/model"
	"github.com/fitshop/fitshop-backend/internal/app/repository"
	"github.com/fitshop/fitshop-backend/internal/app/service"
	"github.com/fitshop/fitshop-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProductControllerTest(t *testing.T) (*gin.Engine, repository.ProductRepository) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	productRepo := repository.NewProductRepository(testDB)
	counterRepo := repository.NewCounterRepository(testDB)
	productService := service.NewProductService(productRepo, counterRepo)
	popularityService := service.NewPopularityService(counterRepo, nil, 10)
	controller := NewProductController(productService, popularityService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/produtos/promocoes", controller.GetPromotions)
	router.GET("/produtos/novidades", controller.GetNewArrivals)
	router.GET("/produtos/mais-pesquisados", controller.GetMostSearched)
	router.GET("/produtos/mais-comprados", controller.GetMostPurchased)
	router.GET("/produtos", controller.GetProducts)
	router.GET("/produtos/:id", controller.GetProductByID)
	router.POST("/produtos", controller.CreateProduct)
	router.PUT("/produtos/:id", controller.UpdateProduct)
	router.DELETE("/produtos/:id", controller.DeleteProduct)

	return router, productRepo
}

func promoValue(v float64) *float64 {
	return &v
}

func seedControllerCatalog(t *testing.T, repo repository.ProductRepository) []*model.Product {
	t.Helper()

	products := []*model.Product{
		{
			Name:             "Whey Protein 900g",
			Price:            149.90,
			Category:         "suplementos",
			OnPromotion:      true,
			PromotionalPrice: promoValue(135.00),
		},
		{
			Name:       "Creatina 300g",
			Price:      89.90,
			Category:   "suplementos",
			NewArrival: true,
		},
	}
	for _, p := range products {
		require.NoError(t, repo.Create(p))
	}
	return products
}

func TestProductController_GetProducts(t *testing.T) {
	router, repo := setupProductControllerTest(t)
	seedControllerCatalog(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/produtos", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var products []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 2)

	// pt-BR wire format.
	assert.Equal(t, "Whey Protein 900g", products[0]["nome"])
	assert.InDelta(t, 149.90, products[0]["preco"].(float64), 0.001)
	assert.InDelta(t, 135.00, products[0]["precoPromocional"].(float64), 0.001)
	assert.Equal(t, true, products[0]["promocao"])
}

func TestProductController_GetProductsByTermAndCategory(t *testing.T) {
	router, repo := setupProductControllerTest(t)
	seedControllerCatalog(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/produtos?termo=whey&categoria=suplementos", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var products []model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Whey Protein 900g", products[0].Name)
}

func TestProductController_GetProductByID(t *testing.T) {
	router, repo := setupProductControllerTest(t)
	seeded := seedControllerCatalog(t, repo)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/produtos/%d", seeded[0].ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var product model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, seeded[0].ID, product.ID)
}

func TestProductController_GetProductByID_NotFound(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/produtos/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "PRODUCT_NOT_FOUND", body["error"])
}

func TestProductController_GetProductByID_InvalidID(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/produtos/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_GetPromotionsAndNewArrivals(t *testing.T) {
	router, repo := setupProductControllerTest(t)
	seedControllerCatalog(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/produtos/promocoes", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var products []model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.True(t, products[0].OnPromotion)

	req = httptest.NewRequest(http.MethodGet, "/produtos/novidades", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.True(t, products[0].NewArrival)
}

func TestProductController_Rankings(t *testing.T) {
	router, repo := setupProductControllerTest(t)
	seedControllerCatalog(t, repo)

	// A search through the listing endpoint feeds the ranking.
	req := httptest.NewRequest(http.MethodGet, "/produtos?termo=whey", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/produtos/mais-pesquisados", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var rankings []model.ProductRanking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rankings))
	require.Len(t, rankings, 1)
	assert.Equal(t, "Whey Protein 900g", rankings[0].Product.Name)
	assert.Equal(t, int64(1), rankings[0].Total)

	req = httptest.NewRequest(http.MethodGet, "/produtos/mais-comprados", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProductController_CreateProduct(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	payload := map[string]interface{}{
		"nome":      "Barra de Proteína",
		"preco":     12.90,
		"categoria": "suplementos",
		"estoque":   50,
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/produtos", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var product model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.NotZero(t, product.ID)
	assert.Equal(t, "Barra de Proteína", product.Name)
}

func TestProductController_CreateProduct_MissingName(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	body, _ := json.Marshal(map[string]interface{}{"preco": 12.90})

	req := httptest.NewRequest(http.MethodPost, "/produtos", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_UpdateProduct(t *testing.T) {
	router, repo := setupProductControllerTest(t)
	seeded := seedControllerCatalog(t, repo)

	body, _ := json.Marshal(map[string]interface{}{"preco": 142.00, "promocao": false})

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/produtos/%d", seeded[0].ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	updated, err := repo.FindByID(seeded[0].ID)
	require.NoError(t, err)
	assert.InDelta(t, 142.00, updated.Price, 0.001)
	assert.False(t, updated.OnPromotion)
}

func TestProductController_UpdateProduct_NotFound(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	body, _ := json.Marshal(map[string]interface{}{"preco": 10.0})

	req := httptest.NewRequest(http.MethodPut, "/produtos/9999", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductController_DeleteProduct(t *testing.T) {
	router, repo := setupProductControllerTest(t)
	seeded := seedControllerCatalog(t, repo)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/produtos/%d", seeded[1].ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/produtos/%d", seeded[1].ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
