package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fitshop/fitshop-backend/internal/app/repository"
	"github.com/fitshop/fitshop-backend/internal/app/service"
	"github.com/fitshop/fitshop-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOrderControllerTest(t *testing.T) (*gin.Engine, repository.ProductRepository) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	productRepo := repository.NewProductRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	orderService := service.NewOrderService(orderRepo, productRepo, testDB)
	controller := NewOrderController(orderService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/pedidos", controller.GetOrders)
	router.GET("/pedidos/:id", controller.GetOrderByID)
	router.POST("/pedidos", controller.CreateOrder)

	return router, productRepo
}

func TestOrderController_CreateOrder(t *testing.T) {
	router, repo := setupOrderControllerTest(t)
	seeded := seedControllerCatalog(t, repo)

	payload := map[string]interface{}{
		"produtos": []map[string]interface{}{
			{"produtoId": seeded[0].ID, "quantidade": 2},
			{"produtoId": seeded[1].ID, "quantidade": 1},
		},
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/pedidos", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp OrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotZero(t, resp.ID)
	assert.InDelta(t, 359.90, resp.Total, 0.001)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Whey Protein 900g", resp.Items[0].ProductName)
	assert.InDelta(t, 135.00, resp.Items[0].Price, 0.001)
}

func TestOrderController_CreateOrder_BadRequests(t *testing.T) {
	router, _ := setupOrderControllerTest(t)

	tests := []struct {
		name     string
		payload  string
		wantCode int
	}{
		{"Malformed JSON", "{oops", http.StatusBadRequest},
		{"No items", `{"produtos": []}`, http.StatusBadRequest},
		{"Zero quantity", `{"produtos": [{"produtoId": 1, "quantidade": 0}]}`, http.StatusBadRequest},
		{"Unknown product", `{"produtos": [{"produtoId": 9999, "quantidade": 1}]}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/pedidos", bytes.NewBufferString(tt.payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestOrderController_GetOrders(t *testing.T) {
	router, repo := setupOrderControllerTest(t)
	seeded := seedControllerCatalog(t, repo)

	payload := fmt.Sprintf(`{"produtos": [{"produtoId": %d, "quantidade": 1}]}`, seeded[0].ID)
	req := httptest.NewRequest(http.MethodPost, "/pedidos", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/pedidos", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var orders []OrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.False(t, orders[0].Date.IsZero())
}

func TestOrderController_GetOrderByID_NotFound(t *testing.T) {
	router, _ := setupOrderControllerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/pedidos/404", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ORDER_NOT_FOUND", body["error"])
}
