package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/fitshop/fitshop-backend/internal/app/repository"
	"github.com/fitshop/fitshop-backend/internal/app/service"
	"github.com/fitshop/fitshop-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCheckoutControllerTest(t *testing.T) (*gin.Engine, repository.CounterRepository) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	counterRepo := repository.NewCounterRepository(testDB)
	checkoutService := service.NewCheckoutService(counterRepo, "wa.me")
	controller := NewCheckoutController(checkoutService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/whatsapp/enviar-pedido", controller.SendOrder)

	return router, counterRepo
}

func checkoutPayload() map[string]interface{} {
	return map[string]interface{}{
		"telefone": "+55 11 91234-5678",
		"produtos": []map[string]interface{}{
			{"produtoId": 1, "nome": "Whey Protein 900g", "quantidade": 2, "preco": 135.00},
		},
		"valorTotal": 270.00,
	}
}

func TestCheckoutController_SendOrder(t *testing.T) {
	router, _ := setupCheckoutControllerTest(t)

	body, _ := json.Marshal(checkoutPayload())

	req := httptest.NewRequest(http.MethodPost, "/whatsapp/enviar-pedido", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp CheckoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	parsed, err := url.Parse(resp.URL)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", parsed.Host)
	assert.Equal(t, "/5511912345678", parsed.Path)
	assert.Contains(t, resp.Message, "*Total do pedido: R$ 270,00*")
	assert.Equal(t, resp.Message, parsed.Query().Get("text"))
}

func TestCheckoutController_SendOrder_BadPayloads(t *testing.T) {
	router, _ := setupCheckoutControllerTest(t)

	tests := []struct {
		name    string
		mutate  func(map[string]interface{})
		rawBody string
	}{
		{name: "Malformed JSON", rawBody: "{not json"},
		{
			name: "Missing phone",
			mutate: func(p map[string]interface{}) {
				delete(p, "telefone")
			},
		},
		{
			name: "Empty items",
			mutate: func(p map[string]interface{}) {
				p["produtos"] = []map[string]interface{}{}
			},
		},
		{
			name: "Phone without digits",
			mutate: func(p map[string]interface{}) {
				p["telefone"] = "abc"
			},
		},
		{
			name: "Zero quantity",
			mutate: func(p map[string]interface{}) {
				p["produtos"] = []map[string]interface{}{
					{"produtoId": 1, "nome": "Whey", "quantidade": 0, "preco": 135.00},
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body []byte
			if tt.rawBody != "" {
				body = []byte(tt.rawBody)
			} else {
				payload := checkoutPayload()
				tt.mutate(payload)
				body, _ = json.Marshal(payload)
			}

			req := httptest.NewRequest(http.MethodPost, "/whatsapp/enviar-pedido", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["message"])
		})
	}
}
