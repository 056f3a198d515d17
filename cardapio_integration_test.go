package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/models"
	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/router"
	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// setupIntegrationDB -> sqlite em memoria + migracao + usuarios de teste
func setupIntegrationDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderHistory{},
		&models.DailyProfit{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	for _, u := range []struct {
		username, role string
	}{
		{"admin", models.RoleAdmin},
		{"maria", models.RoleManager},
	} {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
		user := models.User{Username: u.username, Password: string(hashed), Role: u.role, Active: true}
		if err := db.Create(&user).Error; err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}
	return db
}

func request(r *gin.Engine, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginAs(t *testing.T, r *gin.Engine, username string) string {
	w := request(r, "POST", "/login", "", gin.H{"username": username, "password": "secret123"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp utils.JSONResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data.(map[string]interface{})["token"].(string)
}

// TestOrderLifecycleIntegration cobre o fluxo principal:
// login -> cria pedido -> Preparing -> Ready -> Delivered -> historico e
// estatisticas -> limpeza do historico -> reset geral
func TestOrderLifecycleIntegration(t *testing.T) {
	db := setupIntegrationDB(t)
	r := router.SetupRouter(db)

	adminToken := loginAs(t, r, "admin")

	// cria o pedido
	w := request(r, "POST", "/api/orders", adminToken, gin.H{
		"items": []gin.H{{"name": "Pizza", "price": 35.90, "quantity": 2}},
		"total": 71.80,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp utils.JSONResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	orderID := resp.Data.(map[string]interface{})["id"].(float64)
	assert.Equal(t, float64(1), orderID)

	// caminha pelo ciclo de vida
	for _, status := range []string{"Preparing", "Ready", "Delivered"} {
		w = request(r, "PUT", "/api/orders/1/status", adminToken, gin.H{"status": status})
		assert.Equal(t, http.StatusOK, w.Code)
	}

	// pedido entregue sai da listagem ativa
	w = request(r, "GET", "/api/orders", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Data)

	// mas aparece no historico
	w = request(r, "GET", "/api/orders/history", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.([]interface{}), 1)

	// estatisticas computadas sobre o historico
	w = request(r, "GET", "/api/statistics", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	stats := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(1), stats["total_orders"])
	assert.InDelta(t, 71.80, stats["total_revenue"].(float64), 0.001)
	assert.InDelta(t, 71.80, stats["average_ticket"].(float64), 0.001)

	// limpa o historico
	w = request(r, "DELETE", "/api/orders/history", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp.Data.(map[string]interface{})["removed"])

	// reset geral e idempotente
	w = request(r, "POST", "/api/reset-counters", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = request(r, "POST", "/api/reset-counters", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// usuarios sobrevivem ao reset
	var users int64
	db.Model(&models.User{}).Count(&users)
	assert.Equal(t, int64(2), users)
}

func TestRoleEnforcementIntegration(t *testing.T) {
	db := setupIntegrationDB(t)
	r := router.SetupRouter(db)

	managerToken := loginAs(t, r, "maria")

	// manager cria e atualiza pedidos normalmente
	w := request(r, "POST", "/api/orders", managerToken, gin.H{
		"items": []gin.H{{"name": "Suco", "price": 8.50, "quantity": 1}},
		"total": 8.50,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// mas nao deleta pedidos, nem ve lucros, nem reseta o sistema
	w = request(r, "DELETE", "/api/orders/1", managerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = request(r, "GET", "/api/profits", managerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = request(r, "POST", "/api/reset-counters", managerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// sem token nada passa
	w = request(r, "GET", "/api/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// rotas publicas continuam abertas
	w = request(r, "GET", "/products", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfitsEndpointIntegration(t *testing.T) {
	db := setupIntegrationDB(t)
	r := router.SetupRouter(db)

	for _, row := range []models.DailyProfit{
		{Date: "2026-08-28", Profit: 120.50},
		{Date: "2026-08-29", Profit: 80.00},
		{Date: "2026-08-30", Profit: 200.00},
	} {
		assert.NoError(t, db.Create(&row).Error)
	}

	adminToken := loginAs(t, r, "admin")

	w := request(r, "GET", "/api/profits?start_date=2026-08-28&end_date=2026-08-29", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp utils.JSONResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	rows := resp.Data.([]interface{})
	assert.Len(t, rows, 2)
	assert.Equal(t, "2026-08-29", rows[0].(map[string]interface{})["date"])

	w = request(r, "GET", "/api/profits", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.([]interface{}), 3)
}
