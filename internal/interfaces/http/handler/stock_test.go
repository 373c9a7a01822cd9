package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catalogapp "github.com/sheetstock/backend/internal/application/catalog"
	"github.com/sheetstock/backend/internal/application/notification"
	stockapp "github.com/sheetstock/backend/internal/application/stock"
	"github.com/sheetstock/backend/internal/application/trade"
	"github.com/sheetstock/backend/internal/domain/catalog"
	"github.com/sheetstock/backend/internal/domain/ledger"
	"github.com/sheetstock/backend/internal/domain/stock"
	"github.com/sheetstock/backend/internal/infrastructure/persistence/memory"
	"github.com/sheetstock/backend/internal/interfaces/http/router"
)

func newAPIFixture(t *testing.T) (*memory.TableStore, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewTableStore()
	store.Seed("Materials", [][]string{
		{"Material ID", "Material Name"},
		{"M1", "Steel Rod"},
		{"M2", "Copper Wire"},
	})

	loader := catalog.NewLoader(store, "Materials")
	notifier := notification.NewService(nil, nil, zap.NewNop())
	engine := stock.NewEngine(store, stock.Tables{
		Catalog:     "Materials",
		Purchases:   "Purchases",
		Sales:       "Sales",
		Adjustments: "Adjustments",
		Summary:     "Stock",
	})

	purchases := trade.NewPurchaseOrderService(store, loader, "Purchases", notifier)
	materials := catalogapp.NewMaterialService(store, loader,
		ledger.PurchaseLayout("Purchases"),
		ledger.SalesLayout("Sales"),
		ledger.AdjustmentLayout("Adjustments"),
	)

	r := gin.New()
	router.NewRouter(r).
		Register(NewStockHandler(stockapp.NewService(engine, notifier))).
		Register(NewMaterialHandler(materials)).
		Register(NewPurchaseOrderHandler(purchases)).
		Register(NewSystemHandler("SheetStock", "test")).
		Setup()
	return store, r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var payload map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	}
	return w, payload
}

func TestStockEndpoints(t *testing.T) {
	store, r := newAPIFixture(t)

	w, payload := doJSON(t, r, http.MethodPost, "/api/v1/purchase-orders",
		`{"supplier":"Acme Metals","despatch_date":"2024-01-02","quantities":{"M1":10}}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, true, payload["success"])

	t.Run("GET /stock computes without writing", func(t *testing.T) {
		w, payload := doJSON(t, r, http.MethodGet, "/api/v1/stock", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		data := payload["data"].([]any)
		require.Len(t, data, 2)
		first := data[0].(map[string]any)
		assert.Equal(t, "M1", first["material_id"])
		assert.Equal(t, float64(10), first["received"])
		assert.Equal(t, float64(10), first["net"])
		assert.Empty(t, store.Snapshot("Stock"), "compute must not touch the summary table")
	})

	t.Run("POST /stock/refresh rewrites the summary table", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/api/v1/stock/refresh", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		rows := store.Snapshot("Stock")
		require.NotEmpty(t, rows)
		assert.Equal(t, "M1", rows[0][1])
		assert.Equal(t, "M2", rows[0][2])
	})

	t.Run("workbook failure maps to 503", func(t *testing.T) {
		store.FailReads("Materials", errStoreDown)
		defer store.FailReads("Materials", nil)
		w, payload := doJSON(t, r, http.MethodGet, "/api/v1/stock", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		errInfo := payload["error"].(map[string]any)
		assert.Equal(t, "ERR_CATALOG_UNAVAILABLE", errInfo["code"])
	})
}

var errStoreDown = errors.New("store down")

func TestMaterialEndpoints(t *testing.T) {
	_, r := newAPIFixture(t)

	t.Run("register then list", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/api/v1/materials",
			`{"material_id":"M3","name":"Brass Fitting"}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w, payload := doJSON(t, r, http.MethodGet, "/api/v1/materials", "")
		require.Equal(t, http.StatusOK, w.Code)
		data := payload["data"].([]any)
		assert.Len(t, data, 3)
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		w, payload := doJSON(t, r, http.MethodPost, "/api/v1/materials",
			`{"material_id":"M1","name":"Duplicate"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
		errInfo := payload["error"].(map[string]any)
		assert.Equal(t, "ERR_ALREADY_EXISTS", errInfo["code"])
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		w, _ := doJSON(t, r, http.MethodPost, "/api/v1/materials", `{"material_id":"M4"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderNotFound(t *testing.T) {
	_, r := newAPIFixture(t)
	w, payload := doJSON(t, r, http.MethodGet, "/api/v1/purchase-orders/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	errInfo := payload["error"].(map[string]any)
	assert.Equal(t, "ERR_NOT_FOUND", errInfo["code"])
}

func TestSystemPing(t *testing.T) {
	_, r := newAPIFixture(t)
	w, payload := doJSON(t, r, http.MethodGet, "/api/v1/system/ping", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := payload["data"].(map[string]any)
	assert.Equal(t, "pong", data["message"])
}
