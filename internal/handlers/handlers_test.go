package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/example/sufra/internal/database"
	"github.com/example/sufra/internal/models"
	"github.com/example/sufra/internal/services"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type testMenu struct {
	Branch    models.Branch
	Pizza     models.Product
	SizeGroup models.ProductOptionGroup
	SizeLarge models.ProductOption
}

func seedMenu(t *testing.T, db *gorm.DB) testMenu {
	t.Helper()

	tm := testMenu{Branch: models.Branch{NameEn: "Downtown", Phone: "+100", IsActive: true}}
	require.NoError(t, db.Create(&tm.Branch).Error)

	tm.Pizza = models.Product{
		NameEn:                   "Margherita Pizza",
		Price:                    decimal.RequireFromString("15.00"),
		EstimatedPreparationTime: 10,
		IsActive:                 true,
	}
	require.NoError(t, db.Create(&tm.Pizza).Error)

	tm.SizeGroup = models.ProductOptionGroup{
		ProductID:  tm.Pizza.ID,
		NameEn:     "Size",
		Type:       models.SingleSelect,
		IsRequired: true,
	}
	require.NoError(t, db.Create(&tm.SizeGroup).Error)

	tm.SizeLarge = models.ProductOption{
		GroupID:    tm.SizeGroup.ID,
		NameEn:     "Large",
		ExtraPrice: decimal.RequireFromString("2.00"),
		IsActive:   true,
	}
	require.NoError(t, db.Create(&tm.SizeLarge).Error)

	return tm
}

// newTestApp mounts handlers without auth middleware so tests exercise the
// handlers themselves.
func newTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()

	catalog := NewCatalogHandler(db)
	products := NewProductHandler(db)
	orders := NewOrderHandler(db, services.NewOrderService(db, nil))

	app.Get("/categories", catalog.ListCategories)
	app.Get("/categories/:id", catalog.GetCategory)
	app.Post("/categories", catalog.CreateCategory)
	app.Get("/products", products.ListProducts)
	app.Get("/products/:id", products.GetProduct)
	app.Post("/orders", orders.CreateOrder)
	app.Patch("/orders/:id/status", orders.UpdateStatus)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	return resp, raw
}

func decodeBody(t *testing.T, raw []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return out
}
