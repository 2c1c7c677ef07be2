package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/example/sufra/internal/database"
	"github.com/example/sufra/internal/models"
)

// setupTestDB opens a private in-memory database for one test. cache=shared
// keeps every pooled connection on the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// testCatalog holds the rows seeded by seedCatalog.
type testCatalog struct {
	Branch         models.Branch
	ClosedBranch   models.Branch
	Pizza          models.Product
	Salad          models.Product
	RetiredProduct models.Product
	SizeGroup      models.ProductOptionGroup
	SizeSmall      models.ProductOption
	SizeLarge      models.ProductOption
	SizeRetired    models.ProductOption
	ExtrasGroup    models.ProductOptionGroup
	ExtraCheese    models.ProductOption
	ExtraOlives    models.ProductOption
}

// seedCatalog creates one open and one closed branch, a pizza with a required
// single-select Size group and an optional multi-select Extras group, a
// plain salad and an inactive product.
func seedCatalog(t *testing.T, db *gorm.DB) testCatalog {
	t.Helper()

	tc := testCatalog{
		Branch:       models.Branch{NameEn: "Downtown", NameAr: "وسط المدينة", Phone: "+100", IsActive: true},
		ClosedBranch: models.Branch{NameEn: "Airport", NameAr: "المطار", Phone: "+200", IsActive: false},
	}
	require.NoError(t, db.Create(&tc.Branch).Error)
	require.NoError(t, db.Create(&tc.ClosedBranch).Error)

	tc.Pizza = models.Product{
		NameEn:                   "Margherita Pizza",
		NameAr:                   "بيتزا مارغريتا",
		Price:                    decimal.RequireFromString("15.00"),
		EstimatedPreparationTime: 10,
		IsActive:                 true,
	}
	require.NoError(t, db.Create(&tc.Pizza).Error)

	tc.SizeGroup = models.ProductOptionGroup{
		ProductID:  tc.Pizza.ID,
		NameEn:     "Size",
		Type:       models.SingleSelect,
		IsRequired: true,
	}
	require.NoError(t, db.Create(&tc.SizeGroup).Error)

	tc.SizeSmall = models.ProductOption{GroupID: tc.SizeGroup.ID, NameEn: "Small", ExtraPrice: decimal.RequireFromString("0.00"), IsActive: true}
	tc.SizeLarge = models.ProductOption{GroupID: tc.SizeGroup.ID, NameEn: "Large", ExtraPrice: decimal.RequireFromString("2.00"), IsActive: true}
	tc.SizeRetired = models.ProductOption{GroupID: tc.SizeGroup.ID, NameEn: "Family", ExtraPrice: decimal.RequireFromString("4.00"), IsActive: false}
	require.NoError(t, db.Create(&tc.SizeSmall).Error)
	require.NoError(t, db.Create(&tc.SizeLarge).Error)
	require.NoError(t, db.Create(&tc.SizeRetired).Error)

	tc.ExtrasGroup = models.ProductOptionGroup{
		ProductID:  tc.Pizza.ID,
		NameEn:     "Extras",
		Type:       models.MultiSelect,
		IsRequired: false,
	}
	require.NoError(t, db.Create(&tc.ExtrasGroup).Error)

	tc.ExtraCheese = models.ProductOption{GroupID: tc.ExtrasGroup.ID, NameEn: "Extra Cheese", ExtraPrice: decimal.RequireFromString("1.50"), IsActive: true}
	tc.ExtraOlives = models.ProductOption{GroupID: tc.ExtrasGroup.ID, NameEn: "Olives", ExtraPrice: decimal.RequireFromString("1.00"), IsActive: true}
	require.NoError(t, db.Create(&tc.ExtraCheese).Error)
	require.NoError(t, db.Create(&tc.ExtraOlives).Error)

	tc.Salad = models.Product{
		NameEn:                   "Garden Salad",
		Price:                    decimal.RequireFromString("8.50"),
		EstimatedPreparationTime: 5,
		IsActive:                 true,
	}
	require.NoError(t, db.Create(&tc.Salad).Error)

	tc.RetiredProduct = models.Product{
		NameEn:   "Seasonal Soup",
		Price:    decimal.RequireFromString("6.00"),
		IsActive: false,
	}
	require.NoError(t, db.Create(&tc.RetiredProduct).Error)

	return tc
}

// pizzaCart builds a valid single-item cart: one large pizza, quantity qty.
func pizzaCart(tc testCatalog, qty int) CartRequest {
	return CartRequest{
		BranchID:      tc.Branch.ID,
		PaymentMethod: string(models.PaymentCash),
		Items: []CartItemRequest{
			{
				ProductID: tc.Pizza.ID,
				Quantity:  qty,
				SelectedOptions: map[uuid.UUID][]uuid.UUID{
					tc.SizeGroup.ID: {tc.SizeLarge.ID},
				},
			},
		},
	}
}
