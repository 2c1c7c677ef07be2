package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hot Drinks":       "hot-drinks",
		"Pizza & Pasta":    "pizza-pasta",
		"  Salads  ":       "salads",
		"Combo #1 (Small)": "combo-1-small",
		"عصائر":            "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestCategoryBeforeCreateDefaults(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:category_hooks?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Category{}))

	first := Category{NameEn: "Hot Drinks", IsActive: true}
	require.NoError(t, db.Create(&first).Error)
	assert.NotEqual(t, [16]byte{}, [16]byte(first.ID))
	assert.Equal(t, "hot-drinks", first.Slug)
	assert.Equal(t, 1, first.Position)

	second := Category{NameEn: "Desserts", IsActive: true}
	require.NoError(t, db.Create(&second).Error)
	assert.Equal(t, 2, second.Position)

	pinned := Category{NameEn: "Specials", Slug: "chef-specials", Position: 9, IsActive: true}
	require.NoError(t, db.Create(&pinned).Error)
	assert.Equal(t, "chef-specials", pinned.Slug)
	assert.Equal(t, 9, pinned.Position)
}
