package services

import (
	"context"
	"testing"
	"time"

	"hostel-shop-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogFixture(t *testing.T) (*CatalogService, *fakeClock) {
	t.Helper()
	svc := NewCatalogService(newTestStore(t))
	clock := newFakeClock()
	svc.now = clock.Now
	return svc, clock
}

func drinkInput() ProductInput {
	return ProductInput{
		Type:     models.ProductTypeProduct,
		Category: "Bebidas",
		Price:    5,
		NamePT:   "Água",
		NameEN:   "Water",
		NameES:   "Agua",
	}
}

func TestCreateCategory_DuplicateAcrossLanguages(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, CategoryInput{NamePT: "Bebidas", NameEN: "Drinks", NameES: "Bebidas"})
	require.NoError(t, err)

	// "Drinks" is the English name of the first category, reused here in the pt slot.
	_, err = svc.CreateCategory(ctx, CategoryInput{NamePT: "Drinks", NameEN: "Beverages", NameES: "Tragos"})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, ConflictDuplicateName, conflict.Kind)
	assert.Equal(t, "Drinks", conflict.Name)

	_, err = svc.CreateCategory(ctx, CategoryInput{NamePT: "Lanches", NameEN: "Snacks", NameES: "Bocadillos"})
	require.NoError(t, err)
}

func TestCreateCategory_Validation(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	_, err := svc.CreateCategory(context.Background(), CategoryInput{NamePT: "Bebidas", NameEN: "  "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name_en", verr.Field)
}

func TestUpdateCategory_SparsePatch(t *testing.T) {
	svc, clock := newCatalogFixture(t)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, CategoryInput{NamePT: "Higiene", NameEN: "Hygiene", NameES: "Higiene"})
	require.NoError(t, err)
	other, err := svc.CreateCategory(ctx, CategoryInput{NamePT: "Snacks", NameEN: "Snacks", NameES: "Snacks"})
	require.NoError(t, err)

	clock.Advance(time.Minute)
	updated, err := svc.UpdateCategory(ctx, created.ID, CategoryPatch{NameEN: strPtr("Toiletries")})
	require.NoError(t, err)
	assert.Equal(t, "Higiene", updated.NamePT)
	assert.Equal(t, "Toiletries", updated.NameEN)
	assert.Equal(t, "Higiene", updated.NameES)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	// Keeping its own names is not a conflict; taking another category's is.
	_, err = svc.UpdateCategory(ctx, created.ID, CategoryPatch{NamePT: strPtr("Higiene")})
	require.NoError(t, err)
	_, err = svc.UpdateCategory(ctx, other.ID, CategoryPatch{NameES: strPtr("Toiletries")})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	_, err = svc.UpdateCategory(ctx, "missing", CategoryPatch{})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestUpdateCategory_TrimsWithoutTouchingCaller(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, CategoryInput{NamePT: "Higiene", NameEN: "Hygiene", NameES: "Higiene"})
	require.NoError(t, err)

	name := "  Toiletries "
	patch := CategoryPatch{NameEN: &name}
	updated, err := svc.UpdateCategory(ctx, created.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, "Toiletries", updated.NameEN)
	assert.Equal(t, "  Toiletries ", name)
	assert.Same(t, &name, patch.NameEN)

	blank := "   "
	_, err = svc.UpdateCategory(ctx, created.ID, CategoryPatch{NamePT: &blank})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name_pt", verr.Field)
	assert.Equal(t, "   ", blank)
}

func TestDeleteCategory_InUse(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CategoryInput{NamePT: "Bebidas", NameEN: "Drinks", NameES: "Bebidas"})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := svc.CreateProduct(ctx, drinkInput())
		require.NoError(t, err)
	}

	err = svc.DeleteCategory(ctx, category.ID)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, ConflictCategoryInUse, conflict.Kind)
	assert.Equal(t, int64(3), conflict.Count)
	assert.Contains(t, conflict.Error(), "3 product(s)")

	products, err := svc.ListProducts(ctx, ProductQuery{})
	require.NoError(t, err)
	for _, p := range products {
		require.NoError(t, svc.DeleteProduct(ctx, p.ID))
	}

	require.NoError(t, svc.DeleteCategory(ctx, category.ID))
	err = svc.DeleteCategory(ctx, category.ID)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestDeleteCategory_MatchesOnNamePTOnly(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CategoryInput{NamePT: "Bebidas", NameEN: "Drinks", NameES: "Tragos"})
	require.NoError(t, err)
	in := drinkInput()
	in.Category = "Drinks"
	_, err = svc.CreateProduct(ctx, in)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(ctx, category.ID))
}

func TestCreateProduct_Defaults(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	p, err := svc.CreateProduct(context.Background(), drinkInput())
	require.NoError(t, err)
	assert.True(t, p.Active)
	assert.False(t, p.Featured)
	assert.Equal(t, "BRL", p.Currency)
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.UpdatedAt.Before(p.CreatedAt))
}

func TestCreateProduct_Validation(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	ctx := context.Background()

	in := drinkInput()
	in.Type = "gift"
	_, err := svc.CreateProduct(ctx, in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "type", verr.Field)
	assert.Equal(t, "must be one of [product service]", verr.Message)

	in = drinkInput()
	in.Type = ""
	_, err = svc.CreateProduct(ctx, in)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "type", verr.Field)
	assert.Equal(t, "is required", verr.Message)

	p, err := svc.CreateProduct(ctx, drinkInput())
	require.NoError(t, err)
	gift := models.ProductType("gift")
	_, err = svc.UpdateProduct(ctx, p.ID, ProductPatch{Type: &gift})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "type", verr.Field)
	service := models.ProductTypeService
	updated, err := svc.UpdateProduct(ctx, p.ID, ProductPatch{Type: &service})
	require.NoError(t, err)
	assert.Equal(t, models.ProductTypeService, updated.Type)

	in = drinkInput()
	in.Price = -1
	_, err = svc.CreateProduct(ctx, in)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "price", verr.Field)
}

func TestUpdateProduct_SparsePatchAndTimestamps(t *testing.T) {
	svc, clock := newCatalogFixture(t)
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, drinkInput())
	require.NoError(t, err)

	clock.Advance(time.Second)
	price := 6.5
	first, err := svc.UpdateProduct(ctx, p.ID, ProductPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 6.5, first.Price)
	assert.Equal(t, "Água", first.NamePT)
	assert.True(t, first.Active)
	assert.True(t, first.UpdatedAt.After(p.UpdatedAt))
	assert.True(t, first.CreatedAt.Equal(p.CreatedAt))

	// Clock does not move: updated_at must still increase.
	second, err := svc.UpdateProduct(ctx, p.ID, ProductPatch{Active: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, second.Active)
	assert.Equal(t, 6.5, second.Price)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))

	_, err = svc.UpdateProduct(ctx, "missing", ProductPatch{})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	err := svc.DeleteProduct(context.Background(), "missing")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Product", nf.Entity)
}

func TestListProducts_Filters(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	ctx := context.Background()

	water, err := svc.CreateProduct(ctx, drinkInput())
	require.NoError(t, err)

	juice := drinkInput()
	juice.NamePT = "Suco"
	juice.Active = boolPtr(false)
	_, err = svc.CreateProduct(ctx, juice)
	require.NoError(t, err)

	laundry := drinkInput()
	laundry.Type = models.ProductTypeService
	laundry.Category = "Serviços"
	laundry.Featured = boolPtr(true)
	_, err = svc.CreateProduct(ctx, laundry)
	require.NoError(t, err)

	active, err := svc.ListProducts(ctx, DefaultProductQuery())
	require.NoError(t, err)
	assert.Len(t, active, 2)
	for _, p := range active {
		assert.True(t, p.Active)
	}

	all, err := svc.ListProducts(ctx, ProductQuery{ActiveOnly: false})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	drinks, err := svc.ListProducts(ctx, ProductQuery{ActiveOnly: true, Category: "Bebidas", Type: "product"})
	require.NoError(t, err)
	require.Len(t, drinks, 1)
	assert.Equal(t, water.ID, drinks[0].ID)

	featured, err := svc.ListProducts(ctx, ProductQuery{ActiveOnly: true, Featured: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Serviços", featured[0].Category)

	notFeatured, err := svc.ListProducts(ctx, ProductQuery{Featured: boolPtr(false)})
	require.NoError(t, err)
	assert.Len(t, notFeatured, 2)
}

func TestDistinctCategories_ComesFromProducts(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, CategoryInput{NamePT: "Higiene", NameEN: "Hygiene", NameES: "Higiene"})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, drinkInput())
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, drinkInput())
	require.NoError(t, err)
	legacy := drinkInput()
	legacy.Category = "Antigos"
	_, err = svc.CreateProduct(ctx, legacy)
	require.NoError(t, err)

	values, err := svc.DistinctCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Antigos", "Bebidas"}, values)
}
