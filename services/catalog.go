package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"hostel-shop-api/models"
	"hostel-shop-api/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CatalogService owns products and categories.
//
// Category name uniqueness and the in-use check on delete are read-then-write
// without isolation: two concurrent creates with the same name, or a product
// created while its category is being deleted, can both pass the check.
type CatalogService struct {
	store store.Store
	now   func() time.Time
}

func NewCatalogService(st store.Store) *CatalogService {
	return &CatalogService{store: st, now: time.Now}
}

// ── Categories ───────────────────────────────────────────────────────────────

type CategoryInput struct {
	NamePT   string  `json:"name_pt" validate:"required"`
	NameEN   string  `json:"name_en" validate:"required"`
	NameES   string  `json:"name_es" validate:"required"`
	ImageURL *string `json:"image_url"`
}

// CategoryPatch is a sparse update: nil fields are left unchanged.
type CategoryPatch struct {
	NamePT   *string `json:"name_pt" validate:"omitempty,min=1"`
	NameEN   *string `json:"name_en" validate:"omitempty,min=1"`
	NameES   *string `json:"name_es" validate:"omitempty,min=1"`
	ImageURL *string `json:"image_url"`
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := s.store.Find(ctx, models.CategoriesCollection, nil,
		store.FindOptions{SortBy: "name_pt", Limit: store.NoLimit}, &categories)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := s.store.FindOne(ctx, models.CategoriesCollection, store.ByID(id), &category)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Entity: "Category", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// checkCategoryNames fails if any of names is used in any language slot of
// another category. excludeID skips the category being updated.
func (s *CatalogService) checkCategoryNames(ctx context.Context, names []string, excludeID string) error {
	if len(names) == 0 {
		return nil
	}
	existing, err := s.ListCategories(ctx)
	if err != nil {
		return err
	}
	taken := make(map[string]bool)
	for i := range existing {
		if existing[i].ID == excludeID {
			continue
		}
		for _, n := range existing[i].Names() {
			taken[n] = true
		}
	}
	for _, n := range names {
		if taken[n] {
			return &ConflictError{Kind: ConflictDuplicateName, Name: n}
		}
	}
	return nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	in.NamePT = strings.TrimSpace(in.NamePT)
	in.NameEN = strings.TrimSpace(in.NameEN)
	in.NameES = strings.TrimSpace(in.NameES)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := s.checkCategoryNames(ctx, []string{in.NamePT, in.NameEN, in.NameES}, ""); err != nil {
		return nil, err
	}

	now := stamp(s.now)
	category := models.Category{
		ID:        uuid.NewString(),
		NamePT:    in.NamePT,
		NameEN:    in.NameEN,
		NameES:    in.NameES,
		ImageURL:  in.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Insert(ctx, models.CategoriesCollection, &category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// trimmed returns a trimmed copy of *p, leaving the caller's string alone.
func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (*models.Category, error) {
	patch.NamePT = trimmed(patch.NamePT)
	patch.NameEN = trimmed(patch.NameEN)
	patch.NameES = trimmed(patch.NameES)
	if err := validateInput(patch); err != nil {
		return nil, err
	}
	current, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	var changed []string
	setName := func(column string, value *string, old string) {
		if value == nil {
			return
		}
		fields[column] = *value
		if *value != old {
			changed = append(changed, *value)
		}
	}
	setName("name_pt", patch.NamePT, current.NamePT)
	setName("name_en", patch.NameEN, current.NameEN)
	setName("name_es", patch.NameES, current.NameES)
	if patch.ImageURL != nil {
		fields["image_url"] = *patch.ImageURL
	}

	if err := s.checkCategoryNames(ctx, changed, id); err != nil {
		return nil, err
	}

	fields["updated_at"] = nextUpdate(s.now, current.UpdatedAt)
	if _, err := s.store.UpdateFields(ctx, models.CategoriesCollection, store.ByID(id), fields); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return s.GetCategory(ctx, id)
}

// DeleteCategory refuses while any product's category equals the category's name_pt.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return err
	}

	inUse, err := s.store.Count(ctx, models.ProductsCollection, store.Where(store.Eq("category", category.NamePT)))
	if err != nil {
		return fmt.Errorf("failed to count category products: %w", err)
	}
	if inUse > 0 {
		return &ConflictError{Kind: ConflictCategoryInUse, Name: category.NamePT, Count: inUse}
	}

	n, err := s.store.Delete(ctx, models.CategoriesCollection, store.ByID(id))
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Entity: "Category", ID: id}
	}
	logrus.WithFields(logrus.Fields{"category_id": id, "name_pt": category.NamePT}).Info("Category deleted")
	return nil
}

// ── Products ─────────────────────────────────────────────────────────────────

type ProductInput struct {
	Active   *bool              `json:"active"`
	Featured *bool              `json:"featured"`
	Type     models.ProductType `json:"type" validate:"required,product_type"`
	Category string             `json:"category" validate:"required"`
	Price    float64            `json:"price" validate:"gte=0"`
	Currency string             `json:"currency"`
	ImageURL *string            `json:"image_url"`
	NamePT   string             `json:"name_pt" validate:"required"`
	NameEN   string             `json:"name_en" validate:"required"`
	NameES   string             `json:"name_es" validate:"required"`
	DescPT   string             `json:"desc_pt"`
	DescEN   string             `json:"desc_en"`
	DescES   string             `json:"desc_es"`
}

// ProductPatch is a sparse update: nil fields are left unchanged.
type ProductPatch struct {
	Active   *bool               `json:"active"`
	Featured *bool               `json:"featured"`
	Type     *models.ProductType `json:"type" validate:"omitempty,product_type"`
	Category *string             `json:"category" validate:"omitempty,min=1"`
	Price    *float64            `json:"price" validate:"omitempty,gte=0"`
	Currency *string             `json:"currency" validate:"omitempty,min=1"`
	ImageURL *string             `json:"image_url"`
	NamePT   *string             `json:"name_pt" validate:"omitempty,min=1"`
	NameEN   *string             `json:"name_en" validate:"omitempty,min=1"`
	NameES   *string             `json:"name_es" validate:"omitempty,min=1"`
	DescPT   *string             `json:"desc_pt"`
	DescEN   *string             `json:"desc_en"`
	DescES   *string             `json:"desc_es"`
}

func (p *ProductPatch) fields() map[string]any {
	fields := map[string]any{}
	if p.Active != nil {
		fields["active"] = *p.Active
	}
	if p.Featured != nil {
		fields["featured"] = *p.Featured
	}
	if p.Type != nil {
		fields["type"] = string(*p.Type)
	}
	strs := []struct {
		column string
		value  *string
	}{
		{"category", p.Category},
		{"currency", p.Currency},
		{"image_url", p.ImageURL},
		{"name_pt", p.NamePT},
		{"name_en", p.NameEN},
		{"name_es", p.NameES},
		{"desc_pt", p.DescPT},
		{"desc_en", p.DescEN},
		{"desc_es", p.DescES},
	}
	for _, f := range strs {
		if f.value != nil {
			fields[f.column] = *f.value
		}
	}
	if p.Price != nil {
		fields["price"] = *p.Price
	}
	return fields
}

// ProductQuery filters ListProducts. Empty strings and a nil Featured are not applied.
type ProductQuery struct {
	ActiveOnly bool
	Category   string
	Type       string
	Featured   *bool
}

// DefaultProductQuery lists only active products.
func DefaultProductQuery() ProductQuery {
	return ProductQuery{ActiveOnly: true}
}

func (s *CatalogService) ListProducts(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	var filter store.Filter
	if q.ActiveOnly {
		filter = append(filter, store.Eq("active", true))
	}
	if q.Category != "" {
		filter = append(filter, store.Eq("category", q.Category))
	}
	if q.Type != "" {
		filter = append(filter, store.Eq("type", q.Type))
	}
	if q.Featured != nil {
		filter = append(filter, store.Eq("featured", *q.Featured))
	}

	products := []models.Product{}
	if err := s.store.Find(ctx, models.ProductsCollection, filter, store.FindOptions{}, &products); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := s.store.FindOne(ctx, models.ProductsCollection, store.ByID(id), &product)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Entity: "Product", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	now := stamp(s.now)
	product := models.Product{
		ID:        uuid.NewString(),
		Active:    true,
		Type:      in.Type,
		Category:  in.Category,
		Price:     in.Price,
		Currency:  in.Currency,
		ImageURL:  in.ImageURL,
		NamePT:    in.NamePT,
		NameEN:    in.NameEN,
		NameES:    in.NameES,
		DescPT:    in.DescPT,
		DescEN:    in.DescEN,
		DescES:    in.DescES,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if in.Featured != nil {
		product.Featured = *in.Featured
	}
	if product.Currency == "" {
		product.Currency = models.DefaultCurrency
	}

	if err := s.store.Insert(ctx, models.ProductsCollection, &product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*models.Product, error) {
	if err := validateInput(patch); err != nil {
		return nil, err
	}
	current, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := patch.fields()
	fields["updated_at"] = nextUpdate(s.now, current.UpdatedAt)
	if _, err := s.store.UpdateFields(ctx, models.ProductsCollection, store.ByID(id), fields); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return s.GetProduct(ctx, id)
}

// DeleteProduct is unconditional; orders keep their own item snapshots.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	n, err := s.store.Delete(ctx, models.ProductsCollection, store.ByID(id))
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Entity: "Product", ID: id}
	}
	return nil
}

// DistinctCategories returns the category strings present on products. This
// is a separate source from the categories collection and may disagree with it.
func (s *CatalogService) DistinctCategories(ctx context.Context) ([]string, error) {
	values, err := s.store.Distinct(ctx, models.ProductsCollection, "category")
	if err != nil {
		return nil, fmt.Errorf("failed to list product categories: %w", err)
	}
	sort.Strings(values)
	return values, nil
}
