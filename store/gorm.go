package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"hostel-shop-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// collectionModels maps each collection to the model gorm migrates and deletes through.
var collectionModels = map[string]any{
	models.UsersCollection:           &models.User{},
	models.ProductsCollection:        &models.Product{},
	models.CategoriesCollection:      &models.Category{},
	models.OrdersCollection:          &models.Order{},
	models.AnalyticsEventsCollection: &models.AnalyticsEvent{},
	models.SettingsCollection:        &models.Settings{},
}

type GormStore struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) a SQLite database and migrates every collection.
// Pass ":memory:" for a throwaway database.
func OpenSQLite(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite serializes writers anyway; a single connection also keeps
	// ":memory:" databases from splitting per connection.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return NewGormStore(db)
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	protos := make([]any, 0, len(collectionModels))
	for _, m := range collectionModels {
		protos = append(protos, m)
	}
	if err := db.AutoMigrate(protos...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) query(ctx context.Context, collection string, filter Filter) *gorm.DB {
	q := s.db.WithContext(ctx).Table(collection)
	if len(filter) == 0 {
		return q
	}
	exprs := make([]clause.Expression, 0, len(filter))
	for _, c := range filter {
		col := clause.Column{Name: c.Field}
		switch c.Op {
		case OpGte:
			exprs = append(exprs, clause.Gte{Column: col, Value: c.Value})
		default:
			exprs = append(exprs, clause.Eq{Column: col, Value: c.Value})
		}
	}
	return q.Clauses(clause.Where{Exprs: exprs})
}

func (s *GormStore) Find(ctx context.Context, collection string, filter Filter, opts FindOptions, out any) error {
	q := s.query(ctx, collection, filter)
	if opts.SortBy != "" {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: opts.SortBy}, Desc: opts.Desc})
	}
	if limit := opts.limit(); limit > 0 {
		q = q.Limit(limit)
	}
	return q.Find(out).Error
}

func (s *GormStore) FindOne(ctx context.Context, collection string, filter Filter, out any) error {
	err := s.query(ctx, collection, filter).Take(out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStore) Insert(ctx context.Context, collection string, doc any) error {
	return s.db.WithContext(ctx).Table(collection).Create(doc).Error
}

func (s *GormStore) UpdateFields(ctx context.Context, collection string, filter Filter, fields map[string]any) (int64, error) {
	res := s.query(ctx, collection, filter).Updates(fields)
	return res.RowsAffected, res.Error
}

func (s *GormStore) Delete(ctx context.Context, collection string, filter Filter) (int64, error) {
	proto, ok := collectionModels[collection]
	if !ok {
		return 0, fmt.Errorf("unknown collection %q", collection)
	}
	doc := reflect.New(reflect.TypeOf(proto).Elem()).Interface()
	res := s.query(ctx, collection, filter).Delete(doc)
	return res.RowsAffected, res.Error
}

func (s *GormStore) Count(ctx context.Context, collection string, filter Filter) (int64, error) {
	var n int64
	err := s.query(ctx, collection, filter).Count(&n).Error
	return n, err
}

func (s *GormStore) Distinct(ctx context.Context, collection, field string) ([]string, error) {
	var values []string
	err := s.query(ctx, collection, nil).Distinct(field).Pluck(field, &values).Error
	return values, err
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
