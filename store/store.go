// Package store is the document store boundary. Every collection is keyed by
// a string "id" field that is independent of the backend's own row identity.
package store

import (
	"context"
	"errors"
)

// MaxScan caps unbounded reads, matching the catalog and order listing limits.
const MaxScan = 1000

// NoLimit disables the MaxScan cap for a Find.
const NoLimit = -1

var ErrNotFound = errors.New("document not found")

type Op int

const (
	OpEq Op = iota
	OpGte
)

type Cond struct {
	Field string
	Op    Op
	Value any
}

// Filter is a conjunction of conditions. An empty filter matches every document.
type Filter []Cond

func Eq(field string, value any) Cond  { return Cond{Field: field, Op: OpEq, Value: value} }
func Gte(field string, value any) Cond { return Cond{Field: field, Op: OpGte, Value: value} }

func Where(conds ...Cond) Filter { return Filter(conds) }

// ByID is the filter used by every keyed read and write.
func ByID(id string) Filter { return Filter{Eq("id", id)} }

type FindOptions struct {
	SortBy string
	Desc   bool
	// Limit of 0 means MaxScan; NoLimit reads everything.
	Limit int
}

func (o FindOptions) limit() int {
	if o.Limit == 0 {
		return MaxScan
	}
	return o.Limit
}

// Store is implemented by GormStore and MongoStore. out arguments are
// pointers to a model or a slice of models.
type Store interface {
	Find(ctx context.Context, collection string, filter Filter, opts FindOptions, out any) error
	FindOne(ctx context.Context, collection string, filter Filter, out any) error
	Insert(ctx context.Context, collection string, doc any) error
	UpdateFields(ctx context.Context, collection string, filter Filter, fields map[string]any) (int64, error)
	Delete(ctx context.Context, collection string, filter Filter) (int64, error)
	Count(ctx context.Context, collection string, filter Filter) (int64, error)
	Distinct(ctx context.Context, collection, field string) ([]string, error)
	Close() error
}
