// Package store is the entity store for books and reviews.
//
// Lookups return nil without an error when the record is missing.
// Updates of a missing identity fail with ErrNotFound. Deleting a book
// removes its reviews in the same transaction.
package store

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	Books   *BookStore
	Reviews *ReviewStore
}

func New(db *gorm.DB) *Store {
	return &Store{
		Books:   &BookStore{db: db},
		Reviews: &ReviewStore{db: db},
	}
}

// Filter narrows or decorates a query, in the style of a gorm scope.
type Filter func(*gorm.DB) *gorm.DB

// All matches every record.
func All() Filter {
	return func(db *gorm.DB) *gorm.DB { return db }
}

func And(filters ...Filter) Filter {
	return func(db *gorm.DB) *gorm.DB {
		for _, f := range filters {
			if f != nil {
				db = f(db)
			}
		}
		return db
	}
}

func Equals(column string, value interface{}) Filter {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	}
}

func GreaterOrEqual(column string, value interface{}) Filter {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Gte{Column: clause.Column{Name: column}, Value: value})
	}
}

// Between matches start <= column <= end.
func Between(column string, start, end interface{}) Filter {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where(clause.Gte{Column: clause.Column{Name: column}, Value: start}).
			Where(clause.Lte{Column: clause.Column{Name: column}, Value: end})
	}
}

// Contains is a case-insensitive substring match on one column.
func Contains(column, value string) Filter {
	return AnyContains(value, column)
}

// AnyContains matches when at least one of the columns contains value,
// ignoring case. LIKE wildcards in value match literally. Both sides are
// folded by the database LOWER so they agree on non-ASCII letters.
func AnyContains(value string, columns ...string) Filter {
	pattern := "%" + escapeLike(value) + "%"
	return func(db *gorm.DB) *gorm.DB {
		exprs := make([]clause.Expression, 0, len(columns))
		for _, column := range columns {
			exprs = append(exprs, clause.Expr{
				SQL:  `LOWER(?) LIKE LOWER(?) ESCAPE '\'`,
				Vars: []interface{}{clause.Column{Name: column}, pattern},
			})
		}
		return db.Where(clause.Or(exprs...))
	}
}

// Limit caps the number of records returned.
func Limit(n int) Filter {
	return func(db *gorm.DB) *gorm.DB { return db.Limit(n) }
}

// WithBook loads the owning book of each review.
func WithBook() Filter {
	return func(db *gorm.DB) *gorm.DB { return db.Preload("Book") }
}

type Order struct {
	Column string
	Desc   bool
}

func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Desc: true} }

// Newest orders by creation time, most recent first. The id breaks ties
// so repeated calls return the same sequence.
func Newest() []Order {
	return []Order{Desc("created_at"), Desc("id")}
}

func applyOrders(db *gorm.DB, orders []Order) *gorm.DB {
	for _, o := range orders {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	return db
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func findByID[T any](db *gorm.DB, id uuid.UUID) (*T, error) {
	var record T
	err := db.Take(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func findAll[T any](db *gorm.DB, filter Filter, orders []Order) ([]T, error) {
	records := make([]T, 0)
	q := db.Model(new(T))
	if filter != nil {
		q = filter(q)
	}
	if err := applyOrders(q, orders).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func exists[T any](db *gorm.DB, id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, nil
	}
	var n int64
	if err := db.Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func requireExists[T any](db *gorm.DB, id uuid.UUID) error {
	found, err := exists[T](db, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func count[T any](db *gorm.DB, filter Filter) (int64, error) {
	var n int64
	q := db.Model(new(T))
	if filter != nil {
		q = filter(q)
	}
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
