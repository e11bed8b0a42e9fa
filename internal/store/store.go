// Package store contains the adapters that translate generic CRUD calls into
// backend-specific queries. Drivers live in a MySQL table, constructors and
// contact messages in MongoDB collections. A memory backend implements the
// same interfaces for tests and for running without databases.
package store

import (
	"context"

	"gitlab.com/f1hub/f1hub-service/pkg/model"
)

// DriverFilter is a conjunctive predicate for listing drivers. The zero value
// matches everything. Fields requests a projection of the listed columns; the
// id column is always included.
type DriverFilter struct {
	Team      string
	MinPoints *int64
	MaxPoints *int64
	Fields    []string
}

// ConstructorFilter is a conjunctive predicate for listing constructors.
type ConstructorFilter struct {
	Team      string
	Season    *int64
	MinPoints *int64
	MaxPoints *int64
	Fields    []string
}

// Drivers is the store adapter for the drivers table. List results are
// ordered by id ascending. Update merges only the supplied fields into the
// existing row.
type Drivers interface {
	Create(ctx context.Context, d model.Driver) (model.Driver, error)
	GetByID(ctx context.Context, id int64) (model.Driver, error)
	List(ctx context.Context, f DriverFilter) ([]model.Driver, error)
	Update(ctx context.Context, id int64, fields map[string]any) (model.Driver, error)
	Delete(ctx context.Context, id int64) error
}

// Constructors is the store adapter for the constructor standings collection.
// Ids are opaque hex strings assigned by the store. List results are ordered
// by position ascending.
type Constructors interface {
	Create(ctx context.Context, con model.Constructor) (model.Constructor, error)
	GetByID(ctx context.Context, id string) (model.Constructor, error)
	List(ctx context.Context, f ConstructorFilter) ([]model.Constructor, error)
	Update(ctx context.Context, id string, fields map[string]any) (model.Constructor, error)
	Delete(ctx context.Context, id string) error
}

// Contacts is the store adapter for submitted contact messages.
type Contacts interface {
	Create(ctx context.Context, m model.Contact) (model.Contact, error)
	GetByID(ctx context.Context, id string) (model.Contact, error)
	List(ctx context.Context) ([]model.Contact, error)
	Delete(ctx context.Context, id string) error
}
