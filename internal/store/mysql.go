package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"gitlab.com/f1hub/f1hub-service/internal/config"
	"gitlab.com/f1hub/f1hub-service/pkg/model"
)

// driverColumns are the selectable columns of the drivers table, used to
// validate projection requests before they reach a query string.
var driverColumns = []string{"id", "name", "team", "points", "wins", "podiums", "created_at"}

// driverUpdateColumns are the columns an update may touch, in the order they
// are bound into the dynamic SET clause.
var driverUpdateColumns = []string{"name", "team", "points", "wins", "podiums"}

// ValidDriverField reports whether a projection field names a real column.
func ValidDriverField(name string) bool {
	for _, col := range driverColumns {
		if col == name {
			return true
		}
	}
	return false
}

// OpenMySQL opens the relational database holding the drivers table and
// verifies the connection with a ping.
func OpenMySQL(ctx context.Context, cfg config.MySQLConfig) (*sql.DB, error) {
	sqlDB, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return sqlDB, nil
}

// DriverStore implements the Drivers interface on top of the drivers table.
type DriverStore struct {
	db            *sqlx.DB
	insert        *sqlx.NamedStmt
	selectWhereId *sqlx.Stmt
	deleteWhereId *sqlx.Stmt
}

// NewDriverStore wraps the specified sql database and prepares all statements
// that are executed often. The database argument can be a real database for
// production use or a mock database within unit tests.
func NewDriverStore(sqlDB *sql.DB) (*DriverStore, error) {
	db := sqlx.NewDb(sqlDB, "mysql")
	s := &DriverStore{db: db}

	// Prepared statements offer a significant speed increase if executed many times.
	var err error
	s.insert, err = db.PrepareNamed(`
		INSERT INTO drivers (name, team, points, wins, podiums)
		VALUES (:name, :team, :points, :wins, :podiums)
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	s.selectWhereId, err = db.Preparex(`
		SELECT * FROM drivers WHERE id = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare select: %w", err)
	}
	s.deleteWhereId, err = db.Preparex(`
		DELETE FROM drivers WHERE id = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare delete: %w", err)
	}
	return s, nil
}

// Close releases the database handle and its prepared statements.
func (s *DriverStore) Close() error {
	return s.db.Close()
}

// Create inserts a new driver and returns the stored row including the
// assigned id and creation timestamp.
func (s *DriverStore) Create(ctx context.Context, d model.Driver) (model.Driver, error) {
	result, err := s.insert.ExecContext(ctx, d)
	if err != nil {
		return model.Driver{}, wrap("insert driver", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return model.Driver{}, wrap("insert driver", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID returns the driver with the given id or ErrNotFound.
func (s *DriverStore) GetByID(ctx context.Context, id int64) (model.Driver, error) {
	var drivers []model.Driver
	if err := s.selectWhereId.SelectContext(ctx, &drivers, id); err != nil {
		return model.Driver{}, wrap("select driver", err)
	}
	if len(drivers) == 0 {
		return model.Driver{}, ErrNotFound
	}
	return drivers[0], nil
}

// List returns the drivers matching the filter, ordered by id ascending. All
// filter predicates are combined with AND. Projection fields must have been
// validated with ValidDriverField.
func (s *DriverStore) List(ctx context.Context, f DriverFilter) ([]model.Driver, error) {
	cols := "*"
	if len(f.Fields) > 0 {
		selected := []string{"id"}
		for _, field := range f.Fields {
			if field != "id" {
				selected = append(selected, field)
			}
		}
		cols = strings.Join(selected, ", ")
	}

	var where []string
	var args []any
	if f.Team != "" {
		where = append(where, "team = ?")
		args = append(args, f.Team)
	}
	if f.MinPoints != nil {
		where = append(where, "points >= ?")
		args = append(args, *f.MinPoints)
	}
	if f.MaxPoints != nil {
		where = append(where, "points <= ?")
		args = append(args, *f.MaxPoints)
	}

	query := "SELECT " + cols + " FROM drivers"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id ASC"

	var drivers []model.Driver
	if err := s.db.SelectContext(ctx, &drivers, query, args...); err != nil {
		return nil, wrap("select drivers", err)
	}
	return drivers, nil
}

// Update merges the named fields into the existing row and returns the full
// driver after the update. Fields not present are left unchanged.
func (s *DriverStore) Update(ctx context.Context, id int64, fields map[string]any) (model.Driver, error) {
	var set []string
	var args []any
	for _, col := range driverUpdateColumns {
		if v, ok := fields[col]; ok {
			set = append(set, col+"=?")
			args = append(args, v)
		}
	}
	if len(set) == 0 {
		return s.GetByID(ctx, id)
	}
	args = append(args, id)
	query := "UPDATE drivers SET " + strings.Join(set, ", ") + " WHERE id=?"
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return model.Driver{}, wrap("update driver", err)
	}

	// The rows-affected count cannot distinguish a missing row from an update
	// that wrote identical values, so existence is checked by re-selecting.
	return s.GetByID(ctx, id)
}

// Delete removes the driver with the given id or returns ErrNotFound.
func (s *DriverStore) Delete(ctx context.Context, id int64) error {
	result, err := s.deleteWhereId.ExecContext(ctx, id)
	if err != nil {
		return wrap("delete driver", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return wrap("delete driver", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
