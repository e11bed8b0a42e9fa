package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"gitlab.com/f1hub/f1hub-service/pkg/model"
)

// driverRowColumns is the full column set of the drivers table.
var driverRowColumns = []string{"id", "name", "team", "points", "wins", "podiums", "created_at"}

// createMockStore builds a driver store on top of a mock database and a mock
// object for defining our expected SQL calls.
func createMockStore(t *testing.T) (*DriverStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	mock.ExpectPrepare("INSERT INTO drivers")
	mock.ExpectPrepare("SELECT \\* FROM drivers WHERE id = ?")
	mock.ExpectPrepare("DELETE FROM drivers WHERE id = ?")
	store, err := NewDriverStore(db)
	if err != nil {
		t.Fatalf("an error '%s' was not expected when preparing statements", err)
	}
	return store, mock
}

// TestDriverStoreCreate inserts a driver and expects the full stored row back,
// including the assigned id and creation timestamp.
func TestDriverStoreCreate(t *testing.T) {
	store, mock := createMockStore(t)
	defer store.Close()

	created := time.Date(2024, time.November, 3, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO drivers").
		WithArgs("Max Verstappen", "Red Bull", int64(395), int64(14), int64(19)).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT \\* FROM drivers WHERE id = ?").
		WithArgs(int64(7)).
		WillReturnRows(mock.NewRows(driverRowColumns).
			AddRow(7, "Max Verstappen", "Red Bull", 395, 14, 19, created))

	name, team := "Max Verstappen", "Red Bull"
	points, wins, podiums := int64(395), int64(14), int64(19)
	driver, err := store.Create(context.Background(), modelDriver(name, team, &points, &wins, &podiums))
	assert.NoError(t, err)
	assert.Equal(t, int64(7), driver.Id)
	assert.Equal(t, "Max Verstappen", *driver.Name)
	assert.Equal(t, created, *driver.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestDriverStoreGetMissing expects ErrNotFound for an id without a row.
func TestDriverStoreGetMissing(t *testing.T) {
	store, mock := createMockStore(t)
	defer store.Close()

	mock.ExpectQuery("SELECT \\* FROM drivers WHERE id = ?").
		WithArgs(int64(9999)).
		WillReturnRows(mock.NewRows(driverRowColumns))

	_, err := store.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestDriverStoreListConjunction combines an equality filter with a range
// bound and expects a single AND-joined WHERE clause.
func TestDriverStoreListConjunction(t *testing.T) {
	store, mock := createMockStore(t)
	defer store.Close()

	mock.ExpectQuery("SELECT \\* FROM drivers WHERE team = \\? AND points >= \\? ORDER BY id ASC").
		WithArgs("Red Bull", int64(300)).
		WillReturnRows(mock.NewRows(driverRowColumns).
			AddRow(1, "Max Verstappen", "Red Bull", 395, 14, 19, time.Now()))

	minPoints := int64(300)
	drivers, err := store.List(context.Background(), DriverFilter{Team: "Red Bull", MinPoints: &minPoints})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(drivers))
	assert.Equal(t, "Max Verstappen", *drivers[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestDriverStoreListProjection requests a field subset and expects only
// those columns to be selected, with the id always included.
func TestDriverStoreListProjection(t *testing.T) {
	store, mock := createMockStore(t)
	defer store.Close()

	mock.ExpectQuery("SELECT id, name, points FROM drivers ORDER BY id ASC").
		WillReturnRows(mock.NewRows([]string{"id", "name", "points"}).
			AddRow(1, "Max Verstappen", 395).
			AddRow(2, "Sergio Perez", 229))

	drivers, err := store.List(context.Background(), DriverFilter{Fields: []string{"name", "points"}})
	assert.NoError(t, err)
	assert.Equal(t, 2, len(drivers))
	assert.Equal(t, int64(229), *drivers[1].Points)
	assert.Nil(t, drivers[1].Team)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestDriverStoreUpdatePartial updates a single field and expects a dynamic
// SET clause touching only that column, followed by a re-select.
func TestDriverStoreUpdatePartial(t *testing.T) {
	store, mock := createMockStore(t)
	defer store.Close()

	mock.ExpectExec("UPDATE drivers SET points=\\? WHERE id=\\?").
		WithArgs(int64(419), int64(17)).
		WillReturnResult(sqlmock.NewResult(-1, 1))
	mock.ExpectQuery("SELECT \\* FROM drivers WHERE id = ?").
		WithArgs(int64(17)).
		WillReturnRows(mock.NewRows(driverRowColumns).
			AddRow(17, "Max Verstappen", "Red Bull", 419, 14, 19, time.Now()))

	driver, err := store.Update(context.Background(), 17, map[string]any{"points": int64(419)})
	assert.NoError(t, err)
	assert.Equal(t, int64(419), *driver.Points)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestDriverStoreUpdateMissing updates an id without a row and expects
// ErrNotFound from the existence re-check.
func TestDriverStoreUpdateMissing(t *testing.T) {
	store, mock := createMockStore(t)
	defer store.Close()

	mock.ExpectExec("UPDATE drivers SET points=\\? WHERE id=\\?").
		WithArgs(int64(419), int64(9999)).
		WillReturnResult(sqlmock.NewResult(-1, 0))
	mock.ExpectQuery("SELECT \\* FROM drivers WHERE id = ?").
		WithArgs(int64(9999)).
		WillReturnRows(mock.NewRows(driverRowColumns))

	_, err := store.Update(context.Background(), 9999, map[string]any{"points": int64(419)})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestDriverStoreDeleteMissing deletes an id without a row and expects
// ErrNotFound instead of a silent success.
func TestDriverStoreDeleteMissing(t *testing.T) {
	store, mock := createMockStore(t)
	defer store.Close()

	mock.ExpectExec("DELETE FROM drivers").
		WithArgs(int64(9999)).
		WillReturnResult(sqlmock.NewResult(-1, 0))

	err := store.Delete(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestDriverStoreUnavailable expects connectivity failures to be wrapped as
// UnavailableError, distinct from missing records.
func TestDriverStoreUnavailable(t *testing.T) {
	store, mock := createMockStore(t)
	defer store.Close()

	mock.ExpectQuery("SELECT \\* FROM drivers ORDER BY id ASC").
		WillReturnError(assert.AnError)

	_, err := store.List(context.Background(), DriverFilter{})
	var unavailable *UnavailableError
	assert.ErrorAs(t, err, &unavailable)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// modelDriver is a small helper keeping the test bodies short.
func modelDriver(name, team string, points, wins, podiums *int64) model.Driver {
	return model.Driver{
		Name:    &name,
		Team:    &team,
		Points:  points,
		Wins:    wins,
		Podiums: podiums,
	}
}
