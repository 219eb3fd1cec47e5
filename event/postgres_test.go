package event_test

import (
	"context"
	"regexp"
	"testing"

	"interview-scheduler/apperr"
	"interview-scheduler/database"
	"interview-scheduler/event"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	testifymock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRoommateChecker is a mock implementation of RoommateChecker interface
type MockRoommateChecker struct {
	testifymock.Mock
}

func (m *MockRoommateChecker) Exists(ctx context.Context, q database.Querier, id int64) (bool, error) {
	args := m.Called(ctx, q, id)
	return args.Bool(0), args.Error(1)
}

const (
	selectQuery   = `SELECT e.id, e.title, e.start, e."end", e.location, e.notes, e.roommate_id, r.name, r.color FROM events e JOIN roommates r ON r.id = e.roommate_id`
	conflictQuery = selectQuery + ` WHERE e.start < $1 AND e."end" > $2 ORDER BY e.start, e.id`
	insertQuery   = `INSERT INTO events (roommate_id, title, start, "end", location, notes) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	getQuery      = selectQuery + ` WHERE e.id = $1`
)

var eventColumns = []string{"id", "title", "start", "end", "location", "notes", "roommate_id", "name", "color"}

func setupPostgres(t *testing.T) (*event.Accessor, sqlmock.Sqlmock, *MockRoommateChecker) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	checker := new(MockRoommateChecker)
	return event.NewAccessor(database.New(db, database.Postgres{}), checker), dbMock, checker
}

func TestEventPostgres(t *testing.T) {
	t.Parallel()

	t.Run("create event", func(t *testing.T) {
		t.Parallel()
		a, dbMock, checker := setupPostgres(t)
		checker.On("Exists", testifymock.Anything, testifymock.Anything, int64(1)).Return(true, nil)

		dbMock.ExpectBegin()
		dbMock.ExpectQuery(regexp.QuoteMeta(conflictQuery)).
			WithArgs("2024-01-01T11:00:00", "2024-01-01T10:00:00").
			WillReturnRows(sqlmock.NewRows(eventColumns))
		dbMock.ExpectQuery(regexp.QuoteMeta(insertQuery)).
			WithArgs(int64(1), "Interview", "2024-01-01T10:00:00", "2024-01-01T11:00:00", "", "").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
		dbMock.ExpectQuery(regexp.QuoteMeta(getQuery)).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(eventColumns).
				AddRow(int64(7), "Interview", "2024-01-01T10:00:00", "2024-01-01T11:00:00", "", "", int64(1), "Vatsal", "#3778C2"))
		dbMock.ExpectCommit()

		res, err := a.CreateEvent(t.Context(), event.Draft{RoommateID: 1, Start: "2024-01-01T10:00", End: "2024-01-01T11:00"})
		require.NoError(t, err)
		assert.Equal(t, int64(7), res.Event.ID)
		assert.Equal(t, "Vatsal", res.Event.Roommate.Name)
		assert.Empty(t, res.Conflicts)

		require.NoError(t, dbMock.ExpectationsWereMet())
		checker.AssertExpectations(t)
	})

	t.Run("create event - rejected conflict rolls back", func(t *testing.T) {
		t.Parallel()
		a, dbMock, checker := setupPostgres(t)
		checker.On("Exists", testifymock.Anything, testifymock.Anything, int64(2)).Return(true, nil)

		dbMock.ExpectBegin()
		dbMock.ExpectQuery(regexp.QuoteMeta(conflictQuery)).
			WithArgs("2024-01-01T11:30:00", "2024-01-01T10:30:00").
			WillReturnRows(sqlmock.NewRows(eventColumns).
				AddRow(int64(7), "Interview", "2024-01-01T10:00:00", "2024-01-01T11:00:00", "", "", int64(1), "Vatsal", "#3778C2"))
		dbMock.ExpectRollback()

		_, err := a.CreateEvent(t.Context(), event.Draft{
			RoommateID:       2,
			Start:            "2024-01-01T10:30",
			End:              "2024-01-01T11:30",
			RejectOnConflict: true,
		})
		var conflictErr *event.ConflictError
		require.ErrorAs(t, err, &conflictErr)
		require.Len(t, conflictErr.Conflicts, 1)
		assert.Equal(t, int64(7), conflictErr.Conflicts[0].ID)

		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("create event - unknown roommate", func(t *testing.T) {
		t.Parallel()
		a, dbMock, checker := setupPostgres(t)
		checker.On("Exists", testifymock.Anything, testifymock.Anything, int64(42)).Return(false, nil)

		dbMock.ExpectBegin()
		dbMock.ExpectRollback()

		_, err := a.CreateEvent(t.Context(), event.Draft{RoommateID: 42, Start: "2024-01-01T10:00", End: "2024-01-01T11:00"})
		assert.ErrorIs(t, err, apperr.ErrInvalidReference)

		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	// Two requests that both check before either inserts both succeed; no
	// lock or serializable isolation is requested.
	t.Run("check then act is not serialized", func(t *testing.T) {
		t.Parallel()
		a, dbMock, checker := setupPostgres(t)
		checker.On("Exists", testifymock.Anything, testifymock.Anything, testifymock.Anything).Return(true, nil)

		for _, id := range []int64{8, 9} {
			dbMock.ExpectBegin()
			dbMock.ExpectQuery(regexp.QuoteMeta(conflictQuery)).
				WithArgs("2024-01-01T11:00:00", "2024-01-01T10:00:00").
				WillReturnRows(sqlmock.NewRows(eventColumns))
			dbMock.ExpectQuery(regexp.QuoteMeta(insertQuery)).
				WithArgs(sqlmock.AnyArg(), "Interview", "2024-01-01T10:00:00", "2024-01-01T11:00:00", "", "").
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))
			dbMock.ExpectQuery(regexp.QuoteMeta(getQuery)).
				WithArgs(id).
				WillReturnRows(sqlmock.NewRows(eventColumns).
					AddRow(id, "Interview", "2024-01-01T10:00:00", "2024-01-01T11:00:00", "", "", int64(1), "Vatsal", "#3778C2"))
			dbMock.ExpectCommit()
		}

		for range 2 {
			_, err := a.CreateEvent(t.Context(), event.Draft{
				RoommateID:       1,
				Start:            "2024-01-01T10:00",
				End:              "2024-01-01T11:00",
				RejectOnConflict: true,
			})
			require.NoError(t, err)
		}

		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("update event", func(t *testing.T) {
		t.Parallel()
		a, dbMock, _ := setupPostgres(t)

		existing := sqlmock.NewRows(eventColumns).
			AddRow(int64(7), "Interview", "2024-01-01T10:00:00", "2024-01-01T11:00:00", "", "", int64(1), "Vatsal", "#3778C2")
		updated := sqlmock.NewRows(eventColumns).
			AddRow(int64(7), "Interview", "2024-01-01T10:00:00", "2024-01-01T12:00:00", "Library", "", int64(1), "Vatsal", "#3778C2")

		dbMock.ExpectBegin()
		dbMock.ExpectQuery(regexp.QuoteMeta(getQuery)).WithArgs(int64(7)).WillReturnRows(existing)
		dbMock.ExpectExec(regexp.QuoteMeta(`UPDATE events SET "end" = $1, location = $2 WHERE id = $3`)).
			WithArgs("2024-01-01T12:00:00", "Library", int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		dbMock.ExpectQuery(regexp.QuoteMeta(selectQuery+` WHERE e.start < $1 AND e."end" > $2 AND e.id != $3 ORDER BY e.start, e.id`)).
			WithArgs("2024-01-01T12:00:00", "2024-01-01T10:00:00", int64(7)).
			WillReturnRows(sqlmock.NewRows(eventColumns))
		dbMock.ExpectQuery(regexp.QuoteMeta(getQuery)).WithArgs(int64(7)).WillReturnRows(updated)
		dbMock.ExpectCommit()

		res, err := a.UpdateEvent(t.Context(), 7, event.Patch{
			End:      mo.Some("2024-01-01T12:00"),
			Location: mo.Some("Library"),
		})
		require.NoError(t, err)
		assert.Equal(t, "2024-01-01T12:00:00", res.Event.End)
		assert.Equal(t, "Library", res.Event.Location)

		require.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("delete event - zero rows", func(t *testing.T) {
		t.Parallel()
		a, dbMock, _ := setupPostgres(t)

		dbMock.ExpectBegin()
		dbMock.ExpectExec(regexp.QuoteMeta(`DELETE FROM events WHERE id = $1`)).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		dbMock.ExpectRollback()

		err := a.DeleteEvent(t.Context(), 3)
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		require.NoError(t, dbMock.ExpectationsWereMet())
	})
}
