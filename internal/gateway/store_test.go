package gateway

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffcal/staffcal-api/internal/repository"
	appErrors "github.com/staffcal/staffcal-api/pkg/errors"
)

func newMockStoreGateway(t *testing.T) (*StoreGateway, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	db := sqlx.NewDb(mockDB, "sqlmock")
	g := NewStoreGateway(
		repository.NewAvailabilityRepository(db),
		repository.NewBusinessHoursRepository(db),
		repository.NewScheduleRepository(db),
		repository.NewPersonRepository(db),
		repository.NewRoleRepository(db),
	)
	return g, mock
}

// Deleting an unknown rule reports not-found on every backend, so callers see
// the same 404 whether rules live in Postgres or in memory.
func TestStoreGatewayDeleteUnknownAvailabilityRule(t *testing.T) {
	g, mock := newMockStoreGateway(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM availability_hours WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := g.DeleteAvailabilityHours(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreGatewayDeleteUnknownBusinessRule(t *testing.T) {
	g, mock := newMockStoreGateway(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM business_service_hours WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := g.DeleteBusinessServiceHours(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreGatewayDeleteAvailabilityRule(t *testing.T) {
	g, mock := newMockStoreGateway(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM availability_hours WHERE id = $1")).
		WithArgs("rule-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, g.DeleteAvailabilityHours(context.Background(), "rule-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
