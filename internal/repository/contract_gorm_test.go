package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/digitalagency-id/agency_be/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return gdb, mock
}

func TestGormContractListFilters(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewGormContractRepository(gdb)

	clientID := uuid.New()
	contractID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "contracts"`).
		WithArgs("active", clientID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows([]string{"id", "contract_number", "client_id", "status", "start_date", "end_date"}).
		AddRow(contractID, "CT-8K2PQX4M", clientID, "active", time.Now(), time.Now().AddDate(1, 0, 0))
	mock.ExpectQuery(`SELECT \* FROM "contracts" WHERE status = \$1 AND client_id = \$2`).
		WithArgs("active", clientID, 20).
		WillReturnRows(rows)

	// preload
	mock.ExpectQuery(`SELECT \* FROM "clients"`).
		WithArgs(clientID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "business_name"}).AddRow(clientID, "Acme"))

	list, total, err := repo.List(context.Background(), ContractQuery{
		Status:   models.ContractActive,
		ClientID: &clientID,
		Page:     1,
		PerPage:  20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "CT-8K2PQX4M", list[0].ContractNumber)
	require.NotNil(t, list[0].Client)
	assert.Equal(t, "Acme", list[0].Client.BusinessName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormContractGetNotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewGormContractRepository(gdb)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "contracts"`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}
