package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return openGorm(t, sqlDB), mock
}

func openGorm(t *testing.T, conn gorm.ConnPool) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

var testTime = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func categoryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "category_name", "created_at", "updated_at"})
}

func serviceRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "category_id", "service_name", "type", "created_at", "updated_at"})
}

func optionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "service_id", "duration", "price", "type", "created_at", "updated_at"})
}

func idRows(id int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id"}).AddRow(id)
}
