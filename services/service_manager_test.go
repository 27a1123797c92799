package services

import (
	"context"
	"errors"
	"testing"

	"category-services-backend/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drafts() []PriceOptionDraft {
	return []PriceOptionDraft{
		{Duration: 60, Price: decimal.RequireFromString("50"), Type: models.PriceOptionHourly},
		{Duration: 4, Price: decimal.RequireFromString("180.5"), Type: models.PriceOptionWeekly},
	}
}

func expectReadBack(mock sqlmock.Sqlmock, serviceID, categoryID int) {
	mock.ExpectQuery(`SELECT \* FROM "services" WHERE "services"\."id" = \$1`).
		WillReturnRows(serviceRows().AddRow(serviceID, categoryID, "Swedish Massage", "Normal", testTime, testTime))
	mock.ExpectQuery(`SELECT \* FROM "service_price_options" WHERE "service_price_options"\."service_id" = \$1`).
		WillReturnRows(optionRows().
			AddRow(100, serviceID, 60, "50.00", "Hourly", testTime, testTime).
			AddRow(101, serviceID, 4, "180.50", "Weekly", testTime, testTime))
}

func TestServiceManagerCreate(t *testing.T) {
	db, mock := newMockDB(t)
	manager := NewServiceManager(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "categories" .*FOR SHARE`).
		WillReturnRows(categoryRows().AddRow(1, "Massage", testTime, testTime))
	mock.ExpectQuery(`INSERT INTO "services"`).WillReturnRows(idRows(10))
	mock.ExpectQuery(`INSERT INTO "service_price_options"`).WillReturnRows(idRows(100))
	mock.ExpectQuery(`INSERT INTO "service_price_options"`).WillReturnRows(idRows(101))
	mock.ExpectCommit()
	expectReadBack(mock, 10, 1)

	service, err := manager.Create(context.Background(), CreateServiceParams{
		CategoryID:   1,
		Name:         "  Swedish Massage ",
		PriceOptions: drafts(),
	})
	require.NoError(t, err)

	assert.Equal(t, uint(10), service.ID)
	assert.Equal(t, models.ServiceTypeNormal, service.Type)
	require.Len(t, service.PriceOptions, 2)
	assert.Equal(t, "50.00", service.PriceOptions[0].Price.StringFixed(2))
	assert.Equal(t, models.PriceOptionWeekly, service.PriceOptions[1].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceManagerCreateRollsBackWhenAnOptionFails(t *testing.T) {
	db, mock := newMockDB(t)
	manager := NewServiceManager(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "categories" .*FOR SHARE`).
		WillReturnRows(categoryRows().AddRow(1, "Massage", testTime, testTime))
	mock.ExpectQuery(`INSERT INTO "services"`).WillReturnRows(idRows(10))
	mock.ExpectQuery(`INSERT INTO "service_price_options"`).WillReturnRows(idRows(100))
	mock.ExpectQuery(`INSERT INTO "service_price_options"`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	service, err := manager.Create(context.Background(), CreateServiceParams{
		CategoryID:   1,
		Name:         "Swedish Massage",
		PriceOptions: drafts(),
	})
	require.Error(t, err)
	assert.Nil(t, service)
	assert.Contains(t, err.Error(), "insert price option 1 of service 10")

	var validation *ValidationError
	assert.False(t, errors.As(err, &validation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceManagerCreateUnknownCategory(t *testing.T) {
	db, mock := newMockDB(t)
	manager := NewServiceManager(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "categories" .*FOR SHARE`).WillReturnRows(categoryRows())
	mock.ExpectRollback()

	_, err := manager.Create(context.Background(), CreateServiceParams{
		CategoryID:   99,
		Name:         "Swedish Massage",
		PriceOptions: drafts(),
	})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceManagerCreateValidation(t *testing.T) {
	db, mock := newMockDB(t)
	manager := NewServiceManager(db)

	_, err := manager.Create(context.Background(), CreateServiceParams{
		CategoryID: 1,
		Name:       "S",
		Type:       "Premium",
		PriceOptions: []PriceOptionDraft{
			{Duration: 0, Price: decimal.RequireFromString("-1"), Type: "Daily"},
		},
	})

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)

	fields := map[string]string{}
	for _, f := range validation.Fields {
		fields[f.Field] = f.Message
	}
	assert.Equal(t, "Service name must be between 2 and 255 characters", fields["serviceName"])
	assert.Equal(t, "Type must be either Normal or VIP", fields["type"])
	assert.Contains(t, fields, "priceOptions[0].duration")
	assert.Contains(t, fields, "priceOptions[0].price")
	assert.Contains(t, fields, "priceOptions[0].type")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceManagerCreateRejectsPriceAboveColumnRange(t *testing.T) {
	db, mock := newMockDB(t)
	manager := NewServiceManager(db)

	_, err := manager.Create(context.Background(), CreateServiceParams{
		CategoryID: 1,
		Name:       "Swedish Massage",
		PriceOptions: []PriceOptionDraft{
			{Duration: 1, Price: decimal.RequireFromString("99999999.99"), Type: models.PriceOptionMonthly},
			{Duration: 1, Price: decimal.RequireFromString("99999999.996"), Type: models.PriceOptionMonthly},
			{Duration: 1, Price: decimal.RequireFromString("123456789012.5"), Type: models.PriceOptionMonthly},
		},
	})

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	require.Len(t, validation.Fields, 2)
	assert.Equal(t, "priceOptions[1].price", validation.Fields[0].Field)
	assert.Equal(t, "priceOptions[2].price", validation.Fields[1].Field)
	assert.Equal(t, "Price must not exceed 99999999.99", validation.Fields[1].Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceManagerCreateRequiresPriceOptions(t *testing.T) {
	db, mock := newMockDB(t)
	manager := NewServiceManager(db)

	_, err := manager.Create(context.Background(), CreateServiceParams{CategoryID: 1, Name: "Swedish Massage"})

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	require.Len(t, validation.Fields, 1)
	assert.Equal(t, "priceOptions", validation.Fields[0].Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceManagerListByCategory(t *testing.T) {
	db, mock := newMockDB(t)
	manager := NewServiceManager(db)

	mock.ExpectQuery(`SELECT \* FROM "categories" WHERE "categories"\."id" = \$1`).
		WillReturnRows(categoryRows().AddRow(1, "Massage", testTime, testTime))
	mock.ExpectQuery(`SELECT \* FROM "services" WHERE category_id = \$1 ORDER BY created_at DESC,id DESC`).
		WillReturnRows(serviceRows().
			AddRow(11, 1, "Deep Tissue", "VIP", testTime, testTime).
			AddRow(10, 1, "Swedish Massage", "Normal", testTime, testTime))
	mock.ExpectQuery(`SELECT \* FROM "service_price_options" WHERE "service_price_options"\."service_id" IN \(\$1,\$2\)`).
		WillReturnRows(optionRows().
			AddRow(100, 10, 60, "50.00", "Hourly", testTime, testTime).
			AddRow(102, 11, 1, "300.00", "Monthly", testTime, testTime))

	category, list, err := manager.ListByCategory(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Massage", category.CategoryName)
	require.Len(t, list, 2)
	assert.Equal(t, uint(11), list[0].ID)
	require.Len(t, list[0].PriceOptions, 1)
	assert.Equal(t, models.PriceOptionMonthly, list[0].PriceOptions[0].Type)
	require.Len(t, list[1].PriceOptions, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceManagerListByUnknownCategory(t *testing.T) {
	db, mock := newMockDB(t)
	manager := NewServiceManager(db)

	mock.ExpectQuery(`SELECT \* FROM "categories"`).WillReturnRows(categoryRows())

	_, _, err := manager.ListByCategory(context.Background(), 42)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceManagerUpdateScalarsKeepsOptions(t *testing.T) {
	db, mock := newMockDB(t)
	manager := NewServiceManager(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "services" WHERE .*id = \$1 AND category_id = \$2.*FOR UPDATE`).
		WillReturnRows(serviceRows().AddRow(10, 1, "Swedish Massage", "Normal", testTime, testTime))
	mock.ExpectExec(`UPDATE "services" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectReadBack(mock, 10, 1)

	service, err := manager.Update(context.Background(), 1, 10, ServicePatch{
		Type: models.Some(models.ServiceTypeVIP),
	})
	require.NoError(t, err)
	assert.Len(t, service.PriceOptions, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceManagerUpdateReplacesOptions(t *testing.T) {
	db, mock := newMockDB(t)
	manager := NewServiceManager(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "services" WHERE .*FOR UPDATE`).
		WillReturnRows(serviceRows().AddRow(10, 1, "Swedish Massage", "Normal", testTime, testTime))
	mock.ExpectExec(`UPDATE "services" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "service_price_options" WHERE service_id = \$1`).
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectQuery(`INSERT INTO "service_price_options"`).WillReturnRows(idRows(100))
	mock.ExpectQuery(`INSERT INTO "service_price_options"`).WillReturnRows(idRows(101))
	mock.ExpectCommit()
	expectReadBack(mock, 10, 1)

	_, err := manager.Update(context.Background(), 1, 10, ServicePatch{
		Name:         models.Some(" Swedish Massage "),
		PriceOptions: models.Some(drafts()),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceManagerUpdateRollsBackWhenReplacementFails(t *testing.T) {
	db, mock := newMockDB(t)
	manager := NewServiceManager(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "services" WHERE .*FOR UPDATE`).
		WillReturnRows(serviceRows().AddRow(10, 1, "Swedish Massage", "Normal", testTime, testTime))
	mock.ExpectExec(`UPDATE "services" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "service_price_options"`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(`INSERT INTO "service_price_options"`).WillReturnRows(idRows(100))
	mock.ExpectQuery(`INSERT INTO "service_price_options"`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := manager.Update(context.Background(), 1, 10, ServicePatch{
		Name:         models.Some("Renamed"),
		PriceOptions: models.Some(drafts()),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceManagerUpdateServiceOfAnotherCategory(t *testing.T) {
	db, mock := newMockDB(t)
	manager := NewServiceManager(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "services" WHERE .*id = \$1 AND category_id = \$2.*FOR UPDATE`).
		WillReturnRows(serviceRows())
	mock.ExpectRollback()

	_, err := manager.Update(context.Background(), 2, 10, ServicePatch{Name: models.Some("Renamed")})
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceManagerUpdateRejectsEmptyOptionSet(t *testing.T) {
	db, mock := newMockDB(t)
	manager := NewServiceManager(db)

	_, err := manager.Update(context.Background(), 1, 10, ServicePatch{
		PriceOptions: models.Some([]PriceOptionDraft{}),
	})

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "priceOptions", validation.Fields[0].Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceManagerDelete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "not in category", affected: 0, wantErr: ErrServiceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			manager := NewServiceManager(db)

			mock.ExpectExec(`DELETE FROM "services" WHERE id = \$1 AND category_id = \$2`).
				WithArgs(10, 1).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := manager.Delete(context.Background(), 1, 10)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
