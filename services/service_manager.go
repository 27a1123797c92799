package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"category-services-backend/models"
	"category-services-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PriceOptionDraft is a price option that has not been persisted yet.
type PriceOptionDraft struct {
	Duration int
	Price    decimal.Decimal
	Type     models.PriceOptionType
}

type CreateServiceParams struct {
	CategoryID   uint
	Name         string
	Type         models.ServiceType
	PriceOptions []PriceOptionDraft
}

// ServicePatch is a partial update. Unset fields are left unchanged; a set
// PriceOptions replaces the whole option set.
type ServicePatch struct {
	Name         models.Optional[string]
	Type         models.Optional[models.ServiceType]
	PriceOptions models.Optional[[]PriceOptionDraft]
}

// ServiceManager owns the service write path. A service and its price
// options are always written in one transaction.
type ServiceManager struct {
	db *gorm.DB
}

func NewServiceManager(db *gorm.DB) *ServiceManager {
	return &ServiceManager{db: db}
}

// Create inserts the service and every price option atomically and returns
// the committed service read back with its options.
func (m *ServiceManager) Create(ctx context.Context, params CreateServiceParams) (*models.Service, error) {
	params.Name = strings.TrimSpace(params.Name)
	if params.Type == "" {
		params.Type = models.ServiceTypeNormal
	}

	var fields []utils.FieldError
	fields = append(fields, checkName("serviceName", "Service name", params.Name)...)
	fields = append(fields, checkServiceType(params.Type)...)
	fields = append(fields, checkPriceOptions(params.PriceOptions)...)
	if err := validationError(fields); err != nil {
		return nil, err
	}

	var serviceID uint
	err := inTransaction(ctx, m.db, func(tx *gorm.DB) error {
		// FOR SHARE keeps the category from being deleted before commit.
		if _, err := findCategory(tx.Clauses(clause.Locking{Strength: "SHARE"}), params.CategoryID); err != nil {
			return err
		}

		service := models.Service{
			CategoryID:  params.CategoryID,
			ServiceName: params.Name,
			Type:        params.Type,
		}
		if err := tx.Create(&service).Error; err != nil {
			return fmt.Errorf("insert service: %w", err)
		}
		serviceID = service.ID

		return insertPriceOptions(tx, service.ID, params.PriceOptions)
	})
	if err != nil {
		return nil, err
	}

	return m.readBack(ctx, serviceID)
}

// ListByCategory returns the category and its services, newest first, each
// with its price options.
func (m *ServiceManager) ListByCategory(ctx context.Context, categoryID uint) (*models.Category, []models.Service, error) {
	db := m.db.WithContext(ctx)

	category, err := findCategory(db, categoryID)
	if err != nil {
		return nil, nil, err
	}

	var services []models.Service
	err = db.Preload("PriceOptions", orderByID).
		Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&services).Error
	if err != nil {
		return nil, nil, fmt.Errorf("list services of category %d: %w", categoryID, err)
	}

	return category, services, nil
}

// Update applies patch to the service identified by both ids. Scalar changes
// and the option replacement commit or roll back together.
func (m *ServiceManager) Update(ctx context.Context, categoryID, serviceID uint, patch ServicePatch) (*models.Service, error) {
	if name, ok := patch.Name.Get(); ok {
		patch.Name = models.Some(strings.TrimSpace(name))
	}

	var fields []utils.FieldError
	if name, ok := patch.Name.Get(); ok {
		fields = append(fields, checkName("serviceName", "Service name", name)...)
	}
	if serviceType, ok := patch.Type.Get(); ok {
		fields = append(fields, checkServiceType(serviceType)...)
	}
	if options, ok := patch.PriceOptions.Get(); ok {
		fields = append(fields, checkPriceOptions(options)...)
	}
	if err := validationError(fields); err != nil {
		return nil, err
	}

	err := inTransaction(ctx, m.db, func(tx *gorm.DB) error {
		service, err := findService(tx.Clauses(clause.Locking{Strength: "UPDATE"}), categoryID, serviceID)
		if err != nil {
			return err
		}

		if name, ok := patch.Name.Get(); ok {
			service.ServiceName = name
		}
		if serviceType, ok := patch.Type.Get(); ok {
			service.Type = serviceType
		}
		if err := tx.Save(service).Error; err != nil {
			return fmt.Errorf("update service %d: %w", service.ID, err)
		}

		options, ok := patch.PriceOptions.Get()
		if !ok {
			return nil
		}
		if err := tx.Where("service_id = ?", service.ID).Delete(&models.PriceOption{}).Error; err != nil {
			return fmt.Errorf("delete price options of service %d: %w", service.ID, err)
		}
		return insertPriceOptions(tx, service.ID, options)
	})
	if err != nil {
		return nil, err
	}

	return m.readBack(ctx, serviceID)
}

// Delete removes the service; its price options go with it through the
// foreign key cascade.
func (m *ServiceManager) Delete(ctx context.Context, categoryID, serviceID uint) error {
	result := m.db.WithContext(ctx).
		Where("id = ? AND category_id = ?", serviceID, categoryID).
		Delete(&models.Service{})
	if result.Error != nil {
		return fmt.Errorf("delete service %d: %w", serviceID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (m *ServiceManager) readBack(ctx context.Context, serviceID uint) (*models.Service, error) {
	var service models.Service
	err := m.db.WithContext(ctx).
		Preload("PriceOptions", orderByID).
		First(&service, serviceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("read back service %d: %w", serviceID, err)
	}
	return &service, nil
}

func findService(db *gorm.DB, categoryID, serviceID uint) (*models.Service, error) {
	var service models.Service
	err := db.Where("id = ? AND category_id = ?", serviceID, categoryID).First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("find service %d: %w", serviceID, err)
	}
	return &service, nil
}

// insertPriceOptions inserts one row per draft. The first failure aborts the
// batch; the caller's transaction discards the rows already written.
func insertPriceOptions(tx *gorm.DB, serviceID uint, drafts []PriceOptionDraft) error {
	for i, draft := range drafts {
		option := models.PriceOption{
			ServiceID: serviceID,
			Duration:  draft.Duration,
			Price:     draft.Price.Round(2),
			Type:      draft.Type,
		}
		if err := tx.Create(&option).Error; err != nil {
			return fmt.Errorf("insert price option %d of service %d: %w", i, serviceID, err)
		}
	}
	return nil
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

func checkServiceType(t models.ServiceType) []utils.FieldError {
	if !t.Valid() {
		return []utils.FieldError{{Field: "type", Message: "Type must be either Normal or VIP"}}
	}
	return nil
}

func checkPriceOptions(drafts []PriceOptionDraft) []utils.FieldError {
	if len(drafts) == 0 {
		return []utils.FieldError{{Field: "priceOptions", Message: "At least one price option is required"}}
	}

	var fields []utils.FieldError
	for i, draft := range drafts {
		prefix := "priceOptions[" + strconv.Itoa(i) + "]."
		if draft.Duration <= 0 {
			fields = append(fields, utils.FieldError{Field: prefix + "duration", Message: "Duration must be a positive integer"})
		}
		switch price := draft.Price.Round(2); {
		case price.IsNegative():
			fields = append(fields, utils.FieldError{Field: prefix + "price", Message: "Price must be a positive number"})
		case price.GreaterThan(models.MaxPrice):
			fields = append(fields, utils.FieldError{Field: prefix + "price", Message: "Price must not exceed 99999999.99"})
		}
		if !draft.Type.Valid() {
			fields = append(fields, utils.FieldError{Field: prefix + "type", Message: "Price option type must be Hourly, Weekly, or Monthly"})
		}
	}
	return fields
}
