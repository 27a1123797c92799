package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"category-services-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryStore struct {
	db *gorm.DB
}

func NewCategoryStore(db *gorm.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func (s *CategoryStore) Create(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if err := validationError(checkName("categoryName", "Category name", name)); err != nil {
		return nil, err
	}

	category := models.Category{CategoryName: name, Services: []models.Service{}}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	return &category, nil
}

// ListAll returns every category, newest first, with its services attached.
func (s *CategoryStore) ListAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).
		Preload("Services", orderByID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	for i := range categories {
		if categories[i].Services == nil {
			categories[i].Services = []models.Service{}
		}
	}
	return categories, nil
}

func (s *CategoryStore) Get(ctx context.Context, id uint) (*models.Category, error) {
	return findCategory(s.db.WithContext(ctx), id)
}

func (s *CategoryStore) Rename(ctx context.Context, id uint, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if err := validationError(checkName("categoryName", "Category name", name)); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	category, err := findCategory(db.Preload("Services", orderByID), id)
	if err != nil {
		return nil, err
	}

	if err := db.Model(category).Omit(clause.Associations).Update("category_name", name).Error; err != nil {
		return nil, fmt.Errorf("rename category %d: %w", id, err)
	}
	category.CategoryName = name
	if category.Services == nil {
		category.Services = []models.Service{}
	}

	return category, nil
}

// Delete removes a category that owns no services. The category row stays
// locked until commit so no service can be attached in between.
func (s *CategoryStore) Delete(ctx context.Context, id uint) error {
	return inTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if _, err := findCategory(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Service{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("count services of category %d: %w", id, err)
		}
		if count > 0 {
			return ErrCategoryHasServices
		}

		if err := tx.Delete(&models.Category{}, id).Error; err != nil {
			return fmt.Errorf("delete category %d: %w", id, err)
		}
		return nil
	})
}

func findCategory(db *gorm.DB, id uint) (*models.Category, error) {
	var category models.Category
	if err := db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category %d: %w", id, err)
	}
	return &category, nil
}
