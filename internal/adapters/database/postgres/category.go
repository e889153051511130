package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/eventlocator/backend/internal/domain/common/errorz"
	"github.com/eventlocator/backend/internal/domain/entity"
)

type CategoryStorage struct {
	db *gorm.DB
}

func NewCategoryStorage(db *gorm.DB) *CategoryStorage {
	return &CategoryStorage{
		db: db,
	}
}

// Create is a function that creates a new category in the database.
func (s *CategoryStorage) Create(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	err := s.db.WithContext(ctx).Create(&category).Error
	return category, err
}

// Get is a function that gets a category from the database by id.
func (s *CategoryStorage) Get(ctx context.Context, id uint) (*entity.Category, error) {
	var category entity.Category
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrCategoryNotFound
	}
	return &category, err
}

// GetAll is a function that gets all categories from the database.
func (s *CategoryStorage) GetAll(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	err := s.db.WithContext(ctx).Order("name").Find(&categories).Error
	return categories, err
}

// GetMany is a function that gets categories from the database by ids.
func (s *CategoryStorage) GetMany(ctx context.Context, ids []int64) ([]entity.Category, error) {
	var categories []entity.Category
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error
	return categories, err
}

// Update is a function that updates a category in the database.
func (s *CategoryStorage) Update(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	err := s.db.WithContext(ctx).Save(&category).Error
	return category, err
}

// Delete is a function that deletes a category from the database.
func (s *CategoryStorage) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&entity.Category{}, id).Error
}
