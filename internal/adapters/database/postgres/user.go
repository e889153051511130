package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/eventlocator/backend/internal/domain/common/errorz"
	"github.com/eventlocator/backend/internal/domain/entity"
)

type UserStorage struct {
	db *gorm.DB
}

func NewUserStorage(db *gorm.DB) *UserStorage {
	return &UserStorage{
		db: db,
	}
}

// Create is a function that creates a new user in the database.
func (s *UserStorage) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	err := s.db.WithContext(ctx).Create(&user).Error
	return user, err
}

// Get is a function that gets a user from the database by id.
func (s *UserStorage) Get(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrUserNotFound
	}
	return &user, err
}

// GetByEmail is a function that gets a user from the database by email.
func (s *UserStorage) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrUserNotFound
	}
	return &user, err
}

// Update is a function that updates a user in the database.
func (s *UserStorage) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	err := s.db.WithContext(ctx).Save(&user).Error
	return user, err
}

// Delete is a function that soft-deletes a user from the database.
func (s *UserStorage) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&entity.User{}, id).Error
}

// Count is a function that gets the count of users from the database.
func (s *UserStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.User{}).Count(&count).Error
	return count, err
}

// GetWithPagination is a function that gets a list of users from the database with pagination.
func (s *UserStorage) GetWithPagination(ctx context.Context, limit, offset int, order string) ([]entity.User, error) {
	var users []entity.User
	err := s.db.WithContext(ctx).Order(order).Offset(offset).Limit(limit).Find(&users).Error
	return users, err
}
