package service

import (
	"context"

	"github.com/eventlocator/backend/internal/domain/entity"
)

type CategoryStorage interface {
	Create(ctx context.Context, category *entity.Category) (*entity.Category, error)
	Get(ctx context.Context, id uint) (*entity.Category, error)
	GetAll(ctx context.Context) ([]entity.Category, error)
	GetMany(ctx context.Context, ids []int64) ([]entity.Category, error)
	Update(ctx context.Context, category *entity.Category) (*entity.Category, error)
	Delete(ctx context.Context, id uint) error
}

type CategoryService struct {
	categoryStorage CategoryStorage
}

func NewCategoryService(storage CategoryStorage) *CategoryService {
	return &CategoryService{
		categoryStorage: storage,
	}
}

func (s *CategoryService) Create(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	return s.categoryStorage.Create(ctx, category)
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*entity.Category, error) {
	return s.categoryStorage.Get(ctx, id)
}

func (s *CategoryService) GetAll(ctx context.Context) ([]entity.Category, error) {
	return s.categoryStorage.GetAll(ctx)
}

func (s *CategoryService) GetMany(ctx context.Context, ids []int64) ([]entity.Category, error) {
	return s.categoryStorage.GetMany(ctx, ids)
}

func (s *CategoryService) Update(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	return s.categoryStorage.Update(ctx, category)
}

func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	return s.categoryStorage.Delete(ctx, id)
}
