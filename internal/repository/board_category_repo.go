package repository

import (
	"Tieba/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type BoardCategoryRepo interface {
	CreateCategory(ctx context.Context, category *model.BoardCategory) error
	GetCategoryById(ctx context.Context, id uint64) (*model.BoardCategory, error)
	ListCategories(ctx context.Context) ([]*model.BoardCategory, error)
}

type BoardCategoryRepoImpl struct {
	db *gorm.DB
}

func NewBoardCategoryRepo(db *gorm.DB) BoardCategoryRepo {
	return &BoardCategoryRepoImpl{db: db}
}

func (s *BoardCategoryRepoImpl) CreateCategory(ctx context.Context, category *model.BoardCategory) error {
	err := s.db.WithContext(ctx).Create(category).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateName
	}
	return err
}

func (s *BoardCategoryRepoImpl) GetCategoryById(ctx context.Context, id uint64) (*model.BoardCategory, error) {
	category := &model.BoardCategory{}
	result := s.db.WithContext(ctx).First(category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return category, nil
}

// ListCategories 启用中的分类，按 sort_order 排序
func (s *BoardCategoryRepoImpl) ListCategories(ctx context.Context) ([]*model.BoardCategory, error) {
	categories := make([]*model.BoardCategory, 0)
	err := s.db.WithContext(ctx).
		Where("status = ?", 1).
		Order("sort_order ASC").
		Order("id ASC").
		Find(&categories).Error
	return categories, err
}
