package repository

import (
	"Tieba/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnnouncementRepo interface {
	CreateAnnouncement(ctx context.Context, announcement *model.BoardAnnouncement) error
	GetAnnouncementById(ctx context.Context, id uint64) (*model.BoardAnnouncement, error)
	ListAnnouncements(ctx context.Context, boardID uint64, limit, offset int) ([]*model.BoardAnnouncement, error)
	ToggleTop(ctx context.Context, id uint64) (bool, error)
}

type AnnouncementRepoImpl struct {
	db *gorm.DB
}

func NewAnnouncementRepo(db *gorm.DB) AnnouncementRepo {
	return &AnnouncementRepoImpl{db: db}
}

func (s *AnnouncementRepoImpl) CreateAnnouncement(ctx context.Context, announcement *model.BoardAnnouncement) error {
	return s.db.WithContext(ctx).Create(announcement).Error
}

func (s *AnnouncementRepoImpl) GetAnnouncementById(ctx context.Context, id uint64) (*model.BoardAnnouncement, error) {
	announcement := &model.BoardAnnouncement{}
	result := s.db.WithContext(ctx).First(announcement, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return announcement, nil
}

// ListAnnouncements 置顶公告在前
func (s *AnnouncementRepoImpl) ListAnnouncements(ctx context.Context, boardID uint64, limit, offset int) ([]*model.BoardAnnouncement, error) {
	list := make([]*model.BoardAnnouncement, 0)
	err := s.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("is_top DESC").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error
	return list, err
}

func (s *AnnouncementRepoImpl) ToggleTop(ctx context.Context, id uint64) (bool, error) {
	var next bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var announcement model.BoardAnnouncement
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&announcement, id).Error; err != nil {
			return err
		}
		next = !announcement.IsTop
		return tx.Model(&model.BoardAnnouncement{}).
			Where("id = ?", id).
			UpdateColumn("is_top", next).Error
	})
	return next, err
}
