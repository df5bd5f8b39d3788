package repository

import (
	"Tieba/internal/model"
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type BoardRepo interface {
	CreateBoardWithOwner(ctx context.Context, board *model.Board) (*model.BoardMember, error)
	GetBoardById(ctx context.Context, id uint64) (*model.Board, error)
	GetBoardByIds(ctx context.Context, ids []uint64) ([]*model.Board, error)
	ListBoards(ctx context.Context, categoryID uint64, limit, offset int) ([]*model.Board, error)
	ListRecommendedBoards(ctx context.Context, limit int) ([]*model.Board, error)
	SearchBoards(ctx context.Context, keyword string, limit, offset int) ([]*model.Board, error)
	ScanBoards(ctx context.Context, afterID uint64, limit int) ([]*model.Board, error)
	UpdateBoard(ctx context.Context, id uint64, updates map[string]any) error
}

type BoardRepoImpl struct {
	db *gorm.DB
}

func NewBoardRepo(db *gorm.DB) BoardRepo {
	return &BoardRepoImpl{db: db}
}

// CreateBoardWithOwner 创建贴吧并在同一事务内写入吧主的大吧主成员记录
func (s *BoardRepoImpl) CreateBoardWithOwner(ctx context.Context, board *model.Board) (*model.BoardMember, error) {
	now := time.Now()
	owner := &model.BoardMember{
		UserID:       board.OwnerID,
		Role:         model.MemberRoleSeniorAdmin,
		Status:       model.MemberStatusActive,
		JoinedAt:     now,
		LastActiveAt: now,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		board.MemberCount = 1
		if err := tx.Create(board).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateName
			}
			return err
		}
		owner.BoardID = board.ID
		return tx.Create(owner).Error
	})
	if err != nil {
		return nil, err
	}
	return owner, nil
}

func (s *BoardRepoImpl) GetBoardById(ctx context.Context, id uint64) (*model.Board, error) {
	board := &model.Board{}
	result := s.db.WithContext(ctx).First(board, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return board, nil
}

func (s *BoardRepoImpl) GetBoardByIds(ctx context.Context, ids []uint64) ([]*model.Board, error) {
	boards := make([]*model.Board, 0)
	if len(ids) == 0 {
		return boards, nil
	}
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&boards).Error
	return boards, err
}

// ListBoards 按分类列出正常状态的贴吧，categoryID 为 0 时不过滤
func (s *BoardRepoImpl) ListBoards(ctx context.Context, categoryID uint64, limit, offset int) ([]*model.Board, error) {
	boards := make([]*model.Board, 0)
	query := s.db.WithContext(ctx).Where("status = ?", model.BoardStatusNormal)
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	err := query.
		Order("member_count DESC").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&boards).Error
	return boards, err
}

// ListRecommendedBoards 推荐贴吧，按成员数倒序
func (s *BoardRepoImpl) ListRecommendedBoards(ctx context.Context, limit int) ([]*model.Board, error) {
	boards := make([]*model.Board, 0)
	err := s.db.WithContext(ctx).
		Where("status = ? AND is_recommended = ?", model.BoardStatusNormal, true).
		Order("member_count DESC").
		Limit(limit).
		Find(&boards).Error
	return boards, err
}

// SearchBoards 按名称或简介模糊匹配
func (s *BoardRepoImpl) SearchBoards(ctx context.Context, keyword string, limit, offset int) ([]*model.Board, error) {
	boards := make([]*model.Board, 0)
	like := "%" + keyword + "%"
	err := s.db.WithContext(ctx).
		Where("status = ?", model.BoardStatusNormal).
		Where("name LIKE ? OR description LIKE ?", like, like).
		Order("member_count DESC").
		Limit(limit).
		Offset(offset).
		Find(&boards).Error
	return boards, err
}

// ScanBoards 按主键游标遍历全部贴吧
func (s *BoardRepoImpl) ScanBoards(ctx context.Context, afterID uint64, limit int) ([]*model.Board, error) {
	boards := make([]*model.Board, 0, limit)
	err := s.db.WithContext(ctx).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&boards).Error
	return boards, err
}

func (s *BoardRepoImpl) UpdateBoard(ctx context.Context, id uint64, updates map[string]any) error {
	result := s.db.WithContext(ctx).
		Model(&model.Board{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
