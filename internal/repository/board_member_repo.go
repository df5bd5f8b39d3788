package repository

import (
	"Tieba/internal/model"
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MemberDecider 根据所在贴吧、操作者与目标成员的当前记录给出目标的新角色或新状态。
// operator 为 nil 表示操作者不是该吧成员
type MemberDecider func(board *model.Board, operator, target *model.BoardMember) (int8, error)

type BoardMemberRepo interface {
	Join(ctx context.Context, userID, boardID uint64) (int64, error)
	Leave(ctx context.Context, userID, boardID uint64) (int64, error)
	Flip(ctx context.Context, userID, boardID uint64) (bool, int64, error)
	IsMember(ctx context.Context, userID, boardID uint64) (bool, error)
	MemberOfAmong(ctx context.Context, userID uint64, boardIDs []uint64) (map[uint64]bool, error)
	JoinedBoardIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error)
	GetMember(ctx context.Context, userID, boardID uint64) (*model.BoardMember, error)
	GetMemberById(ctx context.Context, id uint64) (*model.BoardMember, error)
	ListMembers(ctx context.Context, boardID uint64, limit, offset int) ([]*model.BoardMember, error)
	CountActiveMembers(ctx context.Context, boardID uint64) (int64, error)
	ChangeRole(ctx context.Context, operatorID, memberID uint64, decide MemberDecider) (*model.BoardMember, error)
	ChangeStatus(ctx context.Context, operatorID, memberID uint64, decide MemberDecider) (*model.BoardMember, error)
}

type BoardMemberRepoImpl struct {
	db      *gorm.DB
	toggler *Toggler[model.BoardMember]
}

func NewBoardMemberRepo(db *gorm.DB) BoardMemberRepo {
	return &BoardMemberRepoImpl{
		db: db,
		toggler: NewToggler(db, Relation[model.BoardMember]{
			Name:         "board_member",
			ActorColumn:  "user_id",
			TargetColumn: "board_id",
			NewRow: func(userID, boardID uint64) *model.BoardMember {
				now := time.Now()
				return &model.BoardMember{
					UserID:       userID,
					BoardID:      boardID,
					Role:         model.MemberRoleMember,
					Status:       model.MemberStatusActive,
					JoinedAt:     now,
					LastActiveAt: now,
				}
			},
			Counters: func(_, boardID uint64) []Counter {
				return []Counter{{Table: "boards", Column: "member_count", ID: boardID}}
			},
			BeforeDisengage: guardLeave,
		}),
	}
}

// guardLeave 吧务必须先卸任才能退出；被封禁成员已不计入成员数，也不能通过退出解除封禁
func guardLeave(tx *gorm.DB, userID, boardID uint64) error {
	var member model.BoardMember
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND board_id = ?", userID, boardID).
		Take(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if member.IsAdmin() {
		return ErrMemberIsAdmin
	}
	if member.Status == model.MemberStatusBanned {
		return ErrMemberBanned
	}
	return nil
}

// Join 加入贴吧，返回最新成员数
func (s *BoardMemberRepoImpl) Join(ctx context.Context, userID, boardID uint64) (int64, error) {
	return s.toggler.Engage(ctx, userID, boardID)
}

// Leave 退出贴吧，返回最新成员数
func (s *BoardMemberRepoImpl) Leave(ctx context.Context, userID, boardID uint64) (int64, error) {
	return s.toggler.Disengage(ctx, userID, boardID)
}

// Flip 在同一事务内加入或退出，退出前同样经过 guardLeave
func (s *BoardMemberRepoImpl) Flip(ctx context.Context, userID, boardID uint64) (bool, int64, error) {
	return s.toggler.Flip(ctx, userID, boardID)
}

func (s *BoardMemberRepoImpl) IsMember(ctx context.Context, userID, boardID uint64) (bool, error) {
	return s.toggler.IsEngaged(ctx, userID, boardID)
}

func (s *BoardMemberRepoImpl) MemberOfAmong(ctx context.Context, userID uint64, boardIDs []uint64) (map[uint64]bool, error) {
	return s.toggler.EngagedAmong(ctx, userID, boardIDs)
}

func (s *BoardMemberRepoImpl) JoinedBoardIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).
		Model(&model.BoardMember{}).
		Where("user_id = ?", userID).
		Order("joined_at DESC").
		Limit(limit).
		Offset(offset).
		Pluck("board_id", &ids).Error
	return ids, err
}

func (s *BoardMemberRepoImpl) GetMember(ctx context.Context, userID, boardID uint64) (*model.BoardMember, error) {
	member := &model.BoardMember{}
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND board_id = ?", userID, boardID).
		Take(member)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return member, nil
}

func (s *BoardMemberRepoImpl) GetMemberById(ctx context.Context, id uint64) (*model.BoardMember, error) {
	member := &model.BoardMember{}
	result := s.db.WithContext(ctx).First(member, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return member, nil
}

// ListMembers 正常状态成员，吧务优先，其次按发帖数
func (s *BoardMemberRepoImpl) ListMembers(ctx context.Context, boardID uint64, limit, offset int) ([]*model.BoardMember, error) {
	members := make([]*model.BoardMember, 0)
	err := s.db.WithContext(ctx).
		Where("board_id = ? AND status = ?", boardID, model.MemberStatusActive).
		Order("role DESC").
		Order("post_count DESC").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&members).Error
	return members, err
}

func (s *BoardMemberRepoImpl) CountActiveMembers(ctx context.Context, boardID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.BoardMember{}).
		Where("board_id = ? AND status = ?", boardID, model.MemberStatusActive).
		Count(&count).Error
	return count, err
}

// ChangeRole 在吧与成员行锁内由 decide 决定目标成员的新角色
func (s *BoardMemberRepoImpl) ChangeRole(ctx context.Context, operatorID, memberID uint64, decide MemberDecider) (*model.BoardMember, error) {
	var target model.BoardMember
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		board, operator, err := lockMemberChange(tx, operatorID, memberID, &target)
		if err != nil {
			return err
		}
		role, err := decide(board, operator, &target)
		if err != nil {
			return err
		}
		target.Role = role
		return tx.Model(&model.BoardMember{}).
			Where("id = ?", target.ID).
			Updates(map[string]any{"role": role, "updated_at": time.Now()}).Error
	})
	if err != nil {
		return nil, err
	}
	return &target, nil
}

// ChangeStatus 在吧与成员行锁内由 decide 决定目标成员的新状态，
// 正常与非正常状态之间切换时同步调整 boards.member_count
func (s *BoardMemberRepoImpl) ChangeStatus(ctx context.Context, operatorID, memberID uint64, decide MemberDecider) (*model.BoardMember, error) {
	var target model.BoardMember
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		board, operator, err := lockMemberChange(tx, operatorID, memberID, &target)
		if err != nil {
			return err
		}
		status, err := decide(board, operator, &target)
		if err != nil {
			return err
		}
		if status == target.Status {
			return nil
		}

		memberCount := Counter{Table: "boards", Column: "member_count", ID: board.ID}
		switch {
		case target.Status == model.MemberStatusActive:
			err = decrCounter(tx, memberCount)
		case status == model.MemberStatusActive:
			err = incrCounter(tx, memberCount)
		}
		if err != nil {
			return err
		}
		target.Status = status
		return tx.Model(&model.BoardMember{}).
			Where("id = ?", target.ID).
			Updates(map[string]any{"status": status, "updated_at": time.Now()}).Error
	})
	if err != nil {
		return nil, err
	}
	return &target, nil
}

// lockMemberChange 依次锁定贴吧行、目标成员与操作者在同一吧的成员行，并重新读取三者
func lockMemberChange(tx *gorm.DB, operatorID, memberID uint64, target *model.BoardMember) (*model.Board, *model.BoardMember, error) {
	if err := tx.First(target, memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrMemberNotFound
		}
		return nil, nil, err
	}

	var operatorRows []uint64
	err := tx.Model(&model.BoardMember{}).
		Where("user_id = ? AND board_id = ?", operatorID, target.BoardID).
		Limit(1).
		Pluck("id", &operatorRows).Error
	if err != nil {
		return nil, nil, err
	}
	var operatorRowID uint64
	if len(operatorRows) > 0 {
		operatorRowID = operatorRows[0]
	}

	counters := []Counter{
		{Table: "boards", ID: target.BoardID},
		{Table: "board_members", ID: memberID},
	}
	if operatorRowID != 0 {
		counters = append(counters, Counter{Table: "board_members", ID: operatorRowID})
	}
	if err = lockRows(tx, counters); err != nil {
		return nil, nil, err
	}

	if err = tx.First(target, memberID).Error; err != nil {
		return nil, nil, err
	}
	board := &model.Board{}
	if err = tx.First(board, target.BoardID).Error; err != nil {
		return nil, nil, err
	}
	var operator *model.BoardMember
	if operatorRowID != 0 {
		operator = &model.BoardMember{}
		if err = tx.First(operator, operatorRowID).Error; err != nil {
			return nil, nil, err
		}
	}
	return board, operator, nil
}
