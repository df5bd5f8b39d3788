package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Relation 描述一种“行存在即状态”的唯一关系 (actor, target)
type Relation[R any] struct {
	Name         string
	ActorColumn  string
	TargetColumn string
	// NewRow 构造待插入的关系行
	NewRow func(actorID, targetID uint64) *R
	// Counters 关系行增删时需同步的计数列，第一项为返回给调用方的主计数
	Counters func(actorID, targetID uint64) []Counter
	// BeforeDisengage 与删除在同一事务内执行，返回错误即拒绝解除关系
	BeforeDisengage func(tx *gorm.DB, actorID, targetID uint64) error
}

// Toggler 唯一关系的建立、解除、翻转与查询，关系行与计数在同一事务内变更
type Toggler[R any] struct {
	db  *gorm.DB
	rel Relation[R]
}

func NewToggler[R any](db *gorm.DB, rel Relation[R]) *Toggler[R] {
	return &Toggler[R]{db: db, rel: rel}
}

// Engage 建立关系，已存在时返回 ErrRelationExists
func (s *Toggler[R]) Engage(ctx context.Context, actorID, targetID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		counters := s.rel.Counters(actorID, targetID)
		if err := lockRows(tx, counters); err != nil {
			return err
		}
		var err error
		count, err = s.engage(tx, actorID, targetID, counters)
		return err
	})
	return count, err
}

// Disengage 解除关系，不存在时返回 ErrRelationNotFound
func (s *Toggler[R]) Disengage(ctx context.Context, actorID, targetID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		counters := s.rel.Counters(actorID, targetID)
		if err := lockRows(tx, counters); err != nil {
			return err
		}
		var err error
		count, err = s.disengage(tx, actorID, targetID, counters)
		return err
	})
	return count, err
}

// Flip 翻转关系状态，返回翻转后的状态与主计数
func (s *Toggler[R]) Flip(ctx context.Context, actorID, targetID uint64) (bool, int64, error) {
	var (
		engaged bool
		count   int64
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		counters := s.rel.Counters(actorID, targetID)
		if err := lockRows(tx, counters); err != nil {
			return err
		}
		exists, err := s.exists(tx, actorID, targetID)
		if err != nil {
			return err
		}
		if exists {
			count, err = s.disengage(tx, actorID, targetID, counters)
			engaged = false
		} else {
			count, err = s.engage(tx, actorID, targetID, counters)
			engaged = true
		}
		return err
	})
	return engaged, count, err
}

// IsEngaged 查询关系是否存在
func (s *Toggler[R]) IsEngaged(ctx context.Context, actorID, targetID uint64) (bool, error) {
	if actorID == 0 {
		return false, nil
	}
	return s.exists(s.db.WithContext(ctx), actorID, targetID)
}

// EngagedAmong 批量查询 actor 与一组 target 的关系
func (s *Toggler[R]) EngagedAmong(ctx context.Context, actorID uint64, targetIDs []uint64) (map[uint64]bool, error) {
	res := make(map[uint64]bool, len(targetIDs))
	if actorID == 0 || len(targetIDs) == 0 {
		return res, nil
	}
	var ids []uint64
	err := s.db.WithContext(ctx).
		Model(new(R)).
		Where(s.rel.ActorColumn+" = ?", actorID).
		Where(s.rel.TargetColumn+" IN ?", targetIDs).
		Pluck(s.rel.TargetColumn, &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		res[id] = true
	}
	return res, nil
}

// TargetsOf 分页获取 actor 建立过关系的 target，按建立时间倒序
func (s *Toggler[R]) TargetsOf(ctx context.Context, actorID uint64, limit, offset int) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).
		Model(new(R)).
		Where(s.rel.ActorColumn+" = ?", actorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Pluck(s.rel.TargetColumn, &ids).Error
	return ids, err
}

func (s *Toggler[R]) engage(tx *gorm.DB, actorID, targetID uint64, counters []Counter) (int64, error) {
	exists, err := s.exists(tx, actorID, targetID)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrRelationExists
	}
	if err = tx.Create(s.rel.NewRow(actorID, targetID)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrRelationExists
		}
		return 0, errors.Wrapf(err, "create %s", s.rel.Name)
	}
	for _, c := range counters {
		if err = incrCounter(tx, c); err != nil {
			return 0, err
		}
	}
	return readCounter(tx, counters[0])
}

func (s *Toggler[R]) disengage(tx *gorm.DB, actorID, targetID uint64, counters []Counter) (int64, error) {
	if s.rel.BeforeDisengage != nil {
		if err := s.rel.BeforeDisengage(tx, actorID, targetID); err != nil {
			return 0, err
		}
	}
	result := tx.Where(s.match(actorID, targetID)).Delete(new(R))
	if result.Error != nil {
		return 0, errors.Wrapf(result.Error, "delete %s", s.rel.Name)
	}
	if result.RowsAffected == 0 {
		return 0, ErrRelationNotFound
	}
	for _, c := range counters {
		if err := decrCounter(tx, c); err != nil {
			return 0, err
		}
	}
	return readCounter(tx, counters[0])
}

func (s *Toggler[R]) exists(db *gorm.DB, actorID, targetID uint64) (bool, error) {
	var count int64
	err := db.Model(new(R)).
		Where(s.match(actorID, targetID)).
		Count(&count).Error
	return count > 0, err
}

func (s *Toggler[R]) match(actorID, targetID uint64) map[string]any {
	return map[string]any{
		s.rel.ActorColumn:  actorID,
		s.rel.TargetColumn: targetID,
	}
}
