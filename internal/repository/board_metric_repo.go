package repository

import (
	"Tieba/internal/model"
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BoardMetricRepo interface {
	SaveOrUpdateMetric(ctx context.Context, metric *model.BoardDailyMetric) error
	GetBoardMetricsSince(ctx context.Context, boardID uint64, since time.Time) ([]*model.BoardDailyMetric, error)
	GetLatestMetricBefore(ctx context.Context, boardID uint64, date time.Time) (*model.BoardDailyMetric, error)
}

type boardMetricRepoImpl struct {
	db *gorm.DB
}

func NewBoardMetricRepository(db *gorm.DB) BoardMetricRepo {
	return &boardMetricRepoImpl{db: db}
}

// SaveOrUpdateMetric board_id + metric_date 已存在时覆盖快照
func (r *boardMetricRepoImpl) SaveOrUpdateMetric(ctx context.Context, metric *model.BoardDailyMetric) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "board_id"}, {Name: "metric_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_members",
			"total_posts",
			"today_posts",
		}),
	}).Create(metric).Error
}

// GetBoardMetricsSince 获取指定日期（含）之后的快照
func (r *boardMetricRepoImpl) GetBoardMetricsSince(ctx context.Context, boardID uint64, since time.Time) ([]*model.BoardDailyMetric, error) {
	metrics := make([]*model.BoardDailyMetric, 0)
	result := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Where("metric_date >= ?", since).
		Order("metric_date ASC").
		Find(&metrics)
	if result.Error != nil {
		return nil, result.Error
	}
	return metrics, nil
}

// GetLatestMetricBefore 指定日期前最近一条快照，用于补齐趋势起点
func (r *boardMetricRepoImpl) GetLatestMetricBefore(ctx context.Context, boardID uint64, date time.Time) (*model.BoardDailyMetric, error) {
	var metric model.BoardDailyMetric
	err := r.db.WithContext(ctx).
		Where("board_id = ? AND metric_date < ?", boardID, date).
		Order("metric_date DESC").
		First(&metric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &metric, nil
}
