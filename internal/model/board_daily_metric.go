package model

import (
	"time"
)

// BoardDailyMetric 贴吧每日指标快照
type BoardDailyMetric struct {
	ID           uint64    `gorm:"primaryKey"`
	BoardID      uint64    `gorm:"not null;index:idx_board_daily_metrics_board_date,unique" json:"boardId"`
	MetricDate   time.Time `gorm:"not null;index:idx_board_daily_metrics_board_date,unique;column:metric_date" json:"metricDate"`
	TotalMembers int64     `gorm:"not null;default:0" json:"totalMembers"`
	TotalPosts   int64     `gorm:"not null;default:0" json:"totalPosts"`
	TodayPosts   int64     `gorm:"not null;default:0" json:"todayPosts"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (BoardDailyMetric) TableName() string {
	return "board_daily_metrics"
}
