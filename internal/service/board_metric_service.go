package service

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/model"
	"Tieba/internal/pkg/consts"
	"Tieba/internal/pkg/redis"
	"Tieba/internal/pkg/util"
	"Tieba/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

type BoardMetricService interface {
	// SyncBoardMetric 同步贴吧每日指标快照
	SyncBoardMetric(ctx context.Context, board *model.Board) error
	// GetBoardMetricsBy7Days 获取最近7天趋势，仅吧务可见
	GetBoardMetricsBy7Days(ctx context.Context, operatorID, boardID uint64) (*dto.BoardTrendDTO, error)
	// GetBoardMetricsBy30Days 获取最近30天趋势，仅吧务可见
	GetBoardMetricsBy30Days(ctx context.Context, operatorID, boardID uint64) (*dto.BoardTrendDTO, error)
}

type boardMetricServiceImpl struct {
	boardMetricRepo repository.BoardMetricRepo
	boardRepo       repository.BoardRepo
	memberRepo      repository.BoardMemberRepo
}

func NewBoardMetricService(
	boardMetricRepo repository.BoardMetricRepo,
	boardRepo repository.BoardRepo,
	memberRepo repository.BoardMemberRepo,
) BoardMetricService {
	return &boardMetricServiceImpl{
		boardMetricRepo: boardMetricRepo,
		boardRepo:       boardRepo,
		memberRepo:      memberRepo,
	}
}

// SyncBoardMetric 将 boards 表的实时计数刷入每日指标表
func (s *boardMetricServiceImpl) SyncBoardMetric(ctx context.Context, board *model.Board) error {
	metric := &model.BoardDailyMetric{
		BoardID:      board.ID,
		MetricDate:   util.GetMidnight(time.Now()),
		TotalMembers: board.MemberCount,
		TotalPosts:   board.PostCount,
		TodayPosts:   board.TodayPostCount,
	}
	if err := s.boardMetricRepo.SaveOrUpdateMetric(ctx, metric); err != nil {
		return err
	}

	id := strconv.FormatUint(board.ID, 10)
	_ = redis.DeleteKey(ctx, consts.BoardMetrics7DaysKey+id)
	_ = redis.DeleteKey(ctx, consts.BoardMetrics30DaysKey+id)
	return nil
}

func (s *boardMetricServiceImpl) GetBoardMetricsBy7Days(ctx context.Context, operatorID, boardID uint64) (*dto.BoardTrendDTO, error) {
	key := consts.BoardMetrics7DaysKey + strconv.FormatUint(boardID, 10)
	return s.getBoardMetrics(ctx, operatorID, boardID, key, 7)
}

func (s *boardMetricServiceImpl) GetBoardMetricsBy30Days(ctx context.Context, operatorID, boardID uint64) (*dto.BoardTrendDTO, error) {
	key := consts.BoardMetrics30DaysKey + strconv.FormatUint(boardID, 10)
	return s.getBoardMetrics(ctx, operatorID, boardID, key, 30)
}

// getBoardMetrics 聚合查询与数据平滑逻辑
func (s *boardMetricServiceImpl) getBoardMetrics(ctx context.Context, operatorID, boardID uint64, key string, days int) (*dto.BoardTrendDTO, error) {
	board, err := s.boardRepo.GetBoardById(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrBoardNotFound
	}
	if _, err = requireBoardAdmin(ctx, s.memberRepo, operatorID, boardID); err != nil {
		return nil, err
	}

	if val, err := redis.GetValue(ctx, key); err == nil && val != "" {
		var res dto.BoardTrendDTO
		if json.Unmarshal([]byte(val), &res) == nil {
			return &res, nil
		}
	}

	now := time.Now()
	startTime := util.GetMidnight(now).AddDate(0, 0, -(days - 1))
	rawData, err := s.boardMetricRepo.GetBoardMetricsSince(ctx, boardID, startTime)
	if err != nil {
		return nil, err
	}

	var baseline *model.BoardDailyMetric
	if len(rawData) == 0 || !rawData[0].MetricDate.Equal(startTime) {
		baseline, err = s.boardMetricRepo.GetLatestMetricBefore(ctx, boardID, startTime)
		if err != nil {
			log.WarnContext(ctx, "failed to load metric baseline", "board_id", boardID, "err", err)
		}
	}

	dataMap := make(map[string]*model.BoardDailyMetric, len(rawData))
	for _, m := range rawData {
		dataMap[m.MetricDate.Format(time.DateOnly)] = m
	}

	res := &dto.BoardTrendDTO{
		BoardID:    boardID,
		Days:       days,
		Members:    make([]*dto.MetricPointDTO, 0, days),
		Posts:      make([]*dto.MetricPointDTO, 0, days),
		TodayPosts: make([]*dto.MetricPointDTO, 0, days),
	}

	lastValid := baseline
	for i := days - 1; i >= 0; i-- {
		dateStr := util.GetMidnight(now.AddDate(0, 0, -i)).Format(time.DateOnly)

		var members, posts, todayPosts int64
		if val, ok := dataMap[dateStr]; ok {
			members, posts, todayPosts = val.TotalMembers, val.TotalPosts, val.TodayPosts
			lastValid = val
		} else if lastValid != nil {
			// 当日发帖数不沿用
			members, posts = lastValid.TotalMembers, lastValid.TotalPosts
		}

		res.Members = append(res.Members, &dto.MetricPointDTO{Date: dateStr, Value: members})
		res.Posts = append(res.Posts, &dto.MetricPointDTO{Date: dateStr, Value: posts})
		res.TodayPosts = append(res.TodayPosts, &dto.MetricPointDTO{Date: dateStr, Value: todayPosts})
	}

	_ = redis.SetWithMidnightExpiration(ctx, key, res)
	return res, nil
}
