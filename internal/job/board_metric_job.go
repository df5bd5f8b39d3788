package job

import (
	"Tieba/internal/pkg/consts"
	"Tieba/internal/pkg/logger"
	"Tieba/internal/pkg/redis"
	"Tieba/internal/repository"
	"Tieba/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const boardScanBatch = 200

type BoardMetricJob struct {
	boardRepo      repository.BoardRepo
	boardMetricSvc service.BoardMetricService
}

func NewBoardMetricJob(boardRepo repository.BoardRepo, boardMetricSvc service.BoardMetricService) *BoardMetricJob {
	return &BoardMetricJob{
		boardRepo:      boardRepo,
		boardMetricSvc: boardMetricSvc,
	}
}

// Run 为所有贴吧写入当日指标快照，多实例部署时由分布式锁保证只执行一次
func (s *BoardMetricJob) Run() {
	traceID := "job-board-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	ok, err := redis.TryLock(ctx, consts.BoardMetricJobLock, traceID, 10*time.Minute, 1)
	if err != nil || !ok {
		log.InfoContext(ctx, "board metric job skipped, lock not acquired", "err", err)
		return
	}
	defer redis.UnLock(ctx, consts.BoardMetricJobLock, traceID)

	var afterID uint64
	synced, failed := 0, 0
	for {
		boards, err := s.boardRepo.ScanBoards(ctx, afterID, boardScanBatch)
		if err != nil {
			log.ErrorContext(ctx, "scan boards error", "after_id", afterID, "err", err)
			return
		}
		for _, board := range boards {
			if err = s.boardMetricSvc.SyncBoardMetric(ctx, board); err != nil {
				log.ErrorContext(ctx, "sync board daily metric error", "board_id", board.ID, "err", err)
				failed++
				continue
			}
			synced++
		}
		if len(boards) < boardScanBatch {
			break
		}
		afterID = boards[len(boards)-1].ID
	}

	log.InfoContext(ctx, "sync board metrics success", "board_count", synced, "failed_count", failed)
}
