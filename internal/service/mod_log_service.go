package service

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/pkg/mongo"
	"Tieba/internal/pkg/util"
	"Tieba/internal/repository"
	"context"
	"time"
)

type ModLogService interface {
	// ListModLogs 吧务操作日志，action 为空时返回全部类型
	ListModLogs(ctx context.Context, operatorID, boardID uint64, action string, page, pageSize int) ([]*dto.ModLogDTO, error)
}

type modLogServiceImpl struct {
	modLogRepo mongo.ModLogRepo
	boardRepo  repository.BoardRepo
	memberRepo repository.BoardMemberRepo
	userSvc    UserService
}

func NewModLogService(
	modLogRepo mongo.ModLogRepo,
	boardRepo repository.BoardRepo,
	memberRepo repository.BoardMemberRepo,
	userSvc UserService,
) ModLogService {
	return &modLogServiceImpl{
		modLogRepo: modLogRepo,
		boardRepo:  boardRepo,
		memberRepo: memberRepo,
		userSvc:    userSvc,
	}
}

func (s *modLogServiceImpl) ListModLogs(ctx context.Context, operatorID, boardID uint64, action string, page, pageSize int) ([]*dto.ModLogDTO, error) {
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

	limit, offset := util.Paginate(page, pageSize)
	logs, err := s.modLogRepo.ListModLogs(ctx, boardID, action, int64(limit), int64(offset))
	if err != nil {
		return nil, err
	}
	operatorIDs := make([]uint64, 0, len(logs))
	for _, l := range logs {
		operatorIDs = append(operatorIDs, l.OperatorID)
	}
	cards, err := s.userSvc.GetUserSimpleInfoByIds(ctx, operatorIDs)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ModLogDTO, 0, len(logs))
	for _, l := range logs {
		res = append(res, &dto.ModLogDTO{
			ID:         l.ID.Hex(),
			BoardID:    l.BoardID,
			OperatorID: l.OperatorID,
			Operator:   cards[l.OperatorID],
			Action:     l.Action,
			TargetID:   l.TargetID,
			Detail:     l.Detail,
			CreatedAt:  l.CreatedAt.Format(time.DateTime),
		})
	}
	return res, nil
}
