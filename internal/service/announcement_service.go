package service

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/model"
	"Tieba/internal/pkg/kafka"
	"Tieba/internal/pkg/mongo"
	"Tieba/internal/pkg/util"
	"Tieba/internal/repository"
	"context"
	"errors"

	"gorm.io/gorm"
)

type AnnouncementService interface {
	CreateAnnouncement(ctx context.Context, operatorID, boardID uint64, dto *dto.CreateAnnouncementDTO) (*dto.AnnouncementDTO, error)
	ListAnnouncements(ctx context.Context, boardID uint64, page, pageSize int) ([]*dto.AnnouncementDTO, error)
	ToggleTop(ctx context.Context, operatorID, announcementID uint64) (*dto.FlagDTO, error)
}

type announcementServiceImpl struct {
	announcementRepo repository.AnnouncementRepo
	boardRepo        repository.BoardRepo
	memberRepo       repository.BoardMemberRepo
	userSvc          UserService
	producer         kafka.Producer
}

func NewAnnouncementService(
	announcementRepo repository.AnnouncementRepo,
	boardRepo repository.BoardRepo,
	memberRepo repository.BoardMemberRepo,
	userSvc UserService,
	producer kafka.Producer,
) AnnouncementService {
	return &announcementServiceImpl{
		announcementRepo: announcementRepo,
		boardRepo:        boardRepo,
		memberRepo:       memberRepo,
		userSvc:          userSvc,
		producer:         producer,
	}
}

func (s *announcementServiceImpl) CreateAnnouncement(ctx context.Context, operatorID, boardID uint64, req *dto.CreateAnnouncementDTO) (*dto.AnnouncementDTO, error) {
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

	announcement := &model.BoardAnnouncement{
		BoardID:  boardID,
		AuthorID: operatorID,
		Title:    req.Title,
		Content:  req.Content,
		IsTop:    req.IsTop,
	}
	if err = s.announcementRepo.CreateAnnouncement(ctx, announcement); err != nil {
		return nil, err
	}
	s.producer.PublishModeration(ctx, &kafka.ModerationEvent{
		BoardID:    boardID,
		OperatorID: operatorID,
		Action:     mongo.ModActionAnnounce,
		TargetID:   announcement.ID,
		Detail:     map[string]any{"title": announcement.Title},
	})
	return toAnnouncementDTO(announcement), nil
}

func (s *announcementServiceImpl) ListAnnouncements(ctx context.Context, boardID uint64, page, pageSize int) ([]*dto.AnnouncementDTO, error) {
	limit, offset := util.Paginate(page, pageSize)
	list, err := s.announcementRepo.ListAnnouncements(ctx, boardID, limit, offset)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.AuthorID)
	}
	cards, err := s.userSvc.GetUserSimpleInfoByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.AnnouncementDTO, 0, len(list))
	for _, a := range list {
		d := toAnnouncementDTO(a)
		d.Author = cards[a.AuthorID]
		res = append(res, d)
	}
	return res, nil
}

func (s *announcementServiceImpl) ToggleTop(ctx context.Context, operatorID, announcementID uint64) (*dto.FlagDTO, error) {
	announcement, err := s.announcementRepo.GetAnnouncementById(ctx, announcementID)
	if err != nil {
		return nil, err
	}
	if announcement == nil {
		return nil, ErrAnnouncementNotFound
	}
	if _, err = requireBoardAdmin(ctx, s.memberRepo, operatorID, announcement.BoardID); err != nil {
		return nil, err
	}

	top, err := s.announcementRepo.ToggleTop(ctx, announcementID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAnnouncementNotFound
	}
	if err != nil {
		return nil, err
	}
	s.producer.PublishModeration(ctx, &kafka.ModerationEvent{
		BoardID:    announcement.BoardID,
		OperatorID: operatorID,
		Action:     mongo.ModActionToggleAnnounceTop,
		TargetID:   announcementID,
		Detail:     map[string]any{"is_top": top},
	})
	return &dto.FlagDTO{Value: top}, nil
}

func toAnnouncementDTO(a *model.BoardAnnouncement) *dto.AnnouncementDTO {
	return &dto.AnnouncementDTO{
		ID:        a.ID,
		BoardID:   a.BoardID,
		Title:     a.Title,
		Content:   a.Content,
		IsTop:     a.IsTop,
		CreatedAt: a.CreatedAt,
	}
}
