package service

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/pkg/mongo"
	"Tieba/internal/pkg/util"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

type NotificationService interface {
	ListNotifications(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.NotificationDTO, error)
	GetUnreadCount(ctx context.Context, userID uint64) (*dto.NotificationUnreadDTO, error)
	MarkAsRead(ctx context.Context, userID uint64, msgID string) error
	MarkAllAsRead(ctx context.Context, userID uint64) error
}

type notificationServiceImpl struct {
	notificationRepo mongo.NotificationRepo
	userSvc          UserService
}

func NewNotificationService(notificationRepo mongo.NotificationRepo, userSvc UserService) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		userSvc:          userSvc,
	}
}

func (s *notificationServiceImpl) ListNotifications(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.NotificationDTO, error) {
	limit, offset := util.Paginate(page, pageSize)
	msgs, err := s.notificationRepo.ListNotifications(ctx, userID, int64(limit), int64(offset))
	if err != nil {
		return nil, err
	}

	senderIDs := make([]uint64, 0, len(msgs))
	for _, m := range msgs {
		senderIDs = append(senderIDs, m.SenderID)
	}
	cards, err := s.userSvc.GetUserSimpleInfoByIds(ctx, senderIDs)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.NotificationDTO, 0, len(msgs))
	for _, m := range msgs {
		d := &dto.NotificationDTO{
			ID:        m.ID.Hex(),
			SenderID:  m.SenderID,
			Type:      m.Type,
			BoardID:   m.BoardID,
			PostID:    m.PostID,
			TargetID:  m.TargetID,
			Content:   m.Content,
			IsRead:    m.IsRead,
			CreatedAt: m.CreatedAt.Format(time.DateTime),
		}
		if card, ok := cards[m.SenderID]; ok {
			d.SenderName = card.Nickname
			d.AvatarURL = card.AvatarURL
		}
		res = append(res, d)
	}
	return res, nil
}

func (s *notificationServiceImpl) GetUnreadCount(ctx context.Context, userID uint64) (*dto.NotificationUnreadDTO, error) {
	count, err := s.notificationRepo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.NotificationUnreadDTO{UnreadCount: count}, nil
}

// MarkAsRead 只能标记发给自己的通知
func (s *notificationServiceImpl) MarkAsRead(ctx context.Context, userID uint64, msgID string) error {
	id, err := primitive.ObjectIDFromHex(msgID)
	if err != nil {
		return ErrParamInvalid
	}
	err = s.notificationRepo.MarkAsRead(ctx, userID, id)
	if errors.Is(err, mongodriver.ErrNoDocuments) {
		return ErrNotificationNotFound
	}
	return err
}

func (s *notificationServiceImpl) MarkAllAsRead(ctx context.Context, userID uint64) error {
	return s.notificationRepo.MarkAllAsRead(ctx, userID)
}
