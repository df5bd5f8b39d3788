package kafka

import (
	"Tieba/internal/pkg/mongo"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

var notifyTypes = map[string]struct {
	kind    int8
	content string
}{
	EventPostLike:    {mongo.NotifyPostLike, "赞了你的帖子"},
	EventPostCollect: {mongo.NotifyPostCollect, "收藏了你的帖子"},
	EventPostReply:   {mongo.NotifyPostReply, "回复了你的帖子"},
	EventFloorReply:  {mongo.NotifyFloorReply, "回复了你的评论"},
	EventCommentLike: {mongo.NotifyCommentLike, "赞了你的评论"},
	EventFollow:      {mongo.NotifyFollow, "关注了你"},
}

type NotificationHandler struct {
	notificationRepo mongo.NotificationRepo
}

func NewNotificationHandler(notificationRepo mongo.NotificationRepo) *NotificationHandler {
	return &NotificationHandler{
		notificationRepo: notificationRepo,
	}
}

func (s *NotificationHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("notification consumer setup")
	return nil
}

func (s *NotificationHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("notification consumer cleanup")
	return nil
}

func (s *NotificationHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-interaction consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-interaction process batch error", "err", err)
		return err
	}
	return nil
}

func (s *NotificationHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	event, ok := decodeEvent[InteractionEvent](msg)
	if !ok {
		return nil
	}
	notify, ok := notifyTypes[event.Type]
	if !ok {
		log.WarnContext(ctx, "unknown interaction type", "type", event.Type)
		return nil
	}
	// 自己给自己的互动不通知
	if event.ReceiverID == 0 || event.ReceiverID == event.ActorID {
		return nil
	}

	content := notify.content
	if event.Preview != "" {
		content = content + "：" + event.Preview
	}
	return s.notificationRepo.CreateNotification(ctx, &mongo.NotificationModel{
		ReceiverID: event.ReceiverID,
		SenderID:   event.ActorID,
		Type:       notify.kind,
		BoardID:    event.BoardID,
		PostID:     event.PostID,
		TargetID:   event.TargetID,
		Content:    content,
		IsRead:     false,
		CreatedAt:  event.OccurredAt,
	})
}
