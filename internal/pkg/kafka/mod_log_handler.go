package kafka

import (
	"Tieba/internal/pkg/mongo"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

type ModLogHandler struct {
	modLogRepo mongo.ModLogRepo
}

func NewModLogHandler(modLogRepo mongo.ModLogRepo) *ModLogHandler {
	return &ModLogHandler{
		modLogRepo: modLogRepo,
	}
}

func (s *ModLogHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("mod log consumer setup")
	return nil
}

func (s *ModLogHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("mod log consumer cleanup")
	return nil
}

func (s *ModLogHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-moderation consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-moderation process batch error", "err", err)
		return err
	}
	return nil
}

func (s *ModLogHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	event, ok := decodeEvent[ModerationEvent](msg)
	if !ok || event.EventID == "" || event.BoardID == 0 {
		return nil
	}
	return s.modLogRepo.SaveModLog(ctx, &mongo.ModLogModel{
		EventID:    event.EventID,
		BoardID:    event.BoardID,
		OperatorID: event.OperatorID,
		Action:     event.Action,
		TargetID:   event.TargetID,
		Detail:     event.Detail,
		CreatedAt:  event.OccurredAt,
	})
}
