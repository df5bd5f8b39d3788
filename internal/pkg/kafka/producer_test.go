package kafka

import (
	"context"
	"testing"

	"github.com/IBM/sarama/mocks"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestSaramaProducer_FillsEventMeta(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	p := &saramaProducer{producer: mock, interactionTopic: "interaction", moderationTopic: "moderation"}

	var sent ModerationEvent
	mock.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		return json.Unmarshal(val, &sent)
	})
	mock.ExpectSendMessageAndSucceed()

	event := &ModerationEvent{BoardID: 7, OperatorID: 1, Action: "promote"}
	p.PublishModeration(context.Background(), event)
	assert.NotEmpty(t, sent.EventID)
	assert.Equal(t, event.EventID, sent.EventID)
	assert.False(t, sent.OccurredAt.IsZero())

	interaction := &InteractionEvent{Type: EventFollow, ActorID: 1, ReceiverID: 2}
	p.PublishInteraction(context.Background(), interaction)
	assert.False(t, interaction.OccurredAt.IsZero())

	assert.NoError(t, p.Close())
}

func TestSaramaProducer_SendFailureIsSwallowed(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	p := &saramaProducer{producer: mock, interactionTopic: "interaction", moderationTopic: "moderation"}

	mock.ExpectSendMessageAndFail(errors.New("broker down"))
	assert.NotPanics(t, func() {
		p.PublishInteraction(context.Background(), &InteractionEvent{Type: EventPostLike, ReceiverID: 2})
	})
	assert.NoError(t, p.Close())
}
