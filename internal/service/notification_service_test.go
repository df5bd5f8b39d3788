package service

import (
	"Tieba/internal/pkg/mongo"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

type memNotificationRepo struct {
	items []*mongo.NotificationModel
}

func (m *memNotificationRepo) CreateNotification(_ context.Context, msg *mongo.NotificationModel) error {
	msg.ID = primitive.NewObjectID()
	m.items = append(m.items, msg)
	return nil
}

func (m *memNotificationRepo) ListNotifications(_ context.Context, receiverID uint64, limit, offset int64) ([]*mongo.NotificationModel, error) {
	res := make([]*mongo.NotificationModel, 0)
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].ReceiverID == receiverID {
			res = append(res, m.items[i])
		}
	}
	if offset >= int64(len(res)) {
		return nil, nil
	}
	res = res[offset:]
	if int64(len(res)) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (m *memNotificationRepo) GetByID(_ context.Context, id primitive.ObjectID) (*mongo.NotificationModel, error) {
	for _, n := range m.items {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, nil
}

func (m *memNotificationRepo) MarkAsRead(_ context.Context, receiverID uint64, id primitive.ObjectID) error {
	for _, n := range m.items {
		if n.ID == id && n.ReceiverID == receiverID {
			n.IsRead = true
			return nil
		}
	}
	return mongodriver.ErrNoDocuments
}

func (m *memNotificationRepo) MarkAllAsRead(_ context.Context, receiverID uint64) error {
	for _, n := range m.items {
		if n.ReceiverID == receiverID {
			n.IsRead = true
		}
	}
	return nil
}

func (m *memNotificationRepo) GetUnreadCount(_ context.Context, receiverID uint64) (int64, error) {
	var count int64
	for _, n := range m.items {
		if n.ReceiverID == receiverID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func TestNotificationService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "alice")
	b := env.user(t, "bobby")

	repo := &memNotificationRepo{}
	svc := NewNotificationService(repo, env.users)
	for _, content := range []string{"赞了你的帖子", "关注了你"} {
		require.NoError(t, repo.CreateNotification(ctx, &mongo.NotificationModel{
			ReceiverID: a,
			SenderID:   b,
			Type:       mongo.NotifyFollow,
			Content:    content,
			CreatedAt:  time.Now(),
		}))
	}

	list, err := svc.ListNotifications(ctx, a, 1, 20)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "关注了你", list[0].Content)
	assert.Equal(t, "bobby", list[0].SenderName)

	unread, err := svc.GetUnreadCount(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread.UnreadCount)

	assert.ErrorIs(t, svc.MarkAsRead(ctx, a, "not-hex"), ErrParamInvalid)
	assert.ErrorIs(t, svc.MarkAsRead(ctx, b, list[0].ID), ErrNotificationNotFound)
	require.NoError(t, svc.MarkAsRead(ctx, a, list[0].ID))

	unread, err = svc.GetUnreadCount(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread.UnreadCount)

	require.NoError(t, svc.MarkAllAsRead(ctx, a))
	unread, err = svc.GetUnreadCount(ctx, a)
	require.NoError(t, err)
	assert.Zero(t, unread.UnreadCount)
}

type memModLogRepo struct {
	logs []*mongo.ModLogModel
}

func (m *memModLogRepo) SaveModLog(_ context.Context, log *mongo.ModLogModel) error {
	log.ID = primitive.NewObjectID()
	m.logs = append(m.logs, log)
	return nil
}

func (m *memModLogRepo) ListModLogs(_ context.Context, boardID uint64, action string, _, _ int64) ([]*mongo.ModLogModel, error) {
	res := make([]*mongo.ModLogModel, 0)
	for _, l := range m.logs {
		if l.BoardID == boardID && (action == "" || l.Action == action) {
			res = append(res, l)
		}
	}
	return res, nil
}

func TestModLogService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "alice")
	b := env.user(t, "bobby")
	x := env.board(t, a, "golang")

	repo := &memModLogRepo{}
	svc := NewModLogService(repo, env.boardRepo, env.memberRepo, env.users)
	require.NoError(t, repo.SaveModLog(ctx, &mongo.ModLogModel{BoardID: x, OperatorID: a, Action: mongo.ModActionPromote, CreatedAt: time.Now()}))
	require.NoError(t, repo.SaveModLog(ctx, &mongo.ModLogModel{BoardID: x, OperatorID: a, Action: mongo.ModActionAnnounce, CreatedAt: time.Now()}))

	_, err := svc.ListModLogs(ctx, b, x, "", 1, 20)
	assert.ErrorIs(t, err, ErrBoardAdminRequired)
	_, err = svc.ListModLogs(ctx, a, 9999, "", 1, 20)
	assert.ErrorIs(t, err, ErrBoardNotFound)

	logs, err := svc.ListModLogs(ctx, a, x, mongo.ModActionPromote, 1, 20)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].Operator)
	assert.Equal(t, "alice", logs[0].Operator.Nickname)
}
