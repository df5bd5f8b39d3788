package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepo interface {
	CreateNotification(ctx context.Context, msg *NotificationModel) error
	ListNotifications(ctx context.Context, receiverID uint64, limit, offset int64) ([]*NotificationModel, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*NotificationModel, error)
	MarkAsRead(ctx context.Context, receiverID uint64, id primitive.ObjectID) error
	MarkAllAsRead(ctx context.Context, receiverID uint64) error
	GetUnreadCount(ctx context.Context, receiverID uint64) (int64, error)
}

type notificationRepoImpl struct {
	col *mongo.Collection
}

func NewNotificationRepo(db *mongo.Database) NotificationRepo {
	return &notificationRepoImpl{
		col: db.Collection("notifications"),
	}
}

func (s *notificationRepoImpl) CreateNotification(ctx context.Context, msg *NotificationModel) error {
	_, err := s.col.InsertOne(ctx, msg)
	return err
}

// ListNotifications 按时间倒序分页
func (s *notificationRepoImpl) ListNotifications(ctx context.Context, receiverID uint64, limit, offset int64) ([]*NotificationModel, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, bson.M{"receiver_id": receiverID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*NotificationModel, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *notificationRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*NotificationModel, error) {
	var msg NotificationModel
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *notificationRepoImpl) MarkAsRead(ctx context.Context, receiverID uint64, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "receiver_id": receiverID}
	result, err := s.col.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *notificationRepoImpl) MarkAllAsRead(ctx context.Context, receiverID uint64) error {
	filter := bson.M{"receiver_id": receiverID, "is_read": false}
	_, err := s.col.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"is_read": true}})
	return err
}

func (s *notificationRepoImpl) GetUnreadCount(ctx context.Context, receiverID uint64) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"receiver_id": receiverID, "is_read": false})
}
