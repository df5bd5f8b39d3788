package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ModLogRepo interface {
	SaveModLog(ctx context.Context, log *ModLogModel) error
	ListModLogs(ctx context.Context, boardID uint64, action string, limit, offset int64) ([]*ModLogModel, error)
}

type modLogRepoImpl struct {
	col *mongo.Collection
}

func NewModLogRepo(db *mongo.Database) ModLogRepo {
	return &modLogRepoImpl{
		col: db.Collection("board_mod_logs"),
	}
}

// SaveModLog 以 event_id 幂等写入，消息重投不会产生重复日志
func (s *modLogRepoImpl) SaveModLog(ctx context.Context, log *ModLogModel) error {
	filter := bson.M{"event_id": log.EventID}
	update := bson.M{"$setOnInsert": log}
	_, err := s.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// ListModLogs 按吧查询，action 为空时不过滤
func (s *modLogRepoImpl) ListModLogs(ctx context.Context, boardID uint64, action string, limit, offset int64) ([]*ModLogModel, error) {
	filter := bson.M{"board_id": boardID}
	if action != "" {
		filter["action"] = action
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*ModLogModel, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}
