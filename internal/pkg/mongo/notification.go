package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 通知类型
const (
	NotifyPostLike    int8 = 1
	NotifyPostCollect int8 = 2
	NotifyPostReply   int8 = 3
	NotifyCommentLike int8 = 4
	NotifyFollow      int8 = 5
	NotifyFloorReply  int8 = 6
)

// NotificationModel 站内通知
type NotificationModel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReceiverID uint64             `bson:"receiver_id" json:"receiverId"`
	SenderID   uint64             `bson:"sender_id" json:"senderId"`
	Type       int8               `bson:"type" json:"type"`
	BoardID    uint64             `bson:"board_id" json:"boardId"`
	PostID     uint64             `bson:"post_id" json:"postId"`
	TargetID   uint64             `bson:"target_id" json:"targetId"`
	Content    string             `bson:"content" json:"content"`
	IsRead     bool               `bson:"is_read" json:"isRead"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
