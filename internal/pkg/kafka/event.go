package kafka

import "time"

// 互动事件类型
const (
	EventPostLike    = "post_like"
	EventPostCollect = "post_collect"
	EventPostReply   = "post_reply"
	EventFloorReply  = "floor_reply"
	EventCommentLike = "comment_like"
	EventFollow      = "follow"
)

// InteractionEvent 点赞、收藏、回复、关注等互动，消费端据此生成通知
type InteractionEvent struct {
	Type       string    `json:"type"`
	ActorID    uint64    `json:"actor_id"`
	ReceiverID uint64    `json:"receiver_id"`
	BoardID    uint64    `json:"board_id"`
	PostID     uint64    `json:"post_id"`
	TargetID   uint64    `json:"target_id"`
	Preview    string    `json:"preview"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ModerationEvent 吧务操作，消费端写入操作日志
type ModerationEvent struct {
	EventID    string         `json:"event_id"`
	BoardID    uint64         `json:"board_id"`
	OperatorID uint64         `json:"operator_id"`
	Action     string         `json:"action"`
	TargetID   uint64         `json:"target_id"`
	Detail     map[string]any `json:"detail,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}
