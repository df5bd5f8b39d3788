package dto

// NotificationDTO 站内通知返回对象
type NotificationDTO struct {
	ID         string `json:"id"`
	SenderID   uint64 `json:"sender_id"`
	SenderName string `json:"sender_name"`
	AvatarURL  string `json:"avatar_url"`
	Type       int8   `json:"type"` // 1-帖子点赞, 2-帖子收藏, 3-回帖, 4-评论点赞, 5-关注, 6-楼中楼回复
	BoardID    uint64 `json:"board_id"`
	PostID     uint64 `json:"post_id"`
	TargetID   uint64 `json:"target_id"`
	Content    string `json:"content"`
	IsRead     bool   `json:"is_read"`
	CreatedAt  string `json:"created_at"`
}

type NotificationUnreadDTO struct {
	UnreadCount int64 `json:"unread_count"`
}

type MarkReadDTO struct {
	MsgID string `json:"msg_id" binding:"required"`
}

// ModLogDTO 吧务操作日志
type ModLogDTO struct {
	ID         string         `json:"id"`
	BoardID    uint64         `json:"board_id"`
	OperatorID uint64         `json:"operator_id"`
	Operator   *UserSimpleDTO `json:"operator,omitempty"`
	Action     string         `json:"action"`
	TargetID   uint64         `json:"target_id"`
	Detail     map[string]any `json:"detail,omitempty"`
	CreatedAt  string         `json:"created_at"`
}
