package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 吧务操作类型
const (
	ModActionPromote           = "promote"
	ModActionDemote            = "demote"
	ModActionTogglePostTop     = "post_top"
	ModActionTogglePostEssence = "post_essence"
	ModActionAnnounce          = "announce"
	ModActionToggleAnnounceTop = "announce_top"
	ModActionBoardStatus       = "board_status"
	ModActionBoardRecommend    = "board_recommend"
	ModActionBan               = "ban"
	ModActionUnban             = "unban"
	ModActionDeletePost        = "post_delete"
	ModActionDeleteComment     = "comment_delete"
)

// ModLogModel 吧务操作日志
type ModLogModel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID    string             `bson:"event_id" json:"eventId"`
	BoardID    uint64             `bson:"board_id" json:"boardId"`
	OperatorID uint64             `bson:"operator_id" json:"operatorId"`
	Action     string             `bson:"action" json:"action"`
	TargetID   uint64             `bson:"target_id" json:"targetId"`
	Detail     map[string]any     `bson:"detail,omitempty" json:"detail"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
