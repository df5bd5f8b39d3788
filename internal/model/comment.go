package model

import (
	"time"
)

const (
	CommentStatusPending int8 = 0
	CommentStatusNormal  int8 = 1
	CommentStatusDeleted int8 = 2
)

// Comment 楼层与楼中楼共用一张表：RootID 为 0 表示楼层，否则为挂在 RootID 楼层下的回复
type Comment struct {
	ID            uint64    `gorm:"primaryKey" json:"id"`
	PostID        uint64    `gorm:"not null;index:idx_comments_post_floor" json:"postId"`
	AuthorID      uint64    `gorm:"not null;index:idx_comments_author_id" json:"authorId"`
	RootID        uint64    `gorm:"not null;default:0;index:idx_comments_root_id" json:"rootId"`
	ParentID      uint64    `gorm:"not null;default:0" json:"parentId"`
	ReplyToUserID uint64    `gorm:"not null;default:0" json:"replyToUserId"`
	Content       string    `gorm:"type:varchar(2000);not null" json:"content"`
	FloorNumber   int       `gorm:"not null;default:0;index:idx_comments_post_floor" json:"floorNumber"`
	LikeCount     int64     `gorm:"not null;default:0" json:"likeCount"`
	ReplyCount    int64     `gorm:"not null;default:0" json:"replyCount"`
	Status        int8      `gorm:"not null;default:1" json:"status"` // 0:待审核, 1:正常, 2:已删除
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Images []CommentImage `gorm:"foreignKey:CommentID;references:ID" json:"images"`
}

func (Comment) TableName() string {
	return "comments"
}

// IsFloor 是否为楼层（一级评论）
func (c *Comment) IsFloor() bool {
	return c.RootID == 0
}

// FloorID 所属楼层的评论 ID
func (c *Comment) FloorID() uint64 {
	if c.IsFloor() {
		return c.ID
	}
	return c.RootID
}
