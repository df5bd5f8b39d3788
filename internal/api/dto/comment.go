package dto

import "time"

// CreateCommentDTO parent_id 为 0 表示盖新楼
type CreateCommentDTO struct {
	PostID   uint64   `json:"post_id" binding:"required"`
	Content  string   `json:"content" binding:"required,max=2000"`
	ParentID uint64   `json:"parent_id"`
	Images   []string `json:"images" binding:"omitempty,max=3,dive,max=255"`
}

type CommentDTO struct {
	ID            uint64         `json:"id"`
	PostID        uint64         `json:"post_id"`
	RootID        uint64         `json:"root_id"`
	ParentID      uint64         `json:"parent_id"`
	FloorNumber   int            `json:"floor_number"`
	Content       string         `json:"content"`
	LikeCount     int64          `json:"like_count"`
	ReplyCount    int64          `json:"reply_count"`
	IsLiked       bool           `json:"is_liked"`
	Images        []*ImageDTO    `json:"images"`
	Author        *UserSimpleDTO `json:"author"`
	ReplyToUserID uint64         `json:"reply_to_user_id"`
	ReplyToUser   *UserSimpleDTO `json:"reply_to_user,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`

	Replies []*CommentDTO `json:"replies,omitempty"`
}
