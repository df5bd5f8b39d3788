package model

import (
	"time"
)

type PostLike struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	PostID    uint64    `gorm:"primaryKey;index:idx_post_likes_post_id" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (PostLike) TableName() string {
	return "post_likes"
}

type PostCollect struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	PostID    uint64    `gorm:"primaryKey;index:idx_post_collects_post_id" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (PostCollect) TableName() string {
	return "post_collects"
}
