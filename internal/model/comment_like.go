package model

import "time"

type CommentLike struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	CommentID uint64    `gorm:"primaryKey;index:idx_comment_likes_comment_id" json:"commentId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (CommentLike) TableName() string {
	return "comment_likes"
}

type CommentImage struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	CommentID uint64    `gorm:"not null;index:idx_comment_images_comment_sort" json:"commentId"`
	ImageKey  string    `gorm:"type:varchar(255);not null" json:"imageKey"`
	Width     int       `gorm:"not null;default:0" json:"width"`
	Height    int       `gorm:"not null;default:0" json:"height"`
	SortOrder int       `gorm:"not null;default:0;index:idx_comment_images_comment_sort" json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}

func (CommentImage) TableName() string {
	return "comment_images"
}
