package model

import "time"

type PostImage struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	PostID      uint64    `gorm:"not null;index:idx_post_images_post_sort" json:"postId"`
	ImageKey    string    `gorm:"type:varchar(255);not null" json:"imageKey"`
	Description string    `gorm:"type:varchar(255)" json:"description"`
	Width       int       `gorm:"not null;default:0" json:"width"`
	Height      int       `gorm:"not null;default:0" json:"height"`
	SortOrder   int       `gorm:"not null;default:0;index:idx_post_images_post_sort" json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (PostImage) TableName() string {
	return "post_images"
}
