package model

import (
	"time"
)

type BoardAnnouncement struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	BoardID   uint64    `gorm:"not null;index:idx_board_announcements_board_id" json:"boardId"`
	AuthorID  uint64    `gorm:"not null" json:"authorId"`
	Title     string    `gorm:"type:varchar(100);not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	IsTop     bool      `gorm:"type:tinyint(1);not null;default:0" json:"isTop"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (BoardAnnouncement) TableName() string {
	return "board_announcements"
}
