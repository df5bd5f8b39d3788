package model

import (
	"time"
)

const (
	BoardStatusPending int8 = 0
	BoardStatusNormal  int8 = 1
	BoardStatusBanned  int8 = 2
	BoardStatusHidden  int8 = 3
)

// BoardCategory 贴吧分类
type BoardCategory struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_board_categories_name" json:"name"`
	Description string    `gorm:"type:varchar(255)" json:"description"`
	SortOrder   int       `gorm:"not null;default:0" json:"sortOrder"`
	Status      int8      `gorm:"not null;default:1" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (BoardCategory) TableName() string {
	return "board_categories"
}

// Board 贴吧
type Board struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_boards_name" json:"name"`
	Description    string    `gorm:"type:varchar(500)" json:"description"`
	AvatarURL      string    `gorm:"type:varchar(255)" json:"avatarUrl"`
	BannerURL      string    `gorm:"type:varchar(255)" json:"bannerUrl"`
	OwnerID        uint64    `gorm:"not null;index:idx_boards_owner_id" json:"ownerId"`
	CategoryID     uint64    `gorm:"not null;default:0;index:idx_boards_category_id" json:"categoryId"`
	MemberCount    int64     `gorm:"not null;default:0" json:"memberCount"`
	PostCount      int64     `gorm:"not null;default:0" json:"postCount"`
	TodayPostCount int64     `gorm:"not null;default:0" json:"todayPostCount"`
	Status         int8      `gorm:"not null;default:1" json:"status"` // 0:待审核, 1:正常, 2:封禁, 3:隐藏
	IsRecommended  bool      `gorm:"type:tinyint(1);not null;default:0" json:"isRecommended"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Board) TableName() string {
	return "boards"
}
