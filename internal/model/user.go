package model

import (
	"time"
)

const (
	UserStatusDisabled   int8 = 0
	UserStatusActive     int8 = 1
	UserStatusUnverified int8 = 2
)

type User struct {
	ID             uint64     `gorm:"primaryKey" json:"id"`
	Username       string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_users_username" json:"username"`
	Password       string     `gorm:"type:varchar(255);not null" json:"-"`
	Nickname       string     `gorm:"type:varchar(50)" json:"nickname"`
	AvatarURL      string     `gorm:"type:varchar(255)" json:"avatarUrl"`
	Bio            string     `gorm:"type:varchar(500)" json:"bio"`
	Gender         int8       `gorm:"not null;default:0" json:"gender"` // 0:未知, 1:男, 2:女
	Status         int8       `gorm:"not null;default:1" json:"status"` // 0:禁用, 1:正常, 2:未验证
	IsStaff        bool       `gorm:"type:tinyint(1);not null;default:0" json:"isStaff"`
	FollowerCount  int64      `gorm:"not null;default:0" json:"followerCount"`
	FollowingCount int64      `gorm:"not null;default:0" json:"followingCount"`
	PostCount      int64      `gorm:"not null;default:0" json:"postCount"`
	CommentCount   int64      `gorm:"not null;default:0" json:"commentCount"`
	LastLoginAt    *time.Time `json:"lastLoginAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
