package dto

import "time"

type CreateBoardDTO struct {
	Name        string `json:"name" binding:"required,min=2,max=50"`
	Description string `json:"description" binding:"max=500"`
	AvatarKey   string `json:"avatar_key" binding:"max=255"`
	BannerKey   string `json:"banner_key" binding:"max=255"`
	CategoryID  uint64 `json:"category_id"`
}

type BoardDTO struct {
	ID             uint64    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	AvatarURL      string    `json:"avatar_url"`
	BannerURL      string    `json:"banner_url"`
	OwnerID        uint64    `json:"owner_id"`
	CategoryID     uint64    `json:"category_id"`
	MemberCount    int64     `json:"member_count"`
	PostCount      int64     `json:"post_count"`
	TodayPostCount int64     `json:"today_post_count"`
	Status         int8      `json:"status"`
	IsRecommended  bool      `json:"is_recommended"`
	IsMember       bool      `json:"is_member"`
	MemberRole     *int8     `json:"member_role"`
	CreatedAt      time.Time `json:"created_at"`
}

type UpdateBoardStatusDTO struct {
	Status *int8 `json:"status" binding:"required,min=0,max=3"`
}

type UpdateBoardRecommendDTO struct {
	IsRecommended *bool `json:"is_recommended" binding:"required"`
}

type CategoryDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

type CreateCategoryDTO struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description" binding:"max=255"`
	SortOrder   int    `json:"sort_order"`
}

type MemberDTO struct {
	ID           uint64         `json:"id"`
	BoardID      uint64         `json:"board_id"`
	UserID       uint64         `json:"user_id"`
	Role         int8           `json:"role"`
	Status       int8           `json:"status"`
	PostCount    int64          `json:"post_count"`
	CommentCount int64          `json:"comment_count"`
	JoinedAt     time.Time      `json:"joined_at"`
	User         *UserSimpleDTO `json:"user,omitempty"`
}

// SetRoleDTO delta 为 1 晋升一级，-1 降低一级
type SetRoleDTO struct {
	Delta int `json:"delta" binding:"required,oneof=-1 1"`
}

type AnnouncementDTO struct {
	ID        uint64         `json:"id"`
	BoardID   uint64         `json:"board_id"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	IsTop     bool           `json:"is_top"`
	Author    *UserSimpleDTO `json:"author,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type CreateAnnouncementDTO struct {
	Title   string `json:"title" binding:"required,max=100"`
	Content string `json:"content" binding:"required"`
	IsTop   bool   `json:"is_top"`
}
