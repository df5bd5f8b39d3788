package dto

import "time"

// RegisterDTO 注册请求
type RegisterDTO struct {
	Username string `json:"username" binding:"required,min=4,max=20,alphanum"`
	Password string `json:"password" binding:"required,min=6,max=32"`
	Nickname string `json:"nickname" binding:"omitempty,max=20"`
}

// CredentialDTO 登录请求
type CredentialDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginDTO struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}

// UserDTO 用户主页信息
type UserDTO struct {
	ID             uint64    `json:"id"`
	Username       string    `json:"username"`
	Nickname       string    `json:"nickname"`
	AvatarURL      string    `json:"avatar_url"`
	Bio            string    `json:"bio"`
	Gender         int8      `json:"gender"`
	IsStaff        bool      `json:"is_staff"`
	FollowerCount  int64     `json:"follower_count"`
	FollowingCount int64     `json:"following_count"`
	PostCount      int64     `json:"post_count"`
	CommentCount   int64     `json:"comment_count"`
	IsFollowing    bool      `json:"is_following"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserSimpleDTO 帖子、评论中展示的作者卡片
type UserSimpleDTO struct {
	ID        uint64 `json:"id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}

// UpdateProfileDTO 字段为空表示不修改
type UpdateProfileDTO struct {
	Nickname  *string `json:"nickname" validate:"omitempty,min=1,max=20"`
	AvatarKey *string `json:"avatar_key" validate:"omitempty,max=255"`
	Bio       *string `json:"bio" validate:"omitempty,max=200"`
	Gender    *int8   `json:"gender" validate:"omitempty,min=0,max=2"`
}

// FollowUserDTO 关注/粉丝列表项
type FollowUserDTO struct {
	UserSimpleDTO
	FollowedAt time.Time `json:"followed_at"`
}
