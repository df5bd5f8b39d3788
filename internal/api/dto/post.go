package dto

import "time"

type ImageReqDTO struct {
	Key         string `json:"key" binding:"required,max=255"`
	Description string `json:"description" binding:"max=255"`
}

type CreatePostDTO struct {
	BoardID uint64         `json:"board_id" binding:"required"`
	Title   string         `json:"title" binding:"required,max=200"`
	Content string         `json:"content" binding:"required"`
	Images  []*ImageReqDTO `json:"images" binding:"omitempty,max=9,dive"`
}

type UpdatePostDTO struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
}

type ImageDTO struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

type PostDTO struct {
	ID           uint64         `json:"id"`
	BoardID      uint64         `json:"board_id"`
	Title        string         `json:"title"`
	Content      string         `json:"content"`
	ViewCount    int64          `json:"view_count"`
	ReplyCount   int64          `json:"reply_count"`
	LikeCount    int64          `json:"like_count"`
	CollectCount int64          `json:"collect_count"`
	Status       int8           `json:"status"`
	IsTop        bool           `json:"is_top"`
	IsEssence    bool           `json:"is_essence"`
	IsLiked      bool           `json:"is_liked"`
	IsCollected  bool           `json:"is_collected"`
	LastReplyAt  *time.Time     `json:"last_reply_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Images       []*ImageDTO    `json:"images"`
	Author       *UserSimpleDTO `json:"author"`
}

// PostQueryDTO 帖子列表查询参数
type PostQueryDTO struct {
	BoardID   uint64 `form:"board_id"`
	AuthorID  uint64 `form:"author_id"`
	Status    *int8  `form:"status" binding:"omitempty,min=0,max=4"`
	IsEssence bool   `form:"is_essence"`
	Keyword   string `form:"keyword" binding:"max=50"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
}

// FlagDTO 置顶、加精等开关的最新状态
type FlagDTO struct {
	Value bool `json:"value"`
}
