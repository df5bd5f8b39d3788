package model

import (
	"time"
)

const (
	PostStatusPending  int8 = 0
	PostStatusActive   int8 = 1
	PostStatusFeatured int8 = 2
	PostStatusPinned   int8 = 3
	PostStatusDeleted  int8 = 4
)

type Post struct {
	ID           uint64     `gorm:"primaryKey" json:"id"`
	AuthorID     uint64     `gorm:"not null;index:idx_posts_author_id" json:"authorId"`
	BoardID      uint64     `gorm:"not null;index:idx_posts_board_id" json:"boardId"`
	Title        string     `gorm:"type:varchar(200);not null" json:"title"`
	Content      string     `gorm:"type:text;not null" json:"content"`
	ViewCount    int64      `gorm:"not null;default:0" json:"viewCount"`
	ReplyCount   int64      `gorm:"not null;default:0" json:"replyCount"`
	LikeCount    int64      `gorm:"not null;default:0" json:"likeCount"`
	CollectCount int64      `gorm:"not null;default:0" json:"collectCount"`
	Status       int8       `gorm:"not null;default:1" json:"status"` // 0:待审核, 1:正常, 2:精华, 3:置顶, 4:已删除
	IsTop        bool       `gorm:"type:tinyint(1);not null;default:0" json:"isTop"`
	IsEssence    bool       `gorm:"type:tinyint(1);not null;default:0" json:"isEssence"`
	LastReplyAt  *time.Time `json:"lastReplyAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	// 关联关系
	Images []PostImage `gorm:"foreignKey:PostID;references:ID" json:"images"`
}

func (Post) TableName() string {
	return "posts"
}

// IsVisible 未被删除的帖子
func (p *Post) IsVisible() bool {
	return p.Status != PostStatusDeleted
}
