package model

import (
	"time"
)

const (
	MemberRoleMember      int8 = 0
	MemberRoleJuniorAdmin int8 = 1
	MemberRoleSeniorAdmin int8 = 2
)

// 成员状态，pending 为保留值，目前没有任何流程会写入
const (
	MemberStatusPending int8 = 0
	MemberStatusActive  int8 = 1
	MemberStatusBanned  int8 = 2
)

type BoardMember struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	UserID       uint64    `gorm:"not null;uniqueIndex:idx_board_members_user_board" json:"userId"`
	BoardID      uint64    `gorm:"not null;uniqueIndex:idx_board_members_user_board;index:idx_board_members_board_role" json:"boardId"`
	Role         int8      `gorm:"not null;default:0;index:idx_board_members_board_role" json:"role"`
	Status       int8      `gorm:"not null;default:1" json:"status"`
	PostCount    int64     `gorm:"not null;default:0" json:"postCount"`
	CommentCount int64     `gorm:"not null;default:0" json:"commentCount"`
	JoinedAt     time.Time `json:"joinedAt"`
	LastActiveAt time.Time `json:"lastActiveAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (BoardMember) TableName() string {
	return "board_members"
}

// IsAdmin 角色高于普通成员
func (m *BoardMember) IsAdmin() bool {
	return m.Role > MemberRoleMember
}
