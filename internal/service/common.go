package service

import (
	"Tieba/internal/model"
	"Tieba/internal/repository"
	"context"
	"errors"
	"unicode/utf8"
)

// toggleErrs 切换类操作的仓储错误与业务错误的对应关系
type toggleErrs struct {
	exists        error
	absent        error
	targetMissing error
}

func (t toggleErrs) translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrRelationExists):
		return t.exists
	case errors.Is(err, repository.ErrRelationNotFound):
		return t.absent
	case errors.Is(err, repository.ErrCounterTargetMissing):
		return t.targetMissing
	}
	return err
}

// requireBoardAdmin 正常状态且角色不低于小吧主
func requireBoardAdmin(ctx context.Context, memberRepo repository.BoardMemberRepo, userID, boardID uint64) (*model.BoardMember, error) {
	member, err := memberRepo.GetMember(ctx, userID, boardID)
	if err != nil {
		return nil, err
	}
	if member == nil || member.Status != model.MemberStatusActive || !member.IsAdmin() {
		return nil, ErrBoardAdminRequired
	}
	return member, nil
}

// preview 截取通知中展示的内容片段
func preview(content string, limit int) string {
	if utf8.RuneCountInString(content) <= limit {
		return content
	}
	runes := []rune(content)
	return string(runes[:limit]) + "..."
}
