package service

import (
	"Tieba/internal/api/dto"
	"context"
)

// 通用切换接口支持的关系类型
const (
	ToggleKindLike        = "like"
	ToggleKindCollect     = "collect"
	ToggleKindCommentLike = "comment_like"
	ToggleKindFollow      = "follow"
	ToggleKindJoin        = "join"
)

const (
	ToggleEngage    = "engage"
	ToggleDisengage = "disengage"
	ToggleFlip      = "flip"
)

type toggleFunc func(ctx context.Context, actorID, targetID uint64) (*dto.ToggleDTO, error)

type toggleEntry struct {
	engage    toggleFunc
	disengage toggleFunc
	// flip 在一个事务内完成判断与切换
	flip      toggleFunc
}

type ToggleService interface {
	Toggle(ctx context.Context, kind, action string, actorID, targetID uint64) (*dto.ToggleDTO, error)
}

type toggleServiceImpl struct {
	kinds map[string]toggleEntry
}

func NewToggleService(
	actionSvc PostActionService,
	commentSvc CommentService,
	followSvc UserFollowService,
	memberSvc BoardMemberService,
) ToggleService {
	return &toggleServiceImpl{
		kinds: map[string]toggleEntry{
			ToggleKindLike: {
				engage:    actionSvc.LikePost,
				disengage: actionSvc.UnlikePost,
				flip:      actionSvc.ToggleLike,
			},
			ToggleKindCollect: {
				engage:    actionSvc.CollectPost,
				disengage: actionSvc.UncollectPost,
				flip:      actionSvc.ToggleCollect,
			},
			ToggleKindCommentLike: {
				engage:    commentSvc.LikeComment,
				disengage: commentSvc.UnlikeComment,
				flip:      commentSvc.ToggleCommentLike,
			},
			ToggleKindFollow: {
				engage:    followSvc.Follow,
				disengage: followSvc.Unfollow,
				flip:      followSvc.ToggleFollow,
			},
			ToggleKindJoin: {
				engage:    memberSvc.JoinBoard,
				disengage: memberSvc.LeaveBoard,
				flip:      memberSvc.ToggleMembership,
			},
		},
	}
}

// Toggle 按 kind 分发到对应关系，action 为空时视为 flip
func (s *toggleServiceImpl) Toggle(ctx context.Context, kind, action string, actorID, targetID uint64) (*dto.ToggleDTO, error) {
	entry, ok := s.kinds[kind]
	if !ok {
		return nil, ErrToggleKindInvalid
	}
	if actorID == 0 || targetID == 0 {
		return nil, ErrParamInvalid
	}

	switch action {
	case ToggleEngage:
		return entry.engage(ctx, actorID, targetID)
	case ToggleDisengage:
		return entry.disengage(ctx, actorID, targetID)
	case ToggleFlip, "":
		return entry.flip(ctx, actorID, targetID)
	}
	return nil, ErrParamInvalid
}
