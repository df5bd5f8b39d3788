package service

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/model"
	"Tieba/internal/pkg/kafka"
	"Tieba/internal/pkg/util"
	"Tieba/internal/repository"
	"context"
)

var followErrs = toggleErrs{
	exists:        ErrUserFollowExist,
	absent:        ErrUserFollowNotFound,
	targetMissing: ErrUserNotFound,
}

type UserFollowService interface {
	Follow(ctx context.Context, followerID, followingID uint64) (*dto.ToggleDTO, error)
	Unfollow(ctx context.Context, followerID, followingID uint64) (*dto.ToggleDTO, error)
	ToggleFollow(ctx context.Context, followerID, followingID uint64) (*dto.ToggleDTO, error)
	IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error)
	GetUserFollowers(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.FollowUserDTO, error)
	GetUserFollowing(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.FollowUserDTO, error)
}

type UserFollowServiceImpl struct {
	userFollowRepo repository.UserFollowRepo
	userSvc        UserService
	producer       kafka.Producer
}

func NewUserFollowService(userFollowRepo repository.UserFollowRepo, userSvc UserService, producer kafka.Producer) UserFollowService {
	return &UserFollowServiceImpl{
		userFollowRepo: userFollowRepo,
		userSvc:        userSvc,
		producer:       producer,
	}
}

// Follow 关注，返回被关注者的最新粉丝数
func (s *UserFollowServiceImpl) Follow(ctx context.Context, followerID, followingID uint64) (*dto.ToggleDTO, error) {
	if followerID == followingID {
		return nil, ErrUserFollowSelf
	}
	count, err := s.userFollowRepo.Follow(ctx, followerID, followingID)
	if err != nil {
		return nil, followErrs.translate(err)
	}
	s.notifyFollow(ctx, followerID, followingID)
	return &dto.ToggleDTO{Engaged: true, Count: count}, nil
}

func (s *UserFollowServiceImpl) Unfollow(ctx context.Context, followerID, followingID uint64) (*dto.ToggleDTO, error) {
	if followerID == followingID {
		return nil, ErrUserFollowSelf
	}
	count, err := s.userFollowRepo.Unfollow(ctx, followerID, followingID)
	if err != nil {
		return nil, followErrs.translate(err)
	}
	return &dto.ToggleDTO{Engaged: false, Count: count}, nil
}

// ToggleFollow 单接口切换关注状态
func (s *UserFollowServiceImpl) ToggleFollow(ctx context.Context, followerID, followingID uint64) (*dto.ToggleDTO, error) {
	if followerID == followingID {
		return nil, ErrUserFollowSelf
	}
	engaged, count, err := s.userFollowRepo.ToggleFollow(ctx, followerID, followingID)
	if err != nil {
		return nil, followErrs.translate(err)
	}
	if engaged {
		s.notifyFollow(ctx, followerID, followingID)
	}
	return &dto.ToggleDTO{Engaged: engaged, Count: count}, nil
}

func (s *UserFollowServiceImpl) IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error) {
	if followerID == 0 || followerID == followingID {
		return false, nil
	}
	return s.userFollowRepo.IsFollowing(ctx, followerID, followingID)
}

func (s *UserFollowServiceImpl) GetUserFollowers(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.FollowUserDTO, error) {
	limit, offset := util.Paginate(page, pageSize)
	follows, err := s.userFollowRepo.GetUserFollowers(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.toFollowUsers(ctx, follows, func(f *model.UserFollow) uint64 { return f.FollowerID })
}

func (s *UserFollowServiceImpl) GetUserFollowing(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.FollowUserDTO, error) {
	limit, offset := util.Paginate(page, pageSize)
	follows, err := s.userFollowRepo.GetUserFollowing(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.toFollowUsers(ctx, follows, func(f *model.UserFollow) uint64 { return f.FollowingID })
}

func (s *UserFollowServiceImpl) toFollowUsers(ctx context.Context, follows []*model.UserFollow, pick func(*model.UserFollow) uint64) ([]*dto.FollowUserDTO, error) {
	ids := make([]uint64, 0, len(follows))
	for _, f := range follows {
		ids = append(ids, pick(f))
	}
	cards, err := s.userSvc.GetUserSimpleInfoByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.FollowUserDTO, 0, len(follows))
	for _, f := range follows {
		card, ok := cards[pick(f)]
		if !ok {
			continue
		}
		res = append(res, &dto.FollowUserDTO{UserSimpleDTO: *card, FollowedAt: f.CreatedAt})
	}
	return res, nil
}

func (s *UserFollowServiceImpl) notifyFollow(ctx context.Context, followerID, followingID uint64) {
	s.producer.PublishInteraction(ctx, &kafka.InteractionEvent{
		Type:       kafka.EventFollow,
		ActorID:    followerID,
		ReceiverID: followingID,
		TargetID:   followingID,
	})
}
