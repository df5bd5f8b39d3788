package repository

import (
	"Tieba/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type UserFollowRepo interface {
	GetUserFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.UserFollow, error)
	GetUserFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.UserFollow, error)
	IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error)
	FollowingAmong(ctx context.Context, followerID uint64, userIDs []uint64) (map[uint64]bool, error)
	Follow(ctx context.Context, followerID, followingID uint64) (int64, error)
	Unfollow(ctx context.Context, followerID, followingID uint64) (int64, error)
	ToggleFollow(ctx context.Context, followerID, followingID uint64) (bool, int64, error)
}

type UserFollowRepoImpl struct {
	db      *gorm.DB
	toggler *Toggler[model.UserFollow]
}

func NewUserFollowRepo(db *gorm.DB) UserFollowRepo {
	return &UserFollowRepoImpl{
		db: db,
		toggler: NewToggler(db, Relation[model.UserFollow]{
			Name:         "user_follow",
			ActorColumn:  "follower_id",
			TargetColumn: "following_id",
			NewRow: func(followerID, followingID uint64) *model.UserFollow {
				return &model.UserFollow{FollowerID: followerID, FollowingID: followingID, CreatedAt: time.Now()}
			},
			// 主计数为被关注者的粉丝数
			Counters: func(followerID, followingID uint64) []Counter {
				return []Counter{
					{Table: "users", Column: "follower_count", ID: followingID},
					{Table: "users", Column: "following_count", ID: followerID},
				}
			},
		}),
	}
}

// GetUserFollowers 获取用户的粉丝列表
func (s *UserFollowRepoImpl) GetUserFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.UserFollow, error) {
	var userFollows []*model.UserFollow
	result := s.db.WithContext(ctx).
		Where("following_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&userFollows)

	if result.Error != nil {
		return nil, result.Error
	}
	return userFollows, nil
}

// GetUserFollowing 获取用户的关注列表
func (s *UserFollowRepoImpl) GetUserFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.UserFollow, error) {
	var userFollows []*model.UserFollow
	result := s.db.WithContext(ctx).
		Where("follower_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&userFollows)

	if result.Error != nil {
		return nil, result.Error
	}
	return userFollows, nil
}

func (s *UserFollowRepoImpl) IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error) {
	return s.toggler.IsEngaged(ctx, followerID, followingID)
}

func (s *UserFollowRepoImpl) FollowingAmong(ctx context.Context, followerID uint64, userIDs []uint64) (map[uint64]bool, error) {
	return s.toggler.EngagedAmong(ctx, followerID, userIDs)
}

// Follow 关注，返回被关注者最新粉丝数
func (s *UserFollowRepoImpl) Follow(ctx context.Context, followerID, followingID uint64) (int64, error) {
	return s.toggler.Engage(ctx, followerID, followingID)
}

// Unfollow 取消关注，返回被关注者最新粉丝数
func (s *UserFollowRepoImpl) Unfollow(ctx context.Context, followerID, followingID uint64) (int64, error) {
	return s.toggler.Disengage(ctx, followerID, followingID)
}

// ToggleFollow 关注状态翻转
func (s *UserFollowRepoImpl) ToggleFollow(ctx context.Context, followerID, followingID uint64) (bool, int64, error) {
	return s.toggler.Flip(ctx, followerID, followingID)
}
