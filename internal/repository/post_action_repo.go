package repository

import (
	"Tieba/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type PostActionRepo interface {
	LikePost(ctx context.Context, userID, postID uint64) (int64, error)
	UnlikePost(ctx context.Context, userID, postID uint64) (int64, error)
	IsLiked(ctx context.Context, userID, postID uint64) (bool, error)
	LikedAmong(ctx context.Context, userID uint64, postIDs []uint64) (map[uint64]bool, error)
	GetLikedPostIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error)
	FlipLike(ctx context.Context, userID, postID uint64) (bool, int64, error)

	CollectPost(ctx context.Context, userID, postID uint64) (int64, error)
	UncollectPost(ctx context.Context, userID, postID uint64) (int64, error)
	IsCollected(ctx context.Context, userID, postID uint64) (bool, error)
	CollectedAmong(ctx context.Context, userID uint64, postIDs []uint64) (map[uint64]bool, error)
	GetCollectedPostIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error)
	FlipCollect(ctx context.Context, userID, postID uint64) (bool, int64, error)
}

type PostActionRepoImpl struct {
	likes    *Toggler[model.PostLike]
	collects *Toggler[model.PostCollect]
}

func NewPostActionRepo(db *gorm.DB) PostActionRepo {
	return &PostActionRepoImpl{
		likes: NewToggler(db, Relation[model.PostLike]{
			Name:         "post_like",
			ActorColumn:  "user_id",
			TargetColumn: "post_id",
			NewRow: func(userID, postID uint64) *model.PostLike {
				return &model.PostLike{UserID: userID, PostID: postID, CreatedAt: time.Now()}
			},
			Counters: func(_, postID uint64) []Counter {
				return []Counter{{Table: "posts", Column: "like_count", ID: postID}}
			},
		}),
		collects: NewToggler(db, Relation[model.PostCollect]{
			Name:         "post_collect",
			ActorColumn:  "user_id",
			TargetColumn: "post_id",
			NewRow: func(userID, postID uint64) *model.PostCollect {
				return &model.PostCollect{UserID: userID, PostID: postID, CreatedAt: time.Now()}
			},
			Counters: func(_, postID uint64) []Counter {
				return []Counter{{Table: "posts", Column: "collect_count", ID: postID}}
			},
		}),
	}
}

func (s *PostActionRepoImpl) LikePost(ctx context.Context, userID, postID uint64) (int64, error) {
	return s.likes.Engage(ctx, userID, postID)
}

func (s *PostActionRepoImpl) UnlikePost(ctx context.Context, userID, postID uint64) (int64, error) {
	return s.likes.Disengage(ctx, userID, postID)
}

func (s *PostActionRepoImpl) IsLiked(ctx context.Context, userID, postID uint64) (bool, error) {
	return s.likes.IsEngaged(ctx, userID, postID)
}

func (s *PostActionRepoImpl) LikedAmong(ctx context.Context, userID uint64, postIDs []uint64) (map[uint64]bool, error) {
	return s.likes.EngagedAmong(ctx, userID, postIDs)
}

func (s *PostActionRepoImpl) GetLikedPostIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error) {
	return s.likes.TargetsOf(ctx, userID, limit, offset)
}

func (s *PostActionRepoImpl) CollectPost(ctx context.Context, userID, postID uint64) (int64, error) {
	return s.collects.Engage(ctx, userID, postID)
}

func (s *PostActionRepoImpl) UncollectPost(ctx context.Context, userID, postID uint64) (int64, error) {
	return s.collects.Disengage(ctx, userID, postID)
}

func (s *PostActionRepoImpl) IsCollected(ctx context.Context, userID, postID uint64) (bool, error) {
	return s.collects.IsEngaged(ctx, userID, postID)
}

func (s *PostActionRepoImpl) CollectedAmong(ctx context.Context, userID uint64, postIDs []uint64) (map[uint64]bool, error) {
	return s.collects.EngagedAmong(ctx, userID, postIDs)
}

func (s *PostActionRepoImpl) GetCollectedPostIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error) {
	return s.collects.TargetsOf(ctx, userID, limit, offset)
}

func (s *PostActionRepoImpl) FlipLike(ctx context.Context, userID, postID uint64) (bool, int64, error) {
	return s.likes.Flip(ctx, userID, postID)
}

func (s *PostActionRepoImpl) FlipCollect(ctx context.Context, userID, postID uint64) (bool, int64, error) {
	return s.collects.Flip(ctx, userID, postID)
}
