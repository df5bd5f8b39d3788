package repository

import (
	"Tieba/internal/model"
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentById(ctx context.Context, id uint64) (*model.Comment, error)
	ListFloors(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error)
	ListReplies(ctx context.Context, rootID uint64, limit, offset int) ([]*model.Comment, error)
	ListRepliesByRoots(ctx context.Context, rootIDs []uint64) ([]*model.Comment, error)
	DeleteComment(ctx context.Context, id uint64) error

	LikeComment(ctx context.Context, userID, commentID uint64) (int64, error)
	UnlikeComment(ctx context.Context, userID, commentID uint64) (int64, error)
	FlipCommentLike(ctx context.Context, userID, commentID uint64) (bool, int64, error)
	CommentLikedAmong(ctx context.Context, userID uint64, commentIDs []uint64) (map[uint64]bool, error)
}

type CommentRepoImpl struct {
	db    *gorm.DB
	likes *Toggler[model.CommentLike]
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{
		db: db,
		likes: NewToggler(db, Relation[model.CommentLike]{
			Name:         "comment_like",
			ActorColumn:  "user_id",
			TargetColumn: "comment_id",
			NewRow: func(userID, commentID uint64) *model.CommentLike {
				return &model.CommentLike{UserID: userID, CommentID: commentID, CreatedAt: time.Now()}
			},
			Counters: func(_, commentID uint64) []Counter {
				return []Counter{{Table: "comments", Column: "like_count", ID: commentID}}
			},
		}),
	}
}

// CreateComment 在持有帖子行锁的事务内分配楼层号并累加各级回复计数。
// 一级评论楼层号为当前最大楼层加一；回复沿用所在楼层的楼层号，RootID 指向楼层，ParentID 指向直接回复对象
func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post model.Post
		if err := tx.Select("id", "board_id", "status").First(&post, comment.PostID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostUnavailable
			}
			return err
		}

		var parent *model.Comment
		if comment.ParentID != 0 {
			parent = &model.Comment{}
			if err := tx.First(parent, comment.ParentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrParentNotFound
				}
				return err
			}
			if parent.PostID != comment.PostID {
				return ErrParentPostMismatch
			}
			if parent.Status == model.CommentStatusDeleted {
				return ErrParentNotFound
			}
		}

		counters := []Counter{
			{Table: "posts", Column: "reply_count", ID: comment.PostID},
			{Table: "users", Column: "comment_count", ID: comment.AuthorID},
		}
		if parent != nil {
			counters = append(counters, Counter{Table: "comments", Column: "reply_count", ID: parent.ID})
		}
		var memberIDs []uint64
		err := tx.Model(&model.BoardMember{}).
			Where("user_id = ? AND board_id = ?", comment.AuthorID, post.BoardID).
			Limit(1).
			Pluck("id", &memberIDs).Error
		if err != nil {
			return err
		}
		if len(memberIDs) > 0 {
			counters = append(counters, Counter{Table: "board_members", Column: "comment_count", ID: memberIDs[0]})
		}

		if err = lockRows(tx, counters); err != nil {
			return err
		}
		// 加锁后重新确认帖子状态
		if err = tx.Select("id", "status").First(&post, comment.PostID).Error; err != nil {
			return err
		}
		if !post.IsVisible() {
			return ErrPostUnavailable
		}
		// 父评论行同样已加锁，排除与删除并发
		if parent != nil {
			if err = tx.Select("id", "status").First(parent, parent.ID).Error; err != nil {
				return err
			}
			if parent.Status == model.CommentStatusDeleted {
				return ErrParentNotFound
			}
		}

		if parent == nil {
			var maxFloor int
			err = tx.Model(&model.Comment{}).
				Where("post_id = ? AND root_id = ?", comment.PostID, 0).
				Select("COALESCE(MAX(floor_number), 0)").
				Scan(&maxFloor).Error
			if err != nil {
				return err
			}
			comment.RootID = 0
			comment.FloorNumber = maxFloor + 1
			comment.ReplyToUserID = 0
		} else {
			comment.RootID = parent.FloorID()
			comment.FloorNumber = parent.FloorNumber
			comment.ReplyToUserID = parent.AuthorID
		}

		if err = tx.Create(comment).Error; err != nil {
			return err
		}
		for _, c := range counters {
			if err = incrCounter(tx, c); err != nil {
				return err
			}
		}
		now := time.Now()
		if err = tx.Model(&model.Post{}).Where("id = ?", comment.PostID).UpdateColumn("last_reply_at", now).Error; err != nil {
			return err
		}
		if len(memberIDs) > 0 {
			return tx.Model(&model.BoardMember{}).Where("id = ?", memberIDs[0]).UpdateColumn("last_active_at", now).Error
		}
		return nil
	})
}

func (s *CommentRepoImpl) GetCommentById(ctx context.Context, id uint64) (*model.Comment, error) {
	comment := &model.Comment{}
	err := s.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return comment, nil
}

// ListFloors 按楼层号升序获取一级评论
func (s *CommentRepoImpl) ListFloors(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	err := s.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("post_id = ? AND root_id = ?", postID, 0).
		Order("floor_number ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

// ListReplies 楼中楼按创建时间排序
func (s *CommentRepoImpl) ListReplies(ctx context.Context, rootID uint64, limit, offset int) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	err := s.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("root_id = ?", rootID).
		Order("created_at ASC").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (s *CommentRepoImpl) ListRepliesByRoots(ctx context.Context, rootIDs []uint64) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	if len(rootIDs) == 0 {
		return comments, nil
	}
	err := s.db.WithContext(ctx).
		Where("root_id IN ?", rootIDs).
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error
	return comments, err
}

// DeleteComment 软删除评论并回退回复计数，楼层号保持不变
func (s *CommentRepoImpl) DeleteComment(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment model.Comment
		if err := tx.First(&comment, id).Error; err != nil {
			return err
		}
		if comment.Status == model.CommentStatusDeleted {
			return nil
		}
		// board_members.comment_count 记录吧内活跃度，删除时不回退
		counters := []Counter{
			{Table: "posts", Column: "reply_count", ID: comment.PostID},
			{Table: "users", Column: "comment_count", ID: comment.AuthorID},
		}
		if comment.ParentID != 0 {
			counters = append(counters, Counter{Table: "comments", Column: "reply_count", ID: comment.ParentID})
		}
		counters = append(counters, Counter{Table: "comments", ID: comment.ID})
		if err := lockRows(tx, counters); err != nil {
			return err
		}
		result := tx.Model(&model.Comment{}).
			Where("id = ? AND status <> ?", id, model.CommentStatusDeleted).
			UpdateColumn("status", model.CommentStatusDeleted)
		if result.Error != nil || result.RowsAffected == 0 {
			return result.Error
		}
		for _, c := range counters {
			if c.Column == "" {
				continue
			}
			if err := decrCounter(tx, c); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *CommentRepoImpl) LikeComment(ctx context.Context, userID, commentID uint64) (int64, error) {
	return s.likes.Engage(ctx, userID, commentID)
}

func (s *CommentRepoImpl) UnlikeComment(ctx context.Context, userID, commentID uint64) (int64, error) {
	return s.likes.Disengage(ctx, userID, commentID)
}

func (s *CommentRepoImpl) FlipCommentLike(ctx context.Context, userID, commentID uint64) (bool, int64, error) {
	return s.likes.Flip(ctx, userID, commentID)
}

func (s *CommentRepoImpl) CommentLikedAmong(ctx context.Context, userID uint64, commentIDs []uint64) (map[uint64]bool, error) {
	return s.likes.EngagedAmong(ctx, userID, commentIDs)
}
