package repository

import (
	"Tieba/internal/model"
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostFilter 帖子列表过滤条件，零值字段不参与过滤
type PostFilter struct {
	BoardID   uint64
	AuthorID  uint64
	Status    *int8
	IsEssence bool
	Keyword   string
}

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error)
	ListPosts(ctx context.Context, filter PostFilter, limit, offset int) ([]*model.Post, error)
	IncrViewCount(ctx context.Context, id uint64) error
	ToggleFlag(ctx context.Context, id uint64, column string) (bool, error)
	UpdatePostContent(ctx context.Context, id uint64, title, content string) error
	DeletePost(ctx context.Context, id uint64) error
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

// CreatePost 校验作者为吧内正常成员后发帖，并在同一事务内累加吧、作者与成员的发帖计数
func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var memberIDs []uint64
		err := tx.Model(&model.BoardMember{}).
			Where("user_id = ? AND board_id = ?", post.AuthorID, post.BoardID).
			Limit(1).
			Pluck("id", &memberIDs).Error
		if err != nil {
			return err
		}
		if len(memberIDs) == 0 {
			return ErrMembershipRequired
		}

		counters := []Counter{
			{Table: "boards", Column: "post_count", ID: post.BoardID},
			{Table: "boards", Column: "today_post_count", ID: post.BoardID},
			{Table: "users", Column: "post_count", ID: post.AuthorID},
			{Table: "board_members", Column: "post_count", ID: memberIDs[0]},
		}
		if err = lockRows(tx, counters); err != nil {
			return err
		}

		// 持有行锁后再确认成员状态，避免与退出并发
		var member model.BoardMember
		if err = tx.First(&member, memberIDs[0]).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMembershipRequired
			}
			return err
		}
		if member.Status != model.MemberStatusActive {
			return ErrMembershipRequired
		}

		if err = tx.Create(post).Error; err != nil {
			return err
		}
		for _, c := range counters {
			if err = incrCounter(tx, c); err != nil {
				return err
			}
		}
		return tx.Model(&model.BoardMember{}).
			Where("id = ?", member.ID).
			UpdateColumn("last_active_at", time.Now()).Error
	})
}

func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	if len(ids) == 0 {
		return posts, nil
	}
	err := s.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id IN ?", ids).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPosts 置顶优先，其次按发布时间倒序
func (s *PostRepoImpl) ListPosts(ctx context.Context, filter PostFilter, limit, offset int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	query := s.db.WithContext(ctx).Model(&model.Post{})
	if filter.BoardID != 0 {
		query = query.Where("board_id = ?", filter.BoardID)
	}
	if filter.AuthorID != 0 {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	} else {
		query = query.Where("status <> ?", model.PostStatusDeleted)
	}
	if filter.IsEssence {
		query = query.Where("is_essence = ?", true)
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", like, like)
	}
	err := query.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("is_top DESC").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// IncrViewCount 浏览数无条件加一
func (s *PostRepoImpl) IncrViewCount(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// ToggleFlag 翻转 is_top / is_essence，返回翻转后的值
func (s *PostRepoImpl) ToggleFlag(ctx context.Context, id uint64, column string) (bool, error) {
	if column != "is_top" && column != "is_essence" {
		return false, errors.Errorf("unsupported post flag %q", column)
	}
	var next bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post model.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&post, id).Error; err != nil {
			return err
		}
		next = !post.IsTop
		if column == "is_essence" {
			next = !post.IsEssence
		}
		return tx.Model(&model.Post{}).
			Where("id = ?", id).
			UpdateColumn(column, next).Error
	})
	return next, err
}

func (s *PostRepoImpl) UpdatePostContent(ctx context.Context, id uint64, title, content string) error {
	return s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ? AND status <> ?", id, model.PostStatusDeleted).
		Updates(map[string]any{"title": title, "content": content}).Error
}

// DeletePost 软删除帖子，并回退吧与作者的发帖数；当日发帖数不回退
func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post model.Post
		if err := tx.First(&post, id).Error; err != nil {
			return err
		}
		if post.Status == model.PostStatusDeleted {
			return nil
		}
		counters := []Counter{
			{Table: "boards", Column: "post_count", ID: post.BoardID},
			{Table: "posts", ID: post.ID},
			{Table: "users", Column: "post_count", ID: post.AuthorID},
		}
		if err := lockRows(tx, counters); err != nil {
			return err
		}
		result := tx.Model(&model.Post{}).
			Where("id = ? AND status <> ?", id, model.PostStatusDeleted).
			UpdateColumn("status", model.PostStatusDeleted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
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
