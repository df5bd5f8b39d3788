package repository

import (
	"Tieba/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepo_CreatePostRequiresMembership(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	stranger := seedUser(t, db, "stranger")
	board := seedBoard(t, db, owner, "golang")
	repo := NewPostRepository(db)

	err := repo.CreatePost(ctx, &model.Post{AuthorID: stranger.ID, BoardID: board.ID, Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrMembershipRequired)

	require.NoError(t, db.Model(&model.BoardMember{}).
		Where("board_id = ?", board.ID).
		Update("status", model.MemberStatusBanned).Error)
	err = repo.CreatePost(ctx, &model.Post{AuthorID: owner.ID, BoardID: board.ID, Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrMembershipRequired)

	var posts int64
	require.NoError(t, db.Model(&model.Post{}).Count(&posts).Error)
	assert.Zero(t, posts)
	assert.Equal(t, int64(0), column[int64](t, db, "boards", "post_count", board.ID))
}

func TestPostRepo_Counters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	board := seedBoard(t, db, owner, "golang")
	repo := NewPostRepository(db)

	post := seedPost(t, db, owner, board)
	seedPost(t, db, owner, board)

	assert.Equal(t, int64(2), column[int64](t, db, "boards", "post_count", board.ID))
	assert.Equal(t, int64(2), column[int64](t, db, "boards", "today_post_count", board.ID))
	assert.Equal(t, int64(2), column[int64](t, db, "users", "post_count", owner.ID))

	require.NoError(t, repo.DeletePost(ctx, post.ID))
	require.NoError(t, repo.DeletePost(ctx, post.ID))
	assert.Equal(t, int64(1), column[int64](t, db, "boards", "post_count", board.ID))
	assert.Equal(t, int64(2), column[int64](t, db, "boards", "today_post_count", board.ID))
	assert.Equal(t, int64(1), column[int64](t, db, "users", "post_count", owner.ID))

	list, err := repo.ListPosts(ctx, PostFilter{BoardID: board.ID}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPostRepo_ToggleFlagAndViews(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	board := seedBoard(t, db, owner, "golang")
	repo := NewPostRepository(db)
	older := seedPost(t, db, owner, board)
	seedPost(t, db, owner, board)

	top, err := repo.ToggleFlag(ctx, older.ID, "is_top")
	require.NoError(t, err)
	assert.True(t, top)

	list, err := repo.ListPosts(ctx, PostFilter{BoardID: board.ID}, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, older.ID, list[0].ID)

	top, err = repo.ToggleFlag(ctx, older.ID, "is_top")
	require.NoError(t, err)
	assert.False(t, top)

	_, err = repo.ToggleFlag(ctx, older.ID, "status")
	assert.Error(t, err)

	require.NoError(t, repo.IncrViewCount(ctx, older.ID))
	require.NoError(t, repo.IncrViewCount(ctx, older.ID))
	assert.Equal(t, int64(2), column[int64](t, db, "posts", "view_count", older.ID))
}
