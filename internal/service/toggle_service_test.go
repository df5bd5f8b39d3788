package service

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/model"
	"Tieba/internal/pkg/kafka"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggle_Dispatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "alice")
	b := env.user(t, "bobby")
	x := env.board(t, a, "golang")
	p := env.post(t, a, x)

	_, err := env.toggles.Toggle(ctx, "poke", ToggleFlip, b, p.ID)
	assert.ErrorIs(t, err, ErrToggleKindInvalid)
	_, err = env.toggles.Toggle(ctx, ToggleKindLike, ToggleFlip, b, 0)
	assert.ErrorIs(t, err, ErrParamInvalid)
	_, err = env.toggles.Toggle(ctx, ToggleKindLike, "sideways", b, p.ID)
	assert.ErrorIs(t, err, ErrParamInvalid)

	res, err := env.toggles.Toggle(ctx, ToggleKindLike, "", b, p.ID)
	require.NoError(t, err)
	assert.True(t, res.Engaged)
	assert.Equal(t, int64(1), res.Count)

	res, err = env.toggles.Toggle(ctx, ToggleKindLike, ToggleFlip, b, p.ID)
	require.NoError(t, err)
	assert.False(t, res.Engaged)
	assert.Equal(t, int64(0), res.Count)

	_, err = env.toggles.Toggle(ctx, ToggleKindCollect, ToggleDisengage, b, p.ID)
	assert.ErrorIs(t, err, ErrActionNotFound)
	res, err = env.toggles.Toggle(ctx, ToggleKindCollect, ToggleEngage, b, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Count)
	_, err = env.toggles.Toggle(ctx, ToggleKindCollect, ToggleEngage, b, p.ID)
	assert.ErrorIs(t, err, ErrActionDuplicate)

	res, err = env.toggles.Toggle(ctx, ToggleKindJoin, ToggleFlip, b, x)
	require.NoError(t, err)
	assert.True(t, res.Engaged)
	assert.Equal(t, int64(2), res.Count)

	_, err = env.toggles.Toggle(ctx, ToggleKindJoin, ToggleFlip, a, x)
	assert.ErrorIs(t, err, ErrBoardAdminLeave)

	res, err = env.toggles.Toggle(ctx, ToggleKindFollow, ToggleFlip, b, a)
	require.NoError(t, err)
	assert.True(t, res.Engaged)
	assert.Equal(t, int64(1), res.Count)
	_, err = env.toggles.Toggle(ctx, ToggleKindFollow, ToggleFlip, a, a)
	assert.ErrorIs(t, err, ErrUserFollowSelf)
}

func TestToggle_CommentLike(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "alice")
	b := env.user(t, "bobby")
	x := env.board(t, a, "golang")
	p := env.post(t, a, x)

	_, err := env.toggles.Toggle(ctx, ToggleKindCommentLike, ToggleEngage, b, 9999)
	assert.ErrorIs(t, err, ErrPostCommentNotFound)

	c, err := env.comment.CreateComment(ctx, a, &dto.CreateCommentDTO{PostID: p.ID, Content: "first"})
	require.NoError(t, err)

	res, err := env.toggles.Toggle(ctx, ToggleKindCommentLike, "", b, c.ID)
	require.NoError(t, err)
	assert.True(t, res.Engaged)
	assert.Equal(t, int64(1), res.Count)

	floors, err := env.comment.ListFloors(ctx, b, p.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, floors, 1)
	assert.True(t, floors[0].IsLiked)
	assert.Equal(t, int64(1), floors[0].LikeCount)

	res, err = env.toggles.Toggle(ctx, ToggleKindCommentLike, "", b, c.ID)
	require.NoError(t, err)
	assert.False(t, res.Engaged)
	assert.Equal(t, int64(0), res.Count)
}

func TestToggle_ConcurrentFlips(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "alice")
	b := env.user(t, "bobby")
	x := env.board(t, a, "golang")
	p := env.post(t, a, x)

	var wg sync.WaitGroup
	for i := 0; i < 11; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, kind := range []string{ToggleKindLike, ToggleKindJoin} {
				target := p.ID
				if kind == ToggleKindJoin {
					target = x
				}
				if _, err := env.toggles.Toggle(ctx, kind, ToggleFlip, b, target); err != nil {
					t.Errorf("flip %s: %v", kind, err)
				}
			}
		}()
	}
	wg.Wait()

	liked, err := env.actions.IsLiked(ctx, b, p.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	joined, err := env.members.IsMember(ctx, b, x)
	require.NoError(t, err)
	assert.True(t, joined)

	board, err := env.boardRepo.GetBoardById(ctx, x)
	require.NoError(t, err)
	assert.Equal(t, int64(2), board.MemberCount)
	res, err := env.toggles.Toggle(ctx, ToggleKindLike, "", b, p.ID)
	require.NoError(t, err)
	assert.False(t, res.Engaged)
	assert.Equal(t, int64(0), res.Count)

	// 每次进入点赞状态各通知一次作者
	likes := 0
	for _, typ := range env.producer.interactionTypes() {
		if typ == kafka.EventPostLike {
			likes++
		}
	}
	assert.Equal(t, 6, likes)
}

func TestToggle_FlipOnUnavailableTarget(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "alice")
	b := env.user(t, "bobby")
	x := env.board(t, a, "golang")
	p := env.post(t, a, x)
	c, err := env.comment.CreateComment(ctx, a, &dto.CreateCommentDTO{PostID: p.ID, Content: "first"})
	require.NoError(t, err)

	_, err = env.toggles.Toggle(ctx, ToggleKindCommentLike, "", b, c.ID)
	require.NoError(t, err)
	require.NoError(t, env.comment.DeleteComment(ctx, a, c.ID))
	res, err := env.toggles.Toggle(ctx, ToggleKindCommentLike, "", b, c.ID)
	require.NoError(t, err)
	assert.False(t, res.Engaged)
	_, err = env.toggles.Toggle(ctx, ToggleKindCommentLike, "", b, c.ID)
	assert.ErrorIs(t, err, ErrPostCommentNotFound)

	_, err = env.toggles.Toggle(ctx, ToggleKindCollect, "", b, p.ID)
	require.NoError(t, err)
	require.NoError(t, env.posts.DeletePost(ctx, a, p.ID))
	res, err = env.toggles.Toggle(ctx, ToggleKindCollect, "", b, p.ID)
	require.NoError(t, err)
	assert.False(t, res.Engaged)
	assert.Equal(t, int64(0), res.Count)
	_, err = env.toggles.Toggle(ctx, ToggleKindCollect, "", b, p.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
	_, err = env.toggles.Toggle(ctx, ToggleKindLike, "", b, 9999)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = env.toggles.Toggle(ctx, ToggleKindJoin, "", b, x)
	require.NoError(t, err)
	require.NoError(t, env.db.Model(&model.Board{}).Where("id = ?", x).Update("status", model.BoardStatusHidden).Error)
	res, err = env.toggles.Toggle(ctx, ToggleKindJoin, "", b, x)
	require.NoError(t, err)
	assert.False(t, res.Engaged)
	_, err = env.toggles.Toggle(ctx, ToggleKindJoin, "", b, x)
	assert.ErrorIs(t, err, ErrBoardUnavailable)
	_, err = env.toggles.Toggle(ctx, ToggleKindJoin, "", b, 9999)
	assert.ErrorIs(t, err, ErrBoardNotFound)
}
