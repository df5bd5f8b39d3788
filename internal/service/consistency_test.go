package service

import (
	"Tieba/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "alice")
	b := env.user(t, "bobby")
	c := env.user(t, "carol")
	x := env.board(t, a, "golang")
	for _, u := range []uint64{b, c} {
		_, err := env.members.JoinBoard(ctx, u, x)
		require.NoError(t, err)
	}
	ownerRow := env.memberID(t, a, x)
	bRow := env.memberID(t, b, x)
	cRow := env.memberID(t, c, x)

	_, err := env.members.SetRole(ctx, a, bRow, 2)
	assert.ErrorIs(t, err, ErrParamInvalid)

	_, err = env.members.SetRole(ctx, b, cRow, 1)
	assert.ErrorIs(t, err, ErrBoardOwnerRequired)

	_, err = env.members.SetRole(ctx, a, ownerRow, 1)
	assert.ErrorIs(t, err, ErrRoleSelf)

	_, err = env.members.SetRole(ctx, a, bRow, -1)
	assert.ErrorIs(t, err, ErrRoleFloor)

	m, err := env.members.SetRole(ctx, a, bRow, 1)
	require.NoError(t, err)
	assert.Equal(t, model.MemberRoleJuniorAdmin, m.Role)

	m, err = env.members.SetRole(ctx, a, bRow, 1)
	require.NoError(t, err)
	assert.Equal(t, model.MemberRoleSeniorAdmin, m.Role)

	_, err = env.members.SetRole(ctx, a, bRow, 1)
	assert.ErrorIs(t, err, ErrRoleCeiling)
	assert.Equal(t, InvalidOperation, ErrorMap[ErrRoleCeiling])

	stored, err := env.memberRepo.GetMemberById(ctx, bRow)
	require.NoError(t, err)
	assert.Equal(t, model.MemberRoleSeniorAdmin, stored.Role)

	_, err = env.members.SetRole(ctx, a, 9999, 1)
	assert.ErrorIs(t, err, ErrBoardMemberNotFound)

	// 每次成功调整产生一条吧务日志
	assert.Len(t, env.producer.moderations, 2)
}

func TestLeaveBoard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "alice")
	b := env.user(t, "bobby")
	x := env.board(t, a, "golang")

	_, err := env.members.LeaveBoard(ctx, a, x)
	assert.ErrorIs(t, err, ErrBoardAdminLeave)
	assert.Equal(t, Forbidden, ErrorMap[ErrBoardAdminLeave])

	_, err = env.members.LeaveBoard(ctx, b, x)
	assert.ErrorIs(t, err, ErrBoardMemberNotFound)

	_, err = env.members.JoinBoard(ctx, b, x)
	require.NoError(t, err)
	_, err = env.members.JoinBoard(ctx, b, x)
	assert.ErrorIs(t, err, ErrBoardMemberExist)

	left, err := env.members.LeaveBoard(ctx, b, x)
	require.NoError(t, err)
	assert.False(t, left.Engaged)
	assert.Equal(t, int64(1), left.Count)

	_, err = env.members.JoinBoard(ctx, b, 9999)
	assert.ErrorIs(t, err, ErrBoardNotFound)
}

func TestFollow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "alice")
	b := env.user(t, "bobby")

	_, err := env.follows.Follow(ctx, a, a)
	assert.ErrorIs(t, err, ErrUserFollowSelf)
	assert.Equal(t, InvalidOperation, ErrorMap[ErrUserFollowSelf])
	var rows int64
	require.NoError(t, env.db.Model(&model.UserFollow{}).Count(&rows).Error)
	assert.Zero(t, rows)

	res, err := env.follows.Follow(ctx, a, b)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Count)

	_, err = env.follows.Follow(ctx, a, b)
	assert.ErrorIs(t, err, ErrUserFollowExist)

	info, err := env.users.GetUserInfo(ctx, a, b)
	require.NoError(t, err)
	assert.True(t, info.IsFollowing)
	assert.Equal(t, int64(1), info.FollowerCount)

	followers, err := env.follows.GetUserFollowers(ctx, b, 1, 20)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, a, followers[0].ID)

	res, err = env.follows.Unfollow(ctx, a, b)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Count)
	_, err = env.follows.Unfollow(ctx, a, b)
	assert.ErrorIs(t, err, ErrUserFollowNotFound)
}

func TestPostActions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "alice")
	b := env.user(t, "bobby")
	x := env.board(t, a, "golang")
	p := env.post(t, a, x)

	res, err := env.actions.LikePost(ctx, b, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Count)
	_, err = env.actions.LikePost(ctx, b, p.ID)
	assert.ErrorIs(t, err, ErrActionDuplicate)

	_, err = env.actions.CollectPost(ctx, b, p.ID)
	require.NoError(t, err)

	liked, err := env.actions.GetLikedPosts(ctx, b, b, 1, 20)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.True(t, liked[0].IsLiked)
	assert.True(t, liked[0].IsCollected)

	_, err = env.actions.LikePost(ctx, b, 9999)
	assert.ErrorIs(t, err, ErrPostNotFound)

	require.NoError(t, env.posts.DeletePost(ctx, a, p.ID))
	// 帖子删除后仍可取消点赞
	res, err = env.actions.UnlikePost(ctx, b, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Count)

	collected, err := env.actions.GetCollectedPosts(ctx, b, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, collected)
}
