package service

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/model"
	"Tieba/internal/pkg/kafka"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForumFlow_BoardPostFloorReply(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "alice")
	b := env.user(t, "bobby")

	x := env.board(t, a, "golang")
	owner, err := env.memberRepo.GetMember(ctx, a, x)
	require.NoError(t, err)
	assert.Equal(t, model.MemberStatusActive, owner.Status)
	assert.Equal(t, model.MemberRoleSeniorAdmin, owner.Role)

	joined, err := env.members.JoinBoard(ctx, b, x)
	require.NoError(t, err)
	assert.True(t, joined.Engaged)
	assert.Equal(t, int64(2), joined.Count)
	member, err := env.memberRepo.GetMember(ctx, b, x)
	require.NoError(t, err)
	assert.Equal(t, model.MemberRoleMember, member.Role)

	p := env.post(t, b, x)
	board, err := env.boards.GetBoardDetail(ctx, b, x)
	require.NoError(t, err)
	assert.Equal(t, int64(1), board.PostCount)
	assert.Equal(t, int64(1), board.TodayPostCount)
	assert.True(t, board.IsMember)

	floor, err := env.comment.CreateComment(ctx, a, &dto.CreateCommentDTO{PostID: p.ID, Content: "first"})
	require.NoError(t, err)
	assert.Equal(t, 1, floor.FloorNumber)

	reply, err := env.comment.CreateComment(ctx, b, &dto.CreateCommentDTO{PostID: p.ID, ParentID: floor.ID, Content: "thanks"})
	require.NoError(t, err)
	assert.Equal(t, 1, reply.FloorNumber)
	assert.Equal(t, floor.ID, reply.RootID)
	assert.Equal(t, a, reply.ReplyToUserID)

	detail, err := env.posts.GetPostDetail(ctx, a, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.ReplyCount)
	assert.Equal(t, int64(1), detail.ViewCount)

	floors, err := env.comment.ListFloors(ctx, a, p.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, floors, 1)
	assert.Equal(t, int64(1), floors[0].ReplyCount)
	require.Len(t, floors[0].Replies, 1)
	assert.Equal(t, reply.ID, floors[0].Replies[0].ID)

	assert.Equal(t, []string{kafka.EventPostReply, kafka.EventFloorReply}, env.producer.interactionTypes())
	assert.Equal(t, b, env.producer.interactions[0].ReceiverID)
	assert.Equal(t, a, env.producer.interactions[1].ReceiverID)
}

func TestCreatePost_RequiresMembership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "alice")
	outsider := env.user(t, "carol")
	x := env.board(t, a, "golang")

	_, err := env.posts.CreatePost(ctx, outsider, &dto.CreatePostDTO{BoardID: x, Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrMembershipRequired)
	assert.Equal(t, Forbidden, ErrorMap[ErrMembershipRequired])

	_, err = env.posts.CreatePost(ctx, a, &dto.CreatePostDTO{BoardID: 9999, Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrBoardNotFound)

	images := make([]*dto.ImageReqDTO, 10)
	_, err = env.posts.CreatePost(ctx, a, &dto.CreatePostDTO{BoardID: x, Title: "t", Content: "c", Images: images})
	assert.ErrorIs(t, err, ErrTooManyImages)

	require.NoError(t, env.db.Model(&model.Board{}).Where("id = ?", x).Update("status", model.BoardStatusBanned).Error)
	_, err = env.posts.CreatePost(ctx, a, &dto.CreatePostDTO{BoardID: x, Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrBoardUnavailable)
}

func TestCreateComment_ParentFromAnotherPost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "alice")
	x := env.board(t, a, "golang")
	p1 := env.post(t, a, x)
	p2 := env.post(t, a, x)

	floor, err := env.comment.CreateComment(ctx, a, &dto.CreateCommentDTO{PostID: p1.ID, Content: "hi"})
	require.NoError(t, err)

	_, err = env.comment.CreateComment(ctx, a, &dto.CreateCommentDTO{PostID: p2.ID, ParentID: floor.ID, Content: "hi"})
	assert.ErrorIs(t, err, ErrParentMismatch)
	assert.Equal(t, BadRequest, ErrorMap[ErrParentMismatch])

	_, err = env.comment.CreateComment(ctx, a, &dto.CreateCommentDTO{PostID: 9999, Content: "hi"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeleteComment_MasksContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "alice")
	b := env.user(t, "bobby")
	x := env.board(t, a, "golang")
	_, err := env.members.JoinBoard(ctx, b, x)
	require.NoError(t, err)
	p := env.post(t, a, x)

	c, err := env.comment.CreateComment(ctx, b, &dto.CreateCommentDTO{PostID: p.ID, Content: "spam"})
	require.NoError(t, err)

	stranger := env.user(t, "carol")
	assert.ErrorIs(t, env.comment.DeleteComment(ctx, stranger, c.ID), ErrBoardAdminRequired)

	// 吧主可删除他人评论
	require.NoError(t, env.comment.DeleteComment(ctx, a, c.ID))

	floors, err := env.comment.ListFloors(ctx, 0, p.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, floors, 1)
	assert.Equal(t, deletedCommentContent, floors[0].Content)
	assert.Equal(t, 1, floors[0].FloorNumber)
}

func TestPostAdminFlags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "alice")
	b := env.user(t, "bobby")
	x := env.board(t, a, "golang")
	_, err := env.members.JoinBoard(ctx, b, x)
	require.NoError(t, err)
	p := env.post(t, b, x)

	_, err = env.posts.SetTop(ctx, b, p.ID)
	assert.ErrorIs(t, err, ErrBoardAdminRequired)

	flag, err := env.posts.SetEssence(ctx, a, p.ID)
	require.NoError(t, err)
	assert.True(t, flag.Value)
	require.Len(t, env.producer.moderations, 1)
	assert.Equal(t, a, env.producer.moderations[0].OperatorID)

	assert.ErrorIs(t, env.posts.UpdatePost(ctx, a, p.ID, &dto.UpdatePostDTO{Title: "x", Content: "y"}), ForbiddenError)
	require.NoError(t, env.posts.UpdatePost(ctx, b, p.ID, &dto.UpdatePostDTO{Title: "x", Content: "y"}))

	require.NoError(t, env.posts.DeletePost(ctx, a, p.ID))
	_, err = env.posts.GetPostDetail(ctx, a, p.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}
