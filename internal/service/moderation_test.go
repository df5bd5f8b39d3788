package service

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/model"
	"Tieba/internal/pkg/mongo"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetRole_OwnerRoleIsFixed(t *testing.T) {
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

	for i := 0; i < 2; i++ {
		_, err := env.members.SetRole(ctx, a, bRow, 1)
		require.NoError(t, err)
	}

	// 第二位大吧主不能调整吧主
	_, err := env.members.SetRole(ctx, b, ownerRow, -1)
	assert.ErrorIs(t, err, ErrRoleOwner)
	assert.Equal(t, Forbidden, ErrorMap[ErrRoleOwner])
	owner, err := env.memberRepo.GetMemberById(ctx, ownerRow)
	require.NoError(t, err)
	assert.Equal(t, model.MemberRoleSeniorAdmin, owner.Role)

	// 其余成员照常可调整
	m, err := env.members.SetRole(ctx, b, cRow, 1)
	require.NoError(t, err)
	assert.Equal(t, model.MemberRoleJuniorAdmin, m.Role)

	_, err = env.members.LeaveBoard(ctx, a, x)
	assert.ErrorIs(t, err, ErrBoardAdminLeave)
	ok, err := env.members.IsMember(ctx, a, x)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBanMember(t *testing.T) {
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
	p := env.post(t, a, x)
	ownerRow := env.memberID(t, a, x)
	bRow := env.memberID(t, b, x)
	cRow := env.memberID(t, c, x)
	memberCount := func() int64 {
		board, err := env.boardRepo.GetBoardById(ctx, x)
		require.NoError(t, err)
		return board.MemberCount
	}

	_, err := env.members.BanMember(ctx, c, bRow)
	assert.ErrorIs(t, err, ErrBoardAdminRequired)

	_, err = env.members.SetRole(ctx, a, cRow, 1)
	require.NoError(t, err)

	banned, err := env.members.BanMember(ctx, c, bRow)
	require.NoError(t, err)
	assert.Equal(t, model.MemberStatusBanned, banned.Status)
	assert.Equal(t, int64(2), memberCount())

	_, err = env.members.BanMember(ctx, c, bRow)
	assert.ErrorIs(t, err, ErrMemberAlreadyBanned)
	_, err = env.members.BanMember(ctx, c, ownerRow)
	assert.ErrorIs(t, err, ErrBanAdmin)
	_, err = env.members.BanMember(ctx, a, cRow)
	assert.ErrorIs(t, err, ErrBanAdmin)
	_, err = env.members.BanMember(ctx, a, 9999)
	assert.ErrorIs(t, err, ErrBoardMemberNotFound)

	// 封禁期间不能发帖、评论、重新加入或退出
	_, err = env.posts.CreatePost(ctx, b, &dto.CreatePostDTO{BoardID: x, Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrMembershipRequired)
	_, err = env.comment.CreateComment(ctx, b, &dto.CreateCommentDTO{PostID: p.ID, Content: "hi"})
	assert.ErrorIs(t, err, ErrMemberBanned)
	_, err = env.members.JoinBoard(ctx, b, x)
	assert.ErrorIs(t, err, ErrMemberBanned)
	_, err = env.members.LeaveBoard(ctx, b, x)
	assert.ErrorIs(t, err, ErrMemberBanned)
	_, err = env.toggles.Toggle(ctx, "join", "", b, x)
	assert.ErrorIs(t, err, ErrMemberBanned)

	active, err := env.memberRepo.CountActiveMembers(ctx, x)
	require.NoError(t, err)
	assert.Equal(t, active, memberCount())

	restored, err := env.members.UnbanMember(ctx, c, bRow)
	require.NoError(t, err)
	assert.Equal(t, model.MemberStatusActive, restored.Status)
	assert.Equal(t, int64(3), memberCount())
	_, err = env.members.UnbanMember(ctx, c, bRow)
	assert.ErrorIs(t, err, ErrMemberNotBanned)

	_, err = env.comment.CreateComment(ctx, b, &dto.CreateCommentDTO{PostID: p.ID, Content: "back"})
	require.NoError(t, err)

	assert.Equal(t, []string{mongo.ModActionPromote, mongo.ModActionBan, mongo.ModActionUnban}, env.moderationActions())
}

func TestAdminDelete_PublishesModeration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "alice")
	b := env.user(t, "bobby")
	x := env.board(t, a, "golang")
	_, err := env.members.JoinBoard(ctx, b, x)
	require.NoError(t, err)
	p := env.post(t, a, x)

	own, err := env.comment.CreateComment(ctx, b, &dto.CreateCommentDTO{PostID: p.ID, Content: "mine"})
	require.NoError(t, err)
	require.NoError(t, env.comment.DeleteComment(ctx, b, own.ID))
	assert.Empty(t, env.moderationActions())

	spam, err := env.comment.CreateComment(ctx, b, &dto.CreateCommentDTO{PostID: p.ID, Content: "spam"})
	require.NoError(t, err)
	require.NoError(t, env.comment.DeleteComment(ctx, a, spam.ID))

	bp := env.post(t, b, x)
	require.NoError(t, env.posts.DeletePost(ctx, a, bp.ID))

	require.Equal(t, []string{mongo.ModActionDeleteComment, mongo.ModActionDeletePost}, env.moderationActions())
	assert.Equal(t, spam.ID, env.producer.moderations[0].TargetID)
	assert.Equal(t, x, env.producer.moderations[0].BoardID)
	assert.Equal(t, bp.ID, env.producer.moderations[1].TargetID)
	assert.Equal(t, a, env.producer.moderations[1].OperatorID)
}

func TestAnnouncements(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "alice")
	b := env.user(t, "bobby")
	x := env.board(t, a, "golang")
	_, err := env.members.JoinBoard(ctx, b, x)
	require.NoError(t, err)

	_, err = env.announces.CreateAnnouncement(ctx, b, x, &dto.CreateAnnouncementDTO{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrBoardAdminRequired)
	assert.Equal(t, Forbidden, ErrorMap[ErrBoardAdminRequired])
	_, err = env.announces.CreateAnnouncement(ctx, a, 9999, &dto.CreateAnnouncementDTO{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrBoardNotFound)

	create := func(title string, top bool) *dto.AnnouncementDTO {
		res, err := env.announces.CreateAnnouncement(ctx, a, x, &dto.CreateAnnouncementDTO{Title: title, Content: "c", IsTop: top})
		require.NoError(t, err)
		return res
	}
	first := create("first", false)
	create("second", false)
	create("pinned", true)

	titles := func() []string {
		list, err := env.announces.ListAnnouncements(ctx, x, 1, 20)
		require.NoError(t, err)
		res := make([]string, 0, len(list))
		for _, item := range list {
			res = append(res, item.Title)
		}
		return res
	}
	assert.Equal(t, []string{"pinned", "second", "first"}, titles())

	_, err = env.announces.ToggleTop(ctx, b, first.ID)
	assert.ErrorIs(t, err, ErrBoardAdminRequired)

	flag, err := env.announces.ToggleTop(ctx, a, first.ID)
	require.NoError(t, err)
	assert.True(t, flag.Value)
	assert.Equal(t, []string{"pinned", "first", "second"}, titles())

	flag, err = env.announces.ToggleTop(ctx, a, first.ID)
	require.NoError(t, err)
	assert.False(t, flag.Value)
	assert.Equal(t, []string{"pinned", "second", "first"}, titles())

	_, err = env.announces.ToggleTop(ctx, a, 9999)
	assert.ErrorIs(t, err, ErrAnnouncementNotFound)

	list, err := env.announces.ListAnnouncements(ctx, x, 1, 20)
	require.NoError(t, err)
	require.NotNil(t, list[0].Author)
	assert.Equal(t, a, list[0].Author.ID)

	assert.Equal(t, []string{
		mongo.ModActionAnnounce, mongo.ModActionAnnounce, mongo.ModActionAnnounce,
		mongo.ModActionToggleAnnounceTop, mongo.ModActionToggleAnnounceTop,
	}, env.moderationActions())
}
