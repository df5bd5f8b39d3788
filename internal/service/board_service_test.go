package service

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/model"
	"Tieba/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardService_CreateAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "alice")
	b := env.user(t, "bobby")

	created, err := env.boards.CreateBoard(ctx, a, &dto.CreateBoardDTO{Name: " golang "})
	require.NoError(t, err)
	assert.Equal(t, "golang", created.Name)
	assert.Equal(t, int64(1), created.MemberCount)
	assert.True(t, created.IsMember)
	require.NotNil(t, created.MemberRole)
	assert.Equal(t, model.MemberRoleSeniorAdmin, *created.MemberRole)

	_, err = env.boards.CreateBoard(ctx, b, &dto.CreateBoardDTO{Name: "golang"})
	assert.ErrorIs(t, err, ErrBoardNameExist)
	_, err = env.boards.CreateBoard(ctx, b, &dto.CreateBoardDTO{Name: "rust", CategoryID: 42})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	env.board(t, b, "gopher")
	found, err := env.boards.SearchBoards(ctx, a, "go", 1, 20)
	require.NoError(t, err)
	require.Len(t, found, 2)
	for _, board := range found {
		assert.Equal(t, board.OwnerID == a, board.IsMember)
	}
	_, err = env.boards.SearchBoards(ctx, a, "  ", 1, 20)
	assert.ErrorIs(t, err, ErrParamInvalid)

	joined, err := env.boards.ListJoinedBoards(ctx, a, 1, 20)
	require.NoError(t, err)
	require.Len(t, joined, 1)
	assert.Equal(t, created.ID, joined[0].ID)
}

func TestBoardService_StatusAndRecommend(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "alice")
	x := env.board(t, a, "golang")

	list, err := env.boards.ListRecommendedBoards(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, env.boards.SetRecommended(ctx, 1, x, true))
	list, err = env.boards.ListRecommendedBoards(ctx, a)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsMember)

	assert.ErrorIs(t, env.boards.UpdateBoardStatus(ctx, 1, x, 9), ErrParamInvalid)
	assert.ErrorIs(t, env.boards.UpdateBoardStatus(ctx, 1, 9999, model.BoardStatusBanned), ErrBoardNotFound)

	require.NoError(t, env.boards.UpdateBoardStatus(ctx, 1, x, model.BoardStatusHidden))
	_, err = env.boards.GetBoardDetail(ctx, a, x)
	assert.ErrorIs(t, err, ErrBoardNotFound)
	assert.Len(t, env.producer.moderations, 2)
}

func TestBoardMetricService_Trend(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "alice")
	b := env.user(t, "bobby")
	x := env.board(t, a, "golang")
	env.post(t, a, x)

	boardRepo := env.boardRepo
	metrics := NewBoardMetricService(repository.NewBoardMetricRepository(env.db), boardRepo, env.memberRepo)

	board, err := boardRepo.GetBoardById(ctx, x)
	require.NoError(t, err)
	require.NoError(t, metrics.SyncBoardMetric(ctx, board))

	_, err = metrics.GetBoardMetricsBy7Days(ctx, b, x)
	assert.ErrorIs(t, err, ErrBoardAdminRequired)
	_, err = metrics.GetBoardMetricsBy7Days(ctx, a, 9999)
	assert.ErrorIs(t, err, ErrBoardNotFound)

	trend, err := metrics.GetBoardMetricsBy7Days(ctx, a, x)
	require.NoError(t, err)
	require.Len(t, trend.Members, 7)
	assert.Equal(t, int64(1), trend.Members[6].Value)
	assert.Equal(t, int64(1), trend.Posts[6].Value)
	assert.Equal(t, int64(1), trend.TodayPosts[6].Value)
	assert.Equal(t, int64(0), trend.Members[0].Value)

	// 第二次读取命中缓存
	env.post(t, a, x)
	cached, err := metrics.GetBoardMetricsBy7Days(ctx, a, x)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cached.Posts[6].Value)

	// 重新同步后缓存失效
	board, err = boardRepo.GetBoardById(ctx, x)
	require.NoError(t, err)
	require.NoError(t, metrics.SyncBoardMetric(ctx, board))
	fresh, err := metrics.GetBoardMetricsBy30Days(ctx, a, x)
	require.NoError(t, err)
	require.Len(t, fresh.Posts, 30)
	assert.Equal(t, int64(2), fresh.Posts[29].Value)
}
