package repository

import (
	"Tieba/internal/model"
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardRepo_CreateBoardWithOwner(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	board := seedBoard(t, db, owner, "golang")

	assert.Equal(t, int64(1), column[int64](t, db, "boards", "member_count", board.ID))
	member, err := NewBoardMemberRepo(db).GetMember(ctx, owner.ID, board.ID)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, model.MemberRoleSeniorAdmin, member.Role)

	_, err = NewBoardRepo(db).CreateBoardWithOwner(ctx, &model.Board{Name: "golang", OwnerID: owner.ID})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestBoardMemberRepo_JoinLeave(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	alice := seedUser(t, db, "alice")
	board := seedBoard(t, db, owner, "golang")
	repo := NewBoardMemberRepo(db)

	count, err := repo.Join(ctx, alice.ID, board.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = repo.Join(ctx, alice.ID, board.ID)
	assert.ErrorIs(t, err, ErrRelationExists)

	count, err = repo.Leave(ctx, alice.ID, board.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = repo.Leave(ctx, alice.ID, board.ID)
	assert.ErrorIs(t, err, ErrRelationNotFound)

	_, err = repo.Join(ctx, alice.ID, 9999)
	assert.True(t, errors.Is(err, ErrCounterTargetMissing))
}

func TestBoardMemberRepo_AdminCannotLeave(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	board := seedBoard(t, db, owner, "golang")
	repo := NewBoardMemberRepo(db)

	_, err := repo.Leave(ctx, owner.ID, board.ID)
	assert.ErrorIs(t, err, ErrMemberIsAdmin)

	ok, err := repo.IsMember(ctx, owner.ID, board.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1), column[int64](t, db, "boards", "member_count", board.ID))
}

// sqlite 忽略 FOR UPDATE 且测试库为单连接，这里验证的是关系行与成员数在同一事务内变更；
// 行锁路径需在 MySQL 上验证
func TestBoardMemberRepo_ConcurrentMembershipCount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	board := seedBoard(t, db, owner, "golang")
	repo := NewBoardMemberRepo(db)

	users := make([]*model.User, 20)
	for i := range users {
		users[i] = seedUser(t, db, "member"+string(rune('a'+i)))
	}

	var wg sync.WaitGroup
	for round := 0; round < 3; round++ {
		for i, u := range users {
			wg.Add(1)
			go func(i int, userID uint64) {
				defer wg.Done()
				var err error
				if (i+round)%3 == 0 {
					_, err = repo.Leave(ctx, userID, board.ID)
				} else {
					_, err = repo.Join(ctx, userID, board.ID)
				}
				if err != nil && !errors.Is(err, ErrRelationExists) && !errors.Is(err, ErrRelationNotFound) {
					t.Errorf("unexpected error: %v", err)
				}
			}(i, u.ID)
		}
	}
	wg.Wait()

	active, err := repo.CountActiveMembers(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, active, column[int64](t, db, "boards", "member_count", board.ID))
}

func TestBoardMemberRepo_ChangeRole(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	alice := seedUser(t, db, "alice")
	board := seedBoard(t, db, owner, "golang")
	repo := NewBoardMemberRepo(db)

	_, err := repo.Join(ctx, alice.ID, board.ID)
	require.NoError(t, err)
	target, err := repo.GetMember(ctx, alice.ID, board.ID)
	require.NoError(t, err)

	var (
		seenBoard    *model.Board
		seenOperator *model.BoardMember
	)
	updated, err := repo.ChangeRole(ctx, owner.ID, target.ID, func(b *model.Board, operator, member *model.BoardMember) (int8, error) {
		seenBoard, seenOperator = b, operator
		return member.Role + 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, model.MemberRoleJuniorAdmin, updated.Role)
	require.NotNil(t, seenOperator)
	assert.Equal(t, owner.ID, seenOperator.UserID)
	require.NotNil(t, seenBoard)
	assert.Equal(t, owner.ID, seenBoard.OwnerID)

	reloaded, err := repo.GetMemberById(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MemberRoleJuniorAdmin, reloaded.Role)

	// 吧务身份同样禁止直接退出
	_, err = repo.Leave(ctx, alice.ID, board.ID)
	assert.ErrorIs(t, err, ErrMemberIsAdmin)

	refused := errors.New("refused")
	_, err = repo.ChangeRole(ctx, owner.ID, target.ID, func(*model.Board, *model.BoardMember, *model.BoardMember) (int8, error) {
		return 0, refused
	})
	assert.ErrorIs(t, err, refused)

	_, err = repo.ChangeRole(ctx, owner.ID, 9999, func(*model.Board, *model.BoardMember, *model.BoardMember) (int8, error) {
		return 0, nil
	})
	assert.ErrorIs(t, err, ErrMemberNotFound)

	// 非本吧成员操作时 operator 为 nil
	outsider := seedUser(t, db, "outsider")
	_, err = repo.ChangeRole(ctx, outsider.ID, target.ID, func(_ *model.Board, operator, _ *model.BoardMember) (int8, error) {
		assert.Nil(t, operator)
		return model.MemberRoleMember, nil
	})
	require.NoError(t, err)
}

func TestBoardMemberRepo_ChangeStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	alice := seedUser(t, db, "alice")
	board := seedBoard(t, db, owner, "golang")
	repo := NewBoardMemberRepo(db)

	_, err := repo.Join(ctx, alice.ID, board.ID)
	require.NoError(t, err)
	target, err := repo.GetMember(ctx, alice.ID, board.ID)
	require.NoError(t, err)
	to := func(status int8) MemberDecider {
		return func(*model.Board, *model.BoardMember, *model.BoardMember) (int8, error) {
			return status, nil
		}
	}

	banned, err := repo.ChangeStatus(ctx, owner.ID, target.ID, to(model.MemberStatusBanned))
	require.NoError(t, err)
	assert.Equal(t, model.MemberStatusBanned, banned.Status)
	assert.Equal(t, int64(1), column[int64](t, db, "boards", "member_count", board.ID))

	// 状态不变时不重复调整计数
	_, err = repo.ChangeStatus(ctx, owner.ID, target.ID, to(model.MemberStatusBanned))
	require.NoError(t, err)
	assert.Equal(t, int64(1), column[int64](t, db, "boards", "member_count", board.ID))

	_, err = repo.Leave(ctx, alice.ID, board.ID)
	assert.ErrorIs(t, err, ErrMemberBanned)
	_, err = repo.Join(ctx, alice.ID, board.ID)
	assert.ErrorIs(t, err, ErrRelationExists)

	active, err := repo.CountActiveMembers(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, active, column[int64](t, db, "boards", "member_count", board.ID))

	restored, err := repo.ChangeStatus(ctx, owner.ID, target.ID, to(model.MemberStatusActive))
	require.NoError(t, err)
	assert.Equal(t, model.MemberStatusActive, restored.Status)
	assert.Equal(t, int64(2), column[int64](t, db, "boards", "member_count", board.ID))

	_, err = repo.Leave(ctx, alice.ID, board.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), column[int64](t, db, "boards", "member_count", board.ID))
}
