package service

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/pkg/consts"
	"Tieba/internal/pkg/redis"
	"Tieba/internal/pkg/security"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterLoginLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Register(ctx, &dto.RegisterDTO{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Nickname)

	_, err = env.users.Register(ctx, &dto.RegisterDTO{Username: "alice", Password: "secret2"})
	assert.ErrorIs(t, err, ErrUserUsernameExist)

	_, err = env.users.Login(ctx, &dto.CredentialDTO{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)
	_, err = env.users.Login(ctx, &dto.CredentialDTO{Username: "nobody", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	res, err := env.users.Login(ctx, &dto.CredentialDTO{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	claims, err := security.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	require.NoError(t, env.users.Logout(ctx, res.Token))
	signature, err := security.ExtractSignature(res.Token)
	require.NoError(t, err)
	blacklisted, err := redis.GetValue(ctx, consts.TokenBlacklistKey+signature)
	require.NoError(t, err)
	assert.NotEmpty(t, blacklisted)
}

func TestUserService_ProfileInvalidatesCard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.user(t, "alice")

	cards, err := env.users.GetUserSimpleInfoByIds(ctx, []uint64{id, id, 0})
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "alice", cards[id].Nickname)

	nickname := "Alice"
	require.NoError(t, env.users.UpdateProfile(ctx, id, &dto.UpdateProfileDTO{Nickname: &nickname}))

	cards, err = env.users.GetUserSimpleInfoByIds(ctx, []uint64{id})
	require.NoError(t, err)
	assert.Equal(t, "Alice", cards[id].Nickname)

	_, err = env.users.GetUserInfo(ctx, 0, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
