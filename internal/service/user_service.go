package service

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/model"
	"Tieba/internal/pkg/consts"
	"Tieba/internal/pkg/minio"
	"Tieba/internal/pkg/redis"
	"Tieba/internal/pkg/security"
	"Tieba/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type UserService interface {
	Register(ctx context.Context, dto *dto.RegisterDTO) (*dto.UserDTO, error)
	Login(ctx context.Context, dto *dto.CredentialDTO) (*dto.LoginDTO, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, viewerID, id uint64) (*dto.UserDTO, error)
	GetUserSimpleInfoByIds(ctx context.Context, ids []uint64) (map[uint64]*dto.UserSimpleDTO, error)
	UpdateProfile(ctx context.Context, id uint64, dto *dto.UpdateProfileDTO) error
}

type UserServiceImpl struct {
	userRepo       repository.UserRepo
	userFollowRepo repository.UserFollowRepo
}

func NewUserService(userRepo repository.UserRepo, userFollowRepo repository.UserFollowRepo) UserService {
	return &UserServiceImpl{
		userRepo:       userRepo,
		userFollowRepo: userFollowRepo,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) (*dto.UserDTO, error) {
	exist, err := s.userRepo.GetUserByUsername(ctx, regDTO.Username)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrUserUsernameExist
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return nil, err
	}

	nickname := regDTO.Nickname
	if nickname == "" {
		nickname = regDTO.Username
	}
	user := &model.User{
		Username:  regDTO.Username,
		Password:  passwordHash,
		Nickname:  nickname,
		AvatarURL: consts.DefaultAvatarURL,
		Status:    model.UserStatusActive,
	}
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrUserUsernameExist
		}
		return nil, err
	}
	return toUserDTO(user), nil
}

func (s *UserServiceImpl) Login(ctx context.Context, credential *dto.CredentialDTO) (*dto.LoginDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, credential.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if err = security.CheckPasswordHash(credential.Password, user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}
	if user.Status == model.UserStatusDisabled {
		return nil, ErrUserBan
	}

	token, err := security.GenerateToken(user.ID, rolesOf(user))
	if err != nil {
		return nil, err
	}
	if err = s.userRepo.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		log.WarnContext(ctx, "update last login failed", "user_id", user.ID, "err", err)
	}
	return &dto.LoginDTO{Token: token, User: toUserDTO(user)}, nil
}

// Logout 签名进入黑名单，过期时间与 Token 剩余有效期一致
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	ttl := time.Hour * 24
	if claims, err := security.ValidateToken(token); err == nil {
		ttl = security.RemainingTTL(claims)
	}
	if ttl <= 0 {
		return nil
	}
	return redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, true, ttl)
}

// GetUserInfo 用户主页，viewerID 为 0 表示游客
func (s *UserServiceImpl) GetUserInfo(ctx context.Context, viewerID, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	userDTO := toUserDTO(user)
	if viewerID != 0 && viewerID != id {
		userDTO.IsFollowing, err = s.userFollowRepo.IsFollowing(ctx, viewerID, id)
		if err != nil {
			return nil, err
		}
	}
	return userDTO, nil
}

// GetUserSimpleInfoByIds 批量获取作者卡片，优先读缓存
func (s *UserServiceImpl) GetUserSimpleInfoByIds(ctx context.Context, ids []uint64) (map[uint64]*dto.UserSimpleDTO, error) {
	mp := make(map[uint64]*dto.UserSimpleDTO, len(ids))
	missIds := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := mp[id]; ok || id == 0 {
			continue
		}
		value, err := redis.GetValue(ctx, consts.UserSimpleInfoKey+strconv.FormatUint(id, 10))
		if err != nil {
			return nil, err
		}
		if value == "" {
			missIds = append(missIds, id)
			continue
		}
		var card dto.UserSimpleDTO
		if err = json.Unmarshal([]byte(value), &card); err != nil {
			missIds = append(missIds, id)
			continue
		}
		mp[id] = &card
	}
	if len(missIds) == 0 {
		return mp, nil
	}

	users, err := s.userRepo.GetUserByIds(ctx, missIds)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		card := &dto.UserSimpleDTO{
			ID:        user.ID,
			Nickname:  user.Nickname,
			AvatarURL: minio.GetPublicURL(user.AvatarURL),
		}
		mp[user.ID] = card
		jsonStr, err := json.Marshal(card)
		if err != nil {
			return nil, err
		}
		if err = redis.SetWithExpiration(ctx, consts.UserSimpleInfoKey+strconv.FormatUint(user.ID, 10), string(jsonStr), time.Hour); err != nil {
			return nil, err
		}
	}
	return mp, nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, id uint64, profile *dto.UpdateProfileDTO) error {
	lockValue := uuid.NewString()
	lockKey := consts.UserSimpleInfoKey + "lock:" + strconv.FormatUint(id, 10)
	lock, err := redis.TryLock(ctx, lockKey, lockValue, time.Second*5, 3)
	if err != nil {
		return err
	}
	if !lock {
		return UnExpectedError
	}
	defer redis.UnLock(ctx, lockKey, lockValue)

	updates := make(map[string]any)
	if profile.Nickname != nil {
		updates["nickname"] = *profile.Nickname
	}
	if profile.AvatarKey != nil {
		updates["avatar_url"] = *profile.AvatarKey
	}
	if profile.Bio != nil {
		updates["bio"] = *profile.Bio
	}
	if profile.Gender != nil {
		updates["gender"] = *profile.Gender
	}
	if len(updates) == 0 {
		return nil
	}
	if err = s.userRepo.UpdateUserProfile(ctx, id, updates); err != nil {
		return err
	}
	return redis.DeleteKey(ctx, consts.UserSimpleInfoKey+strconv.FormatUint(id, 10))
}

func rolesOf(user *model.User) []string {
	if user.IsStaff {
		return []string{security.RoleUser, security.RoleAdmin}
	}
	return []string{security.RoleUser}
}

func toUserDTO(user *model.User) *dto.UserDTO {
	userDTO := &dto.UserDTO{}
	_ = copier.Copy(userDTO, user)
	userDTO.AvatarURL = minio.GetPublicURL(user.AvatarURL)
	return userDTO
}
