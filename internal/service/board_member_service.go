package service

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/model"
	"Tieba/internal/pkg/kafka"
	"Tieba/internal/pkg/mongo"
	"Tieba/internal/pkg/util"
	"Tieba/internal/repository"
	"context"
	"errors"
)

var memberErrs = toggleErrs{
	exists:        ErrBoardMemberExist,
	absent:        ErrBoardMemberNotFound,
	targetMissing: ErrBoardNotFound,
}

type BoardMemberService interface {
	JoinBoard(ctx context.Context, userID, boardID uint64) (*dto.ToggleDTO, error)
	LeaveBoard(ctx context.Context, userID, boardID uint64) (*dto.ToggleDTO, error)
	ToggleMembership(ctx context.Context, userID, boardID uint64) (*dto.ToggleDTO, error)
	IsMember(ctx context.Context, userID, boardID uint64) (bool, error)
	SetRole(ctx context.Context, operatorID, memberID uint64, delta int) (*dto.MemberDTO, error)
	BanMember(ctx context.Context, operatorID, memberID uint64) (*dto.MemberDTO, error)
	UnbanMember(ctx context.Context, operatorID, memberID uint64) (*dto.MemberDTO, error)
	ListMembers(ctx context.Context, boardID uint64, page, pageSize int) ([]*dto.MemberDTO, error)
}

type boardMemberServiceImpl struct {
	boardRepo  repository.BoardRepo
	memberRepo repository.BoardMemberRepo
	userSvc    UserService
	producer   kafka.Producer
}

func NewBoardMemberService(
	boardRepo repository.BoardRepo,
	memberRepo repository.BoardMemberRepo,
	userSvc UserService,
	producer kafka.Producer,
) BoardMemberService {
	return &boardMemberServiceImpl{
		boardRepo:  boardRepo,
		memberRepo: memberRepo,
		userSvc:    userSvc,
		producer:   producer,
	}
}

// JoinBoard 加入贴吧，仅正常状态的吧可加入
func (s *boardMemberServiceImpl) JoinBoard(ctx context.Context, userID, boardID uint64) (*dto.ToggleDTO, error) {
	board, err := s.boardRepo.GetBoardById(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrBoardNotFound
	}
	if board.Status != model.BoardStatusNormal {
		return nil, ErrBoardUnavailable
	}
	member, err := s.memberRepo.GetMember(ctx, userID, boardID)
	if err != nil {
		return nil, err
	}
	if member != nil && member.Status == model.MemberStatusBanned {
		return nil, ErrMemberBanned
	}

	count, err := s.memberRepo.Join(ctx, userID, boardID)
	if err != nil {
		return nil, memberErrs.translate(err)
	}
	return &dto.ToggleDTO{Engaged: true, Count: count}, nil
}

// LeaveBoard 退出贴吧，吧务需先卸任，被封禁成员不能退出
func (s *boardMemberServiceImpl) LeaveBoard(ctx context.Context, userID, boardID uint64) (*dto.ToggleDTO, error) {
	count, err := s.memberRepo.Leave(ctx, userID, boardID)
	if err != nil {
		return nil, translateMemberErr(err)
	}
	return &dto.ToggleDTO{Engaged: false, Count: count}, nil
}

// ToggleMembership 单事务切换成员关系，封禁中的成员两个方向都被拒绝
func (s *boardMemberServiceImpl) ToggleMembership(ctx context.Context, userID, boardID uint64) (*dto.ToggleDTO, error) {
	board, err := s.boardRepo.GetBoardById(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrBoardNotFound
	}
	if board.Status != model.BoardStatusNormal {
		// 不可加入的吧只允许退出
		res, err := s.LeaveBoard(ctx, userID, boardID)
		if errors.Is(err, ErrBoardMemberNotFound) {
			return nil, ErrBoardUnavailable
		}
		return res, err
	}

	engaged, count, err := s.memberRepo.Flip(ctx, userID, boardID)
	if err != nil {
		return nil, translateMemberErr(err)
	}
	return &dto.ToggleDTO{Engaged: engaged, Count: count}, nil
}

func translateMemberErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrMemberIsAdmin):
		return ErrBoardAdminLeave
	case errors.Is(err, repository.ErrMemberBanned):
		return ErrMemberBanned
	}
	return memberErrs.translate(err)
}

func (s *boardMemberServiceImpl) IsMember(ctx context.Context, userID, boardID uint64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.memberRepo.IsMember(ctx, userID, boardID)
}

// SetRole 大吧主将同吧成员的角色升降一级
func (s *boardMemberServiceImpl) SetRole(ctx context.Context, operatorID, memberID uint64, delta int) (*dto.MemberDTO, error) {
	if delta != 1 && delta != -1 {
		return nil, ErrParamInvalid
	}

	var before int8
	member, err := s.memberRepo.ChangeRole(ctx, operatorID, memberID, func(board *model.Board, operator, target *model.BoardMember) (int8, error) {
		before = target.Role
		return decideRole(board, operator, target, delta)
	})
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return nil, ErrBoardMemberNotFound
		}
		return nil, err
	}

	action := mongo.ModActionPromote
	if delta < 0 {
		action = mongo.ModActionDemote
	}
	s.producer.PublishModeration(ctx, &kafka.ModerationEvent{
		BoardID:    member.BoardID,
		OperatorID: operatorID,
		Action:     action,
		TargetID:   member.UserID,
		Detail:     map[string]any{"from": before, "to": member.Role},
	})
	return toMemberDTO(member), nil
}

// decideRole 在目标成员行锁内执行，保证同一成员的并发调整串行。吧主的成员记录始终为大吧主
func decideRole(board *model.Board, operator, target *model.BoardMember, delta int) (int8, error) {
	if operator == nil || operator.Status != model.MemberStatusActive || operator.Role != model.MemberRoleSeniorAdmin {
		return 0, ErrBoardOwnerRequired
	}
	if operator.ID == target.ID {
		return 0, ErrRoleSelf
	}
	if target.UserID == board.OwnerID {
		return 0, ErrRoleOwner
	}
	if target.Status != model.MemberStatusActive {
		return 0, ErrBoardMemberNotFound
	}
	next := int(target.Role) + delta
	if next > int(model.MemberRoleSeniorAdmin) {
		return 0, ErrRoleCeiling
	}
	if next < int(model.MemberRoleMember) {
		return 0, ErrRoleFloor
	}
	return int8(next), nil
}

// BanMember 吧务封禁普通成员，成员数随之减一
func (s *boardMemberServiceImpl) BanMember(ctx context.Context, operatorID, memberID uint64) (*dto.MemberDTO, error) {
	return s.changeStatus(ctx, operatorID, memberID, model.MemberStatusBanned, mongo.ModActionBan)
}

// UnbanMember 吧务解除封禁，成员数随之加一
func (s *boardMemberServiceImpl) UnbanMember(ctx context.Context, operatorID, memberID uint64) (*dto.MemberDTO, error) {
	return s.changeStatus(ctx, operatorID, memberID, model.MemberStatusActive, mongo.ModActionUnban)
}

func (s *boardMemberServiceImpl) changeStatus(ctx context.Context, operatorID, memberID uint64, next int8, action string) (*dto.MemberDTO, error) {
	member, err := s.memberRepo.ChangeStatus(ctx, operatorID, memberID, func(_ *model.Board, operator, target *model.BoardMember) (int8, error) {
		return decideStatus(operator, target, next)
	})
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return nil, ErrBoardMemberNotFound
		}
		return nil, err
	}

	s.producer.PublishModeration(ctx, &kafka.ModerationEvent{
		BoardID:    member.BoardID,
		OperatorID: operatorID,
		Action:     action,
		TargetID:   member.UserID,
	})
	return toMemberDTO(member), nil
}

// decideStatus 小吧主及以上可封禁或解封普通成员，吧务(含吧主)本身不可被封禁
func decideStatus(operator, target *model.BoardMember, next int8) (int8, error) {
	if operator == nil || operator.Status != model.MemberStatusActive || !operator.IsAdmin() {
		return 0, ErrBoardAdminRequired
	}
	if target.IsAdmin() {
		return 0, ErrBanAdmin
	}
	switch next {
	case model.MemberStatusBanned:
		if target.Status == model.MemberStatusBanned {
			return 0, ErrMemberAlreadyBanned
		}
		if target.Status != model.MemberStatusActive {
			return 0, ErrBoardMemberNotFound
		}
	case model.MemberStatusActive:
		if target.Status != model.MemberStatusBanned {
			return 0, ErrMemberNotBanned
		}
	default:
		return 0, ErrParamInvalid
	}
	return next, nil
}

func (s *boardMemberServiceImpl) ListMembers(ctx context.Context, boardID uint64, page, pageSize int) ([]*dto.MemberDTO, error) {
	limit, offset := util.Paginate(page, pageSize)
	members, err := s.memberRepo.ListMembers(ctx, boardID, limit, offset)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	cards, err := s.userSvc.GetUserSimpleInfoByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.MemberDTO, 0, len(members))
	for _, m := range members {
		d := toMemberDTO(m)
		d.User = cards[m.UserID]
		res = append(res, d)
	}
	return res, nil
}

func toMemberDTO(m *model.BoardMember) *dto.MemberDTO {
	return &dto.MemberDTO{
		ID:           m.ID,
		BoardID:      m.BoardID,
		UserID:       m.UserID,
		Role:         m.Role,
		Status:       m.Status,
		PostCount:    m.PostCount,
		CommentCount: m.CommentCount,
		JoinedAt:     m.JoinedAt,
	}
}
