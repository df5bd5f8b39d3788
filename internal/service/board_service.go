package service

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/model"
	"Tieba/internal/pkg/consts"
	"Tieba/internal/pkg/kafka"
	"Tieba/internal/pkg/minio"
	"Tieba/internal/pkg/mongo"
	"Tieba/internal/pkg/redis"
	"Tieba/internal/pkg/util"
	"Tieba/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

type BoardService interface {
	CreateBoard(ctx context.Context, ownerID uint64, dto *dto.CreateBoardDTO) (*dto.BoardDTO, error)
	GetBoardDetail(ctx context.Context, viewerID, boardID uint64) (*dto.BoardDTO, error)
	ListBoards(ctx context.Context, viewerID, categoryID uint64, page, pageSize int) ([]*dto.BoardDTO, error)
	ListRecommendedBoards(ctx context.Context, viewerID uint64) ([]*dto.BoardDTO, error)
	SearchBoards(ctx context.Context, viewerID uint64, keyword string, page, pageSize int) ([]*dto.BoardDTO, error)
	ListJoinedBoards(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.BoardDTO, error)
	UpdateBoardStatus(ctx context.Context, operatorID, boardID uint64, status int8) error
	SetRecommended(ctx context.Context, operatorID, boardID uint64, recommended bool) error
	CreateCategory(ctx context.Context, dto *dto.CreateCategoryDTO) (*dto.CategoryDTO, error)
	ListCategories(ctx context.Context) ([]*dto.CategoryDTO, error)
}

type boardServiceImpl struct {
	boardRepo    repository.BoardRepo
	categoryRepo repository.BoardCategoryRepo
	memberRepo   repository.BoardMemberRepo
	producer     kafka.Producer
}

func NewBoardService(
	boardRepo repository.BoardRepo,
	categoryRepo repository.BoardCategoryRepo,
	memberRepo repository.BoardMemberRepo,
	producer kafka.Producer,
) BoardService {
	return &boardServiceImpl{
		boardRepo:    boardRepo,
		categoryRepo: categoryRepo,
		memberRepo:   memberRepo,
		producer:     producer,
	}
}

// CreateBoard 建吧，创建者同时成为大吧主
func (s *boardServiceImpl) CreateBoard(ctx context.Context, ownerID uint64, req *dto.CreateBoardDTO) (*dto.BoardDTO, error) {
	if req.CategoryID != 0 {
		category, err := s.categoryRepo.GetCategoryById(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
	}

	board := &model.Board{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		AvatarURL:   req.AvatarKey,
		BannerURL:   req.BannerKey,
		OwnerID:     ownerID,
		CategoryID:  req.CategoryID,
		Status:      model.BoardStatusNormal,
	}
	owner, err := s.boardRepo.CreateBoardWithOwner(ctx, board)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrBoardNameExist
		}
		return nil, err
	}

	res := toBoardDTO(board)
	res.IsMember = true
	res.MemberRole = &owner.Role
	return res, nil
}

func (s *boardServiceImpl) GetBoardDetail(ctx context.Context, viewerID, boardID uint64) (*dto.BoardDTO, error) {
	board, err := s.boardRepo.GetBoardById(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil || board.Status == model.BoardStatusHidden {
		return nil, ErrBoardNotFound
	}

	res := toBoardDTO(board)
	if viewerID == 0 {
		return res, nil
	}
	member, err := s.memberRepo.GetMember(ctx, viewerID, boardID)
	if err != nil {
		return nil, err
	}
	if member != nil && member.Status == model.MemberStatusActive {
		res.IsMember = true
		res.MemberRole = &member.Role
	}
	return res, nil
}

func (s *boardServiceImpl) ListBoards(ctx context.Context, viewerID, categoryID uint64, page, pageSize int) ([]*dto.BoardDTO, error) {
	limit, offset := util.Paginate(page, pageSize)
	boards, err := s.boardRepo.ListBoards(ctx, categoryID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.withMembership(ctx, viewerID, toBoardDTOs(boards))
}

// ListRecommendedBoards 推荐列表缓存一分钟，成员标记按访问者实时补齐
func (s *boardServiceImpl) ListRecommendedBoards(ctx context.Context, viewerID uint64) ([]*dto.BoardDTO, error) {
	var list []*dto.BoardDTO
	if val, err := redis.GetValue(ctx, consts.BoardRecommendCacheKey); err == nil && val != "" {
		if err = json.Unmarshal([]byte(val), &list); err != nil {
			list = nil
		}
	}
	if list == nil {
		boards, err := s.boardRepo.ListRecommendedBoards(ctx, consts.RecommendLimit)
		if err != nil {
			return nil, err
		}
		list = toBoardDTOs(boards)
		if data, err := json.Marshal(list); err == nil {
			_ = redis.SetWithExpiration(ctx, consts.BoardRecommendCacheKey, string(data), time.Minute)
		}
	}
	return s.withMembership(ctx, viewerID, list)
}

func (s *boardServiceImpl) SearchBoards(ctx context.Context, viewerID uint64, keyword string, page, pageSize int) ([]*dto.BoardDTO, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrParamInvalid
	}
	limit, offset := util.Paginate(page, pageSize)
	boards, err := s.boardRepo.SearchBoards(ctx, keyword, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.withMembership(ctx, viewerID, toBoardDTOs(boards))
}

// ListJoinedBoards 我加入的贴吧，按加入时间倒序
func (s *boardServiceImpl) ListJoinedBoards(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.BoardDTO, error) {
	limit, offset := util.Paginate(page, pageSize)
	ids, err := s.memberRepo.JoinedBoardIDs(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	boards, err := s.boardRepo.GetBoardByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*model.Board, len(boards))
	for _, b := range boards {
		byID[b.ID] = b
	}
	ordered := make([]*model.Board, 0, len(ids))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			ordered = append(ordered, b)
		}
	}
	return s.withMembership(ctx, userID, toBoardDTOs(ordered))
}

// UpdateBoardStatus 站点管理员调整贴吧状态
func (s *boardServiceImpl) UpdateBoardStatus(ctx context.Context, operatorID, boardID uint64, status int8) error {
	if status < model.BoardStatusPending || status > model.BoardStatusHidden {
		return ErrParamInvalid
	}
	if err := s.updateBoard(ctx, boardID, map[string]any{"status": status}); err != nil {
		return err
	}
	s.producer.PublishModeration(ctx, &kafka.ModerationEvent{
		BoardID:    boardID,
		OperatorID: operatorID,
		Action:     mongo.ModActionBoardStatus,
		TargetID:   boardID,
		Detail:     map[string]any{"status": status},
	})
	return nil
}

func (s *boardServiceImpl) SetRecommended(ctx context.Context, operatorID, boardID uint64, recommended bool) error {
	if err := s.updateBoard(ctx, boardID, map[string]any{"is_recommended": recommended}); err != nil {
		return err
	}
	s.producer.PublishModeration(ctx, &kafka.ModerationEvent{
		BoardID:    boardID,
		OperatorID: operatorID,
		Action:     mongo.ModActionBoardRecommend,
		TargetID:   boardID,
		Detail:     map[string]any{"is_recommended": recommended},
	})
	return nil
}

func (s *boardServiceImpl) updateBoard(ctx context.Context, boardID uint64, updates map[string]any) error {
	err := s.boardRepo.UpdateBoard(ctx, boardID, updates)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrBoardNotFound
	}
	if err != nil {
		return err
	}
	if err = redis.DeleteKey(ctx, consts.BoardRecommendCacheKey); err != nil {
		log.WarnContext(ctx, "invalidate recommend cache failed", "err", err)
	}
	return nil
}

func (s *boardServiceImpl) CreateCategory(ctx context.Context, req *dto.CreateCategoryDTO) (*dto.CategoryDTO, error) {
	category := &model.BoardCategory{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		SortOrder:   req.SortOrder,
		Status:      1,
	}
	if err := s.categoryRepo.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrCategoryNameExist
		}
		return nil, err
	}
	return toCategoryDTO(category), nil
}

func (s *boardServiceImpl) ListCategories(ctx context.Context) ([]*dto.CategoryDTO, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.CategoryDTO, 0, len(categories))
	for _, c := range categories {
		res = append(res, toCategoryDTO(c))
	}
	return res, nil
}

// withMembership 补齐访问者在每个吧的成员身份
func (s *boardServiceImpl) withMembership(ctx context.Context, viewerID uint64, list []*dto.BoardDTO) ([]*dto.BoardDTO, error) {
	if viewerID == 0 || len(list) == 0 {
		return list, nil
	}
	ids := make([]uint64, 0, len(list))
	for _, b := range list {
		ids = append(ids, b.ID)
	}
	joined, err := s.memberRepo.MemberOfAmong(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}
	for _, b := range list {
		b.IsMember = joined[b.ID]
	}
	return list, nil
}

func toBoardDTO(board *model.Board) *dto.BoardDTO {
	return &dto.BoardDTO{
		ID:             board.ID,
		Name:           board.Name,
		Description:    board.Description,
		AvatarURL:      minio.GetPublicURL(board.AvatarURL),
		BannerURL:      minio.GetPublicURL(board.BannerURL),
		OwnerID:        board.OwnerID,
		CategoryID:     board.CategoryID,
		MemberCount:    board.MemberCount,
		PostCount:      board.PostCount,
		TodayPostCount: board.TodayPostCount,
		Status:         board.Status,
		IsRecommended:  board.IsRecommended,
		CreatedAt:      board.CreatedAt,
	}
}

func toBoardDTOs(boards []*model.Board) []*dto.BoardDTO {
	res := make([]*dto.BoardDTO, 0, len(boards))
	for _, b := range boards {
		res = append(res, toBoardDTO(b))
	}
	return res
}

func toCategoryDTO(c *model.BoardCategory) *dto.CategoryDTO {
	return &dto.CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		SortOrder:   c.SortOrder,
	}
}
