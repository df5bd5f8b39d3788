package service

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/model"
	"Tieba/internal/pkg/consts"
	"Tieba/internal/pkg/kafka"
	"Tieba/internal/pkg/mongo"
	"Tieba/internal/pkg/util"
	"Tieba/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"

	"gorm.io/gorm"
)

type PostService interface {
	CreatePost(ctx context.Context, authorID uint64, dto *dto.CreatePostDTO) (*dto.PostDTO, error)
	GetPostDetail(ctx context.Context, viewerID, postID uint64) (*dto.PostDTO, error)
	ListPosts(ctx context.Context, viewerID uint64, query *dto.PostQueryDTO) ([]*dto.PostDTO, error)
	UpdatePost(ctx context.Context, userID, postID uint64, dto *dto.UpdatePostDTO) error
	DeletePost(ctx context.Context, userID, postID uint64) error
	SetTop(ctx context.Context, operatorID, postID uint64) (*dto.FlagDTO, error)
	SetEssence(ctx context.Context, operatorID, postID uint64) (*dto.FlagDTO, error)
}

type postServiceImpl struct {
	postRepo   repository.PostRepo
	boardRepo  repository.BoardRepo
	memberRepo repository.BoardMemberRepo
	mediaSvc   MediaService
	producer   kafka.Producer
	assembler  *postAssembler
}

func NewPostService(
	postRepo repository.PostRepo,
	boardRepo repository.BoardRepo,
	memberRepo repository.BoardMemberRepo,
	actionRepo repository.PostActionRepo,
	userSvc UserService,
	mediaSvc MediaService,
	producer kafka.Producer,
) PostService {
	return &postServiceImpl{
		postRepo:   postRepo,
		boardRepo:  boardRepo,
		memberRepo: memberRepo,
		mediaSvc:   mediaSvc,
		producer:   producer,
		assembler:  &postAssembler{userSvc: userSvc, actionRepo: actionRepo},
	}
}

// CreatePost 发帖，作者须为该吧正常成员
func (s *postServiceImpl) CreatePost(ctx context.Context, authorID uint64, req *dto.CreatePostDTO) (*dto.PostDTO, error) {
	if len(req.Images) > consts.MaxPostImages {
		return nil, ErrTooManyImages
	}
	board, err := s.boardRepo.GetBoardById(ctx, req.BoardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrBoardNotFound
	}
	if board.Status != model.BoardStatusNormal {
		return nil, ErrBoardUnavailable
	}

	keys := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		keys = append(keys, img.Key)
	}
	metas, err := s.mediaSvc.Resolve(ctx, authorID, keys)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		AuthorID: authorID,
		BoardID:  req.BoardID,
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		Status:   model.PostStatusActive,
		Images:   make([]model.PostImage, 0, len(req.Images)),
	}
	for i, img := range req.Images {
		post.Images = append(post.Images, model.PostImage{
			ImageKey:    img.Key,
			Description: img.Description,
			Width:       metas[i].Width,
			Height:      metas[i].Height,
			SortOrder:   i,
		})
	}

	if err = s.mediaSvc.Persist(ctx, keys); err != nil {
		return nil, err
	}
	if err = s.postRepo.CreatePost(ctx, post); err != nil {
		if errors.Is(err, repository.ErrMembershipRequired) {
			return nil, ErrMembershipRequired
		}
		return nil, err
	}
	s.mediaSvc.Release(ctx, keys)

	log.InfoContext(ctx, "post created", "post_id", post.ID, "board_id", post.BoardID, "author_id", authorID)
	return s.assembler.toPostDTO(ctx, authorID, post)
}

// GetPostDetail 获取帖子详情，每次访问浏览数加一
func (s *postServiceImpl) GetPostDetail(ctx context.Context, viewerID, postID uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.IsVisible() {
		return nil, ErrPostNotFound
	}
	if err = s.postRepo.IncrViewCount(ctx, postID); err != nil {
		log.WarnContext(ctx, "failed to increase view count", "post_id", postID, "err", err)
	} else {
		post.ViewCount++
	}
	return s.assembler.toPostDTO(ctx, viewerID, post)
}

func (s *postServiceImpl) ListPosts(ctx context.Context, viewerID uint64, query *dto.PostQueryDTO) ([]*dto.PostDTO, error) {
	limit, offset := util.Paginate(query.Page, query.PageSize)
	posts, err := s.postRepo.ListPosts(ctx, repository.PostFilter{
		BoardID:   query.BoardID,
		AuthorID:  query.AuthorID,
		Status:    query.Status,
		IsEssence: query.IsEssence,
		Keyword:   strings.TrimSpace(query.Keyword),
	}, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.assembler.toPostDTOs(ctx, viewerID, posts)
}

// UpdatePost 仅作者本人可编辑
func (s *postServiceImpl) UpdatePost(ctx context.Context, userID, postID uint64, req *dto.UpdatePostDTO) error {
	post, err := s.visiblePost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return ForbiddenError
	}
	return s.postRepo.UpdatePostContent(ctx, postID, strings.TrimSpace(req.Title), req.Content)
}

// DeletePost 作者或本吧吧务可删除
func (s *postServiceImpl) DeletePost(ctx context.Context, userID, postID uint64) error {
	post, err := s.visiblePost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		if _, err = requireBoardAdmin(ctx, s.memberRepo, userID, post.BoardID); err != nil {
			return err
		}
	}
	if err = s.postRepo.DeletePost(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	if post.AuthorID != userID {
		s.producer.PublishModeration(ctx, &kafka.ModerationEvent{
			BoardID:    post.BoardID,
			OperatorID: userID,
			Action:     mongo.ModActionDeletePost,
			TargetID:   postID,
			Detail:     map[string]any{"author_id": post.AuthorID, "title": post.Title},
		})
	}
	return nil
}

func (s *postServiceImpl) SetTop(ctx context.Context, operatorID, postID uint64) (*dto.FlagDTO, error) {
	return s.toggleFlag(ctx, operatorID, postID, "is_top", mongo.ModActionTogglePostTop)
}

func (s *postServiceImpl) SetEssence(ctx context.Context, operatorID, postID uint64) (*dto.FlagDTO, error) {
	return s.toggleFlag(ctx, operatorID, postID, "is_essence", mongo.ModActionTogglePostEssence)
}

func (s *postServiceImpl) toggleFlag(ctx context.Context, operatorID, postID uint64, column, action string) (*dto.FlagDTO, error) {
	post, err := s.visiblePost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if _, err = requireBoardAdmin(ctx, s.memberRepo, operatorID, post.BoardID); err != nil {
		return nil, err
	}
	value, err := s.postRepo.ToggleFlag(ctx, postID, column)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	s.producer.PublishModeration(ctx, &kafka.ModerationEvent{
		BoardID:    post.BoardID,
		OperatorID: operatorID,
		Action:     action,
		TargetID:   postID,
		Detail:     map[string]any{"value": value},
	})
	return &dto.FlagDTO{Value: value}, nil
}

func (s *postServiceImpl) visiblePost(ctx context.Context, postID uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.IsVisible() {
		return nil, ErrPostNotFound
	}
	return post, nil
}
