package service

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/model"
	"Tieba/internal/pkg/kafka"
	"Tieba/internal/pkg/util"
	"Tieba/internal/repository"
	"context"
	"errors"
)

var (
	likeErrs = toggleErrs{
		exists:        ErrActionDuplicate,
		absent:        ErrActionNotFound,
		targetMissing: ErrPostNotFound,
	}
	collectErrs = likeErrs
)

type PostActionService interface {
	LikePost(ctx context.Context, userID, postID uint64) (*dto.ToggleDTO, error)
	UnlikePost(ctx context.Context, userID, postID uint64) (*dto.ToggleDTO, error)
	IsLiked(ctx context.Context, userID, postID uint64) (bool, error)
	GetLikedPosts(ctx context.Context, viewerID, userID uint64, page, pageSize int) ([]*dto.PostDTO, error)
	ToggleLike(ctx context.Context, userID, postID uint64) (*dto.ToggleDTO, error)

	CollectPost(ctx context.Context, userID, postID uint64) (*dto.ToggleDTO, error)
	UncollectPost(ctx context.Context, userID, postID uint64) (*dto.ToggleDTO, error)
	IsCollected(ctx context.Context, userID, postID uint64) (bool, error)
	GetCollectedPosts(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.PostDTO, error)
	ToggleCollect(ctx context.Context, userID, postID uint64) (*dto.ToggleDTO, error)
}

type postActionServiceImpl struct {
	actionRepo repository.PostActionRepo
	postRepo   repository.PostRepo
	producer   kafka.Producer
	assembler  *postAssembler
}

func NewPostActionService(
	actionRepo repository.PostActionRepo,
	postRepo repository.PostRepo,
	userSvc UserService,
	producer kafka.Producer,
) PostActionService {
	return &postActionServiceImpl{
		actionRepo: actionRepo,
		postRepo:   postRepo,
		producer:   producer,
		assembler:  &postAssembler{userSvc: userSvc, actionRepo: actionRepo},
	}
}

func (s *postActionServiceImpl) LikePost(ctx context.Context, userID, postID uint64) (*dto.ToggleDTO, error) {
	post, err := s.getPostCheck(ctx, postID)
	if err != nil {
		return nil, err
	}
	count, err := s.actionRepo.LikePost(ctx, userID, postID)
	if err != nil {
		return nil, likeErrs.translate(err)
	}
	s.notifyAuthor(ctx, kafka.EventPostLike, userID, post)
	return &dto.ToggleDTO{Engaged: true, Count: count}, nil
}

// UnlikePost 取消点赞不要求帖子仍可见
func (s *postActionServiceImpl) UnlikePost(ctx context.Context, userID, postID uint64) (*dto.ToggleDTO, error) {
	count, err := s.actionRepo.UnlikePost(ctx, userID, postID)
	if err != nil {
		return nil, likeErrs.translate(err)
	}
	return &dto.ToggleDTO{Engaged: false, Count: count}, nil
}

func (s *postActionServiceImpl) IsLiked(ctx context.Context, userID, postID uint64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.actionRepo.IsLiked(ctx, userID, postID)
}

func (s *postActionServiceImpl) GetLikedPosts(ctx context.Context, viewerID, userID uint64, page, pageSize int) ([]*dto.PostDTO, error) {
	limit, offset := util.Paginate(page, pageSize)
	ids, err := s.actionRepo.GetLikedPostIDs(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.expandPostList(ctx, viewerID, ids)
}

func (s *postActionServiceImpl) CollectPost(ctx context.Context, userID, postID uint64) (*dto.ToggleDTO, error) {
	post, err := s.getPostCheck(ctx, postID)
	if err != nil {
		return nil, err
	}
	count, err := s.actionRepo.CollectPost(ctx, userID, postID)
	if err != nil {
		return nil, collectErrs.translate(err)
	}
	s.notifyAuthor(ctx, kafka.EventPostCollect, userID, post)
	return &dto.ToggleDTO{Engaged: true, Count: count}, nil
}

func (s *postActionServiceImpl) UncollectPost(ctx context.Context, userID, postID uint64) (*dto.ToggleDTO, error) {
	count, err := s.actionRepo.UncollectPost(ctx, userID, postID)
	if err != nil {
		return nil, collectErrs.translate(err)
	}
	return &dto.ToggleDTO{Engaged: false, Count: count}, nil
}

func (s *postActionServiceImpl) IsCollected(ctx context.Context, userID, postID uint64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.actionRepo.IsCollected(ctx, userID, postID)
}

// GetCollectedPosts 收藏夹仅本人可见
func (s *postActionServiceImpl) GetCollectedPosts(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.PostDTO, error) {
	limit, offset := util.Paginate(page, pageSize)
	ids, err := s.actionRepo.GetCollectedPostIDs(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.expandPostList(ctx, userID, ids)
}

// ToggleLike 单事务切换点赞，帖子不可见时只允许取消
func (s *postActionServiceImpl) ToggleLike(ctx context.Context, userID, postID uint64) (*dto.ToggleDTO, error) {
	return s.flip(ctx, userID, postID, s.actionRepo.FlipLike, s.actionRepo.UnlikePost, likeErrs, kafka.EventPostLike)
}

func (s *postActionServiceImpl) ToggleCollect(ctx context.Context, userID, postID uint64) (*dto.ToggleDTO, error) {
	return s.flip(ctx, userID, postID, s.actionRepo.FlipCollect, s.actionRepo.UncollectPost, collectErrs, kafka.EventPostCollect)
}

func (s *postActionServiceImpl) flip(
	ctx context.Context,
	userID, postID uint64,
	flip func(ctx context.Context, userID, postID uint64) (bool, int64, error),
	undo func(ctx context.Context, userID, postID uint64) (int64, error),
	errs toggleErrs,
	eventType string,
) (*dto.ToggleDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if !post.IsVisible() {
		count, err := undo(ctx, userID, postID)
		if errors.Is(err, repository.ErrRelationNotFound) {
			return nil, ErrPostNotFound
		}
		if err != nil {
			return nil, errs.translate(err)
		}
		return &dto.ToggleDTO{Engaged: false, Count: count}, nil
	}

	engaged, count, err := flip(ctx, userID, postID)
	if err != nil {
		return nil, errs.translate(err)
	}
	if engaged {
		s.notifyAuthor(ctx, eventType, userID, post)
	}
	return &dto.ToggleDTO{Engaged: engaged, Count: count}, nil
}

func (s *postActionServiceImpl) getPostCheck(ctx context.Context, postID uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.IsVisible() {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// expandPostList 按 ids 原顺序展开帖子，已删除的帖子直接跳过
func (s *postActionServiceImpl) expandPostList(ctx context.Context, viewerID uint64, ids []uint64) ([]*dto.PostDTO, error) {
	posts, err := s.postRepo.GetPostByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*model.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	ordered := make([]*model.Post, 0, len(posts))
	for _, id := range ids {
		if p, ok := byID[id]; ok && p.IsVisible() {
			ordered = append(ordered, p)
		}
	}
	return s.assembler.toPostDTOs(ctx, viewerID, ordered)
}

func (s *postActionServiceImpl) notifyAuthor(ctx context.Context, eventType string, actorID uint64, post *model.Post) {
	s.producer.PublishInteraction(ctx, &kafka.InteractionEvent{
		Type:       eventType,
		ActorID:    actorID,
		ReceiverID: post.AuthorID,
		BoardID:    post.BoardID,
		PostID:     post.ID,
		TargetID:   post.ID,
		Preview:    preview(post.Title, 30),
	})
}
