package service

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/model"
	"Tieba/internal/pkg/consts"
	"Tieba/internal/pkg/kafka"
	"Tieba/internal/pkg/minio"
	"Tieba/internal/pkg/mongo"
	"Tieba/internal/pkg/util"
	"Tieba/internal/repository"
	"context"
	"errors"

	"gorm.io/gorm"
)

const (
	replyPreviewSize      = 3
	deletedCommentContent = "该内容已被删除"
)

var commentLikeErrs = toggleErrs{
	exists:        ErrActionDuplicate,
	absent:        ErrActionNotFound,
	targetMissing: ErrPostCommentNotFound,
}

type CommentService interface {
	CreateComment(ctx context.Context, authorID uint64, dto *dto.CreateCommentDTO) (*dto.CommentDTO, error)
	ListFloors(ctx context.Context, viewerID, postID uint64, page, pageSize int) ([]*dto.CommentDTO, error)
	ListReplies(ctx context.Context, viewerID, rootID uint64, page, pageSize int) ([]*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, userID, commentID uint64) error
	LikeComment(ctx context.Context, userID, commentID uint64) (*dto.ToggleDTO, error)
	ToggleCommentLike(ctx context.Context, userID, commentID uint64) (*dto.ToggleDTO, error)
	UnlikeComment(ctx context.Context, userID, commentID uint64) (*dto.ToggleDTO, error)
	IsCommentLiked(ctx context.Context, userID, commentID uint64) (bool, error)
}

type commentServiceImpl struct {
	commentRepo repository.CommentRepo
	postRepo    repository.PostRepo
	memberRepo  repository.BoardMemberRepo
	userSvc     UserService
	mediaSvc    MediaService
	producer    kafka.Producer
}

func NewCommentService(
	commentRepo repository.CommentRepo,
	postRepo repository.PostRepo,
	memberRepo repository.BoardMemberRepo,
	userSvc UserService,
	mediaSvc MediaService,
	producer kafka.Producer,
) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		memberRepo:  memberRepo,
		userSvc:     userSvc,
		mediaSvc:    mediaSvc,
		producer:    producer,
	}
}

// CreateComment parent_id 为 0 时盖新楼，否则挂在父评论所在楼层下
func (s *commentServiceImpl) CreateComment(ctx context.Context, authorID uint64, req *dto.CreateCommentDTO) (*dto.CommentDTO, error) {
	if len(req.Images) > consts.MaxCommentImage {
		return nil, ErrTooManyImages
	}
	post, err := s.postRepo.GetPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.IsVisible() {
		return nil, ErrPostNotFound
	}
	member, err := s.memberRepo.GetMember(ctx, authorID, post.BoardID)
	if err != nil {
		return nil, err
	}
	if member != nil && member.Status == model.MemberStatusBanned {
		return nil, ErrMemberBanned
	}

	metas, err := s.mediaSvc.Resolve(ctx, authorID, req.Images)
	if err != nil {
		return nil, err
	}
	comment := &model.Comment{
		PostID:   req.PostID,
		AuthorID: authorID,
		ParentID: req.ParentID,
		Content:  req.Content,
		Status:   model.CommentStatusNormal,
		Images:   make([]model.CommentImage, 0, len(req.Images)),
	}
	for i, key := range req.Images {
		comment.Images = append(comment.Images, model.CommentImage{
			ImageKey:  key,
			Width:     metas[i].Width,
			Height:    metas[i].Height,
			SortOrder: i,
		})
	}

	if err = s.mediaSvc.Persist(ctx, req.Images); err != nil {
		return nil, err
	}
	if err = s.commentRepo.CreateComment(ctx, comment); err != nil {
		switch {
		case errors.Is(err, repository.ErrPostUnavailable):
			return nil, ErrPostNotFound
		case errors.Is(err, repository.ErrParentNotFound):
			return nil, ErrPostCommentNotFound
		case errors.Is(err, repository.ErrParentPostMismatch):
			return nil, ErrParentMismatch
		}
		return nil, err
	}
	s.mediaSvc.Release(ctx, req.Images)

	event := &kafka.InteractionEvent{
		Type:       kafka.EventPostReply,
		ActorID:    authorID,
		ReceiverID: post.AuthorID,
		BoardID:    post.BoardID,
		PostID:     post.ID,
		TargetID:   comment.ID,
		Preview:    preview(comment.Content, 50),
	}
	if !comment.IsFloor() {
		event.Type = kafka.EventFloorReply
		event.ReceiverID = comment.ReplyToUserID
	}
	s.producer.PublishInteraction(ctx, event)

	list, err := s.toCommentDTOs(ctx, authorID, []*model.Comment{comment})
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

// ListFloors 楼层按楼层号升序，每层附带最早的几条楼中楼
func (s *commentServiceImpl) ListFloors(ctx context.Context, viewerID, postID uint64, page, pageSize int) ([]*dto.CommentDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.IsVisible() {
		return nil, ErrPostNotFound
	}

	limit, offset := util.Paginate(page, pageSize)
	floors, err := s.commentRepo.ListFloors(ctx, postID, limit, offset)
	if err != nil {
		return nil, err
	}
	rootIDs := make([]uint64, 0, len(floors))
	for _, f := range floors {
		rootIDs = append(rootIDs, f.ID)
	}
	replies, err := s.commentRepo.ListRepliesByRoots(ctx, rootIDs)
	if err != nil {
		return nil, err
	}
	previews := make([]*model.Comment, 0, len(replies))
	perRoot := make(map[uint64]int, len(floors))
	for _, r := range replies {
		if perRoot[r.RootID] >= replyPreviewSize {
			continue
		}
		perRoot[r.RootID]++
		previews = append(previews, r)
	}

	all := make([]*model.Comment, 0, len(floors)+len(previews))
	all = append(all, floors...)
	all = append(all, previews...)
	dtos, err := s.toCommentDTOs(ctx, viewerID, all)
	if err != nil {
		return nil, err
	}

	res := dtos[:len(floors)]
	index := make(map[uint64]*dto.CommentDTO, len(floors))
	for _, d := range res {
		index[d.ID] = d
	}
	for _, d := range dtos[len(floors):] {
		if floor, ok := index[d.RootID]; ok {
			floor.Replies = append(floor.Replies, d)
		}
	}
	return res, nil
}

// ListReplies 某一楼层下的楼中楼
func (s *commentServiceImpl) ListReplies(ctx context.Context, viewerID, rootID uint64, page, pageSize int) ([]*dto.CommentDTO, error) {
	root, err := s.commentRepo.GetCommentById(ctx, rootID)
	if err != nil {
		return nil, err
	}
	if root == nil || !root.IsFloor() {
		return nil, ErrPostCommentNotFound
	}
	limit, offset := util.Paginate(page, pageSize)
	replies, err := s.commentRepo.ListReplies(ctx, rootID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.toCommentDTOs(ctx, viewerID, replies)
}

// DeleteComment 作者或本吧吧务可删除
func (s *commentServiceImpl) DeleteComment(ctx context.Context, userID, commentID uint64) error {
	comment, err := s.liveComment(ctx, commentID)
	if err != nil {
		return err
	}
	var boardID uint64
	if comment.AuthorID != userID {
		post, err := s.postRepo.GetPost(ctx, comment.PostID)
		if err != nil {
			return err
		}
		if post == nil {
			return ErrPostNotFound
		}
		if _, err = requireBoardAdmin(ctx, s.memberRepo, userID, post.BoardID); err != nil {
			return err
		}
		boardID = post.BoardID
	}
	if err = s.commentRepo.DeleteComment(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostCommentNotFound
		}
		return err
	}
	if boardID != 0 {
		s.producer.PublishModeration(ctx, &kafka.ModerationEvent{
			BoardID:    boardID,
			OperatorID: userID,
			Action:     mongo.ModActionDeleteComment,
			TargetID:   commentID,
			Detail:     map[string]any{"author_id": comment.AuthorID, "post_id": comment.PostID, "floor": comment.FloorNumber},
		})
	}
	return nil
}

func (s *commentServiceImpl) LikeComment(ctx context.Context, userID, commentID uint64) (*dto.ToggleDTO, error) {
	comment, err := s.liveComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	count, err := s.commentRepo.LikeComment(ctx, userID, commentID)
	if err != nil {
		return nil, commentLikeErrs.translate(err)
	}
	s.notifyLike(ctx, userID, comment)
	return &dto.ToggleDTO{Engaged: true, Count: count}, nil
}

// ToggleCommentLike 单事务切换评论点赞，已删除的评论只允许取消
func (s *commentServiceImpl) ToggleCommentLike(ctx context.Context, userID, commentID uint64) (*dto.ToggleDTO, error) {
	comment, err := s.liveComment(ctx, commentID)
	if errors.Is(err, ErrPostCommentNotFound) {
		count, uerr := s.commentRepo.UnlikeComment(ctx, userID, commentID)
		if uerr != nil {
			return nil, err
		}
		return &dto.ToggleDTO{Engaged: false, Count: count}, nil
	}
	if err != nil {
		return nil, err
	}
	engaged, count, err := s.commentRepo.FlipCommentLike(ctx, userID, commentID)
	if err != nil {
		return nil, commentLikeErrs.translate(err)
	}
	if engaged {
		s.notifyLike(ctx, userID, comment)
	}
	return &dto.ToggleDTO{Engaged: engaged, Count: count}, nil
}

func (s *commentServiceImpl) notifyLike(ctx context.Context, userID uint64, comment *model.Comment) {
	s.producer.PublishInteraction(ctx, &kafka.InteractionEvent{
		Type:       kafka.EventCommentLike,
		ActorID:    userID,
		ReceiverID: comment.AuthorID,
		PostID:     comment.PostID,
		TargetID:   comment.ID,
		Preview:    preview(comment.Content, 30),
	})
}

func (s *commentServiceImpl) UnlikeComment(ctx context.Context, userID, commentID uint64) (*dto.ToggleDTO, error) {
	count, err := s.commentRepo.UnlikeComment(ctx, userID, commentID)
	if err != nil {
		return nil, commentLikeErrs.translate(err)
	}
	return &dto.ToggleDTO{Engaged: false, Count: count}, nil
}

func (s *commentServiceImpl) IsCommentLiked(ctx context.Context, userID, commentID uint64) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	liked, err := s.commentRepo.CommentLikedAmong(ctx, userID, []uint64{commentID})
	if err != nil {
		return false, err
	}
	return liked[commentID], nil
}

func (s *commentServiceImpl) liveComment(ctx context.Context, commentID uint64) (*model.Comment, error) {
	comment, err := s.commentRepo.GetCommentById(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil || comment.Status == model.CommentStatusDeleted {
		return nil, ErrPostCommentNotFound
	}
	return comment, nil
}

func (s *commentServiceImpl) toCommentDTOs(ctx context.Context, viewerID uint64, comments []*model.Comment) ([]*dto.CommentDTO, error) {
	res := make([]*dto.CommentDTO, 0, len(comments))
	if len(comments) == 0 {
		return res, nil
	}
	ids := make([]uint64, 0, len(comments))
	userIDs := make([]uint64, 0, len(comments)*2)
	for _, c := range comments {
		ids = append(ids, c.ID)
		userIDs = append(userIDs, c.AuthorID)
		if c.ReplyToUserID != 0 {
			userIDs = append(userIDs, c.ReplyToUserID)
		}
	}
	cards, err := s.userSvc.GetUserSimpleInfoByIds(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	liked := map[uint64]bool{}
	if viewerID != 0 {
		if liked, err = s.commentRepo.CommentLikedAmong(ctx, viewerID, ids); err != nil {
			return nil, err
		}
	}

	for _, c := range comments {
		d := &dto.CommentDTO{
			ID:            c.ID,
			PostID:        c.PostID,
			RootID:        c.RootID,
			ParentID:      c.ParentID,
			FloorNumber:   c.FloorNumber,
			Content:       c.Content,
			LikeCount:     c.LikeCount,
			ReplyCount:    c.ReplyCount,
			IsLiked:       liked[c.ID],
			Images:        make([]*dto.ImageDTO, 0, len(c.Images)),
			Author:        cards[c.AuthorID],
			ReplyToUserID: c.ReplyToUserID,
			ReplyToUser:   cards[c.ReplyToUserID],
			CreatedAt:     c.CreatedAt,
		}
		// 已删除的楼层保留楼层号，隐藏正文
		if c.Status == model.CommentStatusDeleted {
			d.Content = deletedCommentContent
		} else {
			for _, img := range c.Images {
				d.Images = append(d.Images, &dto.ImageDTO{
					URL:    minio.GetPublicURL(img.ImageKey),
					Width:  img.Width,
					Height: img.Height,
				})
			}
		}
		res = append(res, d)
	}
	return res, nil
}
