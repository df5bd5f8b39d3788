package service

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/model"
	"Tieba/internal/pkg/minio"
	"Tieba/internal/repository"
	"context"

	"golang.org/x/sync/errgroup"
)

// postAssembler 并发补全帖子的作者名片与当前用户的点赞、收藏状态
type postAssembler struct {
	userSvc    UserService
	actionRepo repository.PostActionRepo
}

func (a *postAssembler) toPostDTOs(ctx context.Context, viewerID uint64, posts []*model.Post) ([]*dto.PostDTO, error) {
	res := make([]*dto.PostDTO, 0, len(posts))
	if len(posts) == 0 {
		return res, nil
	}
	postIDs := make([]uint64, 0, len(posts))
	authorIDs := make([]uint64, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		authorIDs = append(authorIDs, p.AuthorID)
	}

	var (
		cards     map[uint64]*dto.UserSimpleDTO
		liked     map[uint64]bool
		collected map[uint64]bool
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cards, err = a.userSvc.GetUserSimpleInfoByIds(gCtx, authorIDs)
		return err
	})
	if viewerID != 0 {
		g.Go(func() error {
			var err error
			liked, err = a.actionRepo.LikedAmong(gCtx, viewerID, postIDs)
			return err
		})
		g.Go(func() error {
			var err error
			collected, err = a.actionRepo.CollectedAmong(gCtx, viewerID, postIDs)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, p := range posts {
		d := toPostDTO(p)
		d.Author = cards[p.AuthorID]
		d.IsLiked = liked[p.ID]
		d.IsCollected = collected[p.ID]
		res = append(res, d)
	}
	return res, nil
}

func (a *postAssembler) toPostDTO(ctx context.Context, viewerID uint64, post *model.Post) (*dto.PostDTO, error) {
	list, err := a.toPostDTOs(ctx, viewerID, []*model.Post{post})
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

func toPostDTO(p *model.Post) *dto.PostDTO {
	images := make([]*dto.ImageDTO, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, &dto.ImageDTO{
			URL:         minio.GetPublicURL(img.ImageKey),
			Description: img.Description,
			Width:       img.Width,
			Height:      img.Height,
		})
	}
	return &dto.PostDTO{
		ID:           p.ID,
		BoardID:      p.BoardID,
		Title:        p.Title,
		Content:      p.Content,
		ViewCount:    p.ViewCount,
		ReplyCount:   p.ReplyCount,
		LikeCount:    p.LikeCount,
		CollectCount: p.CollectCount,
		Status:       p.Status,
		IsTop:        p.IsTop,
		IsEssence:    p.IsEssence,
		LastReplyAt:  p.LastReplyAt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Images:       images,
	}
}
