package handler

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/pkg/response"
	"Tieba/internal/service"
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostActionHandler struct {
	actionSvc service.PostActionService
}

func NewPostActionHandler(actionSvc service.PostActionService) *PostActionHandler {
	return &PostActionHandler{
		actionSvc: actionSvc,
	}
}

func (s *PostActionHandler) LikePost(c *gin.Context) {
	s.doAction(c, s.actionSvc.LikePost)
}

func (s *PostActionHandler) UnlikePost(c *gin.Context) {
	s.doAction(c, s.actionSvc.UnlikePost)
}

func (s *PostActionHandler) CollectPost(c *gin.Context) {
	s.doAction(c, s.actionSvc.CollectPost)
}

func (s *PostActionHandler) UncollectPost(c *gin.Context) {
	s.doAction(c, s.actionSvc.UncollectPost)
}

func (s *PostActionHandler) doAction(c *gin.Context, action func(ctx context.Context, userID, postID uint64) (*dto.ToggleDTO, error)) {
	postID, ok := getPathID(c, "post_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := action(c.Request.Context(), c.GetUint64("user_id"), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetUserLikes 获取我/他点赞的列表
func (s *PostActionHandler) GetUserLikes(c *gin.Context) {
	viewerID := c.GetUint64("user_id")
	targetUID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if targetUID == 0 {
		targetUID = viewerID // 默认查自己
	}
	page, pageSize := getPagination(c)
	posts, err := s.actionSvc.GetLikedPosts(c.Request.Context(), viewerID, targetUID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// GetUserCollections 获取我收藏的列表
func (s *PostActionHandler) GetUserCollections(c *gin.Context) {
	page, pageSize := getPagination(c)
	posts, err := s.actionSvc.GetCollectedPosts(c.Request.Context(), c.GetUint64("user_id"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}
