package handler

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/pkg/response"
	"Tieba/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	var req dto.CreatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	post, err := s.postSvc.CreatePost(c.Request.Context(), c.GetUint64("user_id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// ListPosts 帖子列表，支持按吧、作者、状态、精华与关键词过滤
func (s *PostHandler) ListPosts(c *gin.Context) {
	var query dto.PostQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}
	if boardID, ok := getPathID(c, "board_id"); ok {
		query.BoardID = boardID
	}
	list, err := s.postSvc.ListPosts(c.Request.Context(), c.GetUint64("user_id"), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.PageDTO[*dto.PostDTO]{List: list, Page: query.Page, PageSize: query.PageSize})
}

func (s *PostHandler) GetPost(c *gin.Context) {
	postID, ok := getPathID(c, "post_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	post, err := s.postSvc.GetPostDetail(c.Request.Context(), c.GetUint64("user_id"), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	postID, ok := getPathID(c, "post_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var req dto.UpdatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := s.postSvc.UpdatePost(c.Request.Context(), c.GetUint64("user_id"), postID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	postID, ok := getPathID(c, "post_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := s.postSvc.DeletePost(c.Request.Context(), c.GetUint64("user_id"), postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// SetTop 置顶/取消置顶
func (s *PostHandler) SetTop(c *gin.Context) {
	postID, ok := getPathID(c, "post_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.postSvc.SetTop(c.Request.Context(), c.GetUint64("user_id"), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// SetEssence 加精/取消加精
func (s *PostHandler) SetEssence(c *gin.Context) {
	postID, ok := getPathID(c, "post_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.postSvc.SetEssence(c.Request.Context(), c.GetUint64("user_id"), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
