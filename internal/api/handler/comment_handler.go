package handler

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/pkg/response"
	"Tieba/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{commentSvc: commentSvc}
}

// CreateComment 发布评论
func (s *CommentHandler) CreateComment(c *gin.Context) {
	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	comment, err := s.commentSvc.CreateComment(c.Request.Context(), c.GetUint64("user_id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

// ListFloors 获取帖子的楼层列表
func (s *CommentHandler) ListFloors(c *gin.Context) {
	postID, ok := getPathID(c, "post_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, pageSize := getPagination(c)
	list, err := s.commentSvc.ListFloors(c.Request.Context(), c.GetUint64("user_id"), postID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// ListReplies 获取楼中楼
func (s *CommentHandler) ListReplies(c *gin.Context) {
	rootID, ok := getPathID(c, "comment_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, pageSize := getPagination(c)
	list, err := s.commentSvc.ListReplies(c.Request.Context(), c.GetUint64("user_id"), rootID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := getPathID(c, "comment_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := s.commentSvc.DeleteComment(c.Request.Context(), c.GetUint64("user_id"), commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *CommentHandler) LikeComment(c *gin.Context) {
	commentID, ok := getPathID(c, "comment_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.commentSvc.LikeComment(c.Request.Context(), c.GetUint64("user_id"), commentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *CommentHandler) UnlikeComment(c *gin.Context) {
	commentID, ok := getPathID(c, "comment_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.commentSvc.UnlikeComment(c.Request.Context(), c.GetUint64("user_id"), commentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
