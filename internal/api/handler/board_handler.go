package handler

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/pkg/response"
	"Tieba/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boardSvc service.BoardService
}

func NewBoardHandler(boardSvc service.BoardService) *BoardHandler {
	return &BoardHandler{boardSvc: boardSvc}
}

// CreateBoard 创建贴吧，创建者成为大吧主
func (s *BoardHandler) CreateBoard(c *gin.Context) {
	var req dto.CreateBoardDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	board, err := s.boardSvc.CreateBoard(c.Request.Context(), c.GetUint64("user_id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, board)
}

func (s *BoardHandler) GetBoardDetail(c *gin.Context) {
	boardID, ok := getPathID(c, "board_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	board, err := s.boardSvc.GetBoardDetail(c.Request.Context(), c.GetUint64("user_id"), boardID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, board)
}

// ListBoards 按分类浏览，category_id 为空时返回全部
func (s *BoardHandler) ListBoards(c *gin.Context) {
	categoryID, _ := strconv.ParseUint(c.DefaultQuery("category_id", "0"), 10, 64)
	page, pageSize := getPagination(c)
	list, err := s.boardSvc.ListBoards(c.Request.Context(), c.GetUint64("user_id"), categoryID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *BoardHandler) ListRecommendedBoards(c *gin.Context) {
	list, err := s.boardSvc.ListRecommendedBoards(c.Request.Context(), c.GetUint64("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *BoardHandler) SearchBoards(c *gin.Context) {
	page, pageSize := getPagination(c)
	list, err := s.boardSvc.SearchBoards(c.Request.Context(), c.GetUint64("user_id"), c.Query("keyword"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// ListJoinedBoards 我关注的吧
func (s *BoardHandler) ListJoinedBoards(c *gin.Context) {
	page, pageSize := getPagination(c)
	list, err := s.boardSvc.ListJoinedBoards(c.Request.Context(), c.GetUint64("user_id"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *BoardHandler) UpdateBoardStatus(c *gin.Context) {
	boardID, ok := getPathID(c, "board_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var req dto.UpdateBoardStatusDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := s.boardSvc.UpdateBoardStatus(c.Request.Context(), c.GetUint64("user_id"), boardID, *req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *BoardHandler) SetRecommended(c *gin.Context) {
	boardID, ok := getPathID(c, "board_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var req dto.UpdateBoardRecommendDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := s.boardSvc.SetRecommended(c.Request.Context(), c.GetUint64("user_id"), boardID, *req.IsRecommended); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *BoardHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	category, err := s.boardSvc.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, category)
}

func (s *BoardHandler) ListCategories(c *gin.Context) {
	list, err := s.boardSvc.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
