package handler

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/pkg/response"
	"Tieba/internal/service"

	"github.com/gin-gonic/gin"
)

type BoardMemberHandler struct {
	memberSvc service.BoardMemberService
}

func NewBoardMemberHandler(memberSvc service.BoardMemberService) *BoardMemberHandler {
	return &BoardMemberHandler{memberSvc: memberSvc}
}

func (s *BoardMemberHandler) JoinBoard(c *gin.Context) {
	boardID, ok := getPathID(c, "board_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.memberSvc.JoinBoard(c.Request.Context(), c.GetUint64("user_id"), boardID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *BoardMemberHandler) LeaveBoard(c *gin.Context) {
	boardID, ok := getPathID(c, "board_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.memberSvc.LeaveBoard(c.Request.Context(), c.GetUint64("user_id"), boardID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// ListMembers 按角色、发帖数排序
func (s *BoardMemberHandler) ListMembers(c *gin.Context) {
	boardID, ok := getPathID(c, "board_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, pageSize := getPagination(c)
	list, err := s.memberSvc.ListMembers(c.Request.Context(), boardID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// SetRole 大吧主调整成员角色
func (s *BoardMemberHandler) SetRole(c *gin.Context) {
	memberID, ok := getPathID(c, "member_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var req dto.SetRoleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	member, err := s.memberSvc.SetRole(c.Request.Context(), c.GetUint64("user_id"), memberID, req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, member)
}

// BanMember 吧务封禁普通成员
func (s *BoardMemberHandler) BanMember(c *gin.Context) {
	memberID, ok := getPathID(c, "member_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	member, err := s.memberSvc.BanMember(c.Request.Context(), c.GetUint64("user_id"), memberID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, member)
}

func (s *BoardMemberHandler) UnbanMember(c *gin.Context) {
	memberID, ok := getPathID(c, "member_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	member, err := s.memberSvc.UnbanMember(c.Request.Context(), c.GetUint64("user_id"), memberID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, member)
}
