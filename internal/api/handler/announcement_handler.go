package handler

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/pkg/response"
	"Tieba/internal/service"

	"github.com/gin-gonic/gin"
)

type AnnouncementHandler struct {
	announcementSvc service.AnnouncementService
}

func NewAnnouncementHandler(announcementSvc service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementSvc: announcementSvc}
}

func (s *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	boardID, ok := getPathID(c, "board_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var req dto.CreateAnnouncementDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	res, err := s.announcementSvc.CreateAnnouncement(c.Request.Context(), c.GetUint64("user_id"), boardID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	boardID, ok := getPathID(c, "board_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, pageSize := getPagination(c)
	list, err := s.announcementSvc.ListAnnouncements(c.Request.Context(), boardID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *AnnouncementHandler) ToggleTop(c *gin.Context) {
	announcementID, ok := getPathID(c, "announcement_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.announcementSvc.ToggleTop(c.Request.Context(), c.GetUint64("user_id"), announcementID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
