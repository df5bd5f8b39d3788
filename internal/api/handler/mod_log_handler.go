package handler

import (
	"Tieba/internal/pkg/response"
	"Tieba/internal/service"

	"github.com/gin-gonic/gin"
)

type ModLogHandler struct {
	modLogSvc service.ModLogService
}

func NewModLogHandler(modLogSvc service.ModLogService) *ModLogHandler {
	return &ModLogHandler{modLogSvc: modLogSvc}
}

// ListModLogs 吧务日志，可按 action 过滤
func (h *ModLogHandler) ListModLogs(c *gin.Context) {
	boardID, ok := getPathID(c, "board_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, pageSize := getPagination(c)
	list, err := h.modLogSvc.ListModLogs(c.Request.Context(), c.GetUint64("user_id"), boardID, c.Query("action"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
