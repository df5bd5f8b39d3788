package handler

import (
	"Tieba/internal/pkg/response"
	"Tieba/internal/service"

	"github.com/gin-gonic/gin"
)

type BoardMetricHandler struct {
	boardMetricSvc service.BoardMetricService
}

func NewBoardMetricHandler(boardMetricSvc service.BoardMetricService) *BoardMetricHandler {
	return &BoardMetricHandler{
		boardMetricSvc: boardMetricSvc,
	}
}

func (h *BoardMetricHandler) GetMetrics7Days(c *gin.Context) {
	boardID, ok := getPathID(c, "board_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := h.boardMetricSvc.GetBoardMetricsBy7Days(c.Request.Context(), c.GetUint64("user_id"), boardID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (h *BoardMetricHandler) GetMetrics30Days(c *gin.Context) {
	boardID, ok := getPathID(c, "board_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := h.boardMetricSvc.GetBoardMetricsBy30Days(c.Request.Context(), c.GetUint64("user_id"), boardID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
