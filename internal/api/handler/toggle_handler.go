package handler

import (
	"Tieba/internal/pkg/response"
	"Tieba/internal/service"

	"github.com/gin-gonic/gin"
)

type ToggleHandler struct {
	toggleSvc service.ToggleService
}

func NewToggleHandler(toggleSvc service.ToggleService) *ToggleHandler {
	return &ToggleHandler{toggleSvc: toggleSvc}
}

// Toggle 通用切换入口，action 可选 engage / disengage / flip，默认 flip
func (s *ToggleHandler) Toggle(c *gin.Context) {
	targetID, ok := getPathID(c, "target_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.toggleSvc.Toggle(c.Request.Context(), c.Param("kind"), c.Query("action"), c.GetUint64("user_id"), targetID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
