package handler

import (
	"Tieba/internal/pkg/response"
	"Tieba/internal/service"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaSvc service.MediaService
}

func NewMediaHandler(mediaSvc service.MediaService) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc}
}

// Upload 上传图片到临时桶，返回的 key 在被引用前 24 小时内有效
func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.mediaSvc.Upload(c.Request.Context(), c.GetUint64("user_id"), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
