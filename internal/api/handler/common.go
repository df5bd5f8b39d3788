package handler

import (
	"Tieba/internal/pkg/consts"
	"strconv"

	"github.com/gin-gonic/gin"
)

// getPathID 解析路径中的正整数 ID
func getPathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func getPagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(consts.DefaultPageSize)))
	if err != nil {
		pageSize = consts.DefaultPageSize
	}
	return page, pageSize
}
