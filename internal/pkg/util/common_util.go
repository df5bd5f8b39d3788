package util

import (
	"Tieba/internal/pkg/consts"
	"strconv"
	"strings"
	"time"
)

// PtrInt8 用于将 int8 转换为 *int8
func PtrInt8(i int8) *int8 {
	return &i
}

// PtrInt64 用于将 int64 转换为 *int64
func PtrInt64(i int64) *int64 {
	return &i
}

// GetMidnight 返回 t 当天零点
func GetMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Paginate 把页码页长转换成 limit/offset，页长越界时回落到默认值
func Paginate(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = consts.DefaultPageSize
	}
	if pageSize > consts.MaxPageSize {
		pageSize = consts.MaxPageSize
	}
	return pageSize, (page - 1) * pageSize
}

// ParseIDs 解析逗号分隔的 ID 列表，非法项直接跳过
func ParseIDs(raw string) []uint64 {
	ids := make([]uint64, 0)
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
