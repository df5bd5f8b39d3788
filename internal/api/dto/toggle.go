package dto

// ToggleDTO 切换类操作的结果，count 为目标最新计数
type ToggleDTO struct {
	Engaged bool  `json:"engaged"`
	Count   int64 `json:"count"`
}
