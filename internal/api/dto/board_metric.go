package dto

type MetricPointDTO struct {
	Date  string `json:"date"`
	Value int64  `json:"value"`
}

// BoardTrendDTO 贴吧趋势，缺失的日期沿用前一天的快照
type BoardTrendDTO struct {
	BoardID    uint64            `json:"board_id"`
	Days       int               `json:"days"`
	Members    []*MetricPointDTO `json:"members"`
	Posts      []*MetricPointDTO `json:"posts"`
	TodayPosts []*MetricPointDTO `json:"today_posts"`
}
