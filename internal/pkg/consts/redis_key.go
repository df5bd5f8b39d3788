package consts

const (
	UserSimpleInfoKey      = "user:simple:info:"
	TokenBlacklistKey      = "auth:blacklist:"
	MediaTempKey           = "media:temp"
	BoardMetrics7DaysKey   = "board:metrics:7days:"
	BoardMetrics30DaysKey  = "board:metrics:30days:"
	BoardRecommendCacheKey = "board:recommend"
)

const (
	BoardMetricJobLock  = "lock:job:board_metric"
	MediaCleanupJobLock = "lock:job:media_cleanup"
)
