package model

// Tables 需要自动迁移的全部表
func Tables() []any {
	return []any{
		&User{},
		&UserFollow{},
		&BoardCategory{},
		&Board{},
		&BoardMember{},
		&BoardAnnouncement{},
		&Post{},
		&PostImage{},
		&PostLike{},
		&PostCollect{},
		&Comment{},
		&CommentLike{},
		&CommentImage{},
		&BoardDailyMetric{},
	}
}
