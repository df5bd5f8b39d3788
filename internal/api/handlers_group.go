package api

import "Tieba/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler         *handler.UserHandler
	UserFollowHandler   *handler.UserFollowHandler
	BoardHandler        *handler.BoardHandler
	BoardMemberHandler  *handler.BoardMemberHandler
	AnnouncementHandler *handler.AnnouncementHandler
	PostHandler         *handler.PostHandler
	PostActionHandler   *handler.PostActionHandler
	CommentHandler      *handler.CommentHandler
	ToggleHandler       *handler.ToggleHandler
	MediaHandler        *handler.MediaHandler
	BoardMetricHandler  *handler.BoardMetricHandler
	NotificationHandler *handler.NotificationHandler
	ModLogHandler       *handler.ModLogHandler
}
