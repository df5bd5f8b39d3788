package api

import (
	"Tieba/internal/api/middleware"
	"Tieba/internal/pkg/logger"
	"Tieba/internal/pkg/security"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Gzip & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/users")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)
			userGroup.GET("/batch/simple", group.UserHandler.GetUserSimpleInfoByIds)
			userGroup.GET("/:user_id/followers", group.UserFollowHandler.GetUserFollowers)
			userGroup.GET("/:user_id/followings", group.UserFollowHandler.GetUserFollowings)

			optGroup := userGroup.Group("")
			optGroup.Use(middleware.AuthOptionalMiddleware())
			{
				optGroup.GET("/:user_id", group.UserHandler.GetUserInfo)
			}

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/me", group.UserHandler.GetMyInfo)
				authGroup.PUT("/me", group.UserHandler.UpdateProfile)
				authGroup.GET("/me/boards", group.BoardHandler.ListJoinedBoards)
				authGroup.GET("/me/likes", group.PostActionHandler.GetUserLikes)
				authGroup.GET("/me/collections", group.PostActionHandler.GetUserCollections)
				authGroup.POST("/:user_id/follow", group.UserFollowHandler.ToggleFollow)
				authGroup.DELETE("/:user_id/follow", group.UserFollowHandler.Unfollow)
			}
		}

		boardGroup := apiGroup.Group("/boards")
		{
			boardGroup.GET("/categories", group.BoardHandler.ListCategories)
			boardGroup.GET("/:board_id/members", group.BoardMemberHandler.ListMembers)
			boardGroup.GET("/:board_id/announcements", group.AnnouncementHandler.ListAnnouncements)

			optGroup := boardGroup.Group("")
			optGroup.Use(middleware.AuthOptionalMiddleware())
			{
				optGroup.GET("", group.BoardHandler.ListBoards)
				optGroup.GET("/recommended", group.BoardHandler.ListRecommendedBoards)
				optGroup.GET("/search", group.BoardHandler.SearchBoards)
				optGroup.GET("/:board_id", group.BoardHandler.GetBoardDetail)
				optGroup.GET("/:board_id/posts", group.PostHandler.ListPosts)
			}

			authGroup := boardGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.BoardHandler.CreateBoard)
				authGroup.POST("/:board_id/join", group.BoardMemberHandler.JoinBoard)
				authGroup.DELETE("/:board_id/join", group.BoardMemberHandler.LeaveBoard)
				authGroup.PUT("/members/:member_id/role", group.BoardMemberHandler.SetRole)
				authGroup.PUT("/members/:member_id/ban", group.BoardMemberHandler.BanMember)
				authGroup.DELETE("/members/:member_id/ban", group.BoardMemberHandler.UnbanMember)
				authGroup.POST("/:board_id/announcements", group.AnnouncementHandler.CreateAnnouncement)
				authGroup.POST("/announcements/:announcement_id/top", group.AnnouncementHandler.ToggleTop)
				authGroup.GET("/:board_id/metrics/7d", group.BoardMetricHandler.GetMetrics7Days)
				authGroup.GET("/:board_id/metrics/30d", group.BoardMetricHandler.GetMetrics30Days)
				authGroup.GET("/:board_id/mod-logs", group.ModLogHandler.ListModLogs)
			}

			// 需要登录 & 拥有站务角色
			adminGroup := authGroup.Group("")
			adminGroup.Use(middleware.CheckRoles(security.RoleAdmin))
			{
				adminGroup.PUT("/:board_id/status", group.BoardHandler.UpdateBoardStatus)
				adminGroup.PUT("/:board_id/recommend", group.BoardHandler.SetRecommended)
				adminGroup.POST("/categories", group.BoardHandler.CreateCategory)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			optGroup := postGroup.Group("")
			optGroup.Use(middleware.AuthOptionalMiddleware())
			{
				optGroup.GET("", group.PostHandler.ListPosts)
				optGroup.GET("/:post_id", group.PostHandler.GetPost)
				optGroup.GET("/:post_id/comments", group.CommentHandler.ListFloors)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.PUT("/:post_id", group.PostHandler.UpdatePost)
				authGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
				authGroup.POST("/:post_id/top", group.PostHandler.SetTop)
				authGroup.POST("/:post_id/essence", group.PostHandler.SetEssence)
				authGroup.POST("/:post_id/like", group.PostActionHandler.LikePost)
				authGroup.DELETE("/:post_id/like", group.PostActionHandler.UnlikePost)
				authGroup.POST("/:post_id/collect", group.PostActionHandler.CollectPost)
				authGroup.DELETE("/:post_id/collect", group.PostActionHandler.UncollectPost)
			}
		}

		commentGroup := apiGroup.Group("/comments")
		{
			optGroup := commentGroup.Group("")
			optGroup.Use(middleware.AuthOptionalMiddleware())
			{
				optGroup.GET("/:comment_id/replies", group.CommentHandler.ListReplies)
			}

			authGroup := commentGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.CommentHandler.CreateComment)
				authGroup.DELETE("/:comment_id", group.CommentHandler.DeleteComment)
				authGroup.POST("/:comment_id/like", group.CommentHandler.LikeComment)
				authGroup.DELETE("/:comment_id/like", group.CommentHandler.UnlikeComment)
			}
		}

		toggleGroup := apiGroup.Group("/toggle")
		{
			toggleGroup.Use(middleware.AuthMiddleware())
			toggleGroup.POST("/:kind/:target_id", group.ToggleHandler.Toggle)
		}

		notifyGroup := apiGroup.Group("/notifications")
		notifyGroup.Use(middleware.AuthMiddleware())
		{
			notifyGroup.GET("", group.NotificationHandler.GetNotificationList)
			notifyGroup.GET("/unread", group.NotificationHandler.GetUnreadCount)
			notifyGroup.POST("/read", group.NotificationHandler.MarkRead)
			notifyGroup.POST("/read/all", group.NotificationHandler.MarkAllRead)
		}

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.Use(middleware.AuthMiddleware())
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
		}
	}

	return r
}
