package handler

import (
	"Tieba/internal/pkg/response"
	"Tieba/internal/service"

	"github.com/gin-gonic/gin"
)

type UserFollowHandler struct {
	userFollowSvc service.UserFollowService
}

func NewUserFollowHandler(userFollowSvc service.UserFollowService) *UserFollowHandler {
	return &UserFollowHandler{userFollowSvc: userFollowSvc}
}

func (s *UserFollowHandler) GetUserFollowers(c *gin.Context) {
	userID, ok := getPathID(c, "user_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, pageSize := getPagination(c)
	list, err := s.userFollowSvc.GetUserFollowers(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *UserFollowHandler) GetUserFollowings(c *gin.Context) {
	userID, ok := getPathID(c, "user_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, pageSize := getPagination(c)
	list, err := s.userFollowSvc.GetUserFollowing(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// ToggleFollow 关注/取关切换，返回切换后的状态与对方粉丝数
func (s *UserFollowHandler) ToggleFollow(c *gin.Context) {
	followingID, ok := getPathID(c, "user_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.userFollowSvc.ToggleFollow(c.Request.Context(), c.GetUint64("user_id"), followingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *UserFollowHandler) Unfollow(c *gin.Context) {
	followingID, ok := getPathID(c, "user_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.userFollowSvc.Unfollow(c.Request.Context(), c.GetUint64("user_id"), followingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
