package handler

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/pkg/response"
	"Tieba/internal/pkg/util"
	"Tieba/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
	}
}

func (s *UserHandler) Register(c *gin.Context) {
	var registerDTO dto.RegisterDTO
	if err := c.ShouldBindJSON(&registerDTO); err != nil {
		response.Error(c, err)
		return
	}
	user, err := s.userSvc.Register(c.Request.Context(), &registerDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

func (s *UserHandler) Login(c *gin.Context) {
	var loginDTO dto.CredentialDTO
	if err := c.ShouldBindJSON(&loginDTO); err != nil {
		response.Error(c, err)
		return
	}
	res, err := s.userSvc.Login(c.Request.Context(), &loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *UserHandler) Logout(c *gin.Context) {
	if err := s.userSvc.Logout(c.Request.Context(), c.GetString("token")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetMyInfo 当前登录用户信息
func (s *UserHandler) GetMyInfo(c *gin.Context) {
	userID := c.GetUint64("user_id")
	user, err := s.userSvc.GetUserInfo(c.Request.Context(), userID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// GetUserInfo 查看他人主页，登录时附带是否已关注
func (s *UserHandler) GetUserInfo(c *gin.Context) {
	userID, ok := getPathID(c, "user_id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	user, err := s.userSvc.GetUserInfo(c.Request.Context(), c.GetUint64("user_id"), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

func (s *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}
	if err := s.userSvc.UpdateProfile(c.Request.Context(), c.GetUint64("user_id"), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetUserSimpleInfoByIds 批量获取用户名片，ids 以逗号分隔
func (s *UserHandler) GetUserSimpleInfoByIds(c *gin.Context) {
	ids := util.ParseIDs(c.Query("ids"))
	if len(ids) == 0 || len(ids) > 100 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	cards, err := s.userSvc.GetUserSimpleInfoByIds(c.Request.Context(), ids)
	if err != nil {
		response.Error(c, err)
		return
	}
	res := make([]*dto.UserSimpleDTO, 0, len(cards))
	for _, id := range ids {
		if card, ok := cards[id]; ok {
			res = append(res, card)
		}
	}
	response.Success(c, res)
}
