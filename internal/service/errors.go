package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InvalidOperation    = 422
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrUserNotFound         = errors.New("用户不存在")
	ErrUserBan              = errors.New("用户已被封禁")
	ErrUserUsernameExist    = errors.New("用户名已存在")
	ErrPasswordIncorrect    = errors.New("密码错误")
	ErrFileNotSupported     = errors.New("不支持的文件类型")
	ErrFileNotExist         = errors.New("文件不存在")
	ErrUserFollowExist      = errors.New("用户已关注")
	ErrUserFollowNotFound   = errors.New("尚未关注该用户")
	ErrUserFollowSelf       = errors.New("用户不能关注自己")
	ErrBoardNotFound        = errors.New("贴吧不存在")
	ErrBoardNameExist       = errors.New("贴吧名已存在")
	ErrBoardUnavailable     = errors.New("贴吧当前不可用")
	ErrCategoryNotFound     = errors.New("分类不存在")
	ErrCategoryNameExist    = errors.New("分类名已存在")
	ErrBoardMemberExist     = errors.New("已加入该贴吧")
	ErrBoardMemberNotFound  = errors.New("不是该贴吧成员")
	ErrBoardAdminLeave      = errors.New("吧务需先卸任才能退出")
	ErrBoardAdminRequired   = errors.New("需要吧务权限")
	ErrBoardOwnerRequired   = errors.New("需要吧主权限")
	ErrMembershipRequired   = errors.New("需要先加入贴吧")
	ErrRoleCeiling          = errors.New("已是最高角色")
	ErrRoleFloor            = errors.New("已是最低角色")
	ErrRoleSelf             = errors.New("不能修改自己的角色")
	ErrRoleOwner            = errors.New("吧主角色不可调整")
	ErrMemberBanned         = errors.New("已被该吧封禁")
	ErrMemberAlreadyBanned  = errors.New("该成员已被封禁")
	ErrMemberNotBanned      = errors.New("该成员未被封禁")
	ErrBanAdmin             = errors.New("吧务需先卸任才能封禁")
	ErrPostNotFound         = errors.New("帖子不存在")
	ErrPostCommentNotFound  = errors.New("评论不存在")
	ErrParentMismatch       = errors.New("回复的评论不属于该帖子")
	ErrActionDuplicate      = errors.New("重复操作")
	ErrActionNotFound       = errors.New("尚未进行该操作")
	ErrToggleKindInvalid    = errors.New("不支持的操作类型")
	ErrAnnouncementNotFound = errors.New("公告不存在")
	ErrNotificationNotFound = errors.New("通知不存在")
	ErrTooManyImages        = errors.New("图片数量超过限制")
	UnauthorizedError       = errors.New("未登录或登录已过期")
	ForbiddenError          = errors.New("权限不足")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrUserNotFound:         NotFound,
	ErrUserBan:              Unauthorized,
	ErrUserUsernameExist:    Conflict,
	ErrPasswordIncorrect:    Unauthorized,
	ErrFileNotSupported:     BadRequest,
	ErrFileNotExist:         NotFound,
	ErrUserFollowExist:      Conflict,
	ErrUserFollowNotFound:   NotFound,
	ErrUserFollowSelf:       InvalidOperation,
	ErrBoardNotFound:        NotFound,
	ErrBoardNameExist:       Conflict,
	ErrBoardUnavailable:     Forbidden,
	ErrCategoryNotFound:     NotFound,
	ErrCategoryNameExist:    Conflict,
	ErrBoardMemberExist:     Conflict,
	ErrBoardMemberNotFound:  NotFound,
	ErrBoardAdminLeave:      Forbidden,
	ErrBoardAdminRequired:   Forbidden,
	ErrBoardOwnerRequired:   Forbidden,
	ErrMembershipRequired:   Forbidden,
	ErrRoleCeiling:          InvalidOperation,
	ErrRoleFloor:            InvalidOperation,
	ErrRoleSelf:             InvalidOperation,
	ErrRoleOwner:            Forbidden,
	ErrMemberBanned:         Forbidden,
	ErrMemberAlreadyBanned:  Conflict,
	ErrMemberNotBanned:      InvalidOperation,
	ErrBanAdmin:             Forbidden,
	ErrPostNotFound:         NotFound,
	ErrPostCommentNotFound:  NotFound,
	ErrParentMismatch:       BadRequest,
	ErrActionDuplicate:      Conflict,
	ErrActionNotFound:       NotFound,
	ErrToggleKindInvalid:    BadRequest,
	ErrAnnouncementNotFound: NotFound,
	ErrNotificationNotFound: NotFound,
	ErrTooManyImages:        BadRequest,
	UnauthorizedError:       Unauthorized,
	ForbiddenError:          Forbidden,
	UnExpectedError:         InternalServerError,
}
