package repository

import "github.com/pkg/errors"

var (
	ErrRelationExists       = errors.New("relation already exists")
	ErrRelationNotFound     = errors.New("relation not found")
	ErrCounterTargetMissing = errors.New("counter target missing")
	ErrMemberIsAdmin        = errors.New("board admin cannot leave")
	ErrMemberBanned         = errors.New("banned member cannot leave")
	ErrMembershipRequired   = errors.New("active membership required")
	ErrMemberNotFound       = errors.New("board member not found")
	ErrPostUnavailable      = errors.New("post unavailable")
	ErrParentNotFound       = errors.New("parent comment not found")
	ErrParentPostMismatch   = errors.New("parent comment belongs to another post")
	ErrDuplicateName        = errors.New("duplicate name")
)
