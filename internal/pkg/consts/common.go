package consts

const (
	MimePrefixImage = "image"
)

const (
	DefaultAvatarURL = "default_avatar.png"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxPostImages   = 9
	MaxCommentImage = 3
	RecommendLimit  = 10
)
