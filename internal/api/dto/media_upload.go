package dto

// MediaTempMetadata 已上传但尚未被引用的图片，存于 redis 哈希
type MediaTempMetadata struct {
	MimeType   string `json:"mime_type"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Size       int64  `json:"size"`
	UploaderID uint64 `json:"uploader_id"`
	CreatedAt  int64  `json:"created_at"`
}

// MediaUploadDTO key 用于发帖、评论时引用图片
type MediaUploadDTO struct {
	Key    string `json:"key"`
	Mime   string `json:"mime"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`
}
