package service

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/pkg/consts"
	"Tieba/internal/pkg/minio"
	"Tieba/internal/pkg/redis"
	"Tieba/internal/pkg/util"
	"bytes"
	"context"
	"io"
	log "log/slog"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const maxImageSize = 10 << 20

type MediaService interface {
	Upload(ctx context.Context, uploaderID uint64, file *multipart.FileHeader) (*dto.MediaUploadDTO, error)
	// Resolve 校验图片均为本人上传且尚未被引用
	Resolve(ctx context.Context, uploaderID uint64, keys []string) ([]*dto.MediaTempMetadata, error)
	// Persist 将图片转存到主桶
	Persist(ctx context.Context, keys []string) error
	// Release 引用成功后移出临时登记
	Release(ctx context.Context, keys []string)
}

type mediaServiceImpl struct{}

func NewMediaService() MediaService {
	return &mediaServiceImpl{}
}

func (s *mediaServiceImpl) Upload(ctx context.Context, uploaderID uint64, file *multipart.FileHeader) (*dto.MediaUploadDTO, error) {
	if file.Size <= 0 || file.Size > maxImageSize {
		return nil, ErrFileNotSupported
	}
	reader, err := file.Open()
	if err != nil {
		return nil, ErrParamInvalid
	}
	defer func() { _ = reader.Close() }()

	contentType, err := util.GetSafeContentType(reader)
	if err != nil || !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		return nil, ErrFileNotSupported
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	width, height, err := util.GetImageDimensions(data)
	if err != nil {
		log.WarnContext(ctx, "failed to decode image dimensions", "filename", file.Filename, "err", err)
	}

	objectName := time.Now().Format("2006/01/02/") + uuid.NewString() + strings.ToLower(path.Ext(file.Filename))
	fileKey, err := minio.UploadFile(ctx, objectName, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		log.ErrorContext(ctx, "MinIO upload failed", "err", err)
		return nil, UnExpectedError
	}

	meta := dto.MediaTempMetadata{
		MimeType:   contentType,
		Width:      width,
		Height:     height,
		Size:       int64(len(data)),
		UploaderID: uploaderID,
		CreatedAt:  time.Now().Unix(),
	}
	metaBytes, _ := json.Marshal(meta)
	if err = redis.HSet(ctx, consts.MediaTempKey, fileKey, string(metaBytes)); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "media upload success and metadata cached", "fileKey", fileKey, "type", contentType)
	return &dto.MediaUploadDTO{
		Key:    fileKey,
		Mime:   contentType,
		Width:  width,
		Height: height,
		Size:   meta.Size,
	}, nil
}

func (s *mediaServiceImpl) Resolve(ctx context.Context, uploaderID uint64, keys []string) ([]*dto.MediaTempMetadata, error) {
	seen := make(map[string]struct{}, len(keys))
	metas := make([]*dto.MediaTempMetadata, 0, len(keys))
	for _, key := range keys {
		if _, dup := seen[key]; dup {
			return nil, ErrParamInvalid
		}
		seen[key] = struct{}{}

		val, err := redis.HGet(ctx, consts.MediaTempKey, key)
		if err != nil {
			return nil, err
		}
		if val == "" {
			return nil, ErrFileNotExist
		}
		var meta dto.MediaTempMetadata
		if err = json.Unmarshal([]byte(val), &meta); err != nil || meta.UploaderID != uploaderID {
			return nil, ErrFileNotExist
		}
		metas = append(metas, &meta)
	}
	return metas, nil
}

func (s *mediaServiceImpl) Persist(ctx context.Context, keys []string) error {
	for _, key := range keys {
		if err := minio.PromoteFile(ctx, key); err != nil {
			log.ErrorContext(ctx, "promote media failed", "fileKey", key, "err", err)
			return UnExpectedError
		}
	}
	return nil
}

func (s *mediaServiceImpl) Release(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}
	if err := redis.HDel(ctx, consts.MediaTempKey, keys...); err != nil {
		log.WarnContext(ctx, "failed to release media tokens", "keys", keys, "err", err)
	}
}
