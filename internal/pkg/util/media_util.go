package util

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// GetSafeContentType 读取文件头嗅探真实类型，读取后将 reader 复位
func GetSafeContentType(reader io.ReadSeeker) (string, error) {
	mtype, err := mimetype.DetectReader(reader)
	if err != nil {
		return "", fmt.Errorf("detect content type: %w", err)
	}
	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return mtype.String(), nil
}

// GetImageDimensions 解码图片获取宽高
func GetImageDimensions(data []byte) (int, int, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return 0, 0, fmt.Errorf("decode image: %w", err)
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}
