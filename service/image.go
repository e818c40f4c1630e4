package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/myErrors"
)

// ImageStore 帖子图片的对象存储，由 dependencies.COSClientInterface 实现
type ImageStore interface {
	UploadFile(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error)
	DeleteObject(ctx context.Context, objectKey string) error
}

// uploadedImage 已上传图片的访问地址与对象键
type uploadedImage struct {
	URL string
	Key string
}

// checkImage 校验图片的类型与大小，返回字段错误
func (s *postService) checkImage(image *multipart.FileHeader, errs myErrors.FieldErrors) {
	if image == nil {
		return
	}
	if s.images == nil {
		errs["image"] = myErrors.ErrImageStorageDisabled.Error()
		return
	}
	if !strings.HasPrefix(image.Header.Get("Content-Type"), "image/") {
		errs["image"] = "只能上传图片文件"
		return
	}
	if image.Size > s.maxImageSize {
		errs["image"] = fmt.Sprintf("图片大小不能超过 %d MB", s.maxImageSize>>20)
	}
}

// generatePostImageObjectKey 规则: post_images/YYYYMMDD/userID_uuid.ext
func generatePostImageObjectKey(originalFilename, userID string) string {
	return fmt.Sprintf("%s%s/%s_%s%s",
		constant.PostImageKeyPrefix,
		time.Now().UTC().Format("20060102"),
		userID,
		uuid.NewString(),
		strings.ToLower(filepath.Ext(originalFilename)),
	)
}

func (s *postService) uploadImage(ctx context.Context, image *multipart.FileHeader, userID string) (*uploadedImage, error) {
	file, err := image.Open()
	if err != nil {
		s.logger.Error("打开图片文件以上传失败", zap.String("filename", image.Filename), zap.Error(err))
		return nil, fmt.Errorf("打开图片文件 %s 失败: %w", image.Filename, err)
	}
	defer file.Close()

	objectKey := generatePostImageObjectKey(image.Filename, userID)
	url, err := s.images.UploadFile(ctx, objectKey, file, image.Size, image.Header.Get("Content-Type"))
	if err != nil {
		s.logger.Error("上传图片到对象存储失败", zap.String("objectKey", objectKey), zap.Error(err))
		return nil, fmt.Errorf("上传图片 %s 失败: %w", image.Filename, err)
	}
	return &uploadedImage{URL: url, Key: objectKey}, nil
}

// removeImage 在后台删除不再使用的图片，失败只记录日志
func (s *postService) removeImage(objectKey string) {
	if objectKey == "" || s.images == nil {
		return
	}
	go func() {
		if err := s.images.DeleteObject(context.Background(), objectKey); err != nil {
			s.logger.Error("删除对象存储中的图片失败", zap.String("objectKey", objectKey), zap.Error(err))
		}
	}()
}
