package minio

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
)

// ReportStore 报告文件存取
type ReportStore interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) error
	Delete(ctx context.Context, objectName string) error
	PresignedURL(ctx context.Context, objectName, downloadName string, ttl time.Duration) (string, error)
}

type reportStoreImpl struct {
	client *minio.Client
	bucket string
}

func NewReportStore(client *minio.Client, bucket string) ReportStore {
	return &reportStoreImpl{client: client, bucket: bucket}
}

// Upload 上传文件到 MinIO
func (s *reportStoreImpl) Upload(ctx context.Context, objectName string, data []byte, contentType string) error {
	if s.client == nil {
		return fmt.Errorf("minio client is not initialized")
	}
	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}
	return nil
}

// Delete 删除 MinIO 中的文件
func (s *reportStoreImpl) Delete(ctx context.Context, objectName string) error {
	if s.client == nil {
		return fmt.Errorf("minio client is not initialized")
	}
	err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// PresignedURL 生成带下载文件名的临时链接
func (s *reportStoreImpl) PresignedURL(ctx context.Context, objectName, downloadName string, ttl time.Duration) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, ttl, params)
	if err != nil {
		return "", fmt.Errorf("failed to presign object: %w", err)
	}
	return u.String(), nil
}
