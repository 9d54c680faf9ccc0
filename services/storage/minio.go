package storagesvc

import (
	"context"
	"io"
	"mime"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"github.com/trezcool/ujumbe/core"
)

type minioStorage struct {
	client *minio.Client
	bucket string
}

var _ core.FileStorage = (*minioStorage)(nil)

// NewMinioStorage connects to the object store and makes sure the bucket exists.
func NewMinioStorage(ctx context.Context, conf core.MinioConfig) (core.FileStorage, error) {
	client, err := minio.New(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKey, conf.SecretKey, ""),
		Secure: conf.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating minio client")
	}

	exists, err := client.BucketExists(ctx, conf.Bucket)
	if err != nil {
		return nil, errors.Wrapf(err, "checking bucket %s", conf.Bucket)
	}
	if !exists {
		if err = client.MakeBucket(ctx, conf.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrapf(err, "creating bucket %s", conf.Bucket)
		}
	}
	return &minioStorage{client: client, bucket: conf.Bucket}, nil
}

func (s *minioStorage) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	return errors.Wrapf(err, "putting object %s", key)
}

func (s *minioStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "getting object %s", key)
	}
	// GetObject is lazy: Stat surfaces a missing object
	if _, err = obj.Stat(); err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "getting object %s", key)
	}
	return obj, nil
}

func (s *minioStorage) Delete(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	return errors.Wrapf(err, "removing object %s", key)
}

// URL presigns a GET of the object, served as an attachment named filename.
func (s *minioStorage) URL(ctx context.Context, key, filename string, expiry time.Duration) (string, error) {
	params := make(url.Values)
	params.Set("response-content-disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, params)
	if err != nil {
		return "", errors.Wrapf(err, "presigning object %s", key)
	}
	return u.String(), nil
}
