package infra

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/madmin-go/v3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/tnqbao/gau-drive/config"
)

type MinioClient struct {
	Admin    *madmin.AdminClient
	Client   *minio.Client
	Endpoint string
	Bucket   string
}

func InitMinioClient(cfg *config.EnvConfig) *MinioClient {
	endpoint := cfg.Minio.Endpoint
	if endpoint == "" {
		panic("MinIO endpoint is not configured")
	}

	rootUser := cfg.Minio.RootUser
	if rootUser == "" {
		panic("MinIO root user is not configured")
	}

	rootPassword := cfg.Minio.RootPassword
	if rootPassword == "" {
		panic("MinIO root password is not configured")
	}

	madminClient, err := madmin.New(endpoint, rootUser, rootPassword, false)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO admin client: %v", err))
	}

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(rootUser, rootPassword, ""),
		Secure: false,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize MinIO client: %v", err))
	}

	return &MinioClient{
		Admin:    madminClient,
		Client:   minioClient,
		Endpoint: endpoint,
		Bucket:   cfg.Minio.Bucket,
	}
}

// EnsureBucket creates the bucket if it doesn't exist
func (m *MinioClient) EnsureBucket(ctx context.Context, bucketName string) error {
	if bucketName == "" {
		return fmt.Errorf("bucketName cannot be empty")
	}

	exists, err := m.Client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := m.Client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// PutObject streams a payload into the service bucket under the given key,
// attaching the user-facing file name as disposition metadata.
func (m *MinioClient) PutObject(ctx context.Context, key string, reader io.Reader, size int64, displayName string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	opts := minio.PutObjectOptions{
		ContentType: "application/octet-stream",
		UserMetadata: map[string]string{
			"Content-Disposition": fmt.Sprintf("attachment; filename=%q", displayName),
		},
	}

	_, err := m.Client.PutObject(ctx, m.Bucket, key, reader, size, opts)
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}

	return nil
}

// GetObject opens a streamed read of the object under the given key. The
// object is stat-ed up front so a row pointing at a missing object surfaces
// here rather than on the first read.
func (m *MinioClient) GetObject(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	if key == "" {
		return nil, 0, fmt.Errorf("key cannot be empty")
	}

	obj, err := m.Client.GetObject(ctx, m.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get object %s: %w", key, err)
	}

	stat, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, 0, fmt.Errorf("failed to stat object %s: %w", key, err)
	}

	return obj, stat.Size, nil
}

func (m *MinioClient) RemoveObject(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	err := m.Client.RemoveObject(ctx, m.Bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}

	return nil
}

// RemoveAllObjects removes every object from a bucket. Environment teardown
// only, never on the request path.
func (m *MinioClient) RemoveAllObjects(ctx context.Context, bucketName string) error {
	if bucketName == "" {
		return fmt.Errorf("bucketName cannot be empty")
	}

	objectsCh := m.Client.ListObjects(ctx, bucketName, minio.ListObjectsOptions{
		Recursive: true,
	})

	objectsToDelete := make(chan minio.ObjectInfo)

	go func() {
		defer close(objectsToDelete)
		for object := range objectsCh {
			if object.Err != nil {
				continue
			}
			objectsToDelete <- object
		}
	}()

	errorCh := m.Client.RemoveObjects(ctx, bucketName, objectsToDelete, minio.RemoveObjectsOptions{})

	for err := range errorCh {
		if err.Err != nil {
			return fmt.Errorf("failed to remove object %s: %w", err.ObjectName, err.Err)
		}
	}

	return nil
}

// DeleteBucketWithObjects deletes a bucket and all its objects
func (m *MinioClient) DeleteBucketWithObjects(ctx context.Context, bucketName string) error {
	if bucketName == "" {
		return fmt.Errorf("bucketName cannot be empty")
	}

	if err := m.RemoveAllObjects(ctx, bucketName); err != nil {
		return fmt.Errorf("failed to remove objects from bucket: %w", err)
	}

	if err := m.Client.RemoveBucket(ctx, bucketName); err != nil {
		return fmt.Errorf("failed to delete bucket: %w", err)
	}

	return nil
}

// Healthy reports whether the MinIO deployment answers on the admin API.
func (m *MinioClient) Healthy(ctx context.Context) bool {
	_, err := m.Admin.ServerInfo(ctx)
	return err == nil
}
