package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/dmitrijs2005/focusflow/internal/client/models"
	"github.com/dmitrijs2005/focusflow/internal/common"
)

// S3Config describes an S3-compatible bucket (AWS or a self-hosted MinIO)
// used as the backup blob store instead of the backend's HTTP one.
type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// AccountID namespaces the object key so one bucket can hold backups
	// for several accounts.
	AccountID string
}

// S3Store implements BlobStore on top of a single S3 object per account.
type S3Store struct {
	client *s3.Client
	bucket string
	key    string
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("loading s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client: client,
		bucket: cfg.Bucket,
		key:    path.Join("backups", cfg.AccountID, ArtifactName),
	}, nil
}

func (s *S3Store) Upsert(ctx context.Context, name string, data []byte) (*models.BackupDescriptor, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &s.key,
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: put object: %w", common.ErrTransport, err)
	}

	return &models.BackupDescriptor{
		ID:           s.key,
		Name:         name,
		Size:         strconv.Itoa(len(data)),
		ModifiedTime: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// List reports the single artifact when it exists, so behaviour matches the
// HTTP blob store's listing.
func (s *S3Store) List(ctx context.Context) ([]models.BackupDescriptor, error) {
	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &s.bucket,
		Key:    &s.key,
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return []models.BackupDescriptor{}, nil
		}
		return nil, fmt.Errorf("%w: head object: %w", common.ErrTransport, err)
	}

	desc := models.BackupDescriptor{ID: s.key, Name: ArtifactName}
	if head.ContentLength != nil {
		desc.Size = strconv.FormatInt(*head.ContentLength, 10)
	}
	if head.LastModified != nil {
		desc.ModifiedTime = head.LastModified.UTC().Format(time.RFC3339)
	}
	return []models.BackupDescriptor{desc}, nil
}

func (s *S3Store) Download(ctx context.Context, id string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &id,
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("%w: %s", common.ErrorNotFound, id)
		}
		return nil, fmt.Errorf("%w: get object: %w", common.ErrTransport, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading object: %w", common.ErrTransport, err)
	}
	return data, nil
}

// Delete is naturally idempotent: S3 does not fail on absent keys.
func (s *S3Store) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &id,
	})
	if err != nil {
		return fmt.Errorf("%w: delete object: %w", common.ErrTransport, err)
	}
	return nil
}
