package s3

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cockroachdb/errors"
	"github.com/skyup-digital/skyup-api/internal/config"
	ierr "github.com/skyup-digital/skyup-api/internal/errors"
	"github.com/skyup-digital/skyup-api/internal/logger"
)

const (
	defaultPresignExpiryDuration = 30 * time.Minute
	defaultResumeKeyPrefix       = "skyup/resumes"
)

var (
	validDocumentTypes = []DocumentType{DocumentTypeResume}
)

type Service interface {
	UploadDocument(ctx context.Context, document *Document) (*StoredDocument, error)
	GetURL(ctx context.Context, id string, docType DocumentType) (string, error)
	Exists(ctx context.Context, id string, docType DocumentType) (bool, error)
}

type s3ServiceImpl struct {
	client *s3.Client
	config *config.S3Config
	logger *logger.Logger
}

// NewService returns nil when S3 is disabled; callers treat that as storage
// being unavailable.
func NewService(cfg *config.Configuration, logger *logger.Logger) (Service, error) {
	if !cfg.S3.Enabled {
		logger.Info("S3 storage is disabled")
		return nil, nil
	}

	awsCfg, err := config.LoadAwsConfig(context.Background(), cfg.S3.Region)
	if err != nil {
		return nil, ierr.WithError(err).WithHint("failed to load aws config").
			Mark(ierr.ErrHTTPClient)
	}

	return &s3ServiceImpl{
		config: &cfg.S3,
		client: config.NewS3Client(awsCfg, cfg.S3),
		logger: logger,
	}, nil
}

func (s *s3ServiceImpl) getObjectKey(id string, docType DocumentType) (string, error) {
	switch docType {
	case DocumentTypeResume:
		prefix := strings.Trim(s.config.KeyPrefix, "/")
		if prefix == "" {
			prefix = defaultResumeKeyPrefix
		}
		return fmt.Sprintf("%s/%s", prefix, id), nil
	default:
		return "", ierr.NewErrorf("invalid doc type: %s", docType).
			WithHintf("valid doc types are: %v", validDocumentTypes).
			Mark(ierr.ErrSystem)
	}
}

func (s *s3ServiceImpl) getContentType(docKind DocumentKind) string {
	switch docKind {
	case DocumentKindPdf:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Exists implements Service.
func (s *s3ServiceImpl) Exists(ctx context.Context, id string, docType DocumentType) (bool, error) {
	key, err := s.getObjectKey(id, docType)
	if err != nil {
		return false, err
	}

	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})

	if err != nil {
		var nsk *types.NoSuchKey
		var nske *types.NotFound
		if errors.As(err, &nsk) || errors.As(err, &nske) {
			return false, nil
		}
		return false, ierr.WithError(err).
			WithHint("failed to check if document exists").
			Mark(ierr.ErrHTTPClient)
	}

	return true, nil
}

// GetURL returns the public URL of a document when a public base URL is
// configured, otherwise a presigned GET URL.
func (s *s3ServiceImpl) GetURL(ctx context.Context, id string, docType DocumentType) (string, error) {
	key, err := s.getObjectKey(id, docType)
	if err != nil {
		return "", err
	}

	if base := strings.TrimRight(s.config.PublicBaseURL, "/"); base != "" {
		return base + "/" + key, nil
	}

	duration := s.config.PresignExpiryDuration
	if duration <= 0 {
		duration = defaultPresignExpiryDuration
	}

	presigner := s3.NewPresignClient(s.client)
	result, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(duration))
	if err != nil {
		return "", ierr.WithError(err).WithHint("failed to get presigned url").
			WithMessagef("bucket:%s, key:%s", s.config.Bucket, key).
			Mark(ierr.ErrHTTPClient)
	}

	return result.URL, nil
}

// UploadDocument implements Service.
func (s *s3ServiceImpl) UploadDocument(ctx context.Context, document *Document) (*StoredDocument, error) {
	key, err := s.getObjectKey(document.ID, document.Type)
	if err != nil {
		return nil, err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(document.Data),
		ContentType:   aws.String(s.getContentType(document.Kind)),
		ContentLength: aws.Int64(int64(len(document.Data))),
	})
	if err != nil {
		return nil, ierr.WithError(err).WithHint("failed to upload document").
			WithMessagef("bucket:%s, key:%s", s.config.Bucket, key).
			Mark(ierr.ErrHTTPClient)
	}

	url, err := s.GetURL(ctx, document.ID, document.Type)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("uploaded document to s3",
		"bucket", s.config.Bucket,
		"key", key,
		"bytes", len(document.Data),
	)

	return &StoredDocument{
		Key:   key,
		URL:   url,
		Bytes: int64(len(document.Data)),
	}, nil
}
