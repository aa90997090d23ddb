package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/invomesh/invoice_marketplace_app/internal/apperrors"
	"github.com/invomesh/invoice_marketplace_app/internal/core/domain"
	portssvc "github.com/invomesh/invoice_marketplace_app/internal/core/ports/services"
	"github.com/invomesh/invoice_marketplace_app/internal/dto"
	"github.com/invomesh/invoice_marketplace_app/internal/platform/config"
)

const presignExpiry = 15 * time.Minute

// documentService issues presigned S3 URLs for invoice PDFs. The object key
// embeds the uploading profile's id so keys never collide across profiles.
type documentService struct {
	cfg     *config.Config
	presign *s3.PresignClient
}

// NewDocumentService builds the S3 presign client from the configured
// credentials. An optional base endpoint supports MinIO-style deployments.
func NewDocumentService(cfg *config.Config) (portssvc.DocumentSvcFacade, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 credentials: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		}
	})

	return &documentService{
		cfg:     cfg,
		presign: s3.NewPresignClient(client),
	}, nil
}

// Ensure documentService implements the portssvc.DocumentSvcFacade interface
var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

func (s *documentService) PresignUpload(ctx context.Context, actor domain.Actor, req dto.PresignUploadRequest) (*dto.PresignUploadResponse, error) {
	filename := path.Base(strings.TrimSpace(req.Filename))
	if filename == "" || filename == "." || filename == "/" {
		return nil, fmt.Errorf("invalid filename: %w", apperrors.ErrValidation)
	}

	key := fmt.Sprintf("%s/%d-%s", actor.UserID, time.Now().UnixMilli(), filename)

	put, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.S3Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(req.ContentType),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &dto.PresignUploadResponse{
		UploadURL: put.URL,
		ObjectKey: key,
		PublicURL: strings.TrimSuffix(s.cfg.S3PublicBaseURL, "/") + "/" + key,
	}, nil
}

func (s *documentService) PresignDownload(ctx context.Context, objectKey string) (string, error) {
	get, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.S3Bucket),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign download: %w", err)
	}
	return get.URL, nil
}
