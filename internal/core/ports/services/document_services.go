package services

import (
	"context"

	"github.com/invomesh/invoice_marketplace_app/internal/core/domain"
	"github.com/invomesh/invoice_marketplace_app/internal/dto"
)

// DocumentSvcFacade issues presigned URLs for invoice PDF storage.
type DocumentSvcFacade interface {
	// PresignUpload returns a short-lived PUT URL for the actor's PDF and the
	// public URL the record will store as pdf_url.
	PresignUpload(ctx context.Context, actor domain.Actor, req dto.PresignUploadRequest) (*dto.PresignUploadResponse, error)

	// PresignDownload returns a short-lived GET URL for a stored object key.
	PresignDownload(ctx context.Context, objectKey string) (string, error)
}
