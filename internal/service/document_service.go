package service

import (
	"context"
	"fmt"
	"time"

	"dealflow/internal/dto"
	"dealflow/internal/infra"
	"dealflow/internal/repository"

	"github.com/google/uuid"
)

type DocumentService interface {
	ListByEntity(ctx context.Context, entityID uuid.UUID) ([]dto.DocumentResponse, error)
	// DownloadURL returns where the document's file can be fetched: a
	// presigned URL for s3:// locations, the stored URL otherwise.
	DownloadURL(ctx context.Context, id uuid.UUID) (string, error)
}

type documentService struct {
	documents  repository.DocumentRepository
	presigner  infra.Presigner
	presignTTL time.Duration
}

// NewDocumentService accepts a nil presigner when object storage is not
// configured; s3:// documents then fail with ErrUnavailable.
func NewDocumentService(documents repository.DocumentRepository, presigner infra.Presigner, presignTTL time.Duration) DocumentService {
	return &documentService{documents: documents, presigner: presigner, presignTTL: presignTTL}
}

func (s *documentService) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]dto.DocumentResponse, error) {
	list, err := s.documents.ListByEntity(ctx, entityID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.DocumentResponse, len(list))
	for i := range list {
		resp[i] = toDocumentResponse(&list[i])
	}
	return resp, nil
}

func (s *documentService) DownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	d, err := s.documents.FindByID(ctx, id)
	if err != nil {
		return "", notFound(err, "document")
	}
	if d.URL == nil || *d.URL == "" {
		return "", &NotFoundError{Resource: "document file"}
	}

	bucket, key, ok := infra.ParseS3URL(*d.URL)
	if !ok {
		return *d.URL, nil
	}
	if s.presigner == nil {
		return "", fmt.Errorf("document storage is not configured: %w", ErrUnavailable)
	}
	return s.presigner.PresignGet(ctx, bucket, key, s.presignTTL)
}
