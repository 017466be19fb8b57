package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"lexdesk.app/deedwatch/common/logger"
	"lexdesk.app/deedwatch/internal/extract"
	"lexdesk.app/deedwatch/internal/model"
	"lexdesk.app/deedwatch/internal/storage"
	"lexdesk.app/deedwatch/internal/store"
)

type ExtractParams struct {
	DeedID int64
	OrgID  *int64
	Mode   extract.Mode
	Path   string
}

type ExtractionResult struct {
	Deed   *model.Deed
	Fields model.DeedFields
}

type ExtractionService interface {
	// Extract reads the stored document, extracts its fields and applies them to the
	// deed as a partial update.
	Extract(ctx context.Context, params ExtractParams) (*ExtractionResult, error)
}

type extractionService struct {
	deeds  store.DeedStore
	files  storage.FileStore
	derive bool
}

func NewExtractionService(deeds store.DeedStore, files storage.FileStore, deriveDeadlines bool) ExtractionService {
	return &extractionService{deeds: deeds, files: files, derive: deriveDeadlines}
}

func (s *extractionService) Extract(ctx context.Context, params ExtractParams) (*ExtractionResult, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		DeedID:    &params.DeedID,
		Component: "deedwatch.service.extraction",
	})

	deed, err := s.deeds.GetByID(ctx, params.DeedID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrDeedNotFound
		}
		return nil, fmt.Errorf("loading deed: %w", err)
	}
	if params.OrgID != nil && deed.OrganizationID != *params.OrgID {
		return nil, ErrDeedNotFound
	}

	data, err := s.files.Download(ctx, params.Path)
	if err != nil {
		return nil, fmt.Errorf("downloading document: %w", err)
	}

	fields, err := extract.Extract(data, params.Mode)
	if err != nil {
		if errors.Is(err, extract.ErrUnreadable) {
			return nil, fmt.Errorf("%w: %v", ErrDocumentUnreadable, err)
		}
		return nil, err
	}
	if fields.IsEmpty() {
		slog.InfoContext(ctx, "extraction found no fields", "mode", params.Mode, "bytes", len(data))
		return nil, ErrNoFieldsExtracted
	}

	if s.derive {
		fields = DeriveDeadlines(*deed, fields)
	}

	updated, err := s.deeds.UpdateFields(ctx, deed.ID, fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrDeedNotFound
		}
		return nil, fmt.Errorf("updating deed fields: %w", err)
	}

	slog.InfoContext(ctx, "deed fields extracted", "mode", params.Mode, "fields", fields.Names())

	return &ExtractionResult{Deed: updated, Fields: fields}, nil
}
