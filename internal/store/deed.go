package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"lexdesk.app/deedwatch/core/db/sqlc"
	"lexdesk.app/deedwatch/internal/model"
)

type deedStore struct {
	queries *sqlc.Queries
}

func newDeedStore(queries *sqlc.Queries) DeedStore {
	return &deedStore{queries: queries}
}

func (s *deedStore) GetByID(ctx context.Context, id int64) (*model.Deed, error) {
	row, err := s.queries.GetDeed(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDeedModel(row), nil
}

func (s *deedStore) ListWithDeadlinesBetween(ctx context.Context, from, to time.Time, orgID *int64) ([]model.Deed, error) {
	rows, err := s.queries.ListDeedsWithDeadlinesBetween(ctx, sqlc.ListDeedsWithDeadlinesBetweenParams{
		OrganizationID: orgID,
		FromDate:       toPgDate(&from),
		ToDate:         toPgDate(&to),
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Deed, 0, len(rows))
	for _, row := range rows {
		result = append(result, *toDeedModel(row))
	}
	return result, nil
}

func (s *deedStore) UpdateFields(ctx context.Context, id int64, fields model.DeedFields) (*model.Deed, error) {
	row, err := s.queries.UpdateDeedFields(ctx, sqlc.UpdateDeedFieldsParams{
		ID:                    id,
		ProtocolNumber:        fields.ProtocolNumber,
		NotaryName:            fields.NotaryName,
		SigningDate:           toPgDate(fields.SigningDate),
		AsientoNumber:         fields.AsientoNumber,
		PresentationAt:        toPgTimestamp(fields.PresentationAt),
		Model600Deadline:      toPgDate(fields.Model600Deadline),
		AsientoExpirationDate: toPgDate(fields.AsientoExpirationDate),
		QualificationDeadline: toPgDate(fields.QualificationDeadline),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDeedModel(row), nil
}

func toDeedModel(row sqlc.Deed) *model.Deed {
	return &model.Deed{
		ID:                    row.ID,
		OrganizationID:        row.OrganizationID,
		Title:                 row.Title,
		ProtocolNumber:        row.ProtocolNumber,
		NotaryName:            row.NotaryName,
		SigningDate:           fromPgDate(row.SigningDate),
		AsientoNumber:         row.AsientoNumber,
		PresentationAt:        fromPgTimestamp(row.PresentationAt),
		Model600Deadline:      fromPgDate(row.Model600Deadline),
		AsientoExpirationDate: fromPgDate(row.AsientoExpirationDate),
		QualificationDeadline: fromPgDate(row.QualificationDeadline),
		CreatedAt:             row.CreatedAt.Time,
		UpdatedAt:             row.UpdatedAt.Time,
	}
}
