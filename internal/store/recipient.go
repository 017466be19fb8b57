package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"lexdesk.app/deedwatch/core/db/sqlc"
	"lexdesk.app/deedwatch/internal/model"
)

type recipientStore struct {
	queries *sqlc.Queries
}

func newRecipientStore(queries *sqlc.Queries) RecipientStore {
	return &recipientStore{queries: queries}
}

func (s *recipientStore) FirstAssigneeEmail(ctx context.Context, deedID int64) (string, error) {
	email, err := s.queries.GetFirstAssigneeEmail(ctx, deedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return email, nil
}

func (s *recipientStore) FirstMemberEmailWithRoles(ctx context.Context, orgID int64, roles []model.MemberRole) (string, error) {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}

	email, err := s.queries.GetFirstMemberEmailByRoles(ctx, sqlc.GetFirstMemberEmailByRolesParams{
		OrganizationID: orgID,
		Roles:          names,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return email, nil
}
