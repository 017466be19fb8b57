package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lexdesk.app/deedwatch/internal/model"
	"lexdesk.app/deedwatch/internal/store"
)

// Resolver finds who should receive a deed's reminder. ok is false when the
// strategy has nobody to offer.
type Resolver interface {
	Resolve(ctx context.Context, deed model.Deed) (email string, ok bool, err error)
}

// Chain tries resolvers in order and returns the first address found. A failing
// resolver is logged and skipped.
type Chain struct {
	resolvers []Resolver
	timeout   time.Duration
}

// NewChain builds a chain; a positive timeout bounds each resolver call.
func NewChain(timeout time.Duration, resolvers ...Resolver) *Chain {
	return &Chain{resolvers: resolvers, timeout: timeout}
}

func (c *Chain) Resolve(ctx context.Context, deed model.Deed) (string, bool, error) {
	for _, r := range c.resolvers {
		email, ok, err := c.try(ctx, r, deed)
		if err != nil {
			slog.WarnContext(ctx, "recipient resolver failed, trying next",
				"resolver", fmt.Sprintf("%T", r),
				"error", err)
			continue
		}
		if ok && email != "" {
			return email, true, nil
		}
	}
	return "", false, nil
}

func (c *Chain) try(ctx context.Context, r Resolver, deed model.Deed) (string, bool, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return r.Resolve(ctx, deed)
}

// AssigneeResolver picks the deed's first assignee by assignment order.
type AssigneeResolver struct {
	recipients store.RecipientStore
}

func NewAssigneeResolver(recipients store.RecipientStore) *AssigneeResolver {
	return &AssigneeResolver{recipients: recipients}
}

func (r *AssigneeResolver) Resolve(ctx context.Context, deed model.Deed) (string, bool, error) {
	email, err := r.recipients.FirstAssigneeEmail(ctx, deed.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("looking up assignee: %w", err)
	}
	return email, email != "", nil
}

// SeniorStaffResolver falls back to the first partner, senior or admin of the
// deed's organization.
type SeniorStaffResolver struct {
	recipients store.RecipientStore
	roles      []model.MemberRole
}

func NewSeniorStaffResolver(recipients store.RecipientStore) *SeniorStaffResolver {
	return &SeniorStaffResolver{recipients: recipients, roles: model.SeniorRoles}
}

func (r *SeniorStaffResolver) Resolve(ctx context.Context, deed model.Deed) (string, bool, error) {
	email, err := r.recipients.FirstMemberEmailWithRoles(ctx, deed.OrganizationID, r.roles)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("looking up senior staff: %w", err)
	}
	return email, email != "", nil
}
