package port

import (
	"context"

	"campaign-manager/internal/core/domain"
)

// CampaignRepository defines the persistence layer for campaigns. It is an
// outbound port in hexagonal architecture. Every method is scoped by the
// owning user: a campaign belonging to someone else is indistinguishable
// from one that does not exist.
type CampaignRepository interface {
	// FindAll returns the user's campaigns, newest first.
	FindAll(ctx context.Context, userID int64) ([]domain.Campaign, error)
	// FindByID returns nil when the campaign is absent or not owned by userID.
	FindByID(ctx context.Context, id, userID int64) (*domain.Campaign, error)
	// Create inserts a campaign with zeroed counters.
	Create(ctx context.Context, userID int64, c domain.NewCampaign) (*domain.Campaign, error)
	// Update applies patch and bumps updated_at. It returns nil when no owned
	// row matches and domain.ErrEmptyUpdate when the patch is empty.
	Update(ctx context.Context, id, userID int64, patch domain.CampaignPatch) (*domain.Campaign, error)
	// Delete reports whether an owned row was removed.
	Delete(ctx context.Context, id, userID int64) (bool, error)
	// GetStats aggregates the user's campaigns.
	GetStats(ctx context.Context, userID int64) (*domain.CampaignStats, error)
}
