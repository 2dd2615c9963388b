package port

import (
	"context"

	"campaign-manager/internal/core/domain"
)

// CampaignUseCase defines the campaign operations available to an
// authenticated user. Absent or foreign campaigns are reported as
// domain.ErrNotFound.
type CampaignUseCase interface {
	List(ctx context.Context, userID int64) ([]domain.Campaign, error)
	Get(ctx context.Context, id, userID int64) (*domain.Campaign, error)
	Create(ctx context.Context, userID int64, c domain.NewCampaign) (*domain.Campaign, error)
	Update(ctx context.Context, id, userID int64, patch domain.CampaignPatch) (*domain.Campaign, error)
	Delete(ctx context.Context, id, userID int64) error
	Stats(ctx context.Context, userID int64) (*domain.CampaignStats, error)
}
