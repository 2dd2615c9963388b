package usecase

import (
	"context"

	"campaign-manager/internal/core/domain"
	"campaign-manager/internal/core/port"
)

// CampaignUseCase provides tenant-scoped campaign operations on top of a
// port.CampaignRepository. Input is expected to be validated already.
type CampaignUseCase struct {
	repo port.CampaignRepository
}

// NewCampaignUseCase creates a new usecase with the provided repository.
func NewCampaignUseCase(repo port.CampaignRepository) *CampaignUseCase {
	return &CampaignUseCase{repo: repo}
}

// List returns the user's campaigns, newest first.
func (u *CampaignUseCase) List(ctx context.Context, userID int64) ([]domain.Campaign, error) {
	return u.repo.FindAll(ctx, userID)
}

// Get returns one owned campaign or domain.ErrNotFound.
func (u *CampaignUseCase) Get(ctx context.Context, id, userID int64) (*domain.Campaign, error) {
	c, err := u.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// Create stores a new campaign, defaulting the status to draft.
func (u *CampaignUseCase) Create(ctx context.Context, userID int64, c domain.NewCampaign) (*domain.Campaign, error) {
	if c.Status == "" {
		c.Status = domain.StatusDraft
	}
	return u.repo.Create(ctx, userID, c)
}

// Update applies patch to an owned campaign. An empty patch is rejected
// with domain.ErrEmptyUpdate before reaching the store.
func (u *CampaignUseCase) Update(ctx context.Context, id, userID int64, patch domain.CampaignPatch) (*domain.Campaign, error) {
	if patch.Empty() {
		return nil, domain.ErrEmptyUpdate
	}
	c, err := u.repo.Update(ctx, id, userID, patch)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// Delete removes an owned campaign or returns domain.ErrNotFound.
func (u *CampaignUseCase) Delete(ctx context.Context, id, userID int64) error {
	deleted, err := u.repo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// Stats returns the user's aggregates.
func (u *CampaignUseCase) Stats(ctx context.Context, userID int64) (*domain.CampaignStats, error) {
	return u.repo.GetStats(ctx, userID)
}
