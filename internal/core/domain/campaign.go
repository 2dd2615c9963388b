package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are rendered as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// CampaignStatus is the lifecycle state of a campaign.
type CampaignStatus string

const (
	StatusDraft     CampaignStatus = "draft"
	StatusActive    CampaignStatus = "active"
	StatusPaused    CampaignStatus = "paused"
	StatusCompleted CampaignStatus = "completed"
)

// CampaignStatuses lists every valid status in display order.
var CampaignStatuses = []CampaignStatus{StatusDraft, StatusActive, StatusPaused, StatusCompleted}

// Valid reports whether s is one of the known statuses.
func (s CampaignStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusPaused, StatusCompleted:
		return true
	}
	return false
}

// Campaign represents an advertising campaign owned by a single user.
// Spent and the event counters are maintained by delivery integrations
// outside this service and only read here.
type Campaign struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"userId"`
	Name           string          `json:"name"`
	Description    *string         `json:"description,omitempty"`
	Budget         decimal.Decimal `json:"budget"`
	Spent          decimal.Decimal `json:"spent"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	Status         CampaignStatus  `json:"status"`
	TargetAudience *string         `json:"targetAudience,omitempty"`
	Impressions    int64           `json:"impressions"`
	Clicks         int64           `json:"clicks"`
	Conversions    int64           `json:"conversions"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// NewCampaign holds validated input for creating a campaign.
type NewCampaign struct {
	Name           string
	Description    *string
	Budget         decimal.Decimal
	StartDate      time.Time
	EndDate        time.Time
	Status         CampaignStatus
	TargetAudience *string
}

// CampaignPatch is a partial update; nil fields are left untouched.
type CampaignPatch struct {
	Name           *string
	Description    *string
	Budget         *decimal.Decimal
	StartDate      *time.Time
	EndDate        *time.Time
	Status         *CampaignStatus
	TargetAudience *string
}

// Empty reports whether the patch changes nothing.
func (p CampaignPatch) Empty() bool {
	return p.Name == nil &&
		p.Description == nil &&
		p.Budget == nil &&
		p.StartDate == nil &&
		p.EndDate == nil &&
		p.Status == nil &&
		p.TargetAudience == nil
}

// CampaignStats aggregates all campaigns of one user. Every field is zero
// when the user owns no campaigns.
type CampaignStats struct {
	TotalCampaigns   int64           `json:"total_campaigns"`
	TotalBudget      decimal.Decimal `json:"total_budget"`
	TotalSpent       decimal.Decimal `json:"total_spent"`
	TotalImpressions int64           `json:"total_impressions"`
	TotalClicks      int64           `json:"total_clicks"`
	TotalConversions int64           `json:"total_conversions"`
}
