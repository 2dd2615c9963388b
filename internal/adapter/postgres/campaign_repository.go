package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campaign-manager/internal/core/domain"
)

const campaignColumns = `id, user_id, name, description, budget, spent, start_date, end_date,
    status, target_audience, impressions, clicks, conversions, created_at, updated_at`

// Tenant-scoped statements. Each one filters by user_id.
const (
	listCampaignsSQL = `SELECT ` + campaignColumns + ` FROM campaigns WHERE user_id = $1 ORDER BY created_at DESC, id DESC`

	selectCampaignSQL = `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1 AND user_id = $2`

	insertCampaignSQL = `INSERT INTO campaigns
    (user_id, name, description, budget, start_date, end_date, status, target_audience)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING ` + campaignColumns

	deleteCampaignSQL = `DELETE FROM campaigns WHERE id = $1 AND user_id = $2`

	campaignStatsSQL = `SELECT
    count(*),
    COALESCE(sum(budget), 0),
    COALESCE(sum(spent), 0),
    COALESCE(sum(impressions), 0)::bigint,
    COALESCE(sum(clicks), 0)::bigint,
    COALESCE(sum(conversions), 0)::bigint
FROM campaigns WHERE user_id = $1`
)

// CampaignRepository implements port.CampaignRepository using pgxpool for
// PostgreSQL. Every statement filters by user_id.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// FindAll returns the user's campaigns, newest first.
func (r *CampaignRepository) FindAll(ctx context.Context, userID int64) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, listCampaignsSQL, userID)
	if err != nil {
		return nil, err
	}
	campaigns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		var c domain.Campaign
		err := scanCampaignInto(row, &c)
		return c, err
	})
	if err != nil {
		return nil, err
	}
	if campaigns == nil {
		campaigns = []domain.Campaign{}
	}
	return campaigns, nil
}

// FindByID returns a campaign owned by userID, or nil.
func (r *CampaignRepository) FindByID(ctx context.Context, id, userID int64) (*domain.Campaign, error) {
	return scanCampaign(r.pool.QueryRow(ctx, selectCampaignSQL, id, userID))
}

// Create inserts a campaign. Counters and spent take their column defaults.
func (r *CampaignRepository) Create(ctx context.Context, userID int64, c domain.NewCampaign) (*domain.Campaign, error) {
	status := c.Status
	if status == "" {
		status = domain.StatusDraft
	}
	row := r.pool.QueryRow(ctx, insertCampaignSQL,
		userID, c.Name, c.Description, c.Budget, c.StartDate, c.EndDate, string(status), c.TargetAudience)
	created, err := scanCampaign(row)
	if err != nil {
		return nil, fmt.Errorf("insert campaign: %w", err)
	}
	return created, nil
}

// Update applies the non-nil fields of patch to an owned campaign.
func (r *CampaignRepository) Update(ctx context.Context, id, userID int64, patch domain.CampaignPatch) (*domain.Campaign, error) {
	query, args, err := buildCampaignUpdate(id, userID, patch)
	if err != nil {
		return nil, err
	}
	return scanCampaign(r.pool.QueryRow(ctx, query, args...))
}

// Delete removes an owned campaign and reports whether a row was deleted.
func (r *CampaignRepository) Delete(ctx context.Context, id, userID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, deleteCampaignSQL, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// GetStats aggregates the user's campaigns. COALESCE keeps every field at
// zero for a user without campaigns.
func (r *CampaignRepository) GetStats(ctx context.Context, userID int64) (*domain.CampaignStats, error) {
	var s domain.CampaignStats
	err := r.pool.QueryRow(ctx, campaignStatsSQL, userID).Scan(
		&s.TotalCampaigns,
		&s.TotalBudget,
		&s.TotalSpent,
		&s.TotalImpressions,
		&s.TotalClicks,
		&s.TotalConversions,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// assignment is one "column = value" pair of an UPDATE.
type assignment struct {
	column string
	value  any
}

// campaignAssignments maps each set patch field to its column.
func campaignAssignments(p domain.CampaignPatch) []assignment {
	var out []assignment
	if p.Name != nil {
		out = append(out, assignment{"name", *p.Name})
	}
	if p.Description != nil {
		out = append(out, assignment{"description", *p.Description})
	}
	if p.Budget != nil {
		out = append(out, assignment{"budget", *p.Budget})
	}
	if p.StartDate != nil {
		out = append(out, assignment{"start_date", *p.StartDate})
	}
	if p.EndDate != nil {
		out = append(out, assignment{"end_date", *p.EndDate})
	}
	if p.Status != nil {
		out = append(out, assignment{"status", string(*p.Status)})
	}
	if p.TargetAudience != nil {
		out = append(out, assignment{"target_audience", *p.TargetAudience})
	}
	return out
}

func buildCampaignUpdate(id, userID int64, p domain.CampaignPatch) (string, []any, error) {
	sets := campaignAssignments(p)
	if len(sets) == 0 {
		return "", nil, domain.ErrEmptyUpdate
	}
	clauses := make([]string, 0, len(sets)+1)
	args := make([]any, 0, len(sets)+2)
	for i, a := range sets {
		clauses = append(clauses, fmt.Sprintf("%s = $%d", a.column, i+1))
		args = append(args, a.value)
	}
	clauses = append(clauses, "updated_at = now()")
	args = append(args, id, userID)
	query := fmt.Sprintf(`UPDATE campaigns SET %s WHERE id = $%d AND user_id = $%d RETURNING %s`,
		strings.Join(clauses, ", "), len(sets)+1, len(sets)+2, campaignColumns)
	return query, args, nil
}

func scanCampaign(row scanner) (*domain.Campaign, error) {
	var c domain.Campaign
	err := scanCampaignInto(row, &c)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanCampaignInto(row scanner, c *domain.Campaign) error {
	var status string
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Description,
		&c.Budget,
		&c.Spent,
		&c.StartDate,
		&c.EndDate,
		&status,
		&c.TargetAudience,
		&c.Impressions,
		&c.Clicks,
		&c.Conversions,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	c.Status = domain.CampaignStatus(status)
	return err
}
