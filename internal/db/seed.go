package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// SeedEmail is the login of the demo account created by Seed.
const SeedEmail = "demo@example.com"

// Seed inserts a demo user with a handful of campaigns. passwordHash is the
// already derived hash of the demo password. Running it twice is a no-op
// for the user row; campaigns are only added when the user has none.
func Seed(ctx context.Context, db *pgxpool.Pool, passwordHash string) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	var userID int64
	err := db.QueryRow(ctx, `INSERT INTO users (email, name, password_hash)
VALUES ($1, $2, $3)
ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
RETURNING id`, SeedEmail, "Demo User", passwordHash).Scan(&userID)
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	var existing int64
	if err = db.QueryRow(ctx, `SELECT count(*) FROM campaigns WHERE user_id = $1`, userID).Scan(&existing); err != nil {
		return fmt.Errorf("count seeded campaigns: %w", err)
	}
	if existing > 0 {
		return nil
	}

	statuses := []string{"draft", "active", "paused", "completed"}
	for i := 1; i <= 5; i++ {
		name := fmt.Sprintf("Campaign %d", i)
		start := time.Now().AddDate(0, 0, -i)
		end := start.AddDate(0, 1, 0)
		budget := decimal.NewFromInt(int64(1000 * i))
		impressions := int64(r.Intn(50000))
		clicks := impressions / int64(20+r.Intn(30))
		conversions := clicks / int64(5+r.Intn(10))
		spent := decimal.NewFromInt(clicks).Div(decimal.NewFromInt(2))
		_, err = db.Exec(ctx, `INSERT INTO campaigns
    (user_id, name, description, budget, spent, start_date, end_date, status,
     target_audience, impressions, clicks, conversions)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
			userID, name, fmt.Sprintf("Demo campaign number %d", i), budget, spent, start, end,
			statuses[i%len(statuses)], "18-35, tech", impressions, clicks, conversions)
		if err != nil {
			return fmt.Errorf("seed campaign %d: %w", i, err)
		}
	}
	return nil
}
