package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Seed inserts demo accounts and campaigns so a fresh deployment has
// something to click through. IDs are fixed strings and every insert is
// ON CONFLICT DO NOTHING, so re-running is harmless.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	businesses := []struct {
		id, email, name, industry string
	}{
		{"seed-business-1", "glow@example.com", "Glow Cosmetics", "Beauty"},
		{"seed-business-2", "peak@example.com", "Peak Fitness", "Fitness"},
	}
	for _, b := range businesses {
		_, err = db.Exec(ctx, `INSERT INTO users (id, email, password_hash, role, name, industry, categories, created_at)
VALUES ($1,$2,$3,'business',$4,$5,'{}',now()) ON CONFLICT DO NOTHING`,
			b.id, b.email, string(hash), b.name, b.industry)
		if err != nil {
			return err
		}
	}

	creators := []struct {
		id, email, name string
		categories      []string
	}{
		{"seed-creator-1", "ana@example.com", "Ana Reyes", []string{"beauty", "lifestyle"}},
		{"seed-creator-2", "tom@example.com", "Tom Okafor", []string{"fitness"}},
		{"seed-creator-3", "mia@example.com", "Mia Chen", []string{"tech", "gaming"}},
	}
	for _, c := range creators {
		_, err = db.Exec(ctx, `INSERT INTO users (id, email, password_hash, role, name, industry, categories, created_at)
VALUES ($1,$2,$3,'creator',$4,'',$5,now()) ON CONFLICT DO NOTHING`,
			c.id, c.email, string(hash), c.name, c.categories)
		if err != nil {
			return err
		}
	}

	for i, biz := range businesses {
		for j := 1; j <= 2; j++ {
			campaignID := fmt.Sprintf("seed-campaign-%d-%d", i+1, j)
			title := fmt.Sprintf("%s Launch %d", biz.name, j)
			description := fmt.Sprintf("Sponsored collaboration for %s, wave %d.", biz.name, j)
			budget := int64(50000 * j) // 500.00 units per wave
			_, err = db.Exec(ctx, `INSERT INTO campaigns (id, business_id, title, description, budget, status, applicants, created_at)
VALUES ($1,$2,$3,$4,$5,'active','{}',now()) ON CONFLICT DO NOTHING`,
				campaignID, biz.id, title, description, budget)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
