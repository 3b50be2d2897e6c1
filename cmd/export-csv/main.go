package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"addonhub/pkg/database"
)

func main() {
	var (
		addonsOut = flag.String("addons", "data/addons.csv", "output CSV path for addons")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := exportAddons(ctx, db, *addonsOut); err != nil {
		log.Fatalf("export addons failed: %v", err)
	}

	log.Printf("exported addons to %s", *addonsOut)
}

func exportAddons(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"id", "guid", "slug", "type", "status", "default_locale",
		"average_daily_users", "weekly_downloads", "average_rating", "total_reviews",
	}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
        SELECT id, guid, slug, type, status, default_locale,
               average_daily_users, weekly_downloads, average_rating, total_reviews
        FROM addons
        ORDER BY slug
    `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                int64
			guid              sql.NullString
			slug              string
			addonType         int
			status            int
			defaultLocale     string
			averageDailyUsers int64
			weeklyDownloads   int64
			averageRating     float64
			totalReviews      int64
		)

		if err := rows.Scan(
			&id, &guid, &slug, &addonType, &status, &defaultLocale,
			&averageDailyUsers, &weeklyDownloads, &averageRating, &totalReviews,
		); err != nil {
			return err
		}

		if err := w.Write([]string{
			strconv.FormatInt(id, 10),
			guid.String,
			slug,
			strconv.Itoa(addonType),
			strconv.Itoa(status),
			defaultLocale,
			strconv.FormatInt(averageDailyUsers, 10),
			strconv.FormatInt(weeklyDownloads, 10),
			strconv.FormatFloat(averageRating, 'f', -1, 64),
			strconv.FormatInt(totalReviews, 10),
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}
