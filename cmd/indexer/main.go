package main

import (
	"context"
	"flag"
	"log"
	"time"

	"addonhub/internal/addons"
	"addonhub/internal/indexer"
	"addonhub/internal/search"
	"addonhub/internal/tags"
	"addonhub/pkg/database"
)

func main() {
	var (
		addonID = flag.Int64("addon", 0, "reindex only this addon id (0 = full pass)")
		timeout = flag.Duration("timeout", 5*time.Minute, "overall run timeout")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	ix := indexer.New(addons.NewRepo(db), search.NewRepo(db), tags.NewRepo(db))

	if *addonID != 0 {
		if err := ix.ReindexAddon(ctx, *addonID); err != nil {
			log.Fatalf("reindex addon %d failed: %v", *addonID, err)
		}
		log.Printf("[indexer] addon %d indexed", *addonID)
		return
	}

	count, err := ix.ReindexAll(ctx)
	if err != nil {
		log.Fatalf("full reindex failed: %v", err)
	}
	log.Printf("[indexer] full pass complete, %d addons indexed", count)
}
