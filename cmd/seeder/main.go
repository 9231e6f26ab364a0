// Command seeder writes the bundled sample histories into the configured
// store so a fresh deployment can serve predictions without network access.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/courtside/tennis-stats-api/internal/cache"
	"github.com/courtside/tennis-stats-api/internal/config"
	"github.com/courtside/tennis-stats-api/internal/seed"
)

func main() {
	merge := flag.Bool("merge", true, "merge with histories already in the store instead of overwriting")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	backend, err := cache.OpenBackend(ctx, cfg, logger)
	if err != nil {
		sugar.Fatalw("Failed to open store", "backend", cfg.StoreBackend, "error", err)
	}
	defer backend.Close()

	written := 0
	for _, name := range seed.Players() {
		display, records, ok := seed.Lookup(name)
		if !ok {
			continue
		}
		if *merge {
			existing, err := backend.Store.Load(ctx, display)
			if err == nil {
				records = cache.Merge(existing, records)
			}
		} else {
			records = cache.Merge(nil, records)
		}
		if err := backend.Store.Save(ctx, display, records); err != nil {
			sugar.Errorw("Failed to seed player", "player", display, "error", err)
			continue
		}
		written++
		sugar.Infow("Seeded player", "player", display, "matches", len(records))
	}

	sugar.Infow("Seeding complete", "players", written, "backend", backend.Name)
}
