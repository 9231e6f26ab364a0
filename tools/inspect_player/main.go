// inspect_player prints the stored history and aggregates for one player,
// reading whichever store STORE_BACKEND selects.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/courtside/tennis-stats-api/internal/cache"
	"github.com/courtside/tennis-stats-api/internal/config"
	"github.com/courtside/tennis-stats-api/internal/logic"
	"github.com/courtside/tennis-stats-api/internal/models"
)

func main() {
	name := flag.String("player", "Jannik Sinner", "player name")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	backend, err := cache.OpenBackend(ctx, cfg, zap.NewNop())
	if err != nil {
		log.Fatalf("open %s store: %v", cfg.StoreBackend, err)
	}
	defer backend.Close()

	records, err := backend.Store.Load(ctx, *name)
	if err != nil {
		log.Fatalf("load %q: %v", *name, err)
	}

	for _, r := range records {
		fmt.Printf("%s  %-6s %s %-24s %d-%d sets, %d-%d games, %d aces\n",
			r.Date, r.Surface, r.Result, r.Opponent, r.SetsWon, r.SetsLost, r.GamesWon, r.GamesLost, r.Aces)
	}

	metrics := logic.Aggregate(models.DisplayName(*name), records)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(metrics); err != nil {
		log.Fatal(err)
	}
}
