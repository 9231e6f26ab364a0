// predlog prints the most recent logged predictions.
//
//	CLICKHOUSE_URL=clickhouse://localhost:9000/tennis go run ./tools/predlog -player sinner -limit 20
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/courtside/tennis-stats-api/internal/logic"
	"github.com/courtside/tennis-stats-api/internal/models"
)

func main() {
	player := flag.String("player", "", "only matchups involving this player")
	surface := flag.String("surface", "", "Hard, Clay, Grass or Indoor")
	limit := flag.Int("limit", 20, "rows to print")
	flag.Parse()

	chURL := os.Getenv("CLICKHOUSE_URL")
	if chURL == "" {
		chURL = "clickhouse://localhost:9000/default"
	}

	opts, err := clickhouse.ParseDSN(chURL)
	if err != nil {
		log.Fatalf("Failed to parse DSN: %v", err)
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open connection: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req := logic.PredictionHistoryRequest{Player: *player, Limit: *limit}
	if *surface != "" {
		s, err := models.ParseSurface(*surface)
		if err != nil {
			log.Fatal(err)
		}
		req.Surface = &s
	}

	preds, err := logic.NewPredictionHistory(conn).Recent(ctx, req)
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}

	for _, p := range preds {
		fav := p.Favorite
		if fav == "" {
			fav = "-"
		}
		fmt.Printf("%s  %-22s %-22s %-6s %5.1f%%  %s\n",
			p.GeneratedAt.Format(time.RFC3339), p.Player1, p.Player2, p.Surface, p.Confidence, fav)
	}
	fmt.Printf("%d predictions\n", len(preds))
}
