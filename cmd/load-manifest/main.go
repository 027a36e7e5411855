package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"conveyorhub/internal/manifest"
	"conveyorhub/pkg/database"
)

// Loads an expected-data CSV straight into the manifest store, same path
// the upload endpoint takes, for seeding a line before the shift starts.
func main() {
	var (
		in = flag.String("in", "data/expected.csv", "input CSV path for the expected manifest")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	f, err := os.Open(*in)
	if err != nil {
		log.Fatalf("open %s: %v", *in, err)
	}
	defer f.Close()

	res, err := manifest.ParseCSV(f)
	if err != nil {
		log.Fatalf("parse %s: %v", *in, err)
	}

	repo := manifest.NewRepo(db)
	if err := repo.Replace(ctx, res.Pairs); err != nil {
		log.Fatalf("manifest replace failed: %v", err)
	}

	if len(res.SkippedRows) > 0 {
		log.Printf("skipped rows: %v", res.SkippedRows)
	}
	log.Printf("✅ loaded %d expected records from %s", res.TotalRows, *in)
}
