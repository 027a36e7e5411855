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

	"conveyorhub/pkg/database"
)

func main() {
	var (
		out = flag.String("out", "data/scans.csv", "output CSV path for scan records")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := exportScans(ctx, db, *out); err != nil {
		log.Fatalf("export scans failed: %v", err)
	}

	log.Printf("✅ exported scans to %s", *out)
}

func exportScans(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "recorded_at", "order_number", "clp_number", "status"}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
        SELECT id, recorded_at, order_number, clp_number, status
        FROM scans
        ORDER BY id
    `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id          int64
			recordedAt  string
			orderNumber int64
			clpNumber   int64
			status      bool
		)

		if err := rows.Scan(&id, &recordedAt, &orderNumber, &clpNumber, &status); err != nil {
			return err
		}

		statusText := "NOK"
		if status {
			statusText = "OK"
		}

		if err := w.Write([]string{
			strconv.FormatInt(id, 10),
			recordedAt,
			strconv.FormatInt(orderNumber, 10),
			strconv.FormatInt(clpNumber, 10),
			statusText,
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
