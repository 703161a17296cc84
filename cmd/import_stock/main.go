// import_stock carga el catálogo de SKUs desde el CSV exportado por el sistema anterior.
//
// Uso: go run ./cmd/import_stock [-latin1=false] [-dry-run] archivo.csv
// Columnas: sku;name;supplier_id;stock;min;pack_size;lead_time_days;unit_cost
// Escribe en PostgreSQL con la misma configuración que la API (DATABASE_URL / DB_*).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/core-stock/internal/infrastructure/postgres"
	"github.com/jhoicas/core-stock/pkg/config"
	"github.com/jhoicas/core-stock/pkg/logger"
)

func main() {
	latin1 := flag.Bool("latin1", true, "el archivo viene en ISO-8859-1")
	dryRun := flag.Bool("dry-run", false, "solo valida, no escribe en la base")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: import_stock [-latin1=false] [-dry-run] archivo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).WithComponent("import_stock")

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	snaps, bad, err := parseStockCSV(f, *latin1)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}
	for _, e := range bad {
		log.Warn().Int("line", e.Line).Err(e.Err).Msg("fila descartada")
	}
	log.Info().Int("ok", len(snaps)).Int("descartadas", len(bad)).Msg("CSV leído")
	if *dryRun {
		return
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	repo := postgres.NewStockRepository(pool)
	for _, s := range snaps {
		if err := repo.Upsert(ctx, s); err != nil {
			log.Fatal().Err(err).Str("sku", s.SKU).Msg("upsert")
		}
	}
	log.Info().Int("skus", len(snaps)).Msg("importación terminada")
}
