package main

import (
	"context"
	"flag"
	"os"

	"address-geocoder/internal/config"
	"address-geocoder/internal/importer"
	"address-geocoder/internal/logging"
	"address-geocoder/internal/message"
	"address-geocoder/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

func main() {
	table := flag.String("table", "", "Reference table to load (city, town, rsdtdsp_blk, rsdtdsp_rsdt)")
	file := flag.String("file", "", "Path to the CSV file to import")
	batch := flag.Int("batch", 5000, "Rows per copy")
	flag.Parse()

	if *table == "" || *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	messages := message.New(cfg.Locale)

	tbl, ok := repository.TableByName(*table)
	if !ok {
		logger.Fatal().Str("table", *table).Msg("unknown table")
	}

	f, err := os.Open(*file)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot open csv")
	}
	defer f.Close()

	ctx := context.Background()

	var loader importer.Loader
	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err := repository.OpenSQLite(cfg.DBSource)
		if err != nil {
			logger.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer db.Close()
		loader = repository.NewSQLiteRepository(db)
	default:
		conn, err := pgxpool.New(ctx, cfg.DBSource)
		if err != nil {
			logger.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer conn.Close()
		loader = repository.NewRepository(conn)
	}

	logger.Info().Str("table", tbl.Name).Str("file", *file).Msg(messages.Get(message.ImportStarted))

	n, err := importer.New(loader, *batch, logger).Import(ctx, tbl, f)
	if err != nil {
		logger.Fatal().Err(err).Int64("rows", n).Msg("import failed")
	}

	logger.Info().Str("table", tbl.Name).Int64("rows", n).Msg(messages.Get(message.ImportCompleted))
}
