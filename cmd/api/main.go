package main

import (
	"context"
	"io"

	"address-geocoder/internal/config"
	"address-geocoder/internal/handler"
	"address-geocoder/internal/logging"
	"address-geocoder/internal/message"
	"address-geocoder/internal/metrics"
	"address-geocoder/internal/pattern"
	"address-geocoder/internal/repository"
	"address-geocoder/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// store is what the server needs from a reference store backend.
type store interface {
	service.AddressRepository
	service.CityRepository
	handler.Pinger
}

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := logging.New(config.LogLevel, config.LogFormat)
	messages := message.New(config.Locale)

	// Reference store
	repo, closer, err := openStore(context.Background(), config)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", config.DBDriver).Msg("cannot connect to db")
	}
	defer closer.Close()
	logger.Info().Str("driver", config.DBDriver).Msg(messages.Get(message.StoreConnected))

	// Initialize layers
	collector := metrics.NewCollector()

	cache, err := pattern.NewCache(config.PatternCacheSize)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create pattern cache")
	}

	finder := service.NewAddressFinder(repo,
		service.WithLogger(logging.Component(logger, "finder")),
		service.WithMetrics(collector),
	)

	geoCodeService := service.NewGeocodeService(finder,
		service.WithCityCanonicalization(repo, cache),
		service.WithWorkers(config.Workers),
		service.WithServiceLogger(logging.Component(logger, "service")),
	)

	geoCodeHandler := handler.NewGeoCodeHandler(geoCodeService, messages,
		handler.WithDebug(config.Debug),
		handler.WithBatchLimit(config.BatchLimit),
		handler.WithLogger(logging.Component(logger, "handler")),
	)
	healthHandler := handler.NewHealthHandler(repo, logger)

	r := gin.Default()

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(collector.Handler()))
	r.GET("/geocode", geoCodeHandler.GeoCode)
	r.POST("/geocode/batch", geoCodeHandler.GeoCodeBatch)

	logger.Info().Str("address", config.ServerAddress).Msg(messages.Get(message.ServerStarting))
	if err := r.Run(config.ServerAddress); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

type closeFunc func()

func (f closeFunc) Close() error {
	f()
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (store, io.Closer, error) {
	if cfg.DBDriver == config.DriverSQLite {
		db, err := repository.OpenSQLite(cfg.DBSource)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSQLiteRepository(db), db, nil
	}

	conn, err := pgxpool.New(ctx, cfg.DBSource)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewRepository(conn), closeFunc(conn.Close), nil
}
