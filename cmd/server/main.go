package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/exclucatalog/exclucatalog/internal/cart"
	"github.com/exclucatalog/exclucatalog/internal/catalog"
	"github.com/exclucatalog/exclucatalog/internal/config"
	"github.com/exclucatalog/exclucatalog/internal/events"
	"github.com/exclucatalog/exclucatalog/internal/handlers"
	"github.com/exclucatalog/exclucatalog/internal/importer"
	"github.com/exclucatalog/exclucatalog/internal/kvstore"
	"github.com/exclucatalog/exclucatalog/internal/logging"
	"github.com/exclucatalog/exclucatalog/internal/search"
	httpserver "github.com/exclucatalog/exclucatalog/internal/transport/http"
	loggingmw "github.com/exclucatalog/exclucatalog/pkg/middleware/logging"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New(cfg.LOG_LEVEL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, err := kvstore.Open(ctx, cfg.DATABASE_URL, cfg.SQLITE_PATH)
	if err != nil {
		log.Fatalf("open snapshot store: %v", err)
	}

	catalogStore := catalog.NewStore(ctx, kv, logger)
	cartStore := cart.NewStore(ctx, kv, logger)

	var producer events.Publisher = events.Noop{}
	if cfg.KAFKA_ADDRESS != "" {
		producer = events.NewKafka(cfg.KAFKA_ADDRESS)
	}
	defer producer.Close()

	searchSvc := &search.Service{Index: cfg.ES_INDEX, Catalog: catalogStore, Log: logger}
	if cfg.ES_URL != "" {
		esClient, err := search.NewClient(cfg)
		if err != nil {
			logger.Error("elasticsearch unavailable, using local search", "error", err)
		} else {
			searchSvc.ES = esClient
			searchSvc.Reindex(ctx, catalogStore.GetAll())
		}
	}

	secret := []byte(cfg.SESSION_SECRET)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		SessionSecret: secret,
		PagesHandler:  &handlers.PagesHandler{SessionSecret: secret},
		AuthHandler: &handlers.AuthHandler{
			KV:            kv,
			SessionSecret: secret,
			PasswordHash:  cfg.CATALOG_PASSWORD_HASH,
			Password:      cfg.CATALOG_PASSWORD,
			Producer:      producer,
		},
		CatalogHandler: &handlers.CatalogHandler{
			Catalog:  catalogStore,
			Importer: importer.New(),
			Search:   searchSvc,
			Producer: producer,
		},
		CartHandler: &handlers.CartHandler{
			Cart:     cartStore,
			Catalog:  catalogStore,
			Producer: producer,
		},
	})

	go func() {
		<-ctx.Done()
		if err := e.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	e.Logger.Fatal(e.Start(cfg.APP_ADDR))
}
