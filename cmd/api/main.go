package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/jhoicas/trade-ledger-api/internal/application/trade"
	"github.com/jhoicas/trade-ledger-api/internal/application/usecase"
	"github.com/jhoicas/trade-ledger-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/trade-ledger-api/internal/infrastructure/pdf"
	"github.com/jhoicas/trade-ledger-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/trade-ledger-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/trade-ledger-api/internal/interfaces/http"
	"github.com/jhoicas/trade-ledger-api/pkg/config"
	"github.com/jhoicas/trade-ledger-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Backend).
		Msg("iniciando aplicación")

	policy, err := trade.ParseUpdateFailurePolicy(cfg.Trade.UpdateFailurePolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("política de actualización")
	}

	ctx := context.Background()

	// Almacén: PostgreSQL en producción, memoria para desarrollo local.
	var (
		runner trade.TxRunner
		repos  trade.Repos
	)
	switch cfg.Store.Backend {
	case config.BackendMemory:
		store := memory.NewStore()
		runner, repos = store, store.Repos()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.Store.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migración del esquema")
			}
		}
		runner, repos = postgres.NewTxRunner(pool), postgres.NewRepos(pool)
	}

	// Idempotencia: Redis si hay URL; si no, en memoria (válido solo con una réplica).
	var idem trade.IdempotencyStore
	if cfg.Redis.URL != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		idem = infraredis.NewIdempotencyStore(client, cfg.Trade.IdempotencyTTL)
	} else {
		idem = memory.NewIdempotencyStore(cfg.Trade.IdempotencyTTL)
	}

	engine := trade.NewEngine(runner, trade.EngineConfig{
		UpdateFailurePolicy: policy,
		Idempotency:         idem,
	}, log.Component("trade"))
	resolver := trade.NewClientResolver(repos.Acquirers, repos.Suppliers)
	queries := trade.NewQueryService(repos.Transactions, repos.Goods, resolver)

	// PDF: comprobante de la transacción
	receiptUC := trade.NewReceiptUseCase(queries, infrapdf.NewMarotoPDFGenerator())

	app := httpRouter.NewApp(cfg.App.Name, log.Component("http"))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Docs.SwaggerPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.SwaggerPath,
			Path:     "docs",
			Title:    "Trade Ledger API",
		}))
	} else {
		log.Warn().Str("path", cfg.Docs.SwaggerPath).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Engine:   engine,
		Queries:  queries,
		Receipts: receiptUC,
		GoodUC:   usecase.NewGoodUseCase(repos.Goods),
		ClientUC: usecase.NewClientUseCase(repos.Acquirers, repos.Suppliers),
		Movement: usecase.NewStockMovementUseCase(repos.Movements, repos.Goods, repos.Transactions),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
