package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jhoicas/trade-ledger-api/internal/application/trade"
	"github.com/jhoicas/trade-ledger-api/internal/application/usecase"
	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
	"github.com/rs/zerolog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine   *trade.Engine
	Queries  *trade.QueryService
	Receipts *trade.ReceiptUseCase
	GoodUC   *usecase.GoodUseCase
	ClientUC *usecase.ClientUseCase
	Movement *usecase.StockMovementUseCase
}

// NewApp crea la aplicación fiber con recover, request id, log de peticiones y /health.
func NewApp(name string, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": name})
	})
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Transactions
	transactions := api.Group("/transactions")
	txHandler := NewTransactionHandler(deps.Engine, deps.Queries, deps.Receipts)
	movementHandler := NewMovementHandler(deps.Movement)
	transactions.Post("/", txHandler.Create)
	transactions.Get("/", txHandler.List)
	transactions.Get("/by-client", txHandler.ByClient)
	transactions.Get("/by-date", txHandler.ByDate)
	transactions.Get("/:id", txHandler.GetByID)
	transactions.Get("/:id/receipt", txHandler.Receipt)
	transactions.Get("/:id/movements", movementHandler.ByTransaction)
	transactions.Put("/:id", txHandler.Update)
	transactions.Delete("/:id", txHandler.Delete)

	// Goods
	goods := api.Group("/goods")
	goodHandler := NewGoodHandler(deps.GoodUC)
	goods.Post("/", goodHandler.Create)
	goods.Get("/", goodHandler.List)
	goods.Get("/:id", goodHandler.GetByID)
	goods.Get("/:id/movements", movementHandler.ByGood)
	goods.Put("/:id", goodHandler.Update)
	goods.Delete("/:id", goodHandler.Delete)

	// Acquirers y suppliers comparten handler; cambia la colección.
	for path, kind := range map[string]entity.ClientKind{
		"/acquirers": entity.ClientKindAcquirer,
		"/suppliers": entity.ClientKindSupplier,
	} {
		group := api.Group(path)
		h := NewClientHandler(deps.ClientUC, kind)
		group.Post("/", h.Create)
		group.Get("/", h.List)
		group.Get("/:id", h.GetByID)
		group.Delete("/:id", h.Delete)
	}
}
