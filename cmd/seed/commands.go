package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/jhoicas/trade-ledger-api/internal/application/usecase"
	"github.com/jhoicas/trade-ledger-api/internal/domain"
	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
	"github.com/jhoicas/trade-ledger-api/internal/infrastructure/postgres"
	"github.com/jhoicas/trade-ledger-api/pkg/config"
	"github.com/jhoicas/trade-ledger-api/pkg/logger"
)

// CheckCmd valida el catálogo y muestra un resumen.
type CheckCmd struct {
	File string `arg:"" type:"existingfile" help:"Archivo XML del catálogo."`
}

func (cmd *CheckCmd) Run(ctx *kong.Context) error {
	c, err := readCatalog(cmd.File)
	if err != nil {
		return err
	}
	for _, g := range c.Goods {
		if !entity.Material(g.Material).Valid() {
			return fmt.Errorf("bien %q: material %q desconocido", g.Name, g.Material)
		}
	}
	_, _ = fmt.Fprintf(ctx.Stdout, "%s: %d bienes, %d compradores, %d proveedores\n",
		cmd.File, len(c.Goods), len(c.Acquirers), len(c.Suppliers))
	return nil
}

// LoadCmd inserta el catálogo. Los registros ya existentes se omiten.
type LoadCmd struct {
	File    string `arg:"" type:"existingfile" help:"Archivo XML del catálogo."`
	Migrate bool   `help:"Aplica el esquema antes de cargar." default:"true" negatable:""`
}

func (cmd *LoadCmd) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	if cfg.Store.Backend != config.BackendPostgres {
		return fmt.Errorf("seed requiere STORE_BACKEND=%s (actual: %s)", config.BackendPostgres, cfg.Store.Backend)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "seed"})

	c, err := readCatalog(cmd.File)
	if err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()
	if cmd.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			return err
		}
	}

	repos := postgres.NewRepos(pool)
	goods := usecase.NewGoodUseCase(repos.Goods)
	clients := usecase.NewClientUseCase(repos.Acquirers, repos.Suppliers)

	var created, skipped int
	record := func(kind, name string, err error) error {
		switch {
		case err == nil:
			created++
			return nil
		case errors.Is(err, domain.ErrDuplicate):
			skipped++
			log.Warn().Str("kind", kind).Str("name", name).Msg("ya existe, se omite")
			return nil
		}
		return fmt.Errorf("%s %q: %w", kind, name, err)
	}

	for _, g := range c.Goods {
		_, err := goods.Create(ctx, g)
		if err := record("bien", g.Name, err); err != nil {
			return err
		}
	}
	for _, a := range c.Acquirers {
		_, err := clients.Create(ctx, entity.ClientKindAcquirer, a)
		if err := record("comprador", a.Name, err); err != nil {
			return err
		}
	}
	for _, s := range c.Suppliers {
		_, err := clients.Create(ctx, entity.ClientKindSupplier, s)
		if err := record("proveedor", s.Name, err); err != nil {
			return err
		}
	}

	log.Info().Int("created", created).Int("skipped", skipped).Str("file", cmd.File).Msg("catálogo cargado")
	return nil
}

func readCatalog(path string) (*catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir catálogo: %w", err)
	}
	defer f.Close()
	return parseCatalog(f)
}
