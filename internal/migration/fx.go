package migration

import (
	"context"

	catalogdomain "github.com/smallbiznis/kstore/internal/catalog/domain"
	"github.com/smallbiznis/kstore/internal/config"
	"github.com/smallbiznis/kstore/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, catalog catalogdomain.Service, log *zap.Logger) error {
		if err := RunMigrations(conn); err != nil {
			return err
		}
		if !cfg.SeedDemo {
			return nil
		}
		return seed.EnsureDemoCatalog(context.Background(), catalog, log)
	}),
)
