package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/kstore/internal/cache"
	"github.com/smallbiznis/kstore/internal/catalog"
	"github.com/smallbiznis/kstore/internal/clock"
	"github.com/smallbiznis/kstore/internal/config"
	"github.com/smallbiznis/kstore/internal/logger"
	"github.com/smallbiznis/kstore/internal/migration"
	"github.com/smallbiznis/kstore/internal/observability"
	"github.com/smallbiznis/kstore/internal/server"
	"github.com/smallbiznis/kstore/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		cache.Module,

		// Functional Domains
		catalog.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.SnowflakeNode)
}
