package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/elzapay/elza/internal/config"
	"github.com/elzapay/elza/internal/logger"
	"github.com/elzapay/elza/internal/migration"
	"github.com/elzapay/elza/internal/server"
	"github.com/elzapay/elza/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// HTTP surface plus every domain module it serves
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
