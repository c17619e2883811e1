package main

import (
	"dormhub/config"
	"dormhub/di"
	"dormhub/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
