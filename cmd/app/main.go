package main

import (
	"github.com/krishkpatil/getflix/internal/app"
	"github.com/krishkpatil/getflix/internal/config"
)

// @title Getflix API
// @version 1.0
// @description Movie discovery and two-party matching sessions
// @BasePath /api/v1
func main() {
	app.Go(config.Load())
}
