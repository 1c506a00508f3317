package main

import (
	"github.com/krishkpatil/getflix/internal/app"
	"github.com/krishkpatil/getflix/internal/config"
)

func main() {
	app.Sweep(config.Load())
}
