package main

import (
	"github.com/SriHarshaMande/Planning-poker/internal/app"
	"github.com/SriHarshaMande/Planning-poker/internal/config"
)

func main() {
	app.Go(config.Load())
}
