package main

import (
	"github.com/corray333/backend-labs/presale/internal/app"
	"github.com/corray333/backend-labs/presale/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
