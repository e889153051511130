package main

import (
	"log"

	_ "time/tzdata"

	"github.com/eventlocator/backend/cmd/app"
	"github.com/eventlocator/backend/internal/adapters/config"
)

func main() {
	cfg := config.Get()
	a, err := app.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	a.Start()
}
