package main

import (
	"context"
	"log"

	"klbrief/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("startup: %v", err)
	}

	if err := a.RunWeekly(context.Background()); err != nil {
		log.Fatalf("weekly run: %v", err)
	}
}
