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

	if err := a.RunUrgent(context.Background()); err != nil {
		log.Fatalf("urgent run: %v", err)
	}
}
