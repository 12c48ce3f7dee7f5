package main

import (
	"log"

	"cardpal/internal/bot"
	"cardpal/internal/config"
)

func main() {
	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Create and start bot
	cardBot, err := bot.New(cfg)
	if err != nil {
		log.Fatal("Failed to create bot:", err)
	}

	if err := cardBot.Start(); err != nil {
		log.Fatal("Failed to start bot:", err)
	}
}
