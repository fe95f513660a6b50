package main

import (
	"flag"
	"log"

	"quiz-arena-backend/internal/config"
	"quiz-arena-backend/internal/database"
	"quiz-arena-backend/internal/services"

	"github.com/joho/godotenv"
)

func main() {
	gameName := flag.String("game-name", "", "export data for a specific game (by name)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading environment variables directly")
	}

	cfg := config.Load()
	db := database.Connect(cfg)

	genres := services.NewGenreService(db)
	transfer := services.NewTransferService(db, genres, cfg.ExportDir)

	filename, err := transfer.ExportGames(*gameName)
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}
	log.Printf("data exported to %s", filename)
}
