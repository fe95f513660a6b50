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
	gameName := flag.String("game-name", "", "import data for a specific game (by name)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading environment variables directly")
	}

	cfg := config.Load()
	db := database.Connect(cfg)
	database.AutoMigrate(db)

	genres := services.NewGenreService(db)
	transfer := services.NewTransferService(db, genres, cfg.ExportDir)

	count, err := transfer.ImportGames(*gameName)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}
	log.Printf("data imported successfully (%d answer rows)", count)
}
