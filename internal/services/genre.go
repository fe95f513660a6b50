package services

import (
	"errors"

	"quiz-arena-backend/internal/models"

	"gorm.io/gorm"
)

type GenreService struct {
	db *gorm.DB
}

func NewGenreService(db *gorm.DB) *GenreService {
	return &GenreService{db: db}
}

// GetGenres returns the root genres with their children preloaded one level
// deep, which is as deep as the catalog goes today.
func (s *GenreService) GetGenres() ([]models.Genre, error) {
	var genres []models.Genre
	err := s.db.Where("parent_id IS NULL").
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Order("name ASC").
		Find(&genres).Error
	if err != nil {
		return nil, err
	}
	return genres, nil
}

func (s *GenreService) CreateGenre(name string, parentID *uint) (*models.Genre, error) {
	if parentID != nil {
		var parent models.Genre
		if err := s.db.First(&parent, *parentID).Error; err != nil {
			return nil, errors.New("parent genre not found")
		}
	}

	genre := models.Genre{Name: name, ParentID: parentID}
	if err := s.db.Create(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

// GetGenreByName resolves a genre by its natural key.
func (s *GenreService) GetGenreByName(name string) (*models.Genre, error) {
	var genre models.Genre
	if err := s.db.Where("name = ?", name).First(&genre).Error; err != nil {
		return nil, errors.New("genre not found")
	}
	return &genre, nil
}

// GetOrCreateGenreByName is used by the CSV import, where a genre column may
// name a genre that does not exist yet.
func (s *GenreService) GetOrCreateGenreByName(name string) (*models.Genre, error) {
	if name == "" {
		return nil, nil
	}
	genre, err := s.GetGenreByName(name)
	if err == nil {
		return genre, nil
	}
	return s.CreateGenre(name, nil)
}
