package services

import (
	"errors"
	"time"

	"quiz-arena-backend/internal/cache"
	"quiz-arena-backend/internal/models"

	"gorm.io/gorm"
)

type PlayerService struct {
	db      *gorm.DB
	avatars *AvatarService
	cache   *cache.Cache
}

func NewPlayerService(db *gorm.DB, avatars *AvatarService, c *cache.Cache) *PlayerService {
	return &PlayerService{db: db, avatars: avatars, cache: c}
}

type PlayerInput struct {
	Kind             string     `json:"kind" binding:"required" example:"subscriber"`
	ProfileActivated bool       `json:"profile_activated"`
	SubscriptionDate *time.Time `json:"subscription_date,omitempty"`
	InvitedByID      *uint      `json:"invited_by_id,omitempty"`
	SponsorID        *uint      `json:"sponsor_id,omitempty"`
	RegistrationDate *time.Time `json:"registration_date,omitempty"`
	TeamMemberDate   *time.Time `json:"team_member_date,omitempty"`
}

func (s *PlayerService) CreatePlayer(userID uint, input PlayerInput) (*models.Player, error) {
	var existing models.Player
	if err := s.db.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		return nil, errors.New("player already exists for this user")
	}

	player := models.Player{
		UserID:           userID,
		Kind:             input.Kind,
		ProfileActivated: input.ProfileActivated,
		SubscriptionDate: input.SubscriptionDate,
		InvitedByID:      input.InvitedByID,
		SponsorID:        input.SponsorID,
		RegistrationDate: input.RegistrationDate,
		TeamMemberDate:   input.TeamMemberDate,
	}
	if err := player.ValidatePayload(); err != nil {
		return nil, err
	}
	if err := s.db.Create(&player).Error; err != nil {
		return nil, err
	}

	// Post-commit followups: placeholder avatar and listing cache.
	if player.Avatar == "" {
		s.avatars.Enqueue(player.ID)
	}
	s.cache.Invalidate(cache.KeyPlayerList)

	s.db.Preload("User").First(&player, player.ID)
	return &player, nil
}

func (s *PlayerService) GetPlayers() ([]models.Player, error) {
	if cached, ok := s.cache.Get(cache.KeyPlayerList); ok {
		return cached.([]models.Player), nil
	}

	var players []models.Player
	err := s.db.Preload("User").
		Joins("JOIN users ON users.id = players.user_id").
		Order("users.username ASC").
		Find(&players).Error
	if err != nil {
		return nil, err
	}

	s.cache.Set(cache.KeyPlayerList, players)
	return players, nil
}

func (s *PlayerService) GetPlayerByID(playerID uint) (*models.Player, error) {
	var player models.Player
	if err := s.db.Preload("User").First(&player, playerID).Error; err != nil {
		return nil, errors.New("player not found")
	}
	return &player, nil
}

// GetPlayerByUsername resolves a player by its natural key.
func (s *PlayerService) GetPlayerByUsername(username string) (*models.Player, error) {
	var player models.Player
	err := s.db.Preload("User").
		Joins("JOIN users ON users.id = players.user_id").
		Where("users.username = ?", username).
		First(&player).Error
	if err != nil {
		return nil, errors.New("player not found")
	}
	return &player, nil
}

// GetPlayerByUserID resolves the player attached to an authenticated user.
func (s *PlayerService) GetPlayerByUserID(userID uint) (*models.Player, error) {
	var player models.Player
	if err := s.db.Preload("User").Where("user_id = ?", userID).First(&player).Error; err != nil {
		return nil, errors.New("player not found")
	}
	return &player, nil
}

func (s *PlayerService) UpdatePlayer(playerID uint, input PlayerInput) (*models.Player, error) {
	var player models.Player
	if err := s.db.First(&player, playerID).Error; err != nil {
		return nil, errors.New("player not found")
	}

	player.Kind = input.Kind
	player.ProfileActivated = input.ProfileActivated
	player.SubscriptionDate = input.SubscriptionDate
	player.InvitedByID = input.InvitedByID
	player.SponsorID = input.SponsorID
	player.RegistrationDate = input.RegistrationDate
	player.TeamMemberDate = input.TeamMemberDate

	if err := player.ValidatePayload(); err != nil {
		return nil, err
	}
	if err := s.db.Save(&player).Error; err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.KeyPlayerList)

	s.db.Preload("User").First(&player, player.ID)
	return &player, nil
}
