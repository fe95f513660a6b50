package services

import (
	"errors"

	"quiz-arena-backend/internal/models"

	"gorm.io/gorm"
)

type PlayService struct {
	db      *gorm.DB
	scoring *ScoringService
}

func NewPlayService(db *gorm.DB, scoring *ScoringService) *PlayService {
	return &PlayService{db: db, scoring: scoring}
}

// CreatePlay starts a player's attempt at a game. The entry placeholders are
// seeded by the play's creation hook inside the same transaction. A second
// play for the same (player, game) pair is rejected here and, as a backstop,
// by the unique constraint.
func (s *PlayService) CreatePlay(playerID, gameID uint) (*models.Play, error) {
	var game models.Game
	if err := s.db.First(&game, gameID).Error; err != nil {
		return nil, errors.New("game not found")
	}

	var existing models.Play
	if err := s.db.Where("player_id = ? AND game_id = ?", playerID, gameID).
		First(&existing).Error; err == nil {
		return nil, errors.New("player already has a play for this game")
	}

	play := models.Play{PlayerID: playerID, GameID: gameID}
	if err := s.db.Create(&play).Error; err != nil {
		return nil, err
	}

	return s.loadPlay(play.ID)
}

func (s *PlayService) loadPlay(playID uint) (*models.Play, error) {
	var play models.Play
	err := s.db.Preload("Player.User").
		Preload("Game").
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Entries.Question").
		Preload("Entries.Answer").
		First(&play, playID).Error
	if err != nil {
		return nil, errors.New("play not found")
	}
	return &play, nil
}

func (s *PlayService) GetPlayByID(playID uint) (*models.Play, error) {
	return s.loadPlay(playID)
}

func (s *PlayService) GetPlaysByPlayer(playerID uint) ([]models.Play, error) {
	var plays []models.Play
	err := s.db.Where("player_id = ?", playerID).
		Preload("Game").
		Order("created_at DESC").
		Find(&plays).Error
	if err != nil {
		return nil, err
	}
	return plays, nil
}

// GetPlayByNaturalKey resolves (player username, game name).
func (s *PlayService) GetPlayByNaturalKey(username, gameName string) (*models.Play, error) {
	var play models.Play
	err := s.db.
		Joins("JOIN players ON players.id = plays.player_id").
		Joins("JOIN users ON users.id = players.user_id").
		Joins("JOIN games ON games.id = plays.game_id").
		Where("users.username = ? AND games.name = ?", username, gameName).
		First(&play).Error
	if err != nil {
		return nil, errors.New("play not found")
	}
	return s.loadPlay(play.ID)
}

// SubmitEntry records the selected answer for one of the play's questions.
// The answer must belong to the entry's question; passing a zero answer ID
// clears the selection.
func (s *PlayService) SubmitEntry(playID, playerID, questionID uint, answerID *uint) (*models.Entry, error) {
	var play models.Play
	if err := s.db.Where("id = ? AND player_id = ?", playID, playerID).First(&play).Error; err != nil {
		return nil, errors.New("play not found or access denied")
	}

	var entry models.Entry
	if err := s.db.Where("play_id = ? AND question_id = ?", playID, questionID).
		First(&entry).Error; err != nil {
		return nil, errors.New("entry not found")
	}

	if answerID != nil {
		var answer models.Answer
		if err := s.db.Where("id = ? AND question_id = ?", *answerID, questionID).
			First(&answer).Error; err != nil {
			return nil, errors.New("answer does not belong to this question")
		}
	}

	entry.AnswerID = answerID
	if err := s.db.Save(&entry).Error; err != nil {
		return nil, err
	}

	s.db.Preload("Question").Preload("Answer").First(&entry, entry.ID)
	return &entry, nil
}

// PlayScore computes the play's current score from its selected answers.
func (s *PlayService) PlayScore(playID uint) (int, error) {
	play, err := s.loadPlay(playID)
	if err != nil {
		return 0, err
	}
	return s.scoring.PlayScore(play.Entries), nil
}
