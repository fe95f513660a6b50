package models

import "time"

// Play is one player's attempt at one game, unique per pair. Its entries are
// seeded from the game's questions when the play is created.
type Play struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	PlayerID uint    `gorm:"not null;uniqueIndex:idx_play_natural" json:"player_id"`
	Player   *Player `gorm:"foreignKey:PlayerID" json:"player,omitempty"`
	GameID   uint    `gorm:"not null;uniqueIndex:idx_play_natural;index" json:"game_id"`
	Game     *Game   `gorm:"foreignKey:GameID" json:"game,omitempty"`
	Entries  []Entry `gorm:"foreignKey:PlayID;constraint:OnDelete:CASCADE" json:"entries,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Entry records the answer a play selected for one question; AnswerID stays
// nil until the player submits a choice.
type Entry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PlayID     uint      `gorm:"not null;uniqueIndex:idx_entry_unique" json:"play_id"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_entry_unique" json:"question_id"`
	Question   *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	AnswerID   *uint     `gorm:"index" json:"answer_id,omitempty"`
	Answer     *Answer   `gorm:"foreignKey:AnswerID" json:"answer,omitempty"`
}
