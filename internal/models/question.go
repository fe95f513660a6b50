package models

// Question carries the maximum points among its answers; the lifecycle hooks
// in hooks.go keep that value consistent as answers change.
type Question struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	GameID   uint     `gorm:"not null;index;uniqueIndex:idx_question_natural" json:"game_id"`
	Text     string   `gorm:"size:500;not null;uniqueIndex:idx_question_natural" json:"text"`
	Points   int      `gorm:"not null;default:0" json:"points"`
	OrderNum int      `gorm:"not null;default:0;index:idx_question_order" json:"order_num"`
	Answers  []Answer `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}
