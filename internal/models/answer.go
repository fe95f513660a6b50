package models

type Answer struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index;uniqueIndex:idx_answer_natural" json:"question_id"`
	Text       string `gorm:"size:500;not null;uniqueIndex:idx_answer_natural" json:"text"`
	Points     int    `gorm:"not null;default:0" json:"points"`
	OrderNum   int    `gorm:"not null;default:0;index:idx_answer_order" json:"order_num"`
}
