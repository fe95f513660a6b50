package models

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Counts seeded on creation. A game needs at least two questions to be
// playable and the question editor expects three answer slots, so new parents
// come pre-filled instead of forcing the author through extra round trips.
// Editors may later delete seeded rows below these counts; nothing re-checks.
const (
	SeedQuestionCount = 2
	SeedAnswerCount   = 3
)

type scaffoldKey struct{}

// WithoutScaffolding returns a context under which game and question creation
// does not seed placeholder children. Bulk loads (CSV import, test fixtures)
// run with it so imported rows arrive exactly as given.
func WithoutScaffolding(ctx context.Context) context.Context {
	return context.WithValue(ctx, scaffoldKey{}, true)
}

func scaffoldingDisabled(tx *gorm.DB) bool {
	ctx := tx.Statement.Context
	if ctx == nil {
		return false
	}
	disabled, _ := ctx.Value(scaffoldKey{}).(bool)
	return disabled
}

// AfterCreate seeds the placeholder questions; each of those in turn seeds
// its answers through the question hook. Runs inside the creating
// transaction, so a failed seed rolls the game back too.
func (g *Game) AfterCreate(tx *gorm.DB) error {
	if scaffoldingDisabled(tx) {
		return nil
	}
	for i := 0; i < SeedQuestionCount; i++ {
		question := Question{
			GameID:   g.ID,
			Text:     fmt.Sprintf("Question %d", i),
			Points:   0,
			OrderNum: i,
		}
		if err := tx.Create(&question).Error; err != nil {
			return err
		}
	}
	return nil
}

// AfterCreate seeds the placeholder answers.
func (q *Question) AfterCreate(tx *gorm.DB) error {
	if scaffoldingDisabled(tx) {
		return nil
	}
	answers := make([]Answer, 0, SeedAnswerCount)
	for i := 0; i < SeedAnswerCount; i++ {
		answers = append(answers, Answer{
			QuestionID: q.ID,
			Text:       fmt.Sprintf("Answer %d", i),
			Points:     0,
			OrderNum:   i,
		})
	}
	return tx.Create(&answers).Error
}

// AfterSave raises the question's points when an answer now exceeds them.
// The guard lives in the UPDATE itself ("points < ?") so two concurrent
// answer writes cannot lose the larger value to a stale read.
func (a *Answer) AfterSave(tx *gorm.DB) error {
	return tx.Model(&Question{}).
		Where("id = ? AND points < ?", a.QuestionID, a.Points).
		Update("points", a.Points).Error
}

// AfterDelete lowers the question's points back to the maximum among the
// remaining answers, or zero when none remain. One statement, computed in
// the store.
func (a *Answer) AfterDelete(tx *gorm.DB) error {
	return tx.Exec(
		`UPDATE questions
		 SET points = COALESCE((SELECT MAX(points) FROM answers WHERE question_id = ?), 0)
		 WHERE id = ?`,
		a.QuestionID, a.QuestionID,
	).Error
}

// AfterCreate seeds one unassigned entry per question currently on the
// play's game. The count is fixed at creation time; questions added to the
// game later do not grow existing plays.
func (p *Play) AfterCreate(tx *gorm.DB) error {
	var questions []Question
	if err := tx.Where("game_id = ?", p.GameID).Order("order_num ASC").Find(&questions).Error; err != nil {
		return err
	}
	if len(questions) == 0 {
		return nil
	}
	entries := make([]Entry, 0, len(questions))
	for _, q := range questions {
		entries = append(entries, Entry{PlayID: p.ID, QuestionID: q.ID})
	}
	return tx.Create(&entries).Error
}
