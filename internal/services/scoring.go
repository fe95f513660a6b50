package services

import "quiz-arena-backend/internal/models"

type ScoringService struct{}

func NewScoringService() *ScoringService {
	return &ScoringService{}
}

// PlayScore sums the points of every selected answer. Unanswered entries
// score nothing, so a play's score only ever grows as entries are filled in.
func (s *ScoringService) PlayScore(entries []models.Entry) int {
	total := 0
	for _, entry := range entries {
		if entry.Answer != nil {
			total += entry.Answer.Points
		}
	}
	return total
}

// MaxScore is the best a play on the given questions could reach: each
// question contributes its points value, which tracks its best answer.
func (s *ScoringService) MaxScore(questions []models.Question) int {
	total := 0
	for _, q := range questions {
		total += q.Points
	}
	return total
}
