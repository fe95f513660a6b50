package services

import (
	"testing"

	"quiz-arena-backend/internal/models"
)

func playFixture(t *testing.T) (*PlayService, *GameService, models.Player, *models.Game) {
	t.Helper()
	db := newTestDB(t)
	games := newTestGameService(t, db)
	plays := NewPlayService(db, NewScoringService())

	master := createTestMaster(t, db, "master")
	player := createTestGuest(t, db, "alice", master.ID)

	game, err := games.CreateGame(master.ID, GameInput{Name: "Trivia1", Status: models.GameStatusReady})
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	return plays, games, player, game
}

func TestCreatePlaySeedsEntries(t *testing.T) {
	plays, _, player, game := playFixture(t)

	play, err := plays.CreatePlay(player.ID, game.ID)
	if err != nil {
		t.Fatalf("CreatePlay: %v", err)
	}
	if len(play.Entries) != models.SeedQuestionCount {
		t.Fatalf("got %d entries, want %d", len(play.Entries), models.SeedQuestionCount)
	}
	for _, entry := range play.Entries {
		if entry.AnswerID != nil {
			t.Errorf("entry %d starts answered", entry.ID)
		}
		if entry.Question == nil {
			t.Errorf("entry %d has no question loaded", entry.ID)
		}
	}
}

func TestCreatePlayRejectsDuplicate(t *testing.T) {
	plays, _, player, game := playFixture(t)

	if _, err := plays.CreatePlay(player.ID, game.ID); err != nil {
		t.Fatalf("CreatePlay: %v", err)
	}
	if _, err := plays.CreatePlay(player.ID, game.ID); err == nil {
		t.Error("second play for the same game was accepted")
	}
}

func TestCreatePlayMissingGame(t *testing.T) {
	plays, _, player, _ := playFixture(t)

	if _, err := plays.CreatePlay(player.ID, 9999); err == nil {
		t.Error("play on a missing game was accepted")
	}
}

func TestSubmitEntry(t *testing.T) {
	plays, games, player, game := playFixture(t)

	play, err := plays.CreatePlay(player.ID, game.ID)
	if err != nil {
		t.Fatalf("CreatePlay: %v", err)
	}

	first := play.Entries[0]
	target, err := games.GetAnswerByNaturalKey("Trivia1", first.Question.Text, "Answer 1")
	if err != nil {
		t.Fatalf("GetAnswerByNaturalKey: %v", err)
	}

	entry, err := plays.SubmitEntry(play.ID, player.ID, first.QuestionID, &target.ID)
	if err != nil {
		t.Fatalf("SubmitEntry: %v", err)
	}
	if entry.AnswerID == nil || *entry.AnswerID != target.ID {
		t.Fatalf("entry answer = %v, want %d", entry.AnswerID, target.ID)
	}

	// Clearing the selection.
	entry, err = plays.SubmitEntry(play.ID, player.ID, first.QuestionID, nil)
	if err != nil {
		t.Fatalf("SubmitEntry clear: %v", err)
	}
	if entry.AnswerID != nil {
		t.Errorf("entry answer = %d after clear, want none", *entry.AnswerID)
	}
}

func TestSubmitEntryRejectsForeignAnswer(t *testing.T) {
	plays, games, player, game := playFixture(t)

	play, err := plays.CreatePlay(player.ID, game.ID)
	if err != nil {
		t.Fatalf("CreatePlay: %v", err)
	}

	first := play.Entries[0]
	second := play.Entries[1]
	foreign, err := games.GetAnswerByNaturalKey("Trivia1", second.Question.Text, "Answer 0")
	if err != nil {
		t.Fatalf("GetAnswerByNaturalKey: %v", err)
	}

	if _, err := plays.SubmitEntry(play.ID, player.ID, first.QuestionID, &foreign.ID); err == nil {
		t.Error("answer from another question was accepted")
	}
}

func TestSubmitEntryRejectsForeignPlayer(t *testing.T) {
	plays, _, player, game := playFixture(t)

	play, err := plays.CreatePlay(player.ID, game.ID)
	if err != nil {
		t.Fatalf("CreatePlay: %v", err)
	}

	if _, err := plays.SubmitEntry(play.ID, player.ID+100, play.Entries[0].QuestionID, nil); err == nil {
		t.Error("another player touched the play")
	}
}

func TestPlayScore(t *testing.T) {
	db := newTestDB(t)
	games := newTestGameService(t, db)
	plays := NewPlayService(db, NewScoringService())

	master := createTestMaster(t, db, "master")
	player := createTestGuest(t, db, "alice", master.ID)

	game, err := games.CreateGame(master.ID, GameInput{Name: "Trivia1", Status: models.GameStatusReady})
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	// Give each question one scoring answer.
	q0 := game.Questions[0]
	q1 := game.Questions[1]
	if _, err := games.UpdateAnswer(q0.Answers[0].ID, master.ID, AnswerInput{Text: "right", Points: 5}); err != nil {
		t.Fatalf("UpdateAnswer: %v", err)
	}
	if _, err := games.UpdateAnswer(q1.Answers[0].ID, master.ID, AnswerInput{Text: "also right", Points: 3}); err != nil {
		t.Fatalf("UpdateAnswer: %v", err)
	}

	play, err := plays.CreatePlay(player.ID, game.ID)
	if err != nil {
		t.Fatalf("CreatePlay: %v", err)
	}

	score, err := plays.PlayScore(play.ID)
	if err != nil {
		t.Fatalf("PlayScore: %v", err)
	}
	if score != 0 {
		t.Fatalf("score = %d before any selection, want 0", score)
	}

	right := q0.Answers[0].ID
	if _, err := plays.SubmitEntry(play.ID, player.ID, q0.ID, &right); err != nil {
		t.Fatalf("SubmitEntry: %v", err)
	}
	wrong := q1.Answers[1].ID
	if _, err := plays.SubmitEntry(play.ID, player.ID, q1.ID, &wrong); err != nil {
		t.Fatalf("SubmitEntry: %v", err)
	}

	score, err = plays.PlayScore(play.ID)
	if err != nil {
		t.Fatalf("PlayScore: %v", err)
	}
	if score != 5 {
		t.Fatalf("score = %d, want 5 (one right answer, one zero-point answer)", score)
	}
}

func TestGetPlayByNaturalKey(t *testing.T) {
	plays, _, player, game := playFixture(t)

	created, err := plays.CreatePlay(player.ID, game.ID)
	if err != nil {
		t.Fatalf("CreatePlay: %v", err)
	}

	got, err := plays.GetPlayByNaturalKey("alice", "Trivia1")
	if err != nil {
		t.Fatalf("GetPlayByNaturalKey: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got play %d, want %d", got.ID, created.ID)
	}

	if _, err := plays.GetPlayByNaturalKey("bob", "Trivia1"); err == nil {
		t.Error("missing play resolved without error")
	}
}

func TestScoringMaxScore(t *testing.T) {
	svc := NewScoringService()
	questions := []models.Question{{Points: 5}, {Points: 3}, {Points: 0}}
	if got := svc.MaxScore(questions); got != 8 {
		t.Errorf("MaxScore = %d, want 8", got)
	}
}
