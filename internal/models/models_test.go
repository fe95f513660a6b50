package models

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&User{}, &Player{}, &Genre{}, &Game{}, &Question{}, &Answer{}, &Play{}, &Entry{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestGameCreateSeedsQuestionsAndAnswers(t *testing.T) {
	db := newTestDB(t)

	game := Game{Name: "Trivia1", Status: GameStatusDraft}
	if err := db.Create(&game).Error; err != nil {
		t.Fatalf("create game: %v", err)
	}

	var questions []Question
	if err := db.Where("game_id = ?", game.ID).Order("order_num ASC").Find(&questions).Error; err != nil {
		t.Fatalf("load questions: %v", err)
	}
	if len(questions) != SeedQuestionCount {
		t.Fatalf("got %d questions, want %d", len(questions), SeedQuestionCount)
	}
	for i, q := range questions {
		wantText := fmt.Sprintf("Question %d", i)
		if q.Text != wantText {
			t.Errorf("question %d text = %q, want %q", i, q.Text, wantText)
		}
		if q.Points != 0 {
			t.Errorf("question %d points = %d, want 0", i, q.Points)
		}
		if q.OrderNum != i {
			t.Errorf("question %d order = %d, want %d", i, q.OrderNum, i)
		}

		var answers []Answer
		if err := db.Where("question_id = ?", q.ID).Order("order_num ASC").Find(&answers).Error; err != nil {
			t.Fatalf("load answers: %v", err)
		}
		if len(answers) != SeedAnswerCount {
			t.Fatalf("question %d: got %d answers, want %d", i, len(answers), SeedAnswerCount)
		}
		for j, a := range answers {
			if a.Points != 0 {
				t.Errorf("answer %d/%d points = %d, want 0", i, j, a.Points)
			}
		}
	}
}

func TestGameCreateWithoutScaffolding(t *testing.T) {
	db := newTestDB(t)

	game := Game{Name: "Imported", Status: GameStatusDraft}
	ctx := WithoutScaffolding(context.Background())
	if err := db.WithContext(ctx).Create(&game).Error; err != nil {
		t.Fatalf("create game: %v", err)
	}

	var count int64
	db.Model(&Question{}).Where("game_id = ?", game.ID).Count(&count)
	if count != 0 {
		t.Fatalf("got %d seeded questions, want 0", count)
	}
}

func TestQuestionCreateWithoutScaffolding(t *testing.T) {
	db := newTestDB(t)
	ctx := WithoutScaffolding(context.Background())

	game := Game{Name: "Imported", Status: GameStatusDraft}
	if err := db.WithContext(ctx).Create(&game).Error; err != nil {
		t.Fatalf("create game: %v", err)
	}
	question := Question{GameID: game.ID, Text: "Capital of France?"}
	if err := db.WithContext(ctx).Create(&question).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}

	var count int64
	db.Model(&Answer{}).Where("question_id = ?", question.ID).Count(&count)
	if count != 0 {
		t.Fatalf("got %d seeded answers, want 0", count)
	}
}

func TestAnswerSaveRaisesQuestionPoints(t *testing.T) {
	db := newTestDB(t)

	game := Game{Name: "Points", Status: GameStatusDraft}
	if err := db.Create(&game).Error; err != nil {
		t.Fatalf("create game: %v", err)
	}
	var question Question
	if err := db.Where("game_id = ?", game.ID).Order("order_num ASC").First(&question).Error; err != nil {
		t.Fatalf("load question: %v", err)
	}

	answer := Answer{QuestionID: question.ID, Text: "1945", Points: 5, OrderNum: 10}
	if err := db.Create(&answer).Error; err != nil {
		t.Fatalf("create answer: %v", err)
	}

	db.First(&question, question.ID)
	if question.Points != 5 {
		t.Fatalf("question points = %d, want 5 after answer create", question.Points)
	}

	// Raising an answer past the current maximum raises the question.
	answer.Points = 8
	if err := db.Save(&answer).Error; err != nil {
		t.Fatalf("save answer: %v", err)
	}
	db.First(&question, question.ID)
	if question.Points != 8 {
		t.Fatalf("question points = %d, want 8 after raise", question.Points)
	}

	// Lowering it leaves the question alone; only deletion recomputes.
	answer.Points = 2
	if err := db.Save(&answer).Error; err != nil {
		t.Fatalf("save answer: %v", err)
	}
	db.First(&question, question.ID)
	if question.Points != 8 {
		t.Fatalf("question points = %d, want 8 after lowering an answer", question.Points)
	}
}

func TestAnswerDeleteRecomputesQuestionPoints(t *testing.T) {
	db := newTestDB(t)

	game := Game{Name: "Points", Status: GameStatusDraft}
	if err := db.Create(&game).Error; err != nil {
		t.Fatalf("create game: %v", err)
	}
	var question Question
	if err := db.Where("game_id = ?", game.ID).Order("order_num ASC").First(&question).Error; err != nil {
		t.Fatalf("load question: %v", err)
	}

	high := Answer{QuestionID: question.ID, Text: "high", Points: 9, OrderNum: 10}
	low := Answer{QuestionID: question.ID, Text: "low", Points: 3, OrderNum: 11}
	if err := db.Create(&high).Error; err != nil {
		t.Fatalf("create answer: %v", err)
	}
	if err := db.Create(&low).Error; err != nil {
		t.Fatalf("create answer: %v", err)
	}

	if err := db.Delete(&high).Error; err != nil {
		t.Fatalf("delete answer: %v", err)
	}
	db.First(&question, question.ID)
	if question.Points != 3 {
		t.Fatalf("question points = %d, want 3 after deleting the best answer", question.Points)
	}

	// Deleting everything drops the question back to zero.
	var rest []Answer
	if err := db.Where("question_id = ?", question.ID).Find(&rest).Error; err != nil {
		t.Fatalf("load answers: %v", err)
	}
	for i := range rest {
		if err := db.Delete(&rest[i]).Error; err != nil {
			t.Fatalf("delete answer: %v", err)
		}
	}
	db.First(&question, question.ID)
	if question.Points != 0 {
		t.Fatalf("question points = %d, want 0 with no answers left", question.Points)
	}
}

func createTestPlayer(t *testing.T, db *gorm.DB, username string) Player {
	t.Helper()
	user := User{Username: username, PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	inviter := uint(1)
	player := Player{UserID: user.ID, Kind: PlayerKindGuest, InvitedByID: &inviter}
	if err := db.Create(&player).Error; err != nil {
		t.Fatalf("create player: %v", err)
	}
	return player
}

func TestPlayCreateSeedsEntries(t *testing.T) {
	db := newTestDB(t)

	game := Game{Name: "Trivia1", Status: GameStatusReady}
	if err := db.Create(&game).Error; err != nil {
		t.Fatalf("create game: %v", err)
	}
	player := createTestPlayer(t, db, "alice")

	play := Play{PlayerID: player.ID, GameID: game.ID}
	if err := db.Create(&play).Error; err != nil {
		t.Fatalf("create play: %v", err)
	}

	var entries []Entry
	if err := db.Where("play_id = ?", play.ID).Find(&entries).Error; err != nil {
		t.Fatalf("load entries: %v", err)
	}
	if len(entries) != SeedQuestionCount {
		t.Fatalf("got %d entries, want %d", len(entries), SeedQuestionCount)
	}
	for _, e := range entries {
		if e.AnswerID != nil {
			t.Errorf("entry %d starts with answer %d, want unanswered", e.ID, *e.AnswerID)
		}
	}
}

func TestPlayCreateIgnoresLaterQuestions(t *testing.T) {
	db := newTestDB(t)

	game := Game{Name: "Trivia1", Status: GameStatusReady}
	if err := db.Create(&game).Error; err != nil {
		t.Fatalf("create game: %v", err)
	}
	player := createTestPlayer(t, db, "alice")
	play := Play{PlayerID: player.ID, GameID: game.ID}
	if err := db.Create(&play).Error; err != nil {
		t.Fatalf("create play: %v", err)
	}

	late := Question{GameID: game.ID, Text: "Added later", OrderNum: 99}
	if err := db.Create(&late).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}

	var count int64
	db.Model(&Entry{}).Where("play_id = ?", play.ID).Count(&count)
	if count != SeedQuestionCount {
		t.Fatalf("got %d entries after adding a question, want %d", count, SeedQuestionCount)
	}
}

func TestPlayUniquePerPlayerAndGame(t *testing.T) {
	db := newTestDB(t)

	game := Game{Name: "Trivia1", Status: GameStatusReady}
	if err := db.Create(&game).Error; err != nil {
		t.Fatalf("create game: %v", err)
	}
	player := createTestPlayer(t, db, "alice")

	first := Play{PlayerID: player.ID, GameID: game.ID}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("create play: %v", err)
	}
	second := Play{PlayerID: player.ID, GameID: game.ID}
	if err := db.Create(&second).Error; err == nil {
		t.Fatal("second play for the same player and game was accepted")
	}
}

func TestGameSlugCollision(t *testing.T) {
	db := newTestDB(t)
	ctx := WithoutScaffolding(context.Background())

	a := Game{Name: "My Game", Status: GameStatusDraft}
	if err := db.WithContext(ctx).Create(&a).Error; err != nil {
		t.Fatalf("create game: %v", err)
	}
	b := Game{Name: "My Game!", Status: GameStatusDraft}
	if err := db.WithContext(ctx).Create(&b).Error; err != nil {
		t.Fatalf("create game: %v", err)
	}

	if a.Slug != "my-game" {
		t.Errorf("first slug = %q, want my-game", a.Slug)
	}
	if b.Slug != "my-game-2" {
		t.Errorf("second slug = %q, want my-game-2", b.Slug)
	}
}

func TestPlayerValidatePayload(t *testing.T) {
	id := uint(1)
	now := timeRef()

	tests := []struct {
		name    string
		player  Player
		wantErr bool
	}{
		{"guest ok", Player{Kind: PlayerKindGuest, InvitedByID: &id}, false},
		{"guest missing inviter", Player{Kind: PlayerKindGuest}, true},
		{"subscriber ok", Player{Kind: PlayerKindSubscriber, SponsorID: &id, RegistrationDate: now}, false},
		{"subscriber missing sponsor", Player{Kind: PlayerKindSubscriber, RegistrationDate: now}, true},
		{"teammate ok", Player{Kind: PlayerKindTeamMate, RegistrationDate: now, TeamMemberDate: now}, false},
		{"teammate missing dates", Player{Kind: PlayerKindTeamMate}, true},
		{"gamemaster ok", Player{Kind: PlayerKindGameMaster, RegistrationDate: now, TeamMemberDate: now}, false},
		{"gamemaster missing team date", Player{Kind: PlayerKindGameMaster, RegistrationDate: now}, true},
		{"unknown kind", Player{Kind: "wizard"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.player.ValidatePayload()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePayload() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func timeRef() *time.Time {
	now := time.Now()
	return &now
}

func TestUserInitials(t *testing.T) {
	tests := []struct {
		user User
		want string
	}{
		{User{FirstName: "Ada", LastName: "Lovelace"}, "AL"},
		{User{FirstName: "Ada"}, "Ad"},
		{User{LastName: "Lovelace"}, "Lo"},
		{User{Username: "player1"}, "pl"},
		{User{Username: "x"}, "x"},
	}
	for _, tt := range tests {
		if got := tt.user.Initials(); got != tt.want {
			t.Errorf("Initials() for %+v = %q, want %q", tt.user, got, tt.want)
		}
	}
}
