package services

import (
	"testing"
	"time"

	"quiz-arena-backend/internal/cache"
	"quiz-arena-backend/internal/models"

	"gorm.io/gorm"
)

func newTestPlayerService(t *testing.T, db *gorm.DB) *PlayerService {
	t.Helper()
	avatars := NewAvatarService(db, t.TempDir(), 8)
	return NewPlayerService(db, avatars, cache.New())
}

func TestCreatePlayerByKind(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPlayerService(t, db)
	now := time.Now()
	inviter := uint(1)
	sponsor := uint(1)

	tests := []struct {
		name    string
		input   PlayerInput
		wantErr bool
	}{
		{"guest", PlayerInput{Kind: models.PlayerKindGuest, InvitedByID: &inviter}, false},
		{"guest without inviter", PlayerInput{Kind: models.PlayerKindGuest}, true},
		{"subscriber", PlayerInput{Kind: models.PlayerKindSubscriber, SponsorID: &sponsor, RegistrationDate: &now}, false},
		{"teammate", PlayerInput{Kind: models.PlayerKindTeamMate, RegistrationDate: &now, TeamMemberDate: &now}, false},
		{"gamemaster", PlayerInput{Kind: models.PlayerKindGameMaster, RegistrationDate: &now, TeamMemberDate: &now}, false},
		{"unknown kind", PlayerInput{Kind: "wizard"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := createTestUser(t, db, "user_"+tt.name)
			player, err := svc.CreatePlayer(user.ID, tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreatePlayer() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && player.Kind != tt.input.Kind {
				t.Errorf("kind = %q, want %q", player.Kind, tt.input.Kind)
			}
		})
	}
}

func TestCreatePlayerOnePerUser(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPlayerService(t, db)
	user := createTestUser(t, db, "alice")
	inviter := uint(1)

	if _, err := svc.CreatePlayer(user.ID, PlayerInput{Kind: models.PlayerKindGuest, InvitedByID: &inviter}); err != nil {
		t.Fatalf("CreatePlayer: %v", err)
	}
	if _, err := svc.CreatePlayer(user.ID, PlayerInput{Kind: models.PlayerKindGuest, InvitedByID: &inviter}); err == nil {
		t.Error("second player for the same user was accepted")
	}
}

func TestGetPlayerByUsername(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPlayerService(t, db)
	user := createTestUser(t, db, "alice")
	inviter := uint(1)

	created, err := svc.CreatePlayer(user.ID, PlayerInput{Kind: models.PlayerKindGuest, InvitedByID: &inviter})
	if err != nil {
		t.Fatalf("CreatePlayer: %v", err)
	}

	got, err := svc.GetPlayerByUsername("alice")
	if err != nil {
		t.Fatalf("GetPlayerByUsername: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got player %d, want %d", got.ID, created.ID)
	}

	if _, err := svc.GetPlayerByUsername("nobody"); err == nil {
		t.Error("missing player resolved without error")
	}
}

func TestCreatePlayerQueuesAvatar(t *testing.T) {
	db := newTestDB(t)
	avatars := NewAvatarService(db, t.TempDir(), 8)
	svc := NewPlayerService(db, avatars, cache.New())
	user := createTestUser(t, db, "alice")
	inviter := uint(1)

	player, err := svc.CreatePlayer(user.ID, PlayerInput{Kind: models.PlayerKindGuest, InvitedByID: &inviter})
	if err != nil {
		t.Fatalf("CreatePlayer: %v", err)
	}
	if player.Avatar != "" {
		t.Errorf("avatar = %q at creation, want empty until the worker runs", player.Avatar)
	}

	select {
	case id := <-avatars.jobs:
		if id != player.ID {
			t.Errorf("queued player %d, want %d", id, player.ID)
		}
	default:
		t.Error("no avatar job queued")
	}
}
