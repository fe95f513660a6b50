package models

import (
	"errors"
	"time"
)

const (
	PlayerKindGuest      = "guest"
	PlayerKindSubscriber = "subscriber"
	PlayerKindTeamMate   = "teammate"
	PlayerKindGameMaster = "gamemaster"
)

// Player is a tagged variant: Kind selects which of the subtype fields are
// meaningful. All variants share one table and one ID space, so a Play can
// reference any of them through the same foreign key.
type Player struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	User             User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Kind             string     `gorm:"size:10;not null;index" json:"kind"`
	Score            int        `gorm:"not null;default:0" json:"score"`
	ProfileActivated bool       `gorm:"not null;default:false" json:"profile_activated"`
	SubscriptionDate *time.Time `json:"subscription_date,omitempty"`
	Avatar           string     `gorm:"size:256" json:"avatar,omitempty"`

	// Subtype payload.
	InvitedByID      *uint      `gorm:"index" json:"invited_by_id,omitempty"`
	SponsorID        *uint      `gorm:"index" json:"sponsor_id,omitempty"`
	RegistrationDate *time.Time `json:"registration_date,omitempty"`
	TeamMemberDate   *time.Time `json:"team_member_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type playerKindSpec struct {
	needsInvitedBy    bool
	needsSponsor      bool
	needsRegistration bool
	needsTeamMember   bool
}

var playerKinds = map[string]playerKindSpec{
	PlayerKindGuest:      {needsInvitedBy: true},
	PlayerKindSubscriber: {needsSponsor: true, needsRegistration: true},
	PlayerKindTeamMate:   {needsRegistration: true, needsTeamMember: true},
	PlayerKindGameMaster: {needsRegistration: true, needsTeamMember: true},
}

// ValidatePayload checks that the fields required by the player's kind are
// set. It does not reject extra fields; an operator may keep, say, a
// registration date on a guest that used to be a subscriber.
func (p *Player) ValidatePayload() error {
	spec, ok := playerKinds[p.Kind]
	if !ok {
		return errors.New("unknown player kind: " + p.Kind)
	}
	if spec.needsInvitedBy && p.InvitedByID == nil {
		return errors.New("guest requires invited_by_id")
	}
	if spec.needsSponsor && p.SponsorID == nil {
		return errors.New("subscriber requires sponsor_id")
	}
	if spec.needsRegistration && p.RegistrationDate == nil {
		return errors.New(p.Kind + " requires registration_date")
	}
	if spec.needsTeamMember && p.TeamMemberDate == nil {
		return errors.New(p.Kind + " requires team_member_date")
	}
	return nil
}
