package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const (
	GameStatusDraft   = "draft"
	GameStatusReady   = "ready"
	GameStatusOngoing = "ongoing"
	GameStatusDone    = "done"
)

const (
	GameLevelEasy      = 1
	GameLevelMedium    = 2
	GameLevelHard      = 3
	GameLevelExtreme   = 4
	GameLevelNightmare = 5
)

func ValidGameStatus(status string) bool {
	switch status {
	case GameStatusDraft, GameStatusReady, GameStatusOngoing, GameStatusDone:
		return true
	}
	return false
}

type Game struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:32;uniqueIndex;not null" json:"name"`
	Slug        string  `gorm:"size:36;index;not null" json:"slug"`
	Description string  `gorm:"type:text" json:"description"`
	MasterID    *uint   `gorm:"index" json:"master_id,omitempty"`
	Master      *Player `gorm:"foreignKey:MasterID;constraint:OnDelete:SET NULL" json:"-"`
	Status      string  `gorm:"size:8;not null;default:'draft';index" json:"status"`
	Level       *int    `gorm:"index" json:"level,omitempty"`
	GenreID     *uint   `gorm:"index" json:"genre_id,omitempty"`
	Genre       *Genre  `gorm:"foreignKey:GenreID" json:"genre,omitempty"`
	// Duration is the expected play time in seconds; zero means unset.
	Duration int64 `json:"duration,omitempty"`

	Highlight bool `gorm:"not null;default:false" json:"highlight"`
	Emphasize bool `gorm:"not null;default:false" json:"emphasize"`
	Advertise bool `gorm:"not null;default:false" json:"advertise"`
	Recommend bool `gorm:"not null;default:false" json:"recommend"`

	Questions []Question `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate fills in the slug. Name collisions get a numeric suffix, so
// "My Game" and "My Game!" end up as my-game and my-game-2.
func (g *Game) BeforeCreate(tx *gorm.DB) error {
	if g.Slug != "" {
		return nil
	}
	base := slug.Make(g.Name)

	var slugs []string
	if err := tx.Model(&Game{}).Where("slug LIKE ?", base+"%").Pluck("slug", &slugs).Error; err != nil {
		return err
	}
	if len(slugs) == 0 {
		g.Slug = base
		return nil
	}

	last := 1
	for _, s := range slugs {
		suffix := strings.TrimPrefix(s, base)
		if suffix == "" {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(suffix, "-")); err == nil && n > last {
			last = n
		}
	}
	g.Slug = base + "-" + strconv.Itoa(last+1)
	return nil
}
