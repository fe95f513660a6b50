package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	FirstName    string    `gorm:"size:100" json:"first_name,omitempty"`
	LastName     string    `gorm:"size:100" json:"last_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Initials returns the two letters drawn on a generated avatar.
func (u *User) Initials() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return firstRune(u.FirstName) + firstRune(u.LastName)
	case u.FirstName != "":
		return firstRunes(u.FirstName, 2)
	case u.LastName != "":
		return firstRunes(u.LastName, 2)
	default:
		return firstRunes(u.Username, 2)
	}
}

func firstRune(s string) string {
	return firstRunes(s, 1)
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}
