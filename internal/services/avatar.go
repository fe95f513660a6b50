package services

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"quiz-arena-backend/internal/models"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gorm.io/gorm"
)

const avatarSize = 128

// AvatarService renders placeholder avatars for players that have none.
// Jobs are fire-and-forget: the request that created the player never waits
// on the result, and a failed job is logged and dropped.
type AvatarService struct {
	db        *gorm.DB
	uploadDir string
	jobs      chan uint
}

func NewAvatarService(db *gorm.DB, uploadDir string, queueSize int) *AvatarService {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &AvatarService{
		db:        db,
		uploadDir: uploadDir,
		jobs:      make(chan uint, queueSize),
	}
}

// Enqueue schedules avatar generation for a player. Never blocks; when the
// queue is full the job is dropped, matching the best-effort contract.
func (s *AvatarService) Enqueue(playerID uint) {
	select {
	case s.jobs <- playerID:
	default:
		log.Printf("avatar: queue full, dropping job for player %d", playerID)
	}
}

// Start consumes the queue until the context is cancelled. Run it in its own
// goroutine from main.
func (s *AvatarService) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case playerID := <-s.jobs:
			if err := s.generate(playerID); err != nil {
				log.Printf("avatar: generation failed for player %d: %v", playerID, err)
			}
		}
	}
}

func (s *AvatarService) generate(playerID uint) error {
	var player models.Player
	if err := s.db.Preload("User").First(&player, playerID).Error; err != nil {
		return err
	}
	if player.Avatar != "" {
		return nil
	}

	img := renderInitials(player.User.Initials())

	relPath := avatarPath()
	fullPath := filepath.Join(s.uploadDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return err
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		return err
	}

	return s.db.Model(&player).Update("avatar", relPath).Error
}

// avatarPath builds the stored file path: model, purpose, year, month, then
// an opaque name.
func avatarPath() string {
	now := time.Now()
	return filepath.Join(
		"player", "avatar",
		fmt.Sprintf("%d", now.Year()), fmt.Sprintf("%d", int(now.Month())),
		uuid.NewString()+".png",
	)
}

// renderInitials draws white initials on a random dark background. The
// glyphs come from the basic 7x13 face drawn small and scaled up, which is
// plenty for a placeholder.
func renderInitials(initials string) image.Image {
	bg := color.RGBA{
		R: uint8(rand.Intn(128)),
		G: uint8(rand.Intn(128)),
		B: uint8(rand.Intn(128)),
		A: 255,
	}

	face := basicfont.Face7x13
	small := image.NewRGBA(image.Rect(0, 0, avatarSize/4, avatarSize/4))
	draw.Draw(small, small.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	drawer := font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	width := drawer.MeasureString(initials)
	drawer.Dot = fixed.Point26_6{
		X: (fixed.I(small.Bounds().Dx()) - width) / 2,
		Y: fixed.I((small.Bounds().Dy() + face.Ascent - face.Descent) / 2),
	}
	drawer.DrawString(initials)

	dst := image.NewRGBA(image.Rect(0, 0, avatarSize, avatarSize))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), small, small.Bounds(), draw.Src, nil)
	return dst
}
