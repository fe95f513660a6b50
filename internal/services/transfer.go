package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"quiz-arena-backend/internal/models"

	"gorm.io/gorm"
)

// transferColumns is the wire format of the game CSV: one row per answer,
// game and question columns repeated across their rows.
var transferColumns = []string{
	"game__name", "game__description", "game__duration", "game__status",
	"game__level", "game__genre",
	"question__text", "question__points", "question__order",
	"answer__text", "answer__points", "answer__order",
}

// TransferService implements the CSV round trip against the export
// directory.
type TransferService struct {
	db        *gorm.DB
	genres    *GenreService
	exportDir string
}

func NewTransferService(db *gorm.DB, genres *GenreService, exportDir string) *TransferService {
	return &TransferService{db: db, genres: genres, exportDir: exportDir}
}

func (s *TransferService) exportFilename(gameName string) string {
	if gameName != "" {
		return filepath.Join(s.exportDir, gameName+"_export.csv")
	}
	return filepath.Join(s.exportDir, "games_export.csv")
}

// ExportGames writes every game (or just the named one) to the export
// directory and returns the file path.
func (s *TransferService) ExportGames(gameName string) (string, error) {
	var games []models.Game
	query := s.db.Preload("Genre").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Order("name ASC")
	if gameName != "" {
		query = query.Where("name = ?", gameName)
	}
	if err := query.Find(&games).Error; err != nil {
		return "", err
	}
	if gameName != "" && len(games) == 0 {
		return "", errors.New("game not found: " + gameName)
	}

	filename := s.exportFilename(gameName)
	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", err
	}
	file, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := s.WriteCSV(file, games); err != nil {
		return "", err
	}
	return filename, nil
}

// WriteCSV flattens the game trees into prefixed rows, one per answer.
func (s *TransferService) WriteCSV(w io.Writer, games []models.Game) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(transferColumns); err != nil {
		return err
	}

	for _, game := range games {
		level := ""
		if game.Level != nil {
			level = strconv.Itoa(*game.Level)
		}
		genre := ""
		if game.Genre != nil {
			genre = game.Genre.Name
		}
		gameBlock := []string{
			game.Name, game.Description, strconv.FormatInt(game.Duration, 10),
			game.Status, level, genre,
		}

		for _, question := range game.Questions {
			questionBlock := []string{
				question.Text, strconv.Itoa(question.Points), strconv.Itoa(question.OrderNum),
			}
			for _, answer := range question.Answers {
				row := make([]string, 0, len(transferColumns))
				row = append(row, gameBlock...)
				row = append(row, questionBlock...)
				row = append(row,
					answer.Text, strconv.Itoa(answer.Points), strconv.Itoa(answer.OrderNum))
				if err := writer.Write(row); err != nil {
					return err
				}
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// ImportGames reads the named export file back into the store.
func (s *TransferService) ImportGames(gameName string) (int, error) {
	filename := s.exportFilename(gameName)
	file, err := os.Open(filename)
	if err != nil {
		return 0, fmt.Errorf("cannot open %s: %w", filename, err)
	}
	defer file.Close()

	return s.ReadCSV(file)
}

// ReadCSV runs a single linear pass over the rows. A new Game or Question is
// get-or-created whenever its prefixed column block differs from the
// previous row's; the Answer row is always get-or-created. Rows belonging to
// the same game or question are expected to be contiguous; interleaved rows
// start a new group and cost an extra lookup per switch, but the natural-key
// lookups keep them from duplicating rows. Scaffolding is off for the whole
// load so imported games arrive without placeholder children.
func (s *TransferService) ReadCSV(r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("invalid CSV: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[name] = i
	}
	for _, name := range transferColumns {
		if _, ok := colIndex[name]; !ok {
			return 0, errors.New("missing CSV column: " + name)
		}
	}

	db := s.db.WithContext(models.WithoutScaffolding(context.Background()))

	var (
		prevGameBlock     []string
		prevQuestionBlock []string
		game              *models.Game
		question          *models.Question
		imported          int
	)

	field := func(row []string, name string) string {
		return row[colIndex[name]]
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("invalid CSV row: %w", err)
		}

		gameBlock := []string{
			field(row, "game__name"), field(row, "game__description"),
			field(row, "game__duration"), field(row, "game__status"),
			field(row, "game__level"), field(row, "game__genre"),
		}
		questionBlock := []string{
			field(row, "question__text"), field(row, "question__points"),
			field(row, "question__order"),
		}

		if !equalBlocks(gameBlock, prevGameBlock) {
			game, err = s.getOrCreateGame(db, gameBlock)
			if err != nil {
				return imported, err
			}
			prevGameBlock = gameBlock
			prevQuestionBlock = nil
		}

		if !equalBlocks(questionBlock, prevQuestionBlock) {
			question, err = s.getOrCreateQuestion(db, game.ID, questionBlock)
			if err != nil {
				return imported, err
			}
			prevQuestionBlock = questionBlock
		}

		if err := s.getOrCreateAnswer(db, question.ID, row, field); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func equalBlocks(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s *TransferService) getOrCreateGame(db *gorm.DB, block []string) (*models.Game, error) {
	name, description, durationStr, status, levelStr, genreName :=
		block[0], block[1], block[2], block[3], block[4], block[5]

	var existing models.Game
	if err := db.Where("name = ?", name).First(&existing).Error; err == nil {
		return &existing, nil
	}

	duration, err := strconv.ParseInt(durationStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("game %q: invalid game__duration %q", name, durationStr)
	}
	var level *int
	if levelStr != "" {
		n, err := strconv.Atoi(levelStr)
		if err != nil {
			return nil, fmt.Errorf("game %q: invalid game__level %q", name, levelStr)
		}
		level = &n
	}
	if !models.ValidGameStatus(status) {
		status = models.GameStatusDraft
	}

	var genreID *uint
	genre, err := s.genres.GetOrCreateGenreByName(genreName)
	if err != nil {
		return nil, err
	}
	if genre != nil {
		genreID = &genre.ID
	}

	game := models.Game{
		Name:        name,
		Description: description,
		Duration:    duration,
		Status:      status,
		Level:       level,
		GenreID:     genreID,
	}
	if err := db.Create(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *TransferService) getOrCreateQuestion(db *gorm.DB, gameID uint, block []string) (*models.Question, error) {
	text, pointsStr, orderStr := block[0], block[1], block[2]

	var existing models.Question
	if err := db.Where("game_id = ? AND text = ?", gameID, text).First(&existing).Error; err == nil {
		return &existing, nil
	}

	points, err := strconv.Atoi(pointsStr)
	if err != nil {
		return nil, fmt.Errorf("question %q: invalid question__points %q", text, pointsStr)
	}
	orderNum, err := strconv.Atoi(orderStr)
	if err != nil {
		return nil, fmt.Errorf("question %q: invalid question__order %q", text, orderStr)
	}

	question := models.Question{
		GameID:   gameID,
		Text:     text,
		Points:   points,
		OrderNum: orderNum,
	}
	if err := db.Create(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *TransferService) getOrCreateAnswer(db *gorm.DB, questionID uint, row []string, field func([]string, string) string) error {
	text := field(row, "answer__text")

	var existing models.Answer
	if err := db.Where("question_id = ? AND text = ?", questionID, text).First(&existing).Error; err == nil {
		return nil
	}

	points, err := strconv.Atoi(field(row, "answer__points"))
	if err != nil {
		return fmt.Errorf("answer %q: invalid answer__points %q", text, field(row, "answer__points"))
	}
	orderNum, err := strconv.Atoi(field(row, "answer__order"))
	if err != nil {
		return fmt.Errorf("answer %q: invalid answer__order %q", text, field(row, "answer__order"))
	}

	answer := models.Answer{
		QuestionID: questionID,
		Text:       text,
		Points:     points,
		OrderNum:   orderNum,
	}
	return db.Create(&answer).Error
}
