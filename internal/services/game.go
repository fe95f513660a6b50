package services

import (
	"errors"

	"quiz-arena-backend/internal/cache"
	"quiz-arena-backend/internal/models"

	"gorm.io/gorm"
)

type GameService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewGameService(db *gorm.DB, c *cache.Cache) *GameService {
	return &GameService{db: db, cache: c}
}

type GameInput struct {
	Name        string `json:"name" binding:"required,min=1,max=32" example:"Trivia1"`
	Description string `json:"description"`
	Status      string `json:"status" example:"draft"`
	Level       *int   `json:"level,omitempty" example:"2"`
	GenreID     *uint  `json:"genre_id,omitempty"`
	Duration    int64  `json:"duration,omitempty" example:"600"`
	Highlight   bool   `json:"highlight"`
	Emphasize   bool   `json:"emphasize"`
	Advertise   bool   `json:"advertise"`
	Recommend   bool   `json:"recommend"`
}

func validateGameInput(input *GameInput) error {
	if input.Status == "" {
		input.Status = models.GameStatusDraft
	}
	if !models.ValidGameStatus(input.Status) {
		return errors.New("invalid game status: " + input.Status)
	}
	if input.Level != nil && (*input.Level < models.GameLevelEasy || *input.Level > models.GameLevelNightmare) {
		return errors.New("game level must be between 1 and 5")
	}
	return nil
}

// GetGames is the public listing; served from cache until a game write
// invalidates it.
func (s *GameService) GetGames() ([]models.Game, error) {
	if cached, ok := s.cache.Get(cache.KeyGameList); ok {
		return cached.([]models.Game), nil
	}

	var games []models.Game
	if err := s.db.Preload("Genre").Order("name ASC").Find(&games).Error; err != nil {
		return nil, err
	}

	s.cache.Set(cache.KeyGameList, games)
	return games, nil
}

func (s *GameService) CreateGame(masterID uint, input GameInput) (*models.Game, error) {
	if err := validateGameInput(&input); err != nil {
		return nil, err
	}

	game := models.Game{
		Name:        input.Name,
		Description: input.Description,
		MasterID:    &masterID,
		Status:      input.Status,
		Level:       input.Level,
		GenreID:     input.GenreID,
		Duration:    input.Duration,
		Highlight:   input.Highlight,
		Emphasize:   input.Emphasize,
		Advertise:   input.Advertise,
		Recommend:   input.Recommend,
	}
	if err := s.db.Create(&game).Error; err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.KeyGameList)

	return s.loadGame(game.ID)
}

func (s *GameService) loadGame(gameID uint) (*models.Game, error) {
	var game models.Game
	err := s.db.Preload("Genre").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		First(&game, gameID).Error
	if err != nil {
		return nil, errors.New("game not found")
	}
	return &game, nil
}

func (s *GameService) GetGameByID(gameID uint) (*models.Game, error) {
	return s.loadGame(gameID)
}

// GetGameByName resolves a game by its natural key.
func (s *GameService) GetGameByName(name string) (*models.Game, error) {
	var game models.Game
	if err := s.db.Where("name = ?", name).First(&game).Error; err != nil {
		return nil, errors.New("game not found")
	}
	return s.loadGame(game.ID)
}

func (s *GameService) ownedGame(gameID, masterID uint) (*models.Game, error) {
	var game models.Game
	if err := s.db.Where("id = ? AND master_id = ?", gameID, masterID).First(&game).Error; err != nil {
		return nil, errors.New("game not found or access denied")
	}
	return &game, nil
}

func (s *GameService) UpdateGame(gameID, masterID uint, input GameInput) (*models.Game, error) {
	game, err := s.ownedGame(gameID, masterID)
	if err != nil {
		return nil, err
	}
	if err := validateGameInput(&input); err != nil {
		return nil, err
	}

	game.Name = input.Name
	game.Description = input.Description
	game.Status = input.Status
	game.Level = input.Level
	game.GenreID = input.GenreID
	game.Duration = input.Duration
	game.Highlight = input.Highlight
	game.Emphasize = input.Emphasize
	game.Advertise = input.Advertise
	game.Recommend = input.Recommend

	if err := s.db.Save(game).Error; err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.KeyGameList)

	return s.loadGame(game.ID)
}

func (s *GameService) DeleteGame(gameID, masterID uint) error {
	game, err := s.ownedGame(gameID, masterID)
	if err != nil {
		return err
	}

	if err := s.db.Where("question_id IN (SELECT id FROM questions WHERE game_id = ?)", gameID).
		Delete(&models.Answer{}).Error; err != nil {
		return err
	}
	if err := s.db.Where("game_id = ?", gameID).Delete(&models.Question{}).Error; err != nil {
		return err
	}
	if err := s.db.Delete(game).Error; err != nil {
		return err
	}

	s.cache.Invalidate(cache.KeyGameList)
	return nil
}

type QuestionInput struct {
	Text     string `json:"text" binding:"required,min=1,max=500" example:"What year did the war end?"`
	OrderNum *int   `json:"order_num,omitempty"`
}

func (s *GameService) CreateQuestion(gameID, masterID uint, input QuestionInput) (*models.Question, error) {
	if _, err := s.ownedGame(gameID, masterID); err != nil {
		return nil, err
	}

	orderNum := 0
	if input.OrderNum != nil {
		orderNum = *input.OrderNum
	} else {
		var maxOrder int
		s.db.Model(&models.Question{}).Where("game_id = ?", gameID).
			Select("COALESCE(MAX(order_num), -1)").Scan(&maxOrder)
		orderNum = maxOrder + 1
	}

	question := models.Question{
		GameID:   gameID,
		Text:     input.Text,
		OrderNum: orderNum,
	}
	if err := s.db.Create(&question).Error; err != nil {
		return nil, err
	}

	s.db.Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_num ASC")
	}).First(&question, question.ID)
	return &question, nil
}

func (s *GameService) questionForMaster(questionID, masterID uint) (*models.Question, error) {
	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		return nil, errors.New("question not found")
	}
	if _, err := s.ownedGame(question.GameID, masterID); err != nil {
		return nil, errors.New("access denied")
	}
	return &question, nil
}

func (s *GameService) UpdateQuestion(questionID, masterID uint, input QuestionInput) (*models.Question, error) {
	question, err := s.questionForMaster(questionID, masterID)
	if err != nil {
		return nil, err
	}

	question.Text = input.Text
	if input.OrderNum != nil {
		question.OrderNum = *input.OrderNum
	}
	if err := s.db.Save(question).Error; err != nil {
		return nil, err
	}

	s.db.Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_num ASC")
	}).First(question, question.ID)
	return question, nil
}

func (s *GameService) DeleteQuestion(questionID, masterID uint) error {
	question, err := s.questionForMaster(questionID, masterID)
	if err != nil {
		return err
	}

	if err := s.db.Where("question_id = ?", questionID).Delete(&models.Answer{}).Error; err != nil {
		return err
	}
	return s.db.Delete(question).Error
}

// GetQuestionByNaturalKey resolves (game name, question text).
func (s *GameService) GetQuestionByNaturalKey(gameName, text string) (*models.Question, error) {
	var question models.Question
	err := s.db.Joins("JOIN games ON games.id = questions.game_id").
		Where("games.name = ? AND questions.text = ?", gameName, text).
		First(&question).Error
	if err != nil {
		return nil, errors.New("question not found")
	}
	return &question, nil
}

type AnswerInput struct {
	Text     string `json:"text" binding:"required,min=1,max=500" example:"1945"`
	Points   int    `json:"points" binding:"min=0" example:"5"`
	OrderNum *int   `json:"order_num,omitempty"`
}

func (s *GameService) CreateAnswer(questionID, masterID uint, input AnswerInput) (*models.Answer, error) {
	if _, err := s.questionForMaster(questionID, masterID); err != nil {
		return nil, err
	}

	orderNum := 0
	if input.OrderNum != nil {
		orderNum = *input.OrderNum
	} else {
		var maxOrder int
		s.db.Model(&models.Answer{}).Where("question_id = ?", questionID).
			Select("COALESCE(MAX(order_num), -1)").Scan(&maxOrder)
		orderNum = maxOrder + 1
	}

	answer := models.Answer{
		QuestionID: questionID,
		Text:       input.Text,
		Points:     input.Points,
		OrderNum:   orderNum,
	}
	if err := s.db.Create(&answer).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (s *GameService) answerForMaster(answerID, masterID uint) (*models.Answer, error) {
	var answer models.Answer
	if err := s.db.First(&answer, answerID).Error; err != nil {
		return nil, errors.New("answer not found")
	}
	if _, err := s.questionForMaster(answer.QuestionID, masterID); err != nil {
		return nil, errors.New("access denied")
	}
	return &answer, nil
}

// UpdateAnswer saves through the loaded struct so the point-consistency hook
// fires. Raising an answer's points can raise its question's; lowering them
// leaves the question untouched until an answer is deleted.
func (s *GameService) UpdateAnswer(answerID, masterID uint, input AnswerInput) (*models.Answer, error) {
	answer, err := s.answerForMaster(answerID, masterID)
	if err != nil {
		return nil, err
	}

	answer.Text = input.Text
	answer.Points = input.Points
	if input.OrderNum != nil {
		answer.OrderNum = *input.OrderNum
	}
	if err := s.db.Save(answer).Error; err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *GameService) DeleteAnswer(answerID, masterID uint) error {
	answer, err := s.answerForMaster(answerID, masterID)
	if err != nil {
		return err
	}
	return s.db.Delete(answer).Error
}

// GetAnswerByNaturalKey resolves (game name, question text, answer text).
func (s *GameService) GetAnswerByNaturalKey(gameName, questionText, answerText string) (*models.Answer, error) {
	var answer models.Answer
	err := s.db.Joins("JOIN questions ON questions.id = answers.question_id").
		Joins("JOIN games ON games.id = questions.game_id").
		Where("games.name = ? AND questions.text = ? AND answers.text = ?",
			gameName, questionText, answerText).
		First(&answer).Error
	if err != nil {
		return nil, errors.New("answer not found")
	}
	return &answer, nil
}
