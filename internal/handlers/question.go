package handlers

import (
	"net/http"
	"strconv"

	"quiz-arena-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	gameService   *services.GameService
	playerService *services.PlayerService
}

func NewQuestionHandler(gameService *services.GameService, playerService *services.PlayerService) *QuestionHandler {
	return &QuestionHandler{gameService: gameService, playerService: playerService}
}

// CreateQuestion godoc
// @Summary      Add a question to a game
// @Description  Create a question; three placeholder answers are seeded automatically
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Param        request body services.QuestionInput true "Question data"
// @Success      201 {object} Question
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/games/{id}/questions [post]
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	master := requireGameMaster(c, h.playerService)
	if master == nil {
		return
	}
	gameID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid game id"})
		return
	}

	var input services.QuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.gameService.CreateQuestion(uint(gameID), master.ID, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion godoc
// @Summary      Update a question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Param        request body services.QuestionInput true "Question data"
// @Success      200 {object} Question
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/questions/{id} [put]
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	master := requireGameMaster(c, h.playerService)
	if master == nil {
		return
	}
	questionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	var input services.QuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.gameService.UpdateQuestion(uint(questionID), master.ID, input)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary      Delete a question
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	master := requireGameMaster(c, h.playerService)
	if master == nil {
		return
	}
	questionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	if err := h.gameService.DeleteQuestion(uint(questionID), master.ID); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "question deleted"})
}

// CreateAnswer godoc
// @Summary      Add an answer to a question
// @Description  Create an answer; if its points exceed the question's, the question's points are raised
// @Tags         answers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Param        request body services.AnswerInput true "Answer data"
// @Success      201 {object} Answer
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/questions/{id}/answers [post]
func (h *QuestionHandler) CreateAnswer(c *gin.Context) {
	master := requireGameMaster(c, h.playerService)
	if master == nil {
		return
	}
	questionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	var input services.AnswerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	answer, err := h.gameService.CreateAnswer(uint(questionID), master.ID, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, answer)
}

// UpdateAnswer godoc
// @Summary      Update an answer
// @Tags         answers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Answer ID"
// @Param        request body services.AnswerInput true "Answer data"
// @Success      200 {object} Answer
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/answers/{id} [put]
func (h *QuestionHandler) UpdateAnswer(c *gin.Context) {
	master := requireGameMaster(c, h.playerService)
	if master == nil {
		return
	}
	answerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid answer id"})
		return
	}

	var input services.AnswerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	answer, err := h.gameService.UpdateAnswer(uint(answerID), master.ID, input)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, answer)
}

// DeleteAnswer godoc
// @Summary      Delete an answer
// @Description  Delete an answer; the question's points drop to the maximum among the remaining answers
// @Tags         answers
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Answer ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/answers/{id} [delete]
func (h *QuestionHandler) DeleteAnswer(c *gin.Context) {
	master := requireGameMaster(c, h.playerService)
	if master == nil {
		return
	}
	answerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid answer id"})
		return
	}

	if err := h.gameService.DeleteAnswer(uint(answerID), master.ID); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "answer deleted"})
}
