package handlers

import (
	"net/http"
	"strconv"

	"quiz-arena-backend/internal/services"
	"quiz-arena-backend/internal/ws"

	"github.com/gin-gonic/gin"
)

type PlayHandler struct {
	playService   *services.PlayService
	playerService *services.PlayerService
	hub           *ws.Hub
}

func NewPlayHandler(playService *services.PlayService, playerService *services.PlayerService, hub *ws.Hub) *PlayHandler {
	return &PlayHandler{playService: playService, playerService: playerService, hub: hub}
}

func (h *PlayHandler) currentPlayer(c *gin.Context) *Player {
	userID := c.GetUint("user_id")
	player, err := h.playerService.GetPlayerByUserID(userID)
	if err != nil {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "no player profile for this user"})
		return nil
	}
	return player
}

type CreatePlayRequest struct {
	GameID uint `json:"game_id" binding:"required" example:"1"`
}

type SubmitEntryRequest struct {
	AnswerID *uint `json:"answer_id" example:"3"`
}

type PlayScoreResponse struct {
	PlayID uint `json:"play_id"`
	Score  int  `json:"score"`
}

// ListPlays godoc
// @Summary      List the authenticated player's plays
// @Tags         plays
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Play
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/plays [get]
func (h *PlayHandler) ListPlays(c *gin.Context) {
	player := h.currentPlayer(c)
	if player == nil {
		return
	}

	plays, err := h.playService.GetPlaysByPlayer(player.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, plays)
}

// CreatePlay godoc
// @Summary      Start a play
// @Description  Start the player's attempt at a game; one entry per question is created. A player may attempt a given game only once.
// @Tags         plays
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreatePlayRequest true "Play data"
// @Success      201 {object} Play
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/plays [post]
func (h *PlayHandler) CreatePlay(c *gin.Context) {
	player := h.currentPlayer(c)
	if player == nil {
		return
	}

	var req CreatePlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	play, err := h.playService.CreatePlay(player.ID, req.GameID)
	if err != nil {
		status := http.StatusBadRequest
		if err.Error() == "player already has a play for this game" {
			status = http.StatusConflict
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(play.GameID, ws.WSMessage{Type: "play_created", Data: play})
	c.JSON(http.StatusCreated, play)
}

// GetPlay godoc
// @Summary      Get a play
// @Tags         plays
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Play ID"
// @Success      200 {object} Play
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/plays/{id} [get]
func (h *PlayHandler) GetPlay(c *gin.Context) {
	playID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid play id"})
		return
	}

	play, err := h.playService.GetPlayByID(uint(playID))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, play)
}

// SubmitEntry godoc
// @Summary      Select an answer for a question of the play
// @Tags         plays
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Play ID"
// @Param        question_id path int true "Question ID"
// @Param        request body SubmitEntryRequest true "Selected answer (null to clear)"
// @Success      200 {object} Entry
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/plays/{id}/entries/{question_id} [put]
func (h *PlayHandler) SubmitEntry(c *gin.Context) {
	player := h.currentPlayer(c)
	if player == nil {
		return
	}
	playID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid play id"})
		return
	}
	questionID, err := strconv.ParseUint(c.Param("question_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	var req SubmitEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	entry, err := h.playService.SubmitEntry(uint(playID), player.ID, uint(questionID), req.AnswerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if play, err := h.playService.GetPlayByID(uint(playID)); err == nil {
		score, _ := h.playService.PlayScore(play.ID)
		h.hub.Broadcast(play.GameID, ws.WSMessage{Type: "entry_submitted", Data: gin.H{
			"play_id": play.ID,
			"entry":   entry,
			"score":   score,
		}})
	}

	c.JSON(http.StatusOK, entry)
}

// GetPlayScore godoc
// @Summary      Get a play's current score
// @Description  Sum of the points of all selected answers
// @Tags         plays
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Play ID"
// @Success      200 {object} PlayScoreResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/plays/{id}/score [get]
func (h *PlayHandler) GetPlayScore(c *gin.Context) {
	playID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid play id"})
		return
	}

	score, err := h.playService.PlayScore(uint(playID))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, PlayScoreResponse{PlayID: uint(playID), Score: score})
}
