package handlers

import (
	"net/http"
	"strconv"

	"quiz-arena-backend/internal/models"
	"quiz-arena-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	gameService   *services.GameService
	playerService *services.PlayerService
}

func NewGameHandler(gameService *services.GameService, playerService *services.PlayerService) *GameHandler {
	return &GameHandler{gameService: gameService, playerService: playerService}
}

// requireGameMaster resolves the authenticated user's player and checks the
// gamemaster kind. On failure it writes the response and returns nil.
func requireGameMaster(c *gin.Context, playerService *services.PlayerService) *models.Player {
	userID := c.GetUint("user_id")
	player, err := playerService.GetPlayerByUserID(userID)
	if err != nil {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "no player profile for this user"})
		return nil
	}
	if player.Kind != models.PlayerKindGameMaster {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "only game masters may author games"})
		return nil
	}
	return player
}

// ListGames godoc
// @Summary      List games
// @Description  Public game catalog
// @Tags         games
// @Produce      json
// @Success      200 {array} Game
// @Router       /api/v1/games [get]
func (h *GameHandler) ListGames(c *gin.Context) {
	games, err := h.gameService.GetGames()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, games)
}

// CreateGame godoc
// @Summary      Create a game
// @Description  Create a game; two placeholder questions (each with three placeholder answers) are seeded automatically
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.GameInput true "Game data"
// @Success      201 {object} Game
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/games [post]
func (h *GameHandler) CreateGame(c *gin.Context) {
	master := requireGameMaster(c, h.playerService)
	if master == nil {
		return
	}

	var input services.GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	game, err := h.gameService.CreateGame(master.ID, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, game)
}

// GetGame godoc
// @Summary      Get a game
// @Description  Get a game with its questions and answers
// @Tags         games
// @Produce      json
// @Param        id path int true "Game ID"
// @Success      200 {object} Game
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/games/{id} [get]
func (h *GameHandler) GetGame(c *gin.Context) {
	gameID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid game id"})
		return
	}

	game, err := h.gameService.GetGameByID(uint(gameID))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, game)
}

// UpdateGame godoc
// @Summary      Update a game
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Param        request body services.GameInput true "Game data"
// @Success      200 {object} Game
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/games/{id} [put]
func (h *GameHandler) UpdateGame(c *gin.Context) {
	master := requireGameMaster(c, h.playerService)
	if master == nil {
		return
	}
	gameID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid game id"})
		return
	}

	var input services.GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	game, err := h.gameService.UpdateGame(uint(gameID), master.ID, input)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, game)
}

// DeleteGame godoc
// @Summary      Delete a game
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/games/{id} [delete]
func (h *GameHandler) DeleteGame(c *gin.Context) {
	master := requireGameMaster(c, h.playerService)
	if master == nil {
		return
	}
	gameID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid game id"})
		return
	}

	if err := h.gameService.DeleteGame(uint(gameID), master.ID); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "game deleted"})
}
