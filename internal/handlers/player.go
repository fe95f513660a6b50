package handlers

import (
	"net/http"
	"strconv"

	"quiz-arena-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	playerService *services.PlayerService
}

func NewPlayerHandler(playerService *services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

// ListPlayers godoc
// @Summary      List players
// @Description  Get all players ordered by username
// @Tags         players
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Player
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/players [get]
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	players, err := h.playerService.GetPlayers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, players)
}

// CreatePlayer godoc
// @Summary      Create the player profile
// @Description  Attach a player (guest, subscriber, teammate or gamemaster) to the authenticated user
// @Tags         players
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.PlayerInput true "Player data"
// @Success      201 {object} Player
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/players [post]
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	userID := c.GetUint("user_id")

	var input services.PlayerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	player, err := h.playerService.CreatePlayer(userID, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, player)
}

// GetPlayer godoc
// @Summary      Get a player
// @Tags         players
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Player ID"
// @Success      200 {object} Player
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/players/{id} [get]
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	playerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid player id"})
		return
	}

	player, err := h.playerService.GetPlayerByID(uint(playerID))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, player)
}

// UpdatePlayer godoc
// @Summary      Update a player
// @Description  Update the authenticated user's own player profile
// @Tags         players
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Player ID"
// @Param        request body services.PlayerInput true "Player data"
// @Success      200 {object} Player
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/players/{id} [put]
func (h *PlayerHandler) UpdatePlayer(c *gin.Context) {
	userID := c.GetUint("user_id")
	playerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid player id"})
		return
	}

	player, err := h.playerService.GetPlayerByID(uint(playerID))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	if player.UserID != userID {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "access denied"})
		return
	}

	var input services.PlayerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	updated, err := h.playerService.UpdatePlayer(uint(playerID), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}
