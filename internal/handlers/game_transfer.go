package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"quiz-arena-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type TransferHandler struct {
	gameService     *services.GameService
	transferService *services.TransferService
	playerService   *services.PlayerService
}

func NewTransferHandler(gameService *services.GameService, transferService *services.TransferService, playerService *services.PlayerService) *TransferHandler {
	return &TransferHandler{gameService: gameService, transferService: transferService, playerService: playerService}
}

// ExportGame godoc
// @Summary      Export a game as CSV
// @Description  One row per answer with prefixed game__/question__/answer__ columns
// @Tags         games
// @Produce      text/csv
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200 {string} string "CSV payload"
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/games/{id}/export [get]
func (h *TransferHandler) ExportGame(c *gin.Context) {
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

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s_export.csv\"", game.Slug))

	if err := h.transferService.WriteCSV(c.Writer, []Game{*game}); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}

// ImportGames godoc
// @Summary      Import games from CSV
// @Description  Upload a CSV in the export format; games, questions and answers are get-or-created row by row. Rows of the same game or question must be contiguous.
// @Tags         games
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "CSV file"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/games/import [post]
func (h *TransferHandler) ImportGames(c *gin.Context) {
	master := requireGameMaster(c, h.playerService)
	if master == nil {
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file required"})
		return
	}
	defer file.Close()

	count, err := h.transferService.ReadCSV(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("imported %d answer rows", count)})
}
