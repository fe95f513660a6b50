package handlers

import (
	"net/http"

	"quiz-arena-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	genreService *services.GenreService
}

func NewGenreHandler(genreService *services.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

type CreateGenreRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=50" example:"History"`
	ParentID *uint  `json:"parent_id,omitempty"`
}

// ListGenres godoc
// @Summary      List genres
// @Description  Root genres with their children
// @Tags         genres
// @Produce      json
// @Success      200 {array} Genre
// @Router       /api/v1/genres [get]
func (h *GenreHandler) ListGenres(c *gin.Context) {
	genres, err := h.genreService.GetGenres()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, genres)
}

// CreateGenre godoc
// @Summary      Create a genre
// @Tags         genres
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateGenreRequest true "Genre data"
// @Success      201 {object} Genre
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/genres [post]
func (h *GenreHandler) CreateGenre(c *gin.Context) {
	var req CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	genre, err := h.genreService.CreateGenre(req.Name, req.ParentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, genre)
}
