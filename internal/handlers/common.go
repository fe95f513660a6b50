package handlers

import "quiz-arena-backend/internal/models"

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// Type aliases so swag can resolve models in annotations.
type Game = models.Game
type Question = models.Question
type Answer = models.Answer
type Player = models.Player
type Play = models.Play
type Entry = models.Entry
type Genre = models.Genre
