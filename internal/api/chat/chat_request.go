package api

import "github.com/olajcodes/profile-agent/internal/models"

type ChatRequest struct {
	Question string               `json:"question"`
	History  []models.ChatMessage `json:"history,omitempty"`
	Model    string               `json:"model,omitempty"`
}
