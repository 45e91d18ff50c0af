package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/olajcodes/profile-agent/internal/auth"
	"github.com/olajcodes/profile-agent/internal/index"
	"github.com/olajcodes/profile-agent/internal/llm"
	"github.com/olajcodes/profile-agent/internal/models"
	"github.com/olajcodes/profile-agent/internal/prompt"
)

// ChatService answers visitor questions: retrieve, assemble the persona
// prompt with the current date, one completion call, return the raw text.
type ChatService struct {
	retriever      *Retriever
	client         llm.Client
	logger         *log.Logger
	profileName    string
	temperature    float64
	topK           int
	allowNoContext bool
	now            func() time.Time
}

func NewChatService(retriever *Retriever, client llm.Client, logger *log.Logger, profileName string, temperature float64, topK int, allowNoContext bool) *ChatService {
	return &ChatService{
		retriever:      retriever,
		client:         client,
		logger:         logger,
		profileName:    profileName,
		temperature:    temperature,
		topK:           topK,
		allowNoContext: allowNoContext,
		now:            time.Now,
	}
}

// Answer runs the full chat pipeline. A missing index is fatal unless the
// service was configured to answer without context, in which case the
// persona prompt simply carries an empty context block.
func (s *ChatService) Answer(ctx context.Context, cred auth.Credential, question string, history []models.ChatMessage) (string, error) {
	results, err := s.retriever.Retrieve(ctx, cred, question, s.topK)
	if err != nil {
		if !errors.Is(err, index.ErrIndexNotFound) || !s.allowNoContext {
			return "", err
		}
		s.logger.Println("no index available; answering without context")
		results = nil
	}

	messages := prompt.Assemble(
		s.profileName,
		question,
		history,
		prompt.FormatContext(results),
		prompt.FormatDate(s.now()),
	)
	return s.client.Complete(ctx, cred, messages, s.temperature)
}
