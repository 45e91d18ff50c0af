package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/olajcodes/profile-agent/internal/auth"
	"github.com/olajcodes/profile-agent/internal/llm"
	"github.com/olajcodes/profile-agent/internal/models"
	"github.com/olajcodes/profile-agent/internal/prompt"
)

// ErrIrrelevantRequest is the gatekeeper rejection: the job description does
// not match the professional domain, so no document is generated.
var ErrIrrelevantRequest = errors.New("job description is not relevant to this profile")

const (
	cvContextQuery          = "My full professional experience, technical skills, and projects"
	coverLetterContextQuery = "My full professional experience, motivation, and soft skills"
)

// DocumentService produces the structured text for tailored CVs and cover
// letters behind a relevance gate. The gate is strict for CVs (exact
// sentinel) and deliberately lenient for cover letters (partial match
// accepted); the asymmetry is a product decision.
type DocumentService struct {
	retriever   *Retriever
	client      llm.Client
	logger      *log.Logger
	profileName string
	temperature float64
	topK        int
	now         func() time.Time
}

func NewDocumentService(retriever *Retriever, client llm.Client, logger *log.Logger, profileName string, temperature float64, topK int) *DocumentService {
	return &DocumentService{
		retriever:   retriever,
		client:      client,
		logger:      logger,
		profileName: profileName,
		temperature: temperature,
		topK:        topK,
		now:         time.Now,
	}
}

// GenerateCV combines the relevance check and the generation into one call:
// the model either answers with the refusal sentinel or with a CV in the
// fixed structure. Sentinel detection is on the trimmed full response, never
// substring containment, so a CV that merely mentions the phrase passes.
func (s *DocumentService) GenerateCV(ctx context.Context, cred auth.Credential, jobDescription string) (string, error) {
	results, err := s.retriever.Retrieve(ctx, cred, cvContextQuery, s.topK)
	if err != nil {
		return "", err
	}

	p := prompt.CVPrompt(s.profileName, jobDescription, prompt.FormatContext(results), prompt.FormatDate(s.now()))
	s.logger.Println("analyzing job description and generating CV")
	response, err := s.client.Complete(ctx, cred, []models.ChatMessage{{Role: models.RoleUser, Content: p}}, s.temperature)
	if err != nil {
		return "", err
	}

	trimmed := strings.TrimSpace(response)
	if strings.HasPrefix(trimmed, prompt.NoMatchSentinel) {
		return "", ErrIrrelevantRequest
	}
	if trimmed == "" {
		return "", fmt.Errorf("model returned an empty CV")
	}
	return response, nil
}

// GenerateCoverLetter runs the two phases as separate calls: a one-word
// relevance verdict, then the writing prompt. Only an outright "NO" rejects.
func (s *DocumentService) GenerateCoverLetter(ctx context.Context, cred auth.Credential, jobDescription string) (string, error) {
	results, err := s.retriever.Retrieve(ctx, cred, coverLetterContextQuery, s.topK)
	if err != nil {
		return "", err
	}
	contextBlock := prompt.FormatContext(results)

	s.logger.Println("checking job description relevance")
	verdict, err := s.client.Complete(ctx, cred, []models.ChatMessage{
		{Role: models.RoleUser, Content: prompt.CoverLetterCheckPrompt(s.profileName, jobDescription)},
	}, s.temperature)
	if err != nil {
		return "", err
	}
	if strings.EqualFold(strings.TrimSpace(verdict), "NO") {
		return "", ErrIrrelevantRequest
	}

	letter, err := s.client.Complete(ctx, cred, []models.ChatMessage{
		{Role: models.RoleUser, Content: prompt.CoverLetterPrompt(s.profileName, jobDescription, contextBlock, prompt.FormatDate(s.now()))},
	}, s.temperature)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(letter) == "" {
		return "", fmt.Errorf("model returned an empty cover letter")
	}
	return letter, nil
}
