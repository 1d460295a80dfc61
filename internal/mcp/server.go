// Package mcp exposes the analytics service as MCP tools so LLM tutors
// can track activity and query recommendations directly.
package mcp

import (
	"context"
	"fmt"
	"time"

	mcp "github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/mcp-go/server"

	"github.com/brightloop/attune/internal/analytics"
	"github.com/brightloop/attune/internal/domain"
)

// Server wraps the MCP server with the analytics tools
type Server struct {
	mcpServer *server.Server
	service   analytics.Recommender
}

// Config contains configuration for the MCP server
type Config struct {
	Service analytics.Recommender
}

// NewServer creates a new MCP server exposing the analytics service
func NewServer(cfg Config) *Server {
	s := &Server{
		service: cfg.Service,
	}

	s.mcpServer = server.New(server.Info{
		Name:    "attune",
		Version: "0.1.0",
	}, server.WithInstructions(`
Attune tracks learning activity and computes adaptive recommendations.
Record every completed exercise with attune_track, then use the query
tools to adapt the next exercise to the learner.

Available tools:
- attune_track: Record a completed learning activity
- attune_recommendations: Get ranked study recommendations for a user
- attune_difficulty: Get the recommended difficulty for a subject/topic
- attune_retention: Get the retention estimate for a subject/topic

Difficulty tiers are easy, medium and hard. Performance is a 0-100 score.
`))

	s.registerTools()

	return s
}

// registerTools registers all analytics MCP tools
func (s *Server) registerTools() {
	s.mcpServer.Tool("attune_track").
		Description("Record a completed learning activity. Returns the stored record with derived metrics.").
		Handler(s.handleTrack)

	s.mcpServer.Tool("attune_recommendations").
		Description("Get ranked study recommendations for a user, worst weak areas first.").
		Handler(s.handleRecommendations)

	s.mcpServer.Tool("attune_difficulty").
		Description("Get the recommended difficulty tier for the next exercise on a subject/topic.").
		Handler(s.handleDifficulty)

	s.mcpServer.Tool("attune_retention").
		Description("Get the retention estimate (0-100) for a subject/topic.").
		Handler(s.handleRetention)
}

// Input/Output types for tools

type TrackInput struct {
	UserID         string  `json:"user_id" jsonschema:"description=Opaque learner identifier"`
	Subject        string  `json:"subject" jsonschema:"description=Subject studied, e.g. Math"`
	Topic          string  `json:"topic" jsonschema:"description=Topic within the subject, e.g. Fractions"`
	Difficulty     string  `json:"difficulty" jsonschema:"description=Difficulty of the activity,enum=easy,enum=medium,enum=hard"`
	Performance    float64 `json:"performance" jsonschema:"description=Score from 0 to 100"`
	TimeSpent      int     `json:"time_spent" jsonschema:"description=Time spent in seconds"`
	Attempts       int     `json:"attempts,omitempty" jsonschema:"description=Number of attempts (default 1)"`
	CorrectAnswers int     `json:"correct_answers" jsonschema:"description=Questions answered correctly"`
	TotalQuestions int     `json:"total_questions" jsonschema:"description=Total questions in the activity"`
}

type TrackOutput struct {
	RecordID         string  `json:"record_id"`
	LearningVelocity float64 `json:"learning_velocity"`
	RetentionRate    float64 `json:"retention_rate"`
	TrackedAt        string  `json:"tracked_at"`
}

type RecommendationsInput struct {
	UserID string `json:"user_id" jsonschema:"description=Opaque learner identifier"`
}

type RecommendationItem struct {
	Type                  string `json:"type"`
	Subject               string `json:"subject"`
	Topic                 string `json:"topic,omitempty"`
	RecommendedDifficulty string `json:"recommended_difficulty,omitempty"`
	Reason                string `json:"reason"`
	Confidence            int    `json:"confidence"`
	Priority              string `json:"priority"`
}

type RecommendationsOutput struct {
	Recommendations []RecommendationItem `json:"recommendations"`
}

type TopicInput struct {
	UserID  string `json:"user_id" jsonschema:"description=Opaque learner identifier"`
	Subject string `json:"subject" jsonschema:"description=Subject, e.g. Math"`
	Topic   string `json:"topic" jsonschema:"description=Topic within the subject"`
}

type DifficultyOutput struct {
	RecommendedDifficulty string `json:"recommended_difficulty"`
}

type RetentionOutput struct {
	RetentionRate float64 `json:"retention_rate"`
}

// Tool handlers

func (s *Server) handleTrack(ctx context.Context, input TrackInput) (TrackOutput, error) {
	attempts := input.Attempts
	if attempts == 0 {
		attempts = 1
	}

	record := &domain.ActivityRecord{
		UserID:         input.UserID,
		Subject:        input.Subject,
		Topic:          input.Topic,
		Difficulty:     domain.Difficulty(input.Difficulty),
		Performance:    input.Performance,
		TimeSpent:      input.TimeSpent,
		Attempts:       attempts,
		CorrectAnswers: input.CorrectAnswers,
		TotalQuestions: input.TotalQuestions,
	}

	stored, err := s.service.TrackActivity(ctx, record)
	if err != nil {
		return TrackOutput{}, fmt.Errorf("failed to track activity: %w", err)
	}

	return TrackOutput{
		RecordID:         stored.ID.String(),
		LearningVelocity: stored.LearningVelocity,
		RetentionRate:    stored.RetentionRate,
		TrackedAt:        stored.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func (s *Server) handleRecommendations(ctx context.Context, input RecommendationsInput) (RecommendationsOutput, error) {
	if input.UserID == "" {
		return RecommendationsOutput{}, fmt.Errorf("user_id is required")
	}

	recs := s.service.Recommendations(ctx, input.UserID)
	items := make([]RecommendationItem, 0, len(recs))
	for _, rec := range recs {
		items = append(items, RecommendationItem{
			Type:                  string(rec.Type),
			Subject:               rec.Subject,
			Topic:                 rec.Topic,
			RecommendedDifficulty: string(rec.RecommendedDifficulty),
			Reason:                rec.Reason,
			Confidence:            rec.Confidence,
			Priority:              string(rec.Priority),
		})
	}

	return RecommendationsOutput{Recommendations: items}, nil
}

func (s *Server) handleDifficulty(ctx context.Context, input TopicInput) (DifficultyOutput, error) {
	if input.UserID == "" || input.Subject == "" || input.Topic == "" {
		return DifficultyOutput{}, fmt.Errorf("user_id, subject and topic are required")
	}

	difficulty := s.service.RecommendDifficulty(ctx, input.UserID, input.Subject, input.Topic)
	return DifficultyOutput{RecommendedDifficulty: string(difficulty)}, nil
}

func (s *Server) handleRetention(ctx context.Context, input TopicInput) (RetentionOutput, error) {
	if input.UserID == "" || input.Subject == "" || input.Topic == "" {
		return RetentionOutput{}, fmt.Errorf("user_id, subject and topic are required")
	}

	rate := s.service.RetentionRate(ctx, input.UserID, input.Subject, input.Topic)
	return RetentionOutput{RetentionRate: rate}, nil
}

// ServeStdio starts the MCP server on stdio (for editor integration)
func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.mcpServer)
}

// ServeHTTP starts the MCP server on HTTP (alternative transport)
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcp.ServeHTTP(ctx, s.mcpServer, addr)
}

// GetMCPServer returns the underlying MCP server (for testing)
func (s *Server) GetMCPServer() *server.Server {
	return s.mcpServer
}
