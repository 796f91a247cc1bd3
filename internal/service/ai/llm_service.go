package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"github.com/zhouzirui/playmate/backend/internal/analysis/mood"
	"github.com/zhouzirui/playmate/backend/internal/config"
	"github.com/zhouzirui/playmate/backend/internal/model/persona"
	"github.com/zhouzirui/playmate/backend/internal/model/session"
)

// Service writes companion replies with an LLM chain.
type Service struct {
	persona persona.Persona
	cfg     config.AIConfig
	chain   compose.Runnable[map[string]any, *schema.Message]
	logger  *zap.Logger
}

// NewService creates the Ark-backed reply service.
func NewService(ctx context.Context, p persona.Persona, cfg config.AIConfig, logger *zap.Logger) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return NewServiceWithModel(ctx, chatModel, p, cfg, logger)
}

// NewServiceWithModel compiles the reply chain around an existing chat model.
func NewServiceWithModel(ctx context.Context, chatModel model.ChatModel, p persona.Persona, cfg config.AIConfig, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		persona: p,
		cfg:     cfg,
		chain:   runnable,
		logger:  logger,
	}, nil
}

// StreamingEnabled reports whether replies should be streamed.
func (s *Service) StreamingEnabled() bool {
	return s.cfg.StreamResponse
}

// GenerateReply produces a full reply to userMessage.
func (s *Service) GenerateReply(ctx context.Context, history []session.Message, userMessage string, detected mood.Label) (*schema.Message, error) {
	response, err := s.chain.Invoke(ctx, s.buildChainInput(history, userMessage, detected))
	if err != nil {
		return nil, fmt.Errorf("failed to run AI chain: %w", err)
	}

	s.logger.Debug("generated reply", zap.String("mood", string(detected)), zap.Int("length", len(response.Content)))
	return response, nil
}

// StreamReply streams reply chunks.
func (s *Service) StreamReply(ctx context.Context, history []session.Message, userMessage string, detected mood.Label) (*schema.StreamReader[*schema.Message], error) {
	if !s.StreamingEnabled() {
		return nil, fmt.Errorf("streaming disabled in configuration")
	}

	stream, err := s.chain.Stream(ctx, s.buildChainInput(history, userMessage, detected))
	if err != nil {
		return nil, fmt.Errorf("failed to stream AI chain output: %w", err)
	}
	return stream, nil
}

func (s *Service) buildChainInput(history []session.Message, userMessage string, detected mood.Label) map[string]any {
	return map[string]any{
		"system":  BuildSystemPrompt(s.persona, detected),
		"history": buildHistoryMessages(history, s.cfg.HistoryLimit),
		"query":   userMessage,
	}
}

func buildHistoryMessages(messages []session.Message, limit int) []*schema.Message {
	if len(messages) == 0 {
		return nil
	}
	if limit < 1 {
		limit = 1
	}

	start := 0
	if len(messages) > limit {
		start = len(messages) - limit
	}

	history := make([]*schema.Message, 0, len(messages)-start)
	for _, msg := range messages[start:] {
		switch msg.Role {
		case session.RoleUser:
			history = append(history, schema.UserMessage(msg.Content))
		case session.RoleAssistant:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}
	return history
}
