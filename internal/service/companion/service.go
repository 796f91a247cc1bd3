package companion

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"github.com/zhouzirui/playmate/backend/internal/analysis/mood"
	"github.com/zhouzirui/playmate/backend/internal/model/session"
)

var ErrEmptyMessage = errors.New("message is empty")

// Canned replies used when no LLM is configured or it fails.
const (
	ReplySad     = "I'm sorry you're feeling this way. Want to talk about it or play a game to feel better?"
	ReplyHappy   = "Yay! I'm glad you're happy! Want to play a game or draw something fun?"
	ReplyGame    = "Great! Go to the Games page to play together!"
	ReplyDefault = "That's interesting! Tell me more or choose an activity from the menu."
)

// Generator writes replies with a language model.
type Generator interface {
	StreamingEnabled() bool
	GenerateReply(ctx context.Context, history []session.Message, userMessage string, detected mood.Label) (*schema.Message, error)
	StreamReply(ctx context.Context, history []session.Message, userMessage string, detected mood.Label) (*schema.StreamReader[*schema.Message], error)
}

// Source tells where a reply came from.
type Source string

const (
	SourceCanned Source = "canned"
	SourceLLM    Source = "llm"
)

// Exchange is the outcome of one chat turn.
type Exchange struct {
	User   session.Message   `json:"user"`
	Reply  session.Message   `json:"reply"`
	Mood   session.MoodEntry `json:"mood"`
	Source Source            `json:"source"`
}

// Service runs chat turns: log the child's message, classify its mood, answer.
type Service struct {
	classifier *mood.Classifier
	generator  Generator
	logger     *zap.Logger
	now        func() time.Time
}

// NewService builds a companion. generator may be nil.
func NewService(classifier *mood.Classifier, generator Generator, logger *zap.Logger) *Service {
	if classifier == nil {
		classifier = mood.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		classifier: classifier,
		generator:  generator,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CannedReply picks the built-in answer for text with the detected mood.
func CannedReply(text string, detected mood.Label) string {
	switch {
	case detected == mood.Sad:
		return ReplySad
	case detected == mood.Happy:
		return ReplyHappy
	case strings.Contains(strings.ToLower(text), "game"):
		return ReplyGame
	default:
		return ReplyDefault
	}
}

// Chat runs one turn and records it in state.
func (s *Service) Chat(ctx context.Context, state *session.State, text string) (Exchange, error) {
	return s.turn(ctx, state, text, nil)
}

// ChatStream runs one turn, passing reply fragments to emit as the model
// produces them. Without a streaming model emit is never called.
func (s *Service) ChatStream(ctx context.Context, state *session.State, text string, emit func(delta string)) (Exchange, error) {
	return s.turn(ctx, state, text, emit)
}

func (s *Service) turn(ctx context.Context, state *session.State, text string, emit func(string)) (Exchange, error) {
	if strings.TrimSpace(text) == "" {
		return Exchange{}, ErrEmptyMessage
	}

	history := state.RecentMessages(len(state.Conversation))
	now := s.now()

	userMsg := state.AddMessage(session.RoleUser, text, now)
	detected := s.classifier.Classify(text)
	entry := state.LogMood(session.MoodEntry{
		Timestamp: now,
		Mood:      detected,
		Source:    session.SourceChat,
		Message:   text,
	})

	content, source := s.reply(ctx, history, text, detected, emit)
	replyMsg := state.AddMessage(session.RoleAssistant, content, s.now())

	s.logger.Debug("chat turn",
		zap.String("session", state.ID),
		zap.String("mood", string(detected)),
		zap.String("source", string(source)),
	)

	return Exchange{User: userMsg, Reply: replyMsg, Mood: entry, Source: source}, nil
}

func (s *Service) reply(ctx context.Context, history []session.Message, text string, detected mood.Label, emit func(string)) (string, Source) {
	if s.generator == nil {
		return CannedReply(text, detected), SourceCanned
	}

	var (
		content string
		err     error
	)
	if emit != nil && s.generator.StreamingEnabled() {
		content, err = s.stream(ctx, history, text, detected, emit)
	} else {
		var msg *schema.Message
		msg, err = s.generator.GenerateReply(ctx, history, text, detected)
		if msg != nil {
			content = msg.Content
		}
	}

	if err != nil {
		s.logger.Warn("llm reply failed, using canned reply", zap.Error(err))
		return CannedReply(text, detected), SourceCanned
	}
	if strings.TrimSpace(content) == "" {
		s.logger.Warn("llm reply empty, using canned reply")
		return CannedReply(text, detected), SourceCanned
	}
	return content, SourceLLM
}

func (s *Service) stream(ctx context.Context, history []session.Message, text string, detected mood.Label, emit func(string)) (string, error) {
	stream, err := s.generator.StreamReply(ctx, history, text, detected)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	chunks := make([]*schema.Message, 0, 8)
	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			return "", recvErr
		}
		if chunk == nil {
			continue
		}

		chunks = append(chunks, chunk)
		if chunk.Content != "" {
			emit(chunk.Content)
		}
	}

	if len(chunks) == 0 {
		return "", nil
	}
	response, err := schema.ConcatMessages(chunks)
	if err != nil {
		return "", err
	}
	return response.Content, nil
}
