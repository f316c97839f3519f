// Package assistant implements the conversational navigator: an ordered,
// append-only dialogue that forwards each user message to the LLM.
package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"

	"spacescope/internal/domain"
	"spacescope/internal/llm"

	"go.uber.org/zap"
)

const (
	Greeting     = "Greetings, explorer. I am the SpaceScope Navigator. How can I assist your journey through the cosmos today?"
	EmptyReply   = "Uplink intermittent. Please re-transmit your query."
	FailureReply = "Signal lost in the nebula. Please try again when clear of interference."
)

// SystemInstruction is the persona sent ahead of every conversation
const SystemInstruction = `You are the 'SpaceScope AI Navigator', a high-tech, helpful cosmic guide for the SpaceScope platform.
Your persona is enthusiastic, scientific, and futuristic.

KNOWLEDGE BASE:
- Platform Name: SpaceScope.
- Home Page: Features NASA's Picture of the Day (APOD).
- Events Page: Tracks real-time NASA Asteroid data (NeoWs) and celestial events (meteor showers, eclipses).
- Weather Page: Monitors Solar Wind, Flux, and Ionospheric activity. Features a Live Aurora Map (Pro only) and AI Threat Synthesis.
- Missions Page: A timeline of human space flight history with AI mission analysis.
- Premium Services: 'Pro Alerts' (real-time notifications) and Pro analysis tools.
- Business Model: Basic tools are free. Pro Access is a monthly subscription.

RULES:
1. Keep responses concise (max 3 sentences) unless asked for deep detail.
2. If a user asks where to find something, provide the specific page name.
3. You can answer any general space science question (black holes, gravity, etc.) with accuracy.
4. Use occasional space-themed terminology (e.g., 'Copy that', 'Establishing uplink', 'Orbiting your query').`

var (
	// ErrEmptyMessage is returned when the submitted text is blank
	ErrEmptyMessage = errors.New("assistant: message is empty")
	// ErrBusy is returned while a previous submission is still in flight
	ErrBusy = errors.New("assistant: a message is already being processed")
)

// Session holds one user's dialogue with the navigator
type Session struct {
	gen    llm.Generator
	model  string
	logger *zap.Logger

	mu    sync.Mutex
	turns []domain.DialogueTurn
	busy  bool
}

// NewSession creates a session seeded with the navigator greeting
func NewSession(gen llm.Generator, model string, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		gen:    gen,
		model:  model,
		logger: logger,
		turns:  []domain.DialogueTurn{{Role: domain.RoleAssistant, Text: Greeting}},
	}
}

// History returns a copy of the dialogue in chronological order
func (s *Session) History() []domain.DialogueTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.DialogueTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Busy reports whether a submission is in flight
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Submit appends the user's text, asks the model for a reply and appends
// it. Provider failures become an in-character apology turn and are not
// returned; only the precondition errors ErrEmptyMessage and ErrBusy are.
// The provider call is not canceled when ctx is.
func (s *Session) Submit(ctx context.Context, text string) (domain.DialogueTurn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.DialogueTurn{}, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return domain.DialogueTurn{}, ErrBusy
	}
	req := s.buildRequest(text)
	s.turns = append(s.turns, domain.DialogueTurn{Role: domain.RoleUser, Text: text})
	s.busy = true
	s.mu.Unlock()

	reply := s.generate(context.WithoutCancel(ctx), req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, reply)
	s.busy = false
	return reply, nil
}

func (s *Session) generate(ctx context.Context, req llm.Request) domain.DialogueTurn {
	text, err := s.gen.Generate(ctx, req)
	if err != nil {
		s.logger.Warn("assistant generation failed", zap.Error(err))
		return domain.DialogueTurn{Role: domain.RoleAssistant, Text: FailureReply}
	}
	if strings.TrimSpace(text) == "" {
		return domain.DialogueTurn{Role: domain.RoleAssistant, Text: EmptyReply}
	}
	return domain.DialogueTurn{Role: domain.RoleAssistant, Text: text}
}

// buildRequest must be called with s.mu held, before text is appended.
func (s *Session) buildRequest(text string) llm.Request {
	turns := make([]llm.Message, 0, len(s.turns)+2)
	turns = append(turns, llm.Message{Role: llm.RoleUser, Text: "System Context: " + SystemInstruction})
	for _, t := range s.turns {
		role := llm.RoleUser
		if t.Role == domain.RoleAssistant {
			role = llm.RoleModel
		}
		turns = append(turns, llm.Message{Role: role, Text: t.Text})
	}
	turns = append(turns, llm.Message{Role: llm.RoleUser, Text: text})
	return llm.Request{Model: s.model, Turns: turns}
}
