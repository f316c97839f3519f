package assistant

import (
	"context"
	"errors"
	"testing"

	"spacescope/internal/domain"
	"spacescope/internal/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func reply(text string, err error) llm.Generator {
	return llm.GeneratorFunc(func(ctx context.Context, req llm.Request) (string, error) {
		return text, err
	})
}

func TestNewSession_SeededWithGreeting(t *testing.T) {
	s := NewSession(reply("", nil), "", nil)

	h := s.History()
	require.Len(t, h, 1)
	assert.Equal(t, domain.RoleAssistant, h[0].Role)
	assert.Equal(t, Greeting, h[0].Text)
	assert.False(t, s.Busy())
}

func TestSubmit_BlankIsNoop(t *testing.T) {
	called := false
	gen := llm.GeneratorFunc(func(ctx context.Context, req llm.Request) (string, error) {
		called = true
		return "x", nil
	})
	s := NewSession(gen, "", zap.NewNop())

	for _, in := range []string{"", "   ", "\n\t"} {
		_, err := s.Submit(context.Background(), in)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}
	assert.Len(t, s.History(), 1)
	assert.False(t, called)
}

func TestSubmit_Success(t *testing.T) {
	s := NewSession(reply("Copy that. Jupiter has 95 known moons.", nil), "m", zap.NewNop())

	turn, err := s.Submit(context.Background(), "  How many moons does Jupiter have?  ")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAssistant, turn.Role)

	h := s.History()
	require.Len(t, h, 3)
	assert.Equal(t, domain.DialogueTurn{Role: domain.RoleUser, Text: "How many moons does Jupiter have?"}, h[1])
	assert.Equal(t, "Copy that. Jupiter has 95 known moons.", h[2].Text)
	assert.False(t, s.Busy())
}

func TestSubmit_EmptyReply(t *testing.T) {
	s := NewSession(reply("  ", nil), "", zap.NewNop())

	_, err := s.Submit(context.Background(), "hello")
	require.NoError(t, err)

	h := s.History()
	require.Len(t, h, 3)
	assert.Equal(t, EmptyReply, h[2].Text)
}

func TestSubmit_ProviderFailure(t *testing.T) {
	s := NewSession(reply("", errors.New("503 unavailable")), "", zap.NewNop())

	turn, err := s.Submit(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, FailureReply, turn.Text)

	h := s.History()
	require.Len(t, h, 3)
	assert.Equal(t, domain.RoleUser, h[1].Role)
	assert.Equal(t, FailureReply, h[2].Text)
	assert.False(t, s.Busy())
}

func TestSubmit_RequestCarriesPersonaAndHistory(t *testing.T) {
	var reqs []llm.Request
	gen := llm.GeneratorFunc(func(ctx context.Context, req llm.Request) (string, error) {
		reqs = append(reqs, req)
		return "answer", nil
	})
	s := NewSession(gen, "gemini-test", zap.NewNop())

	_, err := s.Submit(context.Background(), "first")
	require.NoError(t, err)
	_, err = s.Submit(context.Background(), "second")
	require.NoError(t, err)

	require.Len(t, reqs, 2)
	req := reqs[1]
	assert.Equal(t, "gemini-test", req.Model)
	assert.Nil(t, req.Schema)
	require.Len(t, req.Turns, 5)
	assert.Equal(t, llm.RoleUser, req.Turns[0].Role)
	assert.Contains(t, req.Turns[0].Text, "System Context: ")
	assert.Equal(t, llm.Message{Role: llm.RoleModel, Text: Greeting}, req.Turns[1])
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Text: "first"}, req.Turns[2])
	assert.Equal(t, llm.Message{Role: llm.RoleModel, Text: "answer"}, req.Turns[3])
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Text: "second"}, req.Turns[4])
}

func TestSubmit_BusyIsNoop(t *testing.T) {
	defer goleak.VerifyNone(t, ignoreOpenCensus)

	started := make(chan struct{})
	release := make(chan struct{})
	gen := llm.GeneratorFunc(func(ctx context.Context, req llm.Request) (string, error) {
		close(started)
		<-release
		return "done", nil
	})
	s := NewSession(gen, "", zap.NewNop())

	errCh := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), "first")
		errCh <- err
	}()
	<-started

	assert.True(t, s.Busy())
	_, err := s.Submit(context.Background(), "second")
	assert.ErrorIs(t, err, ErrBusy)

	h := s.History()
	require.Len(t, h, 2)
	assert.Equal(t, "first", h[1].Text)

	close(release)
	require.NoError(t, <-errCh)

	h = s.History()
	require.Len(t, h, 3)
	assert.Equal(t, "done", h[2].Text)
}

func TestSubmit_IgnoresCallerCancellation(t *testing.T) {
	gen := llm.GeneratorFunc(func(ctx context.Context, req llm.Request) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "still here", nil
	})
	s := NewSession(gen, "", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	turn, err := s.Submit(ctx, "ping")
	require.NoError(t, err)
	assert.Equal(t, "still here", turn.Text)
}

// genai links in opencensus, whose view worker starts from init
var ignoreOpenCensus = goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start")
