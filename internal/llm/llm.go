// Package llm defines a provider-neutral text generation request and the
// Gemini adapter that serves it.
package llm

import (
	"context"
	"errors"
)

// Role is the speaker of a message in the provider's vocabulary
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one conversational turn sent to the provider
type Message struct {
	Role Role
	Text string
}

// Request is a single generation call. Exactly one of Turns or Prompt is
// used: Turns for conversations, Prompt for one-shot requests. A non-nil
// Schema asks the provider for JSON conforming to it.
type Request struct {
	Model  string
	Turns  []Message
	Prompt string
	Schema *Schema
}

// Generator produces text for a request
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// ErrEmptyRequest is returned when a request carries neither turns nor a prompt
var ErrEmptyRequest = errors.New("llm: request has no turns and no prompt")

// GeneratorFunc adapts a function to the Generator interface
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

// Generate calls f(ctx, req)
func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// ErrNoProvider is returned by Unavailable
var ErrNoProvider = errors.New("llm: no generation provider configured")

// Unavailable is a Generator for deployments without an API key. Every
// call fails with ErrNoProvider.
var Unavailable Generator = GeneratorFunc(func(ctx context.Context, req Request) (string, error) {
	return "", ErrNoProvider
})
