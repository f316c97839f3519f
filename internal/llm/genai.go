package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when a request names none
const DefaultModel = "gemini-3-flash-preview"

// GenAIClient generates text with Google's Gemini API
type GenAIClient struct {
	client *genai.Client
	model  string
}

// NewGenAIClient creates a Gemini-backed Generator. baseURL may be empty.
func NewGenAIClient(ctx context.Context, apiKey, model, baseURL string) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAIClient{client: client, model: model}, nil
}

// Model returns the default model name
func (c *GenAIClient) Model() string {
	return c.model
}

// Generate sends req to Gemini and returns the concatenated response text
func (c *GenAIClient) Generate(ctx context.Context, req Request) (string, error) {
	contents, err := toContents(req)
	if err != nil {
		return "", err
	}

	model := req.Model
	if model == "" {
		model = c.model
	}

	var cfg *genai.GenerateContentConfig
	if req.Schema != nil {
		cfg = &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   ToGenAISchema(req.Schema),
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	return resp.Text(), nil
}

func toContents(req Request) ([]*genai.Content, error) {
	if len(req.Turns) == 0 {
		if req.Prompt == "" {
			return nil, ErrEmptyRequest
		}
		return genai.Text(req.Prompt), nil
	}

	contents := make([]*genai.Content, 0, len(req.Turns))
	for _, m := range req.Turns {
		role := genai.RoleUser
		if m.Role == RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, genai.Role(role)))
	}
	return contents, nil
}

// ToGenAISchema converts a neutral schema into Gemini's schema DSL
func ToGenAISchema(s *Schema) *genai.Schema {
	out := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(s.Fields)),
		Required:   make([]string, 0, len(s.Fields)),
	}
	for _, f := range s.Fields {
		out.Properties[f.Name] = fieldSchema(f)
		out.Required = append(out.Required, f.Name)
	}
	return out
}

func fieldSchema(f Field) *genai.Schema {
	switch f.Kind {
	case KindStringArray:
		return &genai.Schema{
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		}
	case KindObjectArray:
		item := &genai.Schema{
			Type:       genai.TypeObject,
			Properties: make(map[string]*genai.Schema, len(f.Subfields)),
			Required:   append([]string(nil), f.Subfields...),
		}
		for _, sub := range f.Subfields {
			item.Properties[sub] = &genai.Schema{Type: genai.TypeString}
		}
		return &genai.Schema{Type: genai.TypeArray, Items: item}
	default:
		return &genai.Schema{Type: genai.TypeString}
	}
}
