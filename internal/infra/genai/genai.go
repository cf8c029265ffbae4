package infra_genai

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/SriHarshaMande/Planning-poker/internal/config"
)

// Generator asks Gemini for user-story titles. The response is constrained to
// a JSON array of {title} objects so the parse below cannot be surprised by
// prose.
type Generator struct {
	client *genai.Client
	model  string
}

func MustEstablishClient(cfg config.GenAI) *Generator {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		panic(err)
	}

	return &Generator{
		client: client,
		model:  cfg.Model,
	}
}

var storySchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title": {
				Type:        genai.TypeString,
				Description: "A concise, well-formed user story title, typically starting with 'As a user...'",
			},
		},
		Required: []string{"title"},
	},
}

func (g *Generator) GenerateStoryTitles(ctx context.Context, prompt string) ([]string, error) {
	contents := genai.Text(fmt.Sprintf(
		"Based on the following feature description, generate 5 user stories: %q", prompt))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   storySchema,
	})
	if err != nil {
		return nil, err
	}

	var proposals []struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(resp.Text()), &proposals); err != nil {
		return nil, fmt.Errorf("unexpected response format: %w", err)
	}

	titles := make([]string, 0, len(proposals))
	for _, p := range proposals {
		titles = append(titles, p.Title)
	}
	return titles, nil
}
