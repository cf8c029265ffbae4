package infra_genai

import (
	"context"
	"fmt"
)

// Mock stands in for Gemini when no API key is configured.
type Mock struct{}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) GenerateStoryTitles(ctx context.Context, prompt string) ([]string, error) {
	titles := make([]string, 0, 5)
	for i := 1; i <= 5; i++ {
		titles = append(titles, fmt.Sprintf("As a user, I want %s (draft %d)", prompt, i))
	}
	return titles, nil
}
