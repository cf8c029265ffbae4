package usecase_story

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/SriHarshaMande/Planning-poker/internal/model"
)

var (
	ErrEmptyPrompt = errors.New("empty prompt")
	ErrGeneration  = errors.New("story generation failed")
)

//go:generate mockery --name=StoryGenerator --output=./mocks/generator --outpkg=mocks --filename=generator.go
type StoryGenerator interface {
	GenerateStoryTitles(ctx context.Context, prompt string) ([]string, error)
}

type Usecase struct {
	generator StoryGenerator
}

func New(generator StoryGenerator) *Usecase {
	return &Usecase{generator: generator}
}

// Generate turns a free-text feature prompt into proposed stories. The
// proposals never touch any GameState here: the client appends them through
// the normal update flow, so a generation failure cannot corrupt a room.
func (u *Usecase) Generate(ctx context.Context, prompt string) ([]model.Story, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	titles, err := u.generator.GenerateStoryTitles(ctx, prompt)
	if err != nil {
		return nil, errors.Join(ErrGeneration, err)
	}

	stories := make([]model.Story, 0, len(titles))
	for _, title := range titles {
		stories = append(stories, model.Story{
			ID:    uuid.NewString(),
			Title: title,
		})
	}
	return stories, nil
}
