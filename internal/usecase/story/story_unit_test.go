package usecase_story

import (
	"context"
	"errors"
	"testing"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"

	generator_mocks "github.com/SriHarshaMande/Planning-poker/internal/usecase/story/mocks/generator"
)

type UsecaseStoryUnitSuite struct {
	suite.Suite
}

func (suite *UsecaseStoryUnitSuite) TestGenerate(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		prompt        string
		setupMocks    func(m *generator_mocks.StoryGenerator, ctx context.Context)
		expectedCount int
		expectError   bool
		expectedError error
	}{
		{
			name:   "Should wrap generated titles into stories with fresh ids",
			prompt: "user login flow",
			setupMocks: func(m *generator_mocks.StoryGenerator, ctx context.Context) {
				m.On("GenerateStoryTitles", ctx, "user login flow").
					Return([]string{
						"As a user, I want to sign in with email",
						"As a user, I want to reset my password",
					}, nil).Once()
			},
			expectedCount: 2,
		},
		{
			name:   "Should surface generator failure as a generation error",
			prompt: "user login flow",
			setupMocks: func(m *generator_mocks.StoryGenerator, ctx context.Context) {
				m.On("GenerateStoryTitles", ctx, "user login flow").
					Return(nil, errors.New("upstream timeout")).Once()
			},
			expectError:   true,
			expectedError: ErrGeneration,
		},
		{
			name:          "Should reject an empty prompt",
			prompt:        "   ",
			setupMocks:    func(m *generator_mocks.StoryGenerator, ctx context.Context) {},
			expectError:   true,
			expectedError: ErrEmptyPrompt,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			ctx := context.Background()
			generator := generator_mocks.NewStoryGenerator(t)
			tc.setupMocks(generator, ctx)
			usecase := New(generator)

			stories, err := usecase.Generate(ctx, tc.prompt)

			if tc.expectError {
				assert.ErrorIs(t, err, tc.expectedError)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, stories, tc.expectedCount)

			seen := make(map[string]bool)
			for _, story := range stories {
				assert.NotEmpty(t, story.ID)
				assert.NotEmpty(t, story.Title)
				assert.Nil(t, story.Estimate)
				assert.False(t, seen[story.ID])
				seen[story.ID] = true
			}
		})
	}
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseStoryUnitSuite))
}
