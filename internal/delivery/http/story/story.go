package http_story

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	http_common "github.com/SriHarshaMande/Planning-poker/internal/delivery/http/common"
	"github.com/SriHarshaMande/Planning-poker/internal/model"
	usecase_story "github.com/SriHarshaMande/Planning-poker/internal/usecase/story"
)

type Controller struct {
	usecase *usecase_story.Usecase
	logger  *slog.Logger
}

func New(usecase *usecase_story.Usecase) *Controller {
	return &Controller{
		usecase: usecase,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	stories := router.Group("/stories")
	{
		stories.POST("/generate", c.generate)
	}
}

type GenerateStoriesRequestDTO struct {
	Prompt string `json:"prompt" binding:"required"`
}

type GenerateStoriesResponseDTO struct {
	Stories []model.Story `json:"stories"`
}

func (c *Controller) generate(ctx *gin.Context) {
	var req GenerateStoriesRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	stories, err := c.usecase.Generate(ctx, req.Prompt)
	if err != nil {
		if errors.Is(err, usecase_story.ErrEmptyPrompt) {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: err.Error(),
			})
			return
		}
		c.logger.Error("failed to generate stories", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "story generation is temporarily unavailable",
		})
		return
	}

	ctx.JSON(http.StatusOK, GenerateStoriesResponseDTO{
		Stories: stories,
	})
}
