package http_game

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	http_common "github.com/SriHarshaMande/Planning-poker/internal/delivery/http/common"
	"github.com/SriHarshaMande/Planning-poker/internal/model"
	usecase_game "github.com/SriHarshaMande/Planning-poker/internal/usecase/game"
)

type Controller struct {
	usecase *usecase_game.Usecase
	logger  *slog.Logger
}

func New(usecase *usecase_game.Usecase) *Controller {
	return &Controller{
		usecase: usecase,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	games := router.Group("/games")
	{
		games.POST("", c.create)
		games.GET("/:room_id", c.get)
		games.POST("/:room_id/join", c.join)
		games.PUT("/:room_id", c.update)
		games.DELETE("/:room_id", c.remove)
		games.DELETE("/:room_id/players/:player_id", c.removePlayer)
	}
}

type CreateGameRequestDTO struct {
	ModeratorName string `json:"moderatorName" binding:"required"`
	RoomIDLength  int    `json:"roomIdLength"`
}

func (c *Controller) create(ctx *gin.Context) {
	var req CreateGameRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	state, err := c.usecase.Create(ctx, req.ModeratorName, req.RoomIDLength)
	if err != nil {
		c.logger.Error("failed to create game", slog.String("error", err.Error()))
		if errors.Is(err, usecase_game.ErrEmptyName) {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: err.Error(),
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, state)
}

func (c *Controller) get(ctx *gin.Context) {
	roomID := model.RoomID(ctx.Param("room_id"))

	state, err := c.usecase.Get(ctx, roomID)
	if err != nil {
		if errors.Is(err, usecase_game.ErrRoomNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "room not found",
			})
			return
		}
		c.logger.Error("failed to get game", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, state)
}

type JoinGameRequestDTO struct {
	PlayerName string `json:"playerName" binding:"required"`
}

type JoinGameResponseDTO struct {
	GameState model.GameState `json:"gameState"`
	PlayerID  string          `json:"playerId"`
}

func (c *Controller) join(ctx *gin.Context) {
	roomID := model.RoomID(ctx.Param("room_id"))

	var req JoinGameRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	state, playerID, err := c.usecase.Join(ctx, roomID, req.PlayerName)
	if err != nil {
		switch {
		case errors.Is(err, usecase_game.ErrRoomNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "room not found",
			})
		case errors.Is(err, usecase_game.ErrNameTaken):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: err.Error(),
			})
		case errors.Is(err, usecase_game.ErrEmptyName):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: err.Error(),
			})
		default:
			c.logger.Error("failed to join game", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.JSON(http.StatusOK, JoinGameResponseDTO{
		GameState: state,
		PlayerID:  playerID,
	})
}

func (c *Controller) update(ctx *gin.Context) {
	roomID := model.RoomID(ctx.Param("room_id"))

	var next model.GameState
	if err := ctx.ShouldBindJSON(&next); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	state, err := c.usecase.Update(ctx, roomID, next)
	if err != nil {
		if errors.Is(err, usecase_game.ErrRoomNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "room not found",
			})
			return
		}
		c.logger.Error("failed to update game", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, state)
}

func (c *Controller) removePlayer(ctx *gin.Context) {
	roomID := model.RoomID(ctx.Param("room_id"))
	playerID := ctx.Param("player_id")

	state, err := c.usecase.RemovePlayer(ctx, roomID, playerID)
	if err != nil {
		if errors.Is(err, usecase_game.ErrRoomNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "room not found",
			})
			return
		}
		c.logger.Error("failed to remove player", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, state)
}

func (c *Controller) remove(ctx *gin.Context) {
	roomID := model.RoomID(ctx.Param("room_id"))

	if err := c.usecase.Delete(ctx, roomID); err != nil {
		c.logger.Error("failed to delete game", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.Status(http.StatusNoContent)
}
