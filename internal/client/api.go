// Package client is the Go counterpart of the web client: a thin HTTP API
// wrapper plus the polling reconciler that keeps a local GameState fresh.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	http_game "github.com/SriHarshaMande/Planning-poker/internal/delivery/http/game"
	http_story "github.com/SriHarshaMande/Planning-poker/internal/delivery/http/story"
	"github.com/SriHarshaMande/Planning-poker/internal/model"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrNameTaken    = errors.New("player name already exists in this room")
	ErrBadRequest   = errors.New("request rejected")
	ErrAIService    = errors.New("story generation unavailable")
)

// API talks to the game service over HTTP/JSON. Transport failures come back
// as-is; service-level failures are mapped to the sentinel errors above.
type API struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPI(baseURL string) *API {
	return &API{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *API) CreateGame(ctx context.Context, moderatorName string, roomIDLength int) (model.GameState, error) {
	var state model.GameState
	err := a.do(ctx, http.MethodPost, "/api/v1/games", http_game.CreateGameRequestDTO{
		ModeratorName: moderatorName,
		RoomIDLength:  roomIDLength,
	}, &state)
	return state, err
}

func (a *API) GetGame(ctx context.Context, roomID model.RoomID) (model.GameState, error) {
	var state model.GameState
	err := a.do(ctx, http.MethodGet, "/api/v1/games/"+string(roomID), nil, &state)
	return state, err
}

func (a *API) JoinGame(ctx context.Context, roomID model.RoomID, playerName string) (model.GameState, string, error) {
	var resp http_game.JoinGameResponseDTO
	err := a.do(ctx, http.MethodPost, "/api/v1/games/"+string(roomID)+"/join", http_game.JoinGameRequestDTO{
		PlayerName: playerName,
	}, &resp)
	return resp.GameState, resp.PlayerID, err
}

func (a *API) UpdateGame(ctx context.Context, state model.GameState) (model.GameState, error) {
	var updated model.GameState
	err := a.do(ctx, http.MethodPut, "/api/v1/games/"+string(state.RoomID), state, &updated)
	return updated, err
}

func (a *API) RemovePlayer(ctx context.Context, roomID model.RoomID, playerID string) (model.GameState, error) {
	var state model.GameState
	err := a.do(ctx, http.MethodDelete, "/api/v1/games/"+string(roomID)+"/players/"+playerID, nil, &state)
	return state, err
}

func (a *API) DeleteGame(ctx context.Context, roomID model.RoomID) error {
	return a.do(ctx, http.MethodDelete, "/api/v1/games/"+string(roomID), nil, nil)
}

func (a *API) GenerateStories(ctx context.Context, prompt string) ([]model.Story, error) {
	var resp http_story.GenerateStoriesResponseDTO
	err := a.do(ctx, http.MethodPost, "/api/v1/stories/generate", http_story.GenerateStoriesRequestDTO{
		Prompt: prompt,
	}, &resp)
	return resp.Stories, err
}

func (a *API) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return apiError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func apiError(resp *http.Response) error {
	var apiErr struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&apiErr)

	var sentinel error
	switch resp.StatusCode {
	case http.StatusNotFound:
		sentinel = ErrRoomNotFound
	case http.StatusConflict:
		sentinel = ErrNameTaken
	case http.StatusBadRequest:
		sentinel = ErrBadRequest
	case http.StatusBadGateway:
		sentinel = ErrAIService
	default:
		return fmt.Errorf("unexpected status %s: %s", resp.Status, apiErr.Message)
	}

	if apiErr.Message != "" {
		return fmt.Errorf("%w: %s", sentinel, apiErr.Message)
	}
	return sentinel
}
