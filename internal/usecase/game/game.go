package usecase_game

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/SriHarshaMande/Planning-poker/internal/model"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrNameTaken    = errors.New("player name already exists in this room")
	ErrEmptyName    = errors.New("player name must not be empty")
	ErrInternal     = errors.New("internal error")
)

// GameRepository holds the authoritative GameState per room code. Store is an
// unconditional overwrite: no version check, no merge, last write wins.
//
//go:generate mockery --name=GameRepository --output=./mocks/repository --outpkg=mocks --filename=repository.go
type GameRepository interface {
	// Create picks a fresh room code of the given length, stores the state
	// under it and returns the code.
	Create(ctx context.Context, codeLength int, state model.GameState) (model.RoomID, error)
	Load(ctx context.Context, roomID model.RoomID) (model.GameState, error)
	Store(ctx context.Context, roomID model.RoomID, state model.GameState) error
	Delete(ctx context.Context, roomID model.RoomID) error
}

// GameNotifier pushes a fresh GameState to whoever listens on the room's
// channel. Nobody is required to listen; the reference client polls.
//
//go:generate mockery --name=GameNotifier --output=./mocks/notifier --outpkg=mocks --filename=notifier.go
type GameNotifier interface {
	NotifyGameUpdated(roomID model.RoomID, state model.GameState)
}

type Usecase struct {
	repo     GameRepository
	notifier GameNotifier

	codeLength int
}

func New(repo GameRepository, notifier GameNotifier, codeLength int) *Usecase {
	if codeLength <= 0 {
		codeLength = model.DefaultRoomIDLength
	}

	return &Usecase{
		repo:       repo,
		notifier:   notifier,
		codeLength: codeLength,
	}
}

// Create builds a room with a single player, the moderator. Votes start
// hidden, the story list empty.
func (u *Usecase) Create(ctx context.Context, moderatorName string, codeLength int) (model.GameState, error) {
	if strings.TrimSpace(moderatorName) == "" {
		return model.GameState{}, ErrEmptyName
	}
	if codeLength <= 0 {
		codeLength = u.codeLength
	}

	state := model.GameState{
		Players: []model.Player{{
			ID:          uuid.NewString(),
			Name:        moderatorName,
			IsModerator: true,
		}},
		Stories: []model.Story{},
	}

	roomID, err := u.repo.Create(ctx, codeLength, state)
	if err != nil {
		return model.GameState{}, errors.Join(ErrInternal, err)
	}
	state.RoomID = roomID

	u.notifier.NotifyGameUpdated(roomID, state)
	return state, nil
}

func (u *Usecase) Get(ctx context.Context, roomID model.RoomID) (model.GameState, error) {
	state, err := u.repo.Load(ctx, roomID)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return model.GameState{}, ErrRoomNotFound
		}
		return model.GameState{}, errors.Join(ErrInternal, err)
	}
	return state, nil
}

// Join appends a new non-moderator player with no vote. Names are unique
// within a room, compared case-insensitively.
func (u *Usecase) Join(ctx context.Context, roomID model.RoomID, playerName string) (model.GameState, string, error) {
	if strings.TrimSpace(playerName) == "" {
		return model.GameState{}, "", ErrEmptyName
	}

	state, err := u.repo.Load(ctx, roomID)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return model.GameState{}, "", ErrRoomNotFound
		}
		return model.GameState{}, "", errors.Join(ErrInternal, err)
	}

	if state.HasPlayerName(playerName) {
		return model.GameState{}, "", ErrNameTaken
	}

	playerID := uuid.NewString()
	state.Players = append(state.Players, model.Player{
		ID:   playerID,
		Name: playerName,
	})

	if err := u.repo.Store(ctx, roomID, state); err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return model.GameState{}, "", ErrRoomNotFound
		}
		return model.GameState{}, "", errors.Join(ErrInternal, err)
	}

	u.notifier.NotifyGameUpdated(roomID, state)
	return state, playerID, nil
}

// Update replaces the whole stored state with whatever the caller sent.
// No invariant validation happens here: clients compute the next full state
// themselves and this is the only mutation primitive they have.
func (u *Usecase) Update(ctx context.Context, roomID model.RoomID, next model.GameState) (model.GameState, error) {
	next.RoomID = roomID

	if err := u.repo.Store(ctx, roomID, next); err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return model.GameState{}, ErrRoomNotFound
		}
		return model.GameState{}, errors.Join(ErrInternal, err)
	}

	u.notifier.NotifyGameUpdated(roomID, next)
	return next, nil
}

// RemovePlayer filters the player out. An unknown id is a no-op, not an
// error.
func (u *Usecase) RemovePlayer(ctx context.Context, roomID model.RoomID, playerID string) (model.GameState, error) {
	state, err := u.repo.Load(ctx, roomID)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return model.GameState{}, ErrRoomNotFound
		}
		return model.GameState{}, errors.Join(ErrInternal, err)
	}

	players := make([]model.Player, 0, len(state.Players))
	for _, p := range state.Players {
		if p.ID != playerID {
			players = append(players, p)
		}
	}
	state.Players = players

	if err := u.repo.Store(ctx, roomID, state); err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return model.GameState{}, ErrRoomNotFound
		}
		return model.GameState{}, errors.Join(ErrInternal, err)
	}

	u.notifier.NotifyGameUpdated(roomID, state)
	return state, nil
}

// Delete removes the room unconditionally. Pollers discover the removal as a
// not-found on their next refresh.
func (u *Usecase) Delete(ctx context.Context, roomID model.RoomID) error {
	if err := u.repo.Delete(ctx, roomID); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}
