package infra_memory_game

import (
	"context"
	"sync"

	"github.com/SriHarshaMande/Planning-poker/internal/model"
	usecase_game "github.com/SriHarshaMande/Planning-poker/internal/usecase/game"
)

// Store keeps every live room in a mutex-guarded map. Process restart loses
// all rooms. This is the default backend.
type Store struct {
	mu    sync.RWMutex
	games map[model.RoomID]model.GameState
}

func New() *Store {
	return &Store{
		games: make(map[model.RoomID]model.GameState),
	}
}

func (s *Store) Create(ctx context.Context, codeLength int, state model.GameState) (model.RoomID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Retry until a free code turns up. The namespace (36^length) dwarfs the
	// number of live rooms, so the loop terminates quickly in practice.
	var roomID model.RoomID
	for {
		roomID = model.NewRoomID(codeLength)
		if _, exists := s.games[roomID]; !exists {
			break
		}
	}

	state.RoomID = roomID
	s.games[roomID] = state.Clone()
	return roomID, nil
}

func (s *Store) Load(ctx context.Context, roomID model.RoomID) (model.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.games[roomID]
	if !ok {
		return model.GameState{}, usecase_game.ErrRoomNotFound
	}
	return state.Clone(), nil
}

func (s *Store) Store(ctx context.Context, roomID model.RoomID, state model.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[roomID]; !ok {
		return usecase_game.ErrRoomNotFound
	}

	state.RoomID = roomID
	s.games[roomID] = state.Clone()
	return nil
}

func (s *Store) Delete(ctx context.Context, roomID model.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.games, roomID)
	return nil
}
