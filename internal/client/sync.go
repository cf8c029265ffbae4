package client

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SriHarshaMande/Planning-poker/internal/model"
)

var ErrNotInRoom = errors.New("not in a room")

const defaultPollInterval = 3 * time.Second

// GameAPI is the slice of the HTTP API the reconciler needs.
type GameAPI interface {
	CreateGame(ctx context.Context, moderatorName string, roomIDLength int) (model.GameState, error)
	GetGame(ctx context.Context, roomID model.RoomID) (model.GameState, error)
	JoinGame(ctx context.Context, roomID model.RoomID, playerName string) (model.GameState, string, error)
	UpdateGame(ctx context.Context, state model.GameState) (model.GameState, error)
	RemovePlayer(ctx context.Context, roomID model.RoomID, playerID string) (model.GameState, error)
}

// Syncer keeps a local view of one room approximately fresh by polling, and
// pushes every user action as a whole new GameState. The server side has no
// merge: whoever writes last wins, and the syncer tolerates that.
//
// Session lifecycle: LoggedOut -> (Create|Join) -> InRoom. A poll that finds
// the room gone, or the local player removed, drops back to LoggedOut and
// clears the persisted session.
type Syncer struct {
	api        GameAPI
	sessions   SessionStore
	interval   time.Duration
	foreground func() bool
	logger     *slog.Logger

	mu       sync.Mutex
	state    *model.GameState
	playerID string
	// generation counts adoptions of authoritative mutation responses.
	// Poll responses started under an older generation are discarded, so a
	// slow poll can never overwrite a newer mutation result.
	generation uint64
}

type SyncerOption func(*Syncer)

func WithInterval(interval time.Duration) SyncerOption {
	return func(s *Syncer) {
		s.interval = interval
	}
}

// WithForegroundCheck gates polling: while the check returns false the
// refresh tick is skipped, mirroring a backgrounded window.
func WithForegroundCheck(check func() bool) SyncerOption {
	return func(s *Syncer) {
		s.foreground = check
	}
}

func WithLogger(logger *slog.Logger) SyncerOption {
	return func(s *Syncer) {
		s.logger = logger
	}
}

func NewSyncer(api GameAPI, sessions SessionStore, opts ...SyncerOption) *Syncer {
	s := &Syncer{
		api:        api,
		sessions:   sessions,
		interval:   defaultPollInterval,
		foreground: func() bool { return true },
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore adopts a persisted session if the room still exists and still
// contains the persisted player. Any other outcome clears the session.
func (s *Syncer) Restore(ctx context.Context) bool {
	session, ok := s.sessions.Load()
	if !ok {
		return false
	}

	state, err := s.api.GetGame(ctx, session.RoomID)
	if err != nil || !state.HasPlayer(session.PlayerID) {
		_ = s.sessions.Clear()
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = &state
	s.playerID = session.PlayerID
	return true
}

// Run polls until the context is cancelled. Skipped ticks and transport
// failures are both recovered by the next tick.
func (s *Syncer) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.foreground() {
				continue
			}
			s.Refresh(ctx)
		}
	}
}

// Refresh performs one reconciliation pass.
func (s *Syncer) Refresh(ctx context.Context) {
	s.mu.Lock()
	if s.state == nil {
		s.mu.Unlock()
		return
	}
	roomID := s.state.RoomID
	playerID := s.playerID
	generation := s.generation
	s.mu.Unlock()

	fetched, err := s.api.GetGame(ctx, roomID)
	s.apply(roomID, playerID, generation, fetched, err)
}

func (s *Syncer) apply(roomID model.RoomID, playerID string, generation uint64, fetched model.GameState, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A mutation response adopted while this poll was in flight is
	// authoritative; drop the stale read.
	if s.generation != generation || s.state == nil || s.state.RoomID != roomID {
		return
	}

	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			s.logger.Info("room no longer exists, logging out", "room_id", roomID)
			s.logoutLocked()
			return
		}
		// Transport errors are swallowed: keep the previous state, the
		// next tick retries.
		s.logger.Warn("refresh failed", "room_id", roomID, "error", err)
		return
	}

	if !fetched.HasPlayer(playerID) {
		s.logger.Info("removed from the game, logging out", "room_id", roomID)
		s.logoutLocked()
		return
	}

	if !reflect.DeepEqual(fetched, *s.state) {
		s.state = &fetched
	}
}

// Create starts a new room and logs in as its moderator.
func (s *Syncer) Create(ctx context.Context, moderatorName string) error {
	state, err := s.api.CreateGame(ctx, moderatorName, 0)
	if err != nil {
		return err
	}

	moderator, ok := state.Moderator()
	if !ok {
		return errors.New("created game has no moderator")
	}

	if err := s.sessions.Save(Session{RoomID: state.RoomID, PlayerID: moderator.ID}); err != nil {
		s.logger.Warn("failed to persist session", "error", err)
	}

	s.adopt(state, moderator.ID)
	return nil
}

// Join enters an existing room under the given name.
func (s *Syncer) Join(ctx context.Context, roomID model.RoomID, playerName string) error {
	state, playerID, err := s.api.JoinGame(ctx, roomID, playerName)
	if err != nil {
		return err
	}

	if err := s.sessions.Save(Session{RoomID: roomID, PlayerID: playerID}); err != nil {
		s.logger.Warn("failed to persist session", "error", err)
	}

	s.adopt(state, playerID)
	return nil
}

// Logout drops the local state and the persisted session.
func (s *Syncer) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logoutLocked()
}

// Vote records the local player's card for the current round.
func (s *Syncer) Vote(ctx context.Context, card model.CardValue) error {
	s.mu.Lock()
	playerID := s.playerID
	s.mu.Unlock()

	return s.mutate(ctx, func(state model.GameState) model.GameState {
		for i, p := range state.Players {
			if p.ID == playerID {
				vote := card
				state.Players[i].Vote = &vote
				state.Players[i].HasVoted = true
			}
		}
		return state
	})
}

// AddStory appends a story; the first story added becomes the current one.
func (s *Syncer) AddStory(ctx context.Context, title string) error {
	return s.mutate(ctx, func(state model.GameState) model.GameState {
		story := model.Story{ID: uuid.NewString(), Title: title}
		state.Stories = append(state.Stories, story)
		if state.CurrentStoryID == nil {
			id := story.ID
			state.CurrentStoryID = &id
		}
		return state
	})
}

// AddStories appends externally produced stories (e.g. AI proposals) in
// order.
func (s *Syncer) AddStories(ctx context.Context, stories []model.Story) error {
	if len(stories) == 0 {
		return nil
	}
	return s.mutate(ctx, func(state model.GameState) model.GameState {
		state.Stories = append(state.Stories, stories...)
		if state.CurrentStoryID == nil {
			id := state.Stories[0].ID
			state.CurrentStoryID = &id
		}
		return state
	})
}

// SelectStory switches the active story and opens a fresh round: votes
// cleared, results hidden.
func (s *Syncer) SelectStory(ctx context.Context, storyID string) error {
	return s.mutate(ctx, func(state model.GameState) model.GameState {
		state.CurrentStoryID = &storyID
		state.VotesRevealed = false
		clearVotes(&state)
		return state
	})
}

// ToggleReveal flips the room-wide reveal flag.
func (s *Syncer) ToggleReveal(ctx context.Context) error {
	return s.mutate(ctx, func(state model.GameState) model.GameState {
		state.VotesRevealed = !state.VotesRevealed
		return state
	})
}

// NewRound hides results and clears every player's vote, keeping the current
// story.
func (s *Syncer) NewRound(ctx context.Context) error {
	return s.mutate(ctx, func(state model.GameState) model.GameState {
		state.VotesRevealed = false
		clearVotes(&state)
		return state
	})
}

// AddPlayer lets the moderator enter an offline participant. The duplicate
// check mirrors the server-side join rule.
func (s *Syncer) AddPlayer(ctx context.Context, name string) error {
	s.mu.Lock()
	if s.state != nil && s.state.HasPlayerName(name) {
		s.mu.Unlock()
		return ErrNameTaken
	}
	s.mu.Unlock()

	return s.mutate(ctx, func(state model.GameState) model.GameState {
		state.Players = append(state.Players, model.Player{
			ID:   uuid.NewString(),
			Name: name,
		})
		return state
	})
}

// RemovePlayer kicks a participant. Removing yourself logs you out.
func (s *Syncer) RemovePlayer(ctx context.Context, playerID string) error {
	s.mu.Lock()
	if s.state == nil {
		s.mu.Unlock()
		return ErrNotInRoom
	}
	roomID := s.state.RoomID
	s.mu.Unlock()

	updated, err := s.api.RemovePlayer(ctx, roomID, playerID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	if !updated.HasPlayer(s.playerID) {
		s.logoutLocked()
		return nil
	}
	s.state = &updated
	return nil
}

// State returns a copy of the current local view, if any.
func (s *Syncer) State() (model.GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return model.GameState{}, false
	}
	return s.state.Clone(), true
}

func (s *Syncer) PlayerID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerID
}

func (s *Syncer) InRoom() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != nil
}

// mutate computes the next whole state from a copy of the current one,
// submits it, and adopts the server's response. On failure the local state is
// left untouched; the caller surfaces the error once.
func (s *Syncer) mutate(ctx context.Context, build func(model.GameState) model.GameState) error {
	s.mu.Lock()
	if s.state == nil {
		s.mu.Unlock()
		return ErrNotInRoom
	}
	current := s.state.Clone()
	s.mu.Unlock()

	updated, err := s.api.UpdateGame(ctx, build(current))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.state = &updated
	return nil
}

func (s *Syncer) adopt(state model.GameState, playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.state = &state
	s.playerID = playerID
}

func (s *Syncer) logoutLocked() {
	_ = s.sessions.Clear()
	s.generation++
	s.state = nil
	s.playerID = ""
}

func clearVotes(state *model.GameState) {
	for i := range state.Players {
		state.Players[i].Vote = nil
		state.Players[i].HasVoted = false
	}
}
