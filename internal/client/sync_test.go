package client

import (
	"context"
	"errors"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	http_game "github.com/SriHarshaMande/Planning-poker/internal/delivery/http/game"
	ws_game "github.com/SriHarshaMande/Planning-poker/internal/delivery/ws/game"
	infra_memory_game "github.com/SriHarshaMande/Planning-poker/internal/infra/memory/game"
	"github.com/SriHarshaMande/Planning-poker/internal/model"
	usecase_game "github.com/SriHarshaMande/Planning-poker/internal/usecase/game"
)

// newTestServer runs the real HTTP surface over the in-memory store, so the
// syncer below is exercised against the same stack production clients see.
func newTestServer(t *testing.T) (*httptest.Server, *usecase_game.Usecase) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	usecase := usecase_game.New(
		infra_memory_game.New(),
		ws_game.NewHub(slog.Default()),
		model.DefaultRoomIDLength,
	)

	engine := gin.New()
	http_game.New(usecase).RegisterRoutes(engine.Group("/api/v1"))

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv, usecase
}

func newTestSyncer(t *testing.T) (*Syncer, *MemorySessionStore, *usecase_game.Usecase) {
	t.Helper()
	srv, usecase := newTestServer(t)
	sessions := NewMemorySessionStore()
	return NewSyncer(NewAPI(srv.URL), sessions), sessions, usecase
}

func TestCreateLogsInAsModerator(t *testing.T) {
	syncer, sessions, _ := newTestSyncer(t)
	ctx := context.Background()

	require.NoError(t, syncer.Create(ctx, "Alice"))

	state, ok := syncer.State()
	require.True(t, ok)
	moderator, ok := state.Moderator()
	require.True(t, ok)
	assert.Equal(t, moderator.ID, syncer.PlayerID())

	session, ok := sessions.Load()
	require.True(t, ok)
	assert.Equal(t, state.RoomID, session.RoomID)
	assert.Equal(t, moderator.ID, session.PlayerID)
}

func TestRestoreAdoptsValidSession(t *testing.T) {
	syncer, sessions, usecase := newTestSyncer(t)
	ctx := context.Background()

	created, err := usecase.Create(ctx, "Alice", 0)
	require.NoError(t, err)
	moderator, _ := created.Moderator()

	require.NoError(t, sessions.Save(Session{RoomID: created.RoomID, PlayerID: moderator.ID}))

	require.True(t, syncer.Restore(ctx))
	state, ok := syncer.State()
	require.True(t, ok)
	assert.Equal(t, created, state)
	assert.Equal(t, moderator.ID, syncer.PlayerID())
}

func TestRestoreClearsSessionWhenRoomGone(t *testing.T) {
	syncer, sessions, _ := newTestSyncer(t)
	ctx := context.Background()

	require.NoError(t, sessions.Save(Session{RoomID: "NOSUCH", PlayerID: "p-1"}))

	assert.False(t, syncer.Restore(ctx))
	assert.False(t, syncer.InRoom())
	_, ok := sessions.Load()
	assert.False(t, ok)
}

func TestRestoreClearsSessionWhenPlayerGone(t *testing.T) {
	syncer, sessions, usecase := newTestSyncer(t)
	ctx := context.Background()

	created, err := usecase.Create(ctx, "Alice", 0)
	require.NoError(t, err)

	require.NoError(t, sessions.Save(Session{RoomID: created.RoomID, PlayerID: "p-ghost"}))

	assert.False(t, syncer.Restore(ctx))
	assert.False(t, syncer.InRoom())
	_, ok := sessions.Load()
	assert.False(t, ok)
}

func TestRefreshAdoptsRemoteChanges(t *testing.T) {
	syncer, _, usecase := newTestSyncer(t)
	ctx := context.Background()

	require.NoError(t, syncer.Create(ctx, "Alice"))
	state, _ := syncer.State()

	_, _, err := usecase.Join(ctx, state.RoomID, "Bob")
	require.NoError(t, err)

	syncer.Refresh(ctx)

	state, ok := syncer.State()
	require.True(t, ok)
	assert.Len(t, state.Players, 2)
}

func TestRefreshLogsOutWhenRoomDeleted(t *testing.T) {
	syncer, sessions, usecase := newTestSyncer(t)
	ctx := context.Background()

	require.NoError(t, syncer.Create(ctx, "Alice"))
	state, _ := syncer.State()

	require.NoError(t, usecase.Delete(ctx, state.RoomID))
	syncer.Refresh(ctx)

	assert.False(t, syncer.InRoom())
	_, ok := sessions.Load()
	assert.False(t, ok)
}

func TestRefreshLogsOutWhenSelfRemoved(t *testing.T) {
	syncer, sessions, usecase := newTestSyncer(t)
	ctx := context.Background()

	require.NoError(t, syncer.Create(ctx, "Alice"))
	state, _ := syncer.State()

	_, err := usecase.RemovePlayer(ctx, state.RoomID, syncer.PlayerID())
	require.NoError(t, err)
	syncer.Refresh(ctx)

	assert.False(t, syncer.InRoom())
	_, ok := sessions.Load()
	assert.False(t, ok)
}

// failingAPI simulates an unreachable server.
type failingAPI struct{}

var errTransport = errors.New("connection refused")

func (failingAPI) CreateGame(context.Context, string, int) (model.GameState, error) {
	return model.GameState{}, errTransport
}

func (failingAPI) GetGame(context.Context, model.RoomID) (model.GameState, error) {
	return model.GameState{}, errTransport
}

func (failingAPI) JoinGame(context.Context, model.RoomID, string) (model.GameState, string, error) {
	return model.GameState{}, "", errTransport
}

func (failingAPI) UpdateGame(context.Context, model.GameState) (model.GameState, error) {
	return model.GameState{}, errTransport
}

func (failingAPI) RemovePlayer(context.Context, model.RoomID, string) (model.GameState, error) {
	return model.GameState{}, errTransport
}

func TestRefreshKeepsStateOnTransportError(t *testing.T) {
	sessions := NewMemorySessionStore()
	syncer := NewSyncer(failingAPI{}, sessions)
	ctx := context.Background()

	state := model.GameState{
		RoomID:  "A1B2C3",
		Players: []model.Player{{ID: "p-1", Name: "Alice", IsModerator: true}},
	}
	syncer.adopt(state, "p-1")

	syncer.Refresh(ctx)

	got, ok := syncer.State()
	require.True(t, ok)
	assert.Equal(t, state, got)
}

func TestMutationFailureLeavesStateUntouched(t *testing.T) {
	sessions := NewMemorySessionStore()
	syncer := NewSyncer(failingAPI{}, sessions)
	ctx := context.Background()

	state := model.GameState{
		RoomID:  "A1B2C3",
		Players: []model.Player{{ID: "p-1", Name: "Alice", IsModerator: true}},
	}
	syncer.adopt(state, "p-1")

	require.Error(t, syncer.Vote(ctx, model.CardFive))

	got, ok := syncer.State()
	require.True(t, ok)
	assert.Equal(t, state, got)
}

// A poll response that raced with a mutation must never overwrite the
// mutation's (authoritative) result.
func TestStalePollResponseIsDiscarded(t *testing.T) {
	syncer, _, _ := newTestSyncer(t)
	ctx := context.Background()

	require.NoError(t, syncer.Create(ctx, "Alice"))
	before, _ := syncer.State()

	// Snapshot what an in-flight poll would have seen.
	staleGeneration := syncer.generation
	stale := before.Clone()

	// A mutation lands while that poll is in flight.
	require.NoError(t, syncer.AddStory(ctx, "Login flow"))
	after, _ := syncer.State()
	require.Len(t, after.Stories, 1)

	// The slow poll response arrives afterwards and must be dropped.
	syncer.apply(before.RoomID, syncer.PlayerID(), staleGeneration, stale, nil)

	got, _ := syncer.State()
	assert.Equal(t, after, got)
}

func TestEstimationScenario(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx := context.Background()

	alice := NewSyncer(NewAPI(srv.URL), NewMemorySessionStore())
	bob := NewSyncer(NewAPI(srv.URL), NewMemorySessionStore())

	require.NoError(t, alice.Create(ctx, "Alice"))
	room, _ := alice.State()

	require.NoError(t, bob.Join(ctx, room.RoomID, "Bob"))

	require.NoError(t, alice.AddStory(ctx, "Login flow"))

	bob.Refresh(ctx)
	require.NoError(t, bob.Vote(ctx, model.CardFive))

	// Alice picks up Bob's vote before revealing, as the polling UI would.
	alice.Refresh(ctx)
	require.NoError(t, alice.ToggleReveal(ctx))

	bob.Refresh(ctx)
	state, ok := bob.State()
	require.True(t, ok)
	assert.True(t, state.VotesRevealed)
	require.NotNil(t, state.CurrentStoryID)
	assert.Equal(t, "Login flow", state.Stories[0].Title)

	for _, p := range state.Players {
		switch p.Name {
		case "Alice":
			assert.Nil(t, p.Vote)
			assert.False(t, p.HasVoted)
		case "Bob":
			require.NotNil(t, p.Vote)
			assert.Equal(t, model.CardFive, *p.Vote)
			assert.True(t, p.HasVoted)
		}
	}

	require.NoError(t, alice.NewRound(ctx))

	bob.Refresh(ctx)
	state, _ = bob.State()
	assert.False(t, state.VotesRevealed)
	for _, p := range state.Players {
		assert.Nil(t, p.Vote)
		assert.False(t, p.HasVoted)
	}
}

func TestDoubleJoinScenario(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx := context.Background()

	alice := NewSyncer(NewAPI(srv.URL), NewMemorySessionStore())
	require.NoError(t, alice.Create(ctx, "Alice"))
	room, _ := alice.State()

	bob := NewSyncer(NewAPI(srv.URL), NewMemorySessionStore())
	require.NoError(t, bob.Join(ctx, room.RoomID, "Bob"))

	imposter := NewSyncer(NewAPI(srv.URL), NewMemorySessionStore())
	err := imposter.Join(ctx, room.RoomID, "Bob")
	assert.ErrorIs(t, err, ErrNameTaken)
	assert.False(t, imposter.InRoom())

	alice.Refresh(ctx)
	state, _ := alice.State()
	assert.Len(t, state.Players, 2)
}

func TestAddPlayerDuplicateCheck(t *testing.T) {
	syncer, _, _ := newTestSyncer(t)
	ctx := context.Background()

	require.NoError(t, syncer.Create(ctx, "Alice"))

	assert.ErrorIs(t, syncer.AddPlayer(ctx, "alice"), ErrNameTaken)

	require.NoError(t, syncer.AddPlayer(ctx, "Carol"))
	state, _ := syncer.State()
	assert.Len(t, state.Players, 2)
}

func TestSelectStoryStartsFreshRound(t *testing.T) {
	syncer, _, _ := newTestSyncer(t)
	ctx := context.Background()

	require.NoError(t, syncer.Create(ctx, "Alice"))
	require.NoError(t, syncer.AddStory(ctx, "Login flow"))
	require.NoError(t, syncer.AddStory(ctx, "Signup flow"))
	require.NoError(t, syncer.Vote(ctx, model.CardEight))
	require.NoError(t, syncer.ToggleReveal(ctx))

	state, _ := syncer.State()
	secondStory := state.Stories[1].ID

	require.NoError(t, syncer.SelectStory(ctx, secondStory))

	state, _ = syncer.State()
	require.NotNil(t, state.CurrentStoryID)
	assert.Equal(t, secondStory, *state.CurrentStoryID)
	assert.False(t, state.VotesRevealed)
	for _, p := range state.Players {
		assert.Nil(t, p.Vote)
		assert.False(t, p.HasVoted)
	}
}

func TestFirstStoryBecomesCurrent(t *testing.T) {
	syncer, _, _ := newTestSyncer(t)
	ctx := context.Background()

	require.NoError(t, syncer.Create(ctx, "Alice"))
	require.NoError(t, syncer.AddStory(ctx, "Login flow"))

	state, _ := syncer.State()
	require.NotNil(t, state.CurrentStoryID)
	assert.Equal(t, state.Stories[0].ID, *state.CurrentStoryID)

	require.NoError(t, syncer.AddStory(ctx, "Signup flow"))
	state, _ = syncer.State()
	assert.Equal(t, state.Stories[0].ID, *state.CurrentStoryID)
}
