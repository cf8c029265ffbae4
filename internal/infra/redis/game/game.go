package infra_redis_game

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-redis/redis"

	"github.com/SriHarshaMande/Planning-poker/internal/model"
	usecase_game "github.com/SriHarshaMande/Planning-poker/internal/usecase/game"
)

// Driver stores each room as a JSON blob under <prefix>:<code>. Rooms carry
// no TTL: only an explicit delete removes them.
type Driver struct {
	client *redis.Client
	prefix string
}

func New(client *redis.Client, prefix string) *Driver {
	return &Driver{
		client: client,
		prefix: prefix,
	}
}

func (d *Driver) Create(ctx context.Context, codeLength int, state model.GameState) (model.RoomID, error) {
	for {
		roomID := model.NewRoomID(codeLength)
		state.RoomID = roomID

		payload, err := json.Marshal(state)
		if err != nil {
			return model.EmptyRoomID, err
		}

		// SETNX keeps code generation race-free across processes.
		ok, err := d.client.SetNX(d.key(roomID), payload, 0).Result()
		if err != nil {
			return model.EmptyRoomID, err
		}
		if ok {
			return roomID, nil
		}
	}
}

func (d *Driver) Load(ctx context.Context, roomID model.RoomID) (model.GameState, error) {
	payload, err := d.client.Get(d.key(roomID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.GameState{}, usecase_game.ErrRoomNotFound
	}
	if err != nil {
		return model.GameState{}, err
	}

	var state model.GameState
	if err := json.Unmarshal(payload, &state); err != nil {
		return model.GameState{}, err
	}
	return state, nil
}

func (d *Driver) Store(ctx context.Context, roomID model.RoomID, state model.GameState) error {
	state.RoomID = roomID

	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}

	// XX: overwrite only, creation goes through Create.
	ok, err := d.client.SetXX(d.key(roomID), payload, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return usecase_game.ErrRoomNotFound
	}
	return nil
}

func (d *Driver) Delete(ctx context.Context, roomID model.RoomID) error {
	return d.client.Del(d.key(roomID)).Err()
}

func (d *Driver) key(roomID model.RoomID) string {
	if d.prefix == "" {
		return string(roomID)
	}
	return d.prefix + ":" + string(roomID)
}
