package infra_postgres_game

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/SriHarshaMande/Planning-poker/internal/model"
	usecase_game "github.com/SriHarshaMande/Planning-poker/internal/usecase/game"
)

// Driver is the durable room store: one row per room, the whole aggregate as
// a jsonb column. Same contract as the in-memory map, so the service layer
// does not know the difference.
type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

const schema = `
	CREATE TABLE IF NOT EXISTS games (
		room_code TEXT PRIMARY KEY,
		state     JSONB NOT NULL
	)
`

func (d *Driver) EnsureSchema(ctx context.Context) error {
	_, err := d.db.ExecContext(ctx, schema)
	return err
}

type gameDTO struct {
	RoomCode string `db:"room_code"`
	State    []byte `db:"state"`
}

func (d *Driver) Create(ctx context.Context, codeLength int, state model.GameState) (model.RoomID, error) {
	query := `
		INSERT INTO games (room_code, state)
		VALUES (:room_code, :state)
	`

	for {
		roomID := model.NewRoomID(codeLength)
		state.RoomID = roomID

		payload, err := json.Marshal(state)
		if err != nil {
			return model.EmptyRoomID, err
		}

		_, err = d.db.NamedExecContext(ctx, query, gameDTO{
			RoomCode: string(roomID),
			State:    payload,
		})
		if err != nil {
			if strings.Contains(err.Error(), "unique constraint") ||
				strings.Contains(err.Error(), "duplicate key") {
				continue
			}
			return model.EmptyRoomID, err
		}
		return roomID, nil
	}
}

func (d *Driver) Load(ctx context.Context, roomID model.RoomID) (model.GameState, error) {
	var dto gameDTO

	query := `
		SELECT room_code, state
		FROM games
		WHERE room_code = $1
	`

	if err := d.db.GetContext(ctx, &dto, query, string(roomID)); err != nil {
		if err == sql.ErrNoRows {
			return model.GameState{}, usecase_game.ErrRoomNotFound
		}
		return model.GameState{}, err
	}

	var state model.GameState
	if err := json.Unmarshal(dto.State, &state); err != nil {
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

	query := `
		UPDATE games
		SET state = $2
		WHERE room_code = $1
	`

	res, err := d.db.ExecContext(ctx, query, string(roomID), payload)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return usecase_game.ErrRoomNotFound
	}
	return nil
}

func (d *Driver) Delete(ctx context.Context, roomID model.RoomID) error {
	query := `
		DELETE FROM games
		WHERE room_code = $1
	`

	_, err := d.db.ExecContext(ctx, query, string(roomID))
	return err
}
