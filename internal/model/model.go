package model

import (
	"math/rand"
	"strings"
)

// RoomID is the public room code players share to join a game.
type RoomID string

const EmptyRoomID RoomID = ""

const roomIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const DefaultRoomIDLength = 6

// NewRoomID builds a random room code of the given length.
// Uniqueness is the store's problem, not this function's.
func NewRoomID(length int) RoomID {
	if length <= 0 {
		length = DefaultRoomIDLength
	}

	var builder strings.Builder
	builder.Grow(length)

	for range length {
		builder.WriteByte(roomIDAlphabet[rand.Intn(len(roomIDAlphabet))])
	}

	return RoomID(builder.String())
}

// CardValue is a single card of the estimation deck.
type CardValue string

const (
	CardZero     CardValue = "0"
	CardOne      CardValue = "1"
	CardTwo      CardValue = "2"
	CardThree    CardValue = "3"
	CardFive     CardValue = "5"
	CardEight    CardValue = "8"
	CardThirteen CardValue = "13"
	CardTwenty   CardValue = "20"
	CardForty    CardValue = "40"
	CardHundred  CardValue = "100"
	CardUnknown  CardValue = "?"
	CardCoffee   CardValue = "☕"
)

// Deck is the card set clients render. The server never validates a vote
// against it: a full-state update is stored as given.
var Deck = []CardValue{
	CardZero, CardOne, CardTwo, CardThree, CardFive, CardEight,
	CardThirteen, CardTwenty, CardForty, CardHundred, CardUnknown, CardCoffee,
}

type Player struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	IsModerator bool       `json:"isModerator"`
	Vote        *CardValue `json:"vote"`
	HasVoted    bool       `json:"hasVoted"`
}

type Story struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	// Estimate is reserved for a future consensus value. No operation
	// writes it today.
	Estimate *float64 `json:"estimate"`
}

// GameState is the root aggregate, one per room. It is replaced wholesale on
// every mutation: whoever stores last wins.
type GameState struct {
	RoomID         RoomID   `json:"roomId"`
	Players        []Player `json:"players"`
	Stories        []Story  `json:"stories"`
	CurrentStoryID *string  `json:"currentStoryId"`
	VotesRevealed  bool     `json:"votesRevealed"`
}

// HasPlayer reports whether a player with the given id is in the room.
func (g GameState) HasPlayer(playerID string) bool {
	for _, p := range g.Players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

// HasPlayerName reports whether a player with the given name is in the room.
// Names are compared case-insensitively, matching the join rule.
func (g GameState) HasPlayerName(name string) bool {
	for _, p := range g.Players {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

// Moderator returns the room's moderator. Exactly one player holds the flag,
// set at creation and never transferred.
func (g GameState) Moderator() (Player, bool) {
	for _, p := range g.Players {
		if p.IsModerator {
			return p, true
		}
	}
	return Player{}, false
}

// Clone deep-copies the state so a stored aggregate never aliases slices held
// by a caller.
func (g GameState) Clone() GameState {
	out := g

	if g.Players != nil {
		out.Players = make([]Player, len(g.Players))
		for i, p := range g.Players {
			cp := p
			if p.Vote != nil {
				vote := *p.Vote
				cp.Vote = &vote
			}
			out.Players[i] = cp
		}
	}

	if g.Stories != nil {
		out.Stories = make([]Story, len(g.Stories))
		for i, s := range g.Stories {
			cs := s
			if s.Estimate != nil {
				estimate := *s.Estimate
				cs.Estimate = &estimate
			}
			out.Stories[i] = cs
		}
	}

	if g.CurrentStoryID != nil {
		id := *g.CurrentStoryID
		out.CurrentStoryID = &id
	}

	return out
}
