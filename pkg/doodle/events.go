package doodle

import (
	"context"
	"errors"

	"github.com/doodlepoker/waspclient/pkg/codec"
	"github.com/doodlepoker/waspclient/pkg/events"
)

const (
	TopicGameEnded               = EventTopic + "gameEnded"
	TopicGameStarted             = EventTopic + "gameStarted"
	TopicPlayerJoinsNextBigBlind = EventTopic + "playerJoinsNextBigBlind"
	TopicPlayerJoinsNextHand     = EventTopic + "playerJoinsNextHand"
	TopicPlayerLeft              = EventTopic + "playerLeft"
	TopicPlayerWinsAllPots       = EventTopic + "playerWinsAllPots"
)

type GameEnded struct {
	TableNumber uint32
}

type GameStarted struct {
	PaidBigBlindTableSeatNumber   uint16
	PaidSmallBlindTableSeatNumber uint16
	TableNumber                   uint32
}

// PlayerJoined is emitted for both join kinds; the topic tells them apart.
type PlayerJoined struct {
	PlayerAgentID           codec.AgentID
	PlayersInitialChipCount uint64
	TableNumber             uint32
	TableSeatNumber         uint16
}

type PlayerJoinsNextBigBlind struct{ PlayerJoined }
type PlayerJoinsNextHand struct{ PlayerJoined }

type PlayerLeft struct {
	TableNumber     uint32
	TableSeatNumber uint16
}

type PlayerWinsAllPots struct {
	TableNumber     uint32
	TableSeatNumber uint16
	TotalPotSize    uint64
}

func decodeGameEnded(c *events.Cursor) (GameEnded, error) {
	return GameEnded{TableNumber: c.Uint32()}, c.Err()
}

func decodeGameStarted(c *events.Cursor) (GameStarted, error) {
	var e GameStarted
	e.PaidBigBlindTableSeatNumber = c.Uint16()
	e.PaidSmallBlindTableSeatNumber = c.Uint16()
	e.TableNumber = c.Uint32()
	return e, c.Err()
}

func decodePlayerJoined(c *events.Cursor) PlayerJoined {
	var e PlayerJoined
	e.PlayerAgentID = c.AgentID()
	e.PlayersInitialChipCount = c.Uint64()
	e.TableNumber = c.Uint32()
	e.TableSeatNumber = c.Uint16()
	return e
}

func decodePlayerJoinsNextBigBlind(c *events.Cursor) (PlayerJoinsNextBigBlind, error) {
	return PlayerJoinsNextBigBlind{decodePlayerJoined(c)}, c.Err()
}

func decodePlayerJoinsNextHand(c *events.Cursor) (PlayerJoinsNextHand, error) {
	return PlayerJoinsNextHand{decodePlayerJoined(c)}, c.Err()
}

func decodePlayerLeft(c *events.Cursor) (PlayerLeft, error) {
	var e PlayerLeft
	e.TableNumber = c.Uint32()
	e.TableSeatNumber = c.Uint16()
	return e, c.Err()
}

func decodePlayerWinsAllPots(c *events.Cursor) (PlayerWinsAllPots, error) {
	var e PlayerWinsAllPots
	e.TableNumber = c.Uint32()
	e.TableSeatNumber = c.Uint16()
	e.TotalPotSize = c.Uint64()
	return e, c.Err()
}

// RegisterEvents adds the decoders of every doodle topic to reg.
func RegisterEvents(reg *events.Registry) error {
	return errors.Join(
		events.Register(reg, TopicGameEnded, decodeGameEnded),
		events.Register(reg, TopicGameStarted, decodeGameStarted),
		events.Register(reg, TopicPlayerJoinsNextBigBlind, decodePlayerJoinsNextBigBlind),
		events.Register(reg, TopicPlayerJoinsNextHand, decodePlayerJoinsNextHand),
		events.Register(reg, TopicPlayerLeft, decodePlayerLeft),
		events.Register(reg, TopicPlayerWinsAllPots, decodePlayerWinsAllPots),
	)
}

func OnGameEnded(reg *events.Registry, fn func(context.Context, GameEnded)) error {
	return events.Handle(reg, TopicGameEnded, fn)
}

func OnGameStarted(reg *events.Registry, fn func(context.Context, GameStarted)) error {
	return events.Handle(reg, TopicGameStarted, fn)
}

func OnPlayerJoinsNextBigBlind(reg *events.Registry, fn func(context.Context, PlayerJoinsNextBigBlind)) error {
	return events.Handle(reg, TopicPlayerJoinsNextBigBlind, fn)
}

func OnPlayerJoinsNextHand(reg *events.Registry, fn func(context.Context, PlayerJoinsNextHand)) error {
	return events.Handle(reg, TopicPlayerJoinsNextHand, fn)
}

func OnPlayerLeft(reg *events.Registry, fn func(context.Context, PlayerLeft)) error {
	return events.Handle(reg, TopicPlayerLeft, fn)
}

func OnPlayerWinsAllPots(reg *events.Registry, fn func(context.Context, PlayerWinsAllPots)) error {
	return events.Handle(reg, TopicPlayerWinsAllPots, fn)
}
