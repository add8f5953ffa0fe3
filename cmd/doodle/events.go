package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/doodlepoker/waspclient/pkg/doodle"
	"github.com/doodlepoker/waspclient/pkg/events"
)

// printEvents writes every doodle event to out as it arrives.
func printEvents(reg *events.Registry, out io.Writer) error {
	return errors.Join(
		doodle.OnGameEnded(reg, func(_ context.Context, e doodle.GameEnded) {
			fmt.Fprintf(out, "[event] game ended at table %d\n", e.TableNumber)
		}),
		doodle.OnGameStarted(reg, func(_ context.Context, e doodle.GameStarted) {
			fmt.Fprintf(out, "[event] game started at table %d, small blind seat %d, big blind seat %d\n",
				e.TableNumber, e.PaidSmallBlindTableSeatNumber, e.PaidBigBlindTableSeatNumber)
		}),
		doodle.OnPlayerJoinsNextHand(reg, func(_ context.Context, e doodle.PlayerJoinsNextHand) {
			fmt.Fprintf(out, "[event] %s joins the next hand at table %d seat %d with %d chips\n",
				e.PlayerAgentID, e.TableNumber, e.TableSeatNumber, e.PlayersInitialChipCount)
		}),
		doodle.OnPlayerJoinsNextBigBlind(reg, func(_ context.Context, e doodle.PlayerJoinsNextBigBlind) {
			fmt.Fprintf(out, "[event] %s joins at the next big blind at table %d seat %d with %d chips\n",
				e.PlayerAgentID, e.TableNumber, e.TableSeatNumber, e.PlayersInitialChipCount)
		}),
		doodle.OnPlayerLeft(reg, func(_ context.Context, e doodle.PlayerLeft) {
			fmt.Fprintf(out, "[event] seat %d left table %d\n", e.TableSeatNumber, e.TableNumber)
		}),
		doodle.OnPlayerWinsAllPots(reg, func(_ context.Context, e doodle.PlayerWinsAllPots) {
			fmt.Fprintf(out, "[event] seat %d wins %d chips at table %d\n", e.TableSeatNumber, e.TotalPotSize, e.TableNumber)
		}),
	)
}
