// Package events receives contract events pushed by a wasp node and delivers
// them to typed handlers.
//
// A node publishes one text frame per event:
//
//	vmmsg <chainID> <contract hname> <topic>|<field>|<field>...
//
// ParseFrame splits a frame, a Registry maps each topic to a decoder and its
// handlers, and a Dispatcher keeps a websocket to the node open and feeds
// every frame it reads into the Registry.
//
// Usage
//
//	reg := events.NewRegistry(events.WithLogger(lg))
//	events.Register(reg, "doodle.gameEnded", decodeGameEnded)
//	events.Handle(reg, "doodle.gameEnded", func(ctx context.Context, ev GameEnded) {
//	    fmt.Println("table", ev.TableNumber, "finished")
//	})
//
//	d := events.NewDispatcher(events.DispatcherConfig{URL: url}, reg)
//	go d.Run(ctx)
package events
