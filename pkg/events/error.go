package events

import "errors"

var (
	ErrUnknownTopic     = errors.New("unknown topic")
	ErrTopicRegistered  = errors.New("topic registered with a different event type")
	ErrDialingWebsocket = errors.New("failed to dial websocket server")
	ErrReadingMessage   = errors.New("error reading message")
	ErrAlreadyRunning   = errors.New("dispatcher already running")
	ErrClosed           = errors.New("dispatcher closed")
)
