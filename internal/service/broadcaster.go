package service

import "neurodiverse/internal/model"

// Broadcaster interface for WebSocket event pushes (avoids import cycle)
type Broadcaster interface {
	Broadcast(event model.EventType, payload interface{})
}

type noopBroadcaster struct{}

func (noopBroadcaster) Broadcast(event model.EventType, payload interface{}) {}
