// state/conn_state.go
package state

import (
	"github.com/SecurityPuppy/plugdj-node/logger"
)

// Connection lifecycle state ids.
const (
	Disconnected = "disconnected"
	Connecting   = "connecting"
	Connected    = "connected"
)

// ConnState is one phase of the connection lifecycle.
type ConnState struct {
	ID string
}

func (s *ConnState) GetID() string {
	return s.ID
}

func (s *ConnState) OnEnter() {
	logger.Log.Debugw("connection state entered", "state", s.ID)
}

func (s *ConnState) OnExit() {}

func NewDisconnectedState() *ConnState {
	return &ConnState{ID: Disconnected}
}

func NewConnectingState() *ConnState {
	return &ConnState{ID: Connecting}
}

func NewConnectedState() *ConnState {
	return &ConnState{ID: Connected}
}
