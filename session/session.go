// session/session.go
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SecurityPuppy/plugdj-node/network"
	"github.com/SecurityPuppy/plugdj-node/state"
)

// Session is one connected room session: the persistent connection plus its
// lifecycle. Exactly one room exists per session.
type Session struct {
	ID          string
	Conn        network.Connection
	Room        string // latest room name requested
	ConnectedAt time.Time
	LastActive  time.Time
	machine     state.StateMachine
	mutex       sync.RWMutex
}

func NewSession(conn network.Connection) *Session {
	now := time.Now()
	return &Session{
		ID:         uuid.New().String(),
		Conn:       conn,
		LastActive: now,
		machine:    state.NewBaseStateMachine(state.NewDisconnectedState()),
	}
}

// Send writes one JSON frame and refreshes the activity timestamp.
func (s *Session) Send(v interface{}) error {
	s.mutex.Lock()
	s.LastActive = time.Now()
	s.mutex.Unlock()
	return s.Conn.SendJSON(v)
}

func (s *Session) GetID() string {
	return s.ID
}

func (s *Session) State() string {
	return s.machine.GetCurrentState().GetID()
}

func (s *Session) IsConnected() bool {
	return s.State() == state.Connected
}

func (s *Session) SetConnecting() error {
	return s.machine.ChangeState(state.NewConnectingState())
}

func (s *Session) SetConnected() error {
	s.mutex.Lock()
	s.ConnectedAt = time.Now()
	s.mutex.Unlock()
	return s.machine.ChangeState(state.NewConnectedState())
}

func (s *Session) SetDisconnected() error {
	return s.machine.ChangeState(state.NewDisconnectedState())
}

func (s *Session) Close() error {
	return s.Conn.Close()
}
