// state/state.go
package state

import (
	"errors"
	"sync"
)

// StateMachine drives the connection lifecycle. Transitions are allowed by
// default; a guard registered for a (from, to) pair can veto.
type StateMachine interface {
	ChangeState(next State) error
	GetCurrentState() State
	AddTransition(from, to State, guard func() bool) error
}

// State 连接生命周期的一个阶段
type State interface {
	OnEnter()
	OnExit()
	GetID() string
}

// ErrTransitionNotAllowed is returned when a guard vetoes a state change.
var ErrTransitionNotAllowed = errors.New("state transition not allowed")

// BaseStateMachine 基础状态机实现
type BaseStateMachine struct {
	mutex   sync.RWMutex
	current State
	guards  map[string]map[string]func() bool
}

func NewBaseStateMachine(initial State) *BaseStateMachine {
	sm := &BaseStateMachine{
		current: initial,
		guards:  make(map[string]map[string]func() bool),
	}
	initial.OnEnter()
	return sm
}

// ChangeState exits the current state and enters next. When a guard exists
// for this edge and returns false, nothing changes.
func (sm *BaseStateMachine) ChangeState(next State) error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	if guard := sm.guards[sm.current.GetID()][next.GetID()]; guard != nil && !guard() {
		return ErrTransitionNotAllowed
	}

	sm.current.OnExit()
	sm.current = next
	sm.current.OnEnter()
	return nil
}

func (sm *BaseStateMachine) GetCurrentState() State {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.current
}

// AddTransition installs a guard for the (from, to) edge. A nil guard leaves
// the edge unconditionally allowed.
func (sm *BaseStateMachine) AddTransition(from, to State, guard func() bool) error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	fromID := from.GetID()
	if sm.guards[fromID] == nil {
		sm.guards[fromID] = make(map[string]func() bool)
	}
	sm.guards[fromID][to.GetID()] = guard
	return nil
}
