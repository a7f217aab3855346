// client/client.go
package client

import (
	"errors"
	"sync"

	"github.com/SecurityPuppy/plugdj-node/events"
	"github.com/SecurityPuppy/plugdj-node/logger"
	"github.com/SecurityPuppy/plugdj-node/monitor"
	"github.com/SecurityPuppy/plugdj-node/network"
	"github.com/SecurityPuppy/plugdj-node/room"
	"github.com/SecurityPuppy/plugdj-node/rpc"
	"github.com/SecurityPuppy/plugdj-node/session"
)

var (
	// ErrNotConnected is returned when a command needs the connection and
	// there is none.
	ErrNotConnected = errors.New("client: not connected")

	// ErrNotInRoom is returned when a command needs an active room
	// membership before one exists. This is a caller sequencing bug, not a
	// data problem, so it fails fast.
	ErrNotInRoom = errors.New("client: must be in a room to change its options")

	ErrInvalidVote = errors.New("client: vote must be -1 or 1")
	ErrInvalidName = errors.New("client: name must be longer than 2 characters and must not contain a url")
)

// Client drives one room session: it owns the connection read loop, the
// message dispatcher, the room state store and the RPC correlation table.
type Client struct {
	gatewayURL string
	authKey    string
	dial       func(gatewayURL, authCookie string) (network.Connection, error)

	bus   *events.Bus
	store *room.Store
	rpc   *rpc.Client
	mon   *monitor.Monitor

	mutex         sync.Mutex
	session       *session.Session
	lastHistoryID string
}

func NewClient(gatewayURL, authKey string) *Client {
	c := &Client{
		gatewayURL: gatewayURL,
		authKey:    authKey,
		dial: func(gatewayURL, authCookie string) (network.Connection, error) {
			return network.Dial(gatewayURL, authCookie)
		},
		bus: events.NewBus(),
	}
	c.store = room.NewStore(c.bus)
	c.rpc = rpc.NewClient(c)
	return c
}

// SetMonitor attaches dispatch instrumentation. Optional.
func (c *Client) SetMonitor(m *monitor.Monitor) {
	c.mon = m
}

func (c *Client) Bus() *events.Bus {
	return c.bus
}

func (c *Client) Store() *room.Store {
	return c.store
}

// SendJSON routes outbound frames through the current session. Implements
// rpc.Sender.
func (c *Client) SendJSON(v interface{}) error {
	c.mutex.Lock()
	sess := c.session
	c.mutex.Unlock()

	if sess == nil {
		return ErrNotConnected
	}
	return sess.Send(v)
}

// Connect dials the gateway and starts the read loop. When roomName is
// non-empty the room is joined as soon as the connection is up.
func (c *Client) Connect(roomName string) error {
	conn, err := c.dial(c.gatewayURL, c.authKey)
	if err != nil {
		return err
	}

	sess := session.NewSession(conn)
	sess.SetConnecting()

	c.mutex.Lock()
	c.session = sess
	c.mutex.Unlock()

	sess.SetConnected()
	logger.Log.Infow("connected to gateway", "session", sess.GetID(), "remote", conn.RemoteAddr())
	c.bus.Emit(network.EventConnected, sess.GetID())

	if roomName != "" {
		if err := c.JoinRoom(roomName, nil); err != nil {
			logger.Log.Errorw("initial room join failed", "room", roomName, "error", err)
		}
	}

	go c.readLoop(sess)
	return nil
}

// readLoop delivers frames one at a time; every mutation runs to completion
// before the next frame is read.
func (c *Client) readLoop(sess *session.Session) {
	for {
		data, err := sess.Conn.ReadMessage()
		if err != nil {
			sess.SetDisconnected()
			logger.Log.Infow("connection closed", "session", sess.GetID(), "error", err)
			c.bus.Emit(network.EventClose, err)
			return
		}
		c.handleData(data)
	}
}

func (c *Client) State() string {
	c.mutex.Lock()
	sess := c.session
	c.mutex.Unlock()

	if sess == nil {
		return "disconnected"
	}
	return sess.State()
}

func (c *Client) IsConnected() bool {
	c.mutex.Lock()
	sess := c.session
	c.mutex.Unlock()
	return sess != nil && sess.IsConnected()
}

func (c *Client) Close() error {
	c.mutex.Lock()
	sess := c.session
	c.mutex.Unlock()

	if sess == nil {
		return nil
	}
	sess.SetDisconnected()
	return sess.Close()
}
