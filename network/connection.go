// network/connection.go
package network

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// ErrMissingAuthCookie is returned when a dial is attempted without the
// authentication cookie the gateway requires.
var ErrMissingAuthCookie = errors.New("network: authentication cookie is required to connect")

type Connection interface {
	SendJSON(v interface{}) error
	ReadMessage() ([]byte, error)
	Close() error
	RemoteAddr() net.Addr
}

// WSConnection is a JSON-over-websocket connection to the plug gateway.
type WSConnection struct {
	conn      *websocket.Conn
	sendMutex sync.Mutex
}

// Dial opens the persistent connection, injecting the auth cookie into the
// handshake as usr="<key>".
func Dial(gatewayURL, authCookie string) (*WSConnection, error) {
	if authCookie == "" {
		return nil, ErrMissingAuthCookie
	}

	header := http.Header{}
	header.Set("Cookie", fmt.Sprintf("usr=%q", authCookie))

	conn, _, err := websocket.DefaultDialer.Dial(gatewayURL, header)
	if err != nil {
		return nil, err
	}
	return NewWSConnection(conn), nil
}

func NewWSConnection(conn *websocket.Conn) *WSConnection {
	return &WSConnection{conn: conn}
}

func (c *WSConnection) SendJSON(v interface{}) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()
	return c.conn.WriteJSON(v)
}

// ReadMessage returns the next raw frame. The frame is either a single
// envelope or a batch wrapper; framing is decoded by the dispatcher.
func (c *WSConnection) ReadMessage() ([]byte, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *WSConnection) Close() error {
	return c.conn.Close()
}

func (c *WSConnection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}
