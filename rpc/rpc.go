// rpc/rpc.go
package rpc

import (
	"encoding/json"
	"sync"
)

// Sender is the outbound half of the connection.
type Sender interface {
	SendJSON(v interface{}) error
}

// Callback receives the reply payload. On a zero status this is the result
// object; on a non-zero status it is the full reply envelope, so the caller
// can inspect status and id.
type Callback func(reply json.RawMessage)

// Request is the outbound RPC envelope.
type Request struct {
	Type string        `json:"type"`
	ID   int64         `json:"id"`
	Name string        `json:"name"`
	Args []interface{} `json:"args"`
}

// Pending is one outstanding request awaiting its reply.
type Pending struct {
	Name     string
	Callback Callback
}

// Client correlates outbound requests with their eventual replies. Ids are
// monotonically increasing; each id resolves at most once. A reply that
// never arrives leaves its entry pending forever.
type Client struct {
	sender  Sender
	mutex   sync.Mutex
	nextID  int64
	pending map[int64]Pending
}

func NewClient(sender Sender) *Client {
	return &Client{
		sender:  sender,
		pending: make(map[int64]Pending),
	}
}

// Call registers the callback and sends {type:"rpc", id, name, args}. A nil
// args slice is sent as an empty array.
func (c *Client) Call(name string, args []interface{}, cb Callback) (int64, error) {
	if args == nil {
		args = []interface{}{}
	}

	c.mutex.Lock()
	c.nextID++
	id := c.nextID
	c.pending[id] = Pending{Name: name, Callback: cb}
	c.mutex.Unlock()

	if err := c.sender.SendJSON(Request{Type: "rpc", ID: id, Name: name, Args: args}); err != nil {
		c.Pop(id)
		return 0, err
	}
	return id, nil
}

// Pop removes and returns the pending entry for id. The second return is
// false if the id is unknown or was already resolved.
func (c *Client) Pop(id int64) (Pending, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	p, exists := c.pending[id]
	if exists {
		delete(c.pending, id)
	}
	return p, exists
}

// InFlight returns the number of unresolved requests.
func (c *Client) InFlight() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.pending)
}
