// client/commands.go
package client

import (
	"strings"

	"github.com/SecurityPuppy/plugdj-node/models"
	"github.com/SecurityPuppy/plugdj-node/rpc"
)

// Pass-through command surface. These issue remote commands and carry no
// engine logic beyond the guards noted below.

func (c *Client) JoinRoom(name string, cb rpc.Callback) error {
	c.mutex.Lock()
	if c.session != nil {
		c.session.Room = name
	}
	c.mutex.Unlock()

	_, err := c.rpc.Call("room.join", []interface{}{name}, cb)
	return err
}

// Chat sends a chat line. Chat bypasses the RPC envelope.
func (c *Client) Chat(msg string) error {
	return c.SendJSON(models.ChatSend{Type: "chat", Msg: msg})
}

func (c *Client) Woot(cb rpc.Callback) error {
	return c.cast(true, cb)
}

func (c *Client) Meh(cb rpc.Callback) error {
	return c.cast(false, cb)
}

// cast votes on the current play. Repeating a cast for the same history id
// is flagged as a duplicate.
func (c *Client) cast(approve bool, cb rpc.Callback) error {
	history := c.store.HistoryID()

	c.mutex.Lock()
	duplicate := c.lastHistoryID == history
	c.lastHistoryID = history
	c.mutex.Unlock()

	_, err := c.rpc.Call("room.cast", []interface{}{approve, history, duplicate}, cb)
	return err
}

func (c *Client) Vote(vote int, cb rpc.Callback) error {
	switch vote {
	case 1:
		return c.Woot(cb)
	case -1:
		return c.Meh(cb)
	}
	return ErrInvalidVote
}

func (c *Client) JoinBooth(cb rpc.Callback) error {
	_, err := c.rpc.Call("booth.join", nil, cb)
	return err
}

func (c *Client) LeaveBooth(cb rpc.Callback) error {
	_, err := c.rpc.Call("booth.leave", nil, cb)
	return err
}

func (c *Client) ChangeName(name string, cb rpc.Callback) error {
	if len(name) <= 2 || strings.Contains(name, "http://") {
		return ErrInvalidName
	}
	_, err := c.rpc.Call("user.change_name", []interface{}{name}, cb)
	return err
}

// AddDJ puts a user in the booth; for the local user this is a booth join.
func (c *Client) AddDJ(userID int64, cb rpc.Callback) error {
	if userID == c.store.SelfUser().ID {
		return c.JoinBooth(cb)
	}
	_, err := c.rpc.Call("moderate.add_dj", []interface{}{userID}, cb)
	return err
}

func (c *Client) RemoveDJ(userID int64, cb rpc.Callback) error {
	if userID == c.store.SelfUser().ID {
		return c.LeaveBooth(cb)
	}
	_, err := c.rpc.Call("moderate.remove_dj", []interface{}{userID}, cb)
	return err
}

func (c *Client) Skip(cb rpc.Callback) error {
	_, err := c.rpc.Call("moderate.skip", []interface{}{c.store.HistoryID()}, cb)
	return err
}

func (c *Client) SetPermissions(userID int64, level int) error {
	_, err := c.rpc.Call("moderate.permissions", []interface{}{userID, level}, nil)
	return err
}

func (c *Client) DeleteChat(chatID string) error {
	_, err := c.rpc.Call("moderate.chat_delete", []interface{}{chatID}, nil)
	return err
}

// KickUser removes a user for 60 seconds. Kicking the local user is a no-op.
func (c *Client) KickUser(userID int64, reason string) error {
	if userID == c.store.SelfUser().ID {
		return nil
	}
	_, err := c.rpc.Call("moderate.kick", []interface{}{userID, reason, 60}, nil)
	return err
}

// BanUser kicks with a duration of -1, which the server treats as permanent.
func (c *Client) BanUser(userID int64, reason string) error {
	if userID == c.store.SelfUser().ID {
		return nil
	}
	_, err := c.rpc.Call("moderate.kick", []interface{}{userID, reason, -1}, nil)
	return err
}

func (c *Client) ChangeRoomInfo(name, description string, cb rpc.Callback) error {
	_, err := c.rpc.Call("moderate.update", []interface{}{models.RoomInfo{Name: name, Description: description}}, cb)
	return err
}

// ChangeRoomOptions requires an active room membership.
func (c *Client) ChangeRoomOptions(opts models.RoomOptions, cb rpc.Callback) error {
	if !c.store.Joined() {
		return ErrNotInRoom
	}
	_, err := c.rpc.Call("room.update_options", []interface{}{c.store.RoomID(), opts}, cb)
	return err
}
