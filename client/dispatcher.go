// client/dispatcher.go
package client

import (
	"encoding/json"
	"html"
	"strings"
	"time"

	"github.com/SecurityPuppy/plugdj-node/logger"
	"github.com/SecurityPuppy/plugdj-node/models"
	"github.com/SecurityPuppy/plugdj-node/network"
)

// handleData unrolls batch frames and dispatches each envelope in array
// order.
func (c *Client) handleData(raw []byte) {
	var batch models.Batch
	if err := json.Unmarshal(raw, &batch); err == nil && len(batch.Messages) > 0 {
		for _, m := range batch.Messages {
			c.handleRaw(m)
		}
		return
	}
	c.handleRaw(raw)
}

func (c *Client) handleRaw(raw []byte) {
	var env models.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logger.Log.Errorw("undecodable frame", "error", err)
		return
	}

	if env.Type == network.EventRPC {
		c.handleRPCReply(&env, raw)
		return
	}
	c.handleMessage(&env)
}

// handleRPCReply resolves the pending request keyed by the reply id. Each id
// resolves at most once; a second reply is a no-op. On a non-zero status the
// callback receives the full envelope instead of the result, and no reply
// parsing happens.
func (c *Client) handleRPCReply(env *models.Envelope, raw []byte) {
	pending, exists := c.rpc.Pop(env.ID)
	if !exists {
		logger.Log.Debugw("reply for unknown or already resolved rpc id", "id", env.ID)
		return
	}
	if c.mon != nil {
		c.mon.SetRPCInFlight(c.rpc.InFlight())
	}

	reply := env.Result
	if env.Status != 0 {
		reply = raw
	}
	if pending.Callback != nil {
		pending.Callback(reply)
	}
	if env.Status == 0 {
		c.parseRPCReply(pending.Name, reply)
	}
}

// parseRPCReply handles the fixed reply handlers. room.join reseeds the
// store from the full-state snapshot and emits the two derived events.
func (c *Client) parseRPCReply(name string, reply json.RawMessage) {
	switch name {
	case "room.join":
		var jr models.JoinReply
		if err := json.Unmarshal(reply, &jr); err != nil {
			logger.Log.Errorw("malformed room.join reply", "error", err)
			return
		}
		// Self profile first so the snapshot self-heal knows the local id.
		c.store.SetSelfProfile(jr.User.Profile)
		c.store.SetData(&jr.Room)

		c.bus.Emit(network.EventRoomChanged, &jr)
		dj, _ := c.store.GetUser(jr.Room.CurrentDJ)
		c.bus.Emit(network.EventDJAdvance, &models.DJAdvanceResult{DJ: dj, Media: jr.Room.Media})
	}
}

// handleMessage routes one event to the store operation named by its type
// and re-emits the normalized event.
func (c *Client) handleMessage(env *models.Envelope) {
	start := time.Now()
	if c.mon != nil {
		c.mon.IncEvent(env.Type)
		defer func() {
			c.mon.ObserveDispatchLatency(time.Since(start))
		}()
	}

	switch env.Type {
	case "":
		logger.Log.Warnw("unknown message format", "data", string(env.Data))

	case network.EventPing:
		if _, err := c.rpc.Call("user.pong", nil, nil); err != nil {
			logger.Log.Errorw("pong failed", "error", err)
		}
		c.bus.Emit(network.EventPing, env.Data)

	case network.EventChat:
		var msg models.ChatMessage
		if !c.decode(env, &msg) {
			return
		}
		msg.Message = html.UnescapeString(msg.Message)
		if self := c.store.SelfUser(); self.Username != "" &&
			strings.Contains(msg.Message, "@"+self.Username) &&
			msg.Type != network.ChatTypeEmote {
			msg.Type = network.ChatTypeMention
		}
		c.bus.Emit(network.EventChat, &msg)

	case network.EventDJAdvance:
		var p models.DJAdvancePayload
		if !c.decode(env, &p) {
			return
		}
		c.bus.Emit(network.EventDJAdvance, c.store.DJAdvance(&p))

	case network.EventVoteUpdate:
		var p models.VoteUpdate
		if !c.decode(env, &p) {
			return
		}
		c.store.VoteUpdate(p)
		c.bus.Emit(network.EventVoteUpdate, &p)

	case network.EventVoteUpdateMulti:
		var p models.VoteUpdateMulti
		if !c.decode(env, &p) {
			return
		}
		for id, vote := range p.Votes {
			c.store.VoteUpdate(models.VoteUpdate{ID: id, Vote: vote})
		}
		c.bus.Emit(network.EventVoteUpdateMulti, &p)

	case network.EventCurateUpdate:
		var p models.CurateUpdate
		if !c.decode(env, &p) {
			return
		}
		c.store.CurateUpdate(p)
		c.bus.Emit(network.EventCurateUpdate, &p)

	case network.EventUserJoin:
		var u models.User
		if !c.decode(env, &u) {
			return
		}
		c.store.UserJoin(u)
		c.bus.Emit(network.EventUserJoin, &u)

	case network.EventUserLeave:
		var p models.UserLeave
		if !c.decode(env, &p) {
			return
		}
		c.store.UserLeave(p.ID)
		c.bus.Emit(network.EventUserLeave, &p)

	case network.EventUserUpdate:
		var u models.User
		if !c.decode(env, &u) {
			return
		}
		c.store.UserUpdate(u)
		c.bus.Emit(network.EventUserUpdate, &u)

	default:
		// Not a type this engine mutates on; still surfaced to subscribers.
		logger.Log.Debugw("unhandled event type", "type", env.Type)
		c.bus.Emit(env.Type, env.Data)
	}
}

func (c *Client) decode(env *models.Envelope, v interface{}) bool {
	if err := json.Unmarshal(env.Data, v); err != nil {
		logger.Log.Errorw("malformed event payload", "type", env.Type, "error", err)
		return false
	}
	return true
}
