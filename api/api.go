// api/api.go
package api

import (
	"time"

	"github.com/SecurityPuppy/plugdj-node/client"
	"github.com/SecurityPuppy/plugdj-node/events"
	"github.com/SecurityPuppy/plugdj-node/models"
	"github.com/SecurityPuppy/plugdj-node/network"
	"github.com/SecurityPuppy/plugdj-node/timer"
)

// Event topics surfaced on the API's own bus.
const (
	Chat            = "chat"
	UserSkip        = "userSkip"
	UserJoin        = "userJoin"
	UserLeave       = "userLeave"
	UserFan         = "userFan"
	FriendJoin      = "friendJoin"
	FanJoin         = "fanJoin"
	VoteUpdate      = "voteUpdate"
	CurateUpdate    = "curateUpdate"
	RoomScoreUpdate = "roomScoreUpdate"
	DJAdvance       = "djAdvance"
	DJUpdate        = "djUpdate"
	VoteSkip        = "voteSkip"
	ModSkip         = "modSkip"
	WaitListUpdate  = "waitListUpdate"
)

// API is a connection-guarded facade over a client. Every getter returns a
// zero value while disconnected instead of failing.
type API struct {
	client *client.Client
	bus    *events.Bus
	timers *timer.Manager
	subs   []events.Subscription
}

func New(c *client.Client) *API {
	a := &API{
		client: c,
		bus:    events.NewBus(),
		timers: timer.NewManager(),
	}
	a.bridge()
	return a
}

// bridge forwards engine notifications onto the API's own bus under the
// public topic names.
func (a *API) bridge() {
	pairs := map[string]string{
		network.EventChat:         Chat,
		network.EventUserJoin:     UserJoin,
		network.EventUserLeave:    UserLeave,
		network.EventVoteUpdate:   VoteUpdate,
		network.EventCurateUpdate: CurateUpdate,
		network.EventDJAdvance:    DJAdvance,
		network.EventUserUpdate:   DJUpdate,
		network.EventScoreUpdate:  RoomScoreUpdate,
		UserSkip:                  UserSkip,
		VoteSkip:                  VoteSkip,
		ModSkip:                   ModSkip,
		WaitListUpdate:            WaitListUpdate,
	}
	for from, to := range pairs {
		topic := to
		a.subs = append(a.subs, a.client.Bus().Subscribe(from, func(data interface{}) {
			a.bus.Emit(topic, data)
		}))
	}
}

// Close detaches from the engine bus and stops the delayed-dispatch
// scheduler.
func (a *API) Close() {
	for _, sub := range a.subs {
		a.client.Bus().Unsubscribe(sub)
	}
	a.subs = nil
	a.timers.Stop()
}

func (a *API) GetUsers() []*models.User {
	if !a.client.IsConnected() {
		return nil
	}
	return a.client.Store().JoinedUsers()
}

func (a *API) GetUser(id int64) *models.User {
	if !a.client.IsConnected() {
		return nil
	}
	u, _ := a.client.Store().GetUser(id)
	return u
}

func (a *API) GetSelf() models.User {
	if !a.client.IsConnected() {
		return models.User{}
	}
	return a.client.Store().SelfUser()
}

func (a *API) GetAudience() []*models.User {
	if !a.client.IsConnected() {
		return nil
	}
	return a.client.Store().Audience(false)
}

func (a *API) GetDJs() []*models.User {
	if !a.client.IsConnected() {
		return nil
	}
	return a.client.Store().DJs()
}

func (a *API) GetStaff() []*models.User {
	if !a.client.IsConnected() {
		return nil
	}
	return a.client.Store().StaffList()
}

func (a *API) GetAdmins() []*models.User {
	if !a.client.IsConnected() {
		return nil
	}
	return a.client.Store().AdminList()
}

func (a *API) GetAmbassadors() []*models.User {
	if !a.client.IsConnected() {
		return nil
	}
	return a.client.Store().AmbassadorList()
}

func (a *API) GetHost() *models.User {
	if !a.client.IsConnected() {
		return nil
	}
	return a.client.Store().HostUser()
}

func (a *API) GetMedia() *models.Media {
	if !a.client.IsConnected() {
		return nil
	}
	return a.client.Store().Media()
}

func (a *API) GetWaitList() []*models.User {
	if !a.client.IsConnected() {
		return nil
	}
	return a.client.Store().WaitList()
}

func (a *API) GetRoomScore() models.Score {
	if !a.client.IsConnected() {
		return models.Score{}
	}
	return a.client.Store().Score()
}

func (a *API) SendChat(msg string) {
	if a.client.IsConnected() {
		a.client.Chat(msg)
	}
}

func (a *API) WaitListJoin() {
	if a.client.IsConnected() {
		a.client.JoinBooth(nil)
	}
}

func (a *API) WaitListLeave() {
	if a.client.IsConnected() {
		a.client.LeaveBooth(nil)
	}
}

func (a *API) ModerateForceSkip() {
	if a.client.IsConnected() {
		a.client.Skip(nil)
	}
}

func (a *API) ModerateAddDJ(userID int64) {
	if a.client.IsConnected() {
		a.client.AddDJ(userID, nil)
	}
}

func (a *API) ModerateRemoveDJ(userID int64) {
	if a.client.IsConnected() {
		a.client.RemoveDJ(userID, nil)
	}
}

func (a *API) ModerateKickUser(userID int64, reason string) {
	if a.client.IsConnected() {
		a.client.KickUser(userID, reason)
	}
}

func (a *API) ModerateBanUser(userID int64, reason string) {
	if a.client.IsConnected() {
		a.client.BanUser(userID, reason)
	}
}

func (a *API) ModerateDeleteChat(chatID string) {
	if a.client.IsConnected() {
		a.client.DeleteChat(chatID)
	}
}

func (a *API) ModerateSetRole(userID int64, level int) {
	if a.client.IsConnected() {
		a.client.SetPermissions(userID, level)
	}
}

func (a *API) AddEventListener(topic string, fn events.Handler) events.Subscription {
	return a.bus.Subscribe(topic, fn)
}

func (a *API) RemoveEventListener(sub events.Subscription) bool {
	return a.bus.Unsubscribe(sub)
}

func (a *API) DispatchEvent(topic string, data interface{}) {
	a.bus.Emit(topic, data)
}

// DelayDispatch emits on the API bus after one second, dropped if the
// connection went away in the meantime.
func (a *API) DelayDispatch(topic string, data interface{}) {
	if !a.client.IsConnected() {
		return
	}
	a.timers.AddTimer(time.Second, 0, func() {
		if a.client.IsConnected() {
			a.bus.Emit(topic, data)
		}
	})
}
