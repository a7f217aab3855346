package network

// Inbound event type discriminators.
const (
	EventRPC             = "rpc"
	EventPing            = "ping"
	EventChat            = "chat"
	EventDJAdvance       = "djAdvance"
	EventVoteUpdate      = "voteUpdate"
	EventVoteUpdateMulti = "voteUpdateMulti"
	EventCurateUpdate    = "curateUpdate"
	EventUserJoin        = "userJoin"
	EventUserLeave       = "userLeave"
	EventUserUpdate      = "userUpdate"
)

// Locally derived notification topics.
const (
	EventConnected   = "connected"
	EventClose       = "close"
	EventRoomChanged = "roomChanged"
	EventMediaUpdate = "mediaUpdate"
	EventScoreUpdate = "scoreUpdate"
)

// Chat subtypes. A chat mentioning the local user is rewritten from its
// original subtype to ChatTypeMention (except emotes).
const (
	ChatTypeEmote   = "emote"
	ChatTypeMention = "mention"
)
