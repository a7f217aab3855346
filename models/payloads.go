// models/payloads.go
package models

// Per-event payload schemas. The dispatcher decodes into these before any
// store mutation; a payload that does not decode is a protocol error and is
// dropped there.

// ChatMessage 聊天消息
type ChatMessage struct {
	Message  string `json:"message"`
	Type     string `json:"type,omitempty"`
	From     string `json:"from,omitempty"`
	FromID   int64  `json:"fromID,omitempty"`
	ChatID   string `json:"chatID,omitempty"`
	Language string `json:"language,omitempty"`
}

// ChatSend is the outbound chat frame. It bypasses the RPC envelope.
type ChatSend struct {
	Type string `json:"type"`
	Msg  string `json:"msg"`
}

// VoteUpdate carries one listener's vote for the current turn.
type VoteUpdate struct {
	ID   int64 `json:"id"`
	Vote int   `json:"vote"`
}

// VoteUpdateMulti carries a map of votes, applied one by one.
type VoteUpdateMulti struct {
	Votes map[int64]int `json:"votes"`
}

// CurateUpdate marks a curation. Curated defaults to true when omitted.
type CurateUpdate struct {
	ID      int64 `json:"id"`
	Curated *bool `json:"curated"`
}

// UserLeave 用户离开
type UserLeave struct {
	ID int64 `json:"id"`
}

// DJAdvancePayload starts a new rotation turn.
type DJAdvancePayload struct {
	Media      *Media `json:"media"`
	CurrentDJ  int64  `json:"currentDJ"`
	PlaylistID string `json:"playlistID"`
	HistoryID  string `json:"historyID"`
	Earn       bool   `json:"earn"`
}

// RoomOptions mirrors the room.update_options argument shape.
type RoomOptions struct {
	BoothLocked     bool `json:"boothLocked"`
	WaitListEnabled bool `json:"waitListEnabled"`
	MaxPlays        int  `json:"maxPlays"`
	MaxDJs          int  `json:"maxDJs"`
}

// RoomInfo mirrors the moderate.update argument shape.
type RoomInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
