// models/models.go
package models

import (
	"encoding/json"
)

// Envelope 服务端事件信封
type Envelope struct {
	Type   string          `json:"type"`
	Data   json.RawMessage `json:"data"`
	ID     int64           `json:"id,omitempty"`
	Status int             `json:"status,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
}

// Batch wraps several envelopes delivered in one frame. They must be
// processed strictly in array order.
type Batch struct {
	Messages []json.RawMessage `json:"messages"`
}

// User 房间成员模型
type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Fans           int    `json:"fans"`
	Facebook       string `json:"facebook"`
	Twitter        string `json:"twitter"`
	Status         int    `json:"status"`
	AvatarID       string `json:"avatarID"`
	Relationship   int    `json:"relationship"`
	Owner          bool   `json:"owner"`
	Permission     int    `json:"permission"`
	Vote           int    `json:"vote"`
	Curated        bool   `json:"curated"`
	DJPoints       int    `json:"djPoints"`
	ListenerPoints int    `json:"listenerPoints"`
	CuratorPoints  int    `json:"curatorPoints"`
}

// TotalPoints is the sum used for audience ordering ties.
func (u *User) TotalPoints() int {
	return u.ListenerPoints + u.DJPoints + u.CuratorPoints
}

// Media 当前播放的曲目
type Media struct {
	ID       string `json:"id"`
	CID      string `json:"cid"`
	Format   int    `json:"format"`
	Author   string `json:"author"`
	Title    string `json:"title"`
	Duration int    `json:"duration"`
	Image    string `json:"image"`
}

// RoomSnapshot is the full-state payload of a room.join reply. It replaces
// local state wholesale.
type RoomSnapshot struct {
	ID          string         `json:"id"`
	HistoryID   string         `json:"historyID"`
	PlaylistID  string         `json:"playlistID"`
	Owner       int64          `json:"owner"`
	Media       *Media         `json:"media"`
	CurrentDJ   int64          `json:"currentDJ"`
	Users       []User         `json:"users"`
	DJs         []User         `json:"djs"`
	WaitList    []User         `json:"waitList"`
	Staff       map[int64]int  `json:"staff"`
	Admins      []int64        `json:"admins"`
	Ambassadors []int64        `json:"ambassadors"`
	Votes       map[int64]int  `json:"votes"`
	Curates     map[int64]bool `json:"curates"`
}

// JoinReply is the full room.join RPC result.
type JoinReply struct {
	Room RoomSnapshot `json:"room"`
	User struct {
		Profile User `json:"profile"`
	} `json:"user"`
}

// Score 房间实时评分
type Score struct {
	Positive int     `json:"positive"`
	Negative int     `json:"negative"`
	Curates  int     `json:"curates"`
	Score    float64 `json:"score"`
}

// NeutralScore is the score of a room with nothing playing.
func NeutralScore() Score {
	return Score{Score: 0.5}
}

// LastPlay snapshots the turn that just ended.
type LastPlay struct {
	DJ        *User  `json:"dj"`
	Media     *Media `json:"media"`
	Score     Score  `json:"score"`
	HistoryID string `json:"historyID"`
}

// DJAdvanceResult is the normalized payload re-emitted for a djAdvance event.
// DJ and Media are nil when the booth went empty.
type DJAdvanceResult struct {
	DJ       *User     `json:"dj,omitempty"`
	Media    *Media    `json:"media,omitempty"`
	LastPlay *LastPlay `json:"lastPlay"`
}

// MediaUpdate is emitted when the current DJ's profile changes mid-play.
type MediaUpdate struct {
	DJName string `json:"djName"`
	Media  *Media `json:"media"`
}
