// models/records.go
package models

import (
	"time"
)

// PlayRecord 一回合的播放归档记录
type PlayRecord struct {
	RoomID      string    `json:"room_id"`
	HistoryID   string    `json:"history_id"`
	DJID        int64     `json:"dj_id"`
	DJName      string    `json:"dj_name"`
	MediaAuthor string    `json:"media_author"`
	MediaTitle  string    `json:"media_title"`
	Positive    int       `json:"positive"`
	Negative    int       `json:"negative"`
	Curates     int       `json:"curates"`
	Score       float64   `json:"score"`
	PlayedAt    time.Time `json:"played_at"`
}

// DJStats DJ统计信息
type DJStats struct {
	TotalPlays   int     `json:"total_plays"`
	TotalWoots   int     `json:"total_woots"`
	TotalMehs    int     `json:"total_mehs"`
	TotalCurates int     `json:"total_curates"`
	AverageScore float64 `json:"average_score"`
}
