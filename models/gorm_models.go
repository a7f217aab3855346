// models/gorm_models.go
package models

import (
	"gorm.io/gorm"
)

// GormPlayRecord 播放记录模型
type GormPlayRecord struct {
	gorm.Model
	RoomID      string  `gorm:"index;not null"`
	HistoryID   string  `gorm:"index;not null"`
	DJID        int64   `gorm:"index;not null"`
	DJName      string  `gorm:"not null"`
	MediaAuthor string
	MediaTitle  string
	Positive    int     `gorm:"default:0"`
	Negative    int     `gorm:"default:0"`
	Curates     int     `gorm:"default:0"`
	Score       float64 `gorm:"default:0.5"`
}
