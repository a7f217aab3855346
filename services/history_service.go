// services/history_service.go
package services

import (
	"time"

	"github.com/SecurityPuppy/plugdj-node/events"
	"github.com/SecurityPuppy/plugdj-node/logger"
	"github.com/SecurityPuppy/plugdj-node/models"
	"github.com/SecurityPuppy/plugdj-node/network"
	"github.com/SecurityPuppy/plugdj-node/persistence"
	"github.com/SecurityPuppy/plugdj-node/room"
)

// HistoryService archives finished turns into the database and aggregates
// per-DJ stats. It observes DJ-advance notifications; the engine itself
// never touches storage.
type HistoryService struct {
	db persistence.Database
}

func NewHistoryService(db persistence.Database) *HistoryService {
	return &HistoryService{db: db}
}

// Attach subscribes the service to DJ-advance notifications on bus. Record
// failures are logged, never propagated back into dispatch.
func (s *HistoryService) Attach(bus *events.Bus, store *room.Store) events.Subscription {
	return bus.Subscribe(network.EventDJAdvance, func(data interface{}) {
		result, ok := data.(*models.DJAdvanceResult)
		if !ok {
			return
		}
		if err := s.RecordAdvance(store.RoomID(), result); err != nil {
			logger.Log.Errorw("failed to archive play", "error", err)
		}
	})
}

// RecordAdvance archives the turn that just ended. Advances with no
// lastPlay (booth was empty) record nothing.
func (s *HistoryService) RecordAdvance(roomID string, result *models.DJAdvanceResult) error {
	if result == nil || result.LastPlay == nil || result.LastPlay.Media == nil {
		return nil
	}

	rec := &models.PlayRecord{
		RoomID:      roomID,
		HistoryID:   result.LastPlay.HistoryID,
		MediaAuthor: result.LastPlay.Media.Author,
		MediaTitle:  result.LastPlay.Media.Title,
		Positive:    result.LastPlay.Score.Positive,
		Negative:    result.LastPlay.Score.Negative,
		Curates:     result.LastPlay.Score.Curates,
		Score:       result.LastPlay.Score.Score,
		PlayedAt:    time.Now(),
	}
	if dj := result.LastPlay.DJ; dj != nil {
		rec.DJID = dj.ID
		rec.DJName = dj.Username
	}

	return s.db.SavePlayRecord(rec)
}

// DJStats returns the archived aggregate for one DJ.
func (s *HistoryService) DJStats(djID int64) (*models.DJStats, error) {
	return s.db.GetDJStats(djID)
}
