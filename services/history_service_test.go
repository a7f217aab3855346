package services

import (
	"testing"

	"github.com/SecurityPuppy/plugdj-node/events"
	"github.com/SecurityPuppy/plugdj-node/models"
	"github.com/SecurityPuppy/plugdj-node/network"
	"github.com/SecurityPuppy/plugdj-node/persistence"
	"github.com/SecurityPuppy/plugdj-node/room"
)

// MockDatabase is a test double for the persistence.Database interface.
type MockDatabase struct {
	saved []*models.PlayRecord
	stats *models.DJStats
}

func (m *MockDatabase) SavePlayRecord(rec *models.PlayRecord) error {
	m.saved = append(m.saved, rec)
	return nil
}

func (m *MockDatabase) GetDJStats(djID int64) (*models.DJStats, error) {
	if m.stats == nil {
		return nil, persistence.ErrRecordNotFound
	}
	return m.stats, nil
}

func (m *MockDatabase) Close() error { return nil }

func TestHistoryService_RecordAdvance(t *testing.T) {
	db := &MockDatabase{}
	svc := NewHistoryService(db)

	err := svc.RecordAdvance("room1", &models.DJAdvanceResult{
		LastPlay: &models.LastPlay{
			DJ:        &models.User{ID: 2, Username: "djuser"},
			Media:     &models.Media{Author: "Daft Punk", Title: "Around the World"},
			Score:     models.Score{Positive: 3, Negative: 1, Curates: 2, Score: 0.75},
			HistoryID: "hist1",
		},
	})
	if err != nil {
		t.Fatalf("RecordAdvance failed: %v", err)
	}

	if len(db.saved) != 1 {
		t.Fatalf("Expected 1 saved record, got %d", len(db.saved))
	}
	rec := db.saved[0]
	if rec.RoomID != "room1" || rec.HistoryID != "hist1" {
		t.Errorf("Unexpected room/history ids: %s/%s", rec.RoomID, rec.HistoryID)
	}
	if rec.DJID != 2 || rec.DJName != "djuser" {
		t.Errorf("Unexpected DJ fields: %d/%s", rec.DJID, rec.DJName)
	}
	if rec.MediaTitle != "Around the World" {
		t.Errorf("Unexpected media title: %s", rec.MediaTitle)
	}
	if rec.Score != 0.75 || rec.Positive != 3 || rec.Negative != 1 || rec.Curates != 2 {
		t.Error("Score fields were not carried over")
	}
	if rec.PlayedAt.IsZero() {
		t.Error("Expected a played-at timestamp")
	}
}

func TestHistoryService_SkipsEmptyTurns(t *testing.T) {
	db := &MockDatabase{}
	svc := NewHistoryService(db)

	if err := svc.RecordAdvance("room1", nil); err != nil {
		t.Fatalf("nil result should be a no-op, got: %v", err)
	}
	if err := svc.RecordAdvance("room1", &models.DJAdvanceResult{}); err != nil {
		t.Fatalf("missing last play should be a no-op, got: %v", err)
	}

	if len(db.saved) != 0 {
		t.Errorf("Expected nothing archived, got %d records", len(db.saved))
	}
}

func TestHistoryService_Attach(t *testing.T) {
	db := &MockDatabase{}
	svc := NewHistoryService(db)

	bus := events.NewBus()
	store := room.NewStore(bus)
	svc.Attach(bus, store)

	bus.Emit(network.EventDJAdvance, &models.DJAdvanceResult{
		LastPlay: &models.LastPlay{
			DJ:        &models.User{ID: 2},
			Media:     &models.Media{Title: "track"},
			HistoryID: "hist1",
		},
	})

	if len(db.saved) != 1 {
		t.Fatalf("Expected the advance to be archived, got %d records", len(db.saved))
	}

	// A payload of the wrong shape is ignored.
	bus.Emit(network.EventDJAdvance, "garbage")
	if len(db.saved) != 1 {
		t.Error("Expected a malformed payload to be ignored")
	}
}
