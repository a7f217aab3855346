package room

import (
	"testing"

	"github.com/SecurityPuppy/plugdj-node/events"
	"github.com/SecurityPuppy/plugdj-node/models"
)

func rotationSnapshot() *models.RoomSnapshot {
	return &models.RoomSnapshot{
		ID:        "room1",
		HistoryID: "hist1",
		Owner:     2,
		Media:     &models.Media{ID: "m1"},
		CurrentDJ: 2,
		Users: []models.User{
			{ID: 1, Username: "selfuser"},
			{ID: 2, Username: "djuser"},
			{ID: 3, Username: "zoe"},
			{ID: 4, Username: "adam"},
			{ID: 5, Username: "mod"},
			{ID: 6, Username: "nextdj"},
		},
		DJs:      []models.User{{ID: 2}, {ID: 6}},
		WaitList: []models.User{{ID: 3, Username: "zoe"}},
		Staff:    map[int64]int{2: PermissionHost, 5: PermissionBouncer},
	}
}

func newRotationStore() *Store {
	store := NewStore(events.NewBus())
	store.SetSelfProfile(models.User{ID: 1, Username: "selfuser"})
	store.SetData(rotationSnapshot())
	return store
}

func TestStore_DJsQueueOrder(t *testing.T) {
	store := newRotationStore()

	djs := store.DJs()
	if len(djs) != 2 {
		t.Fatalf("Expected 2 queued DJs, got %d", len(djs))
	}
	if djs[0].ID != 2 || djs[1].ID != 6 {
		t.Errorf("Expected queue order 2,6; got %d,%d", djs[0].ID, djs[1].ID)
	}
	// Full records come from the registry, not the queue payload.
	if djs[0].Username != "djuser" {
		t.Errorf("Expected registry record for the DJ, got %q", djs[0].Username)
	}
}

func TestStore_Audience(t *testing.T) {
	store := newRotationStore()

	audience := store.Audience(true)
	if len(audience) != 4 {
		t.Fatalf("Expected 4 audience members, got %d", len(audience))
	}

	// Queue members are never audience.
	for _, u := range audience {
		if u.ID == 2 || u.ID == 6 {
			t.Errorf("Queued DJ %d should not appear in the audience", u.ID)
		}
	}

	// Local user first, then privileged, then the rest alphabetically.
	if audience[0].ID != 1 {
		t.Errorf("Expected the local user first, got id %d", audience[0].ID)
	}
	if audience[1].ID != 5 {
		t.Errorf("Expected the bouncer next, got id %d", audience[1].ID)
	}
	if audience[2].Username != "adam" || audience[3].Username != "zoe" {
		t.Errorf("Expected adam, zoe; got %s, %s", audience[2].Username, audience[3].Username)
	}
}

func TestStore_JoinedUsers(t *testing.T) {
	store := newRotationStore()

	all := store.JoinedUsers()
	if len(all) != 6 {
		t.Fatalf("Expected all 6 users, got %d", len(all))
	}
	if all[0].ID != 2 || all[1].ID != 6 {
		t.Error("Expected the DJ queue to lead the joined list")
	}
}

func TestStore_WaitList(t *testing.T) {
	store := newRotationStore()

	wl := store.WaitList()
	if len(wl) != 1 {
		t.Fatalf("Expected 1 wait list entry, got %d", len(wl))
	}
	if wl[0].ID != 3 {
		t.Errorf("Expected user 3 on the wait list, got %d", wl[0].ID)
	}
}

func TestStore_WaitListRegistersMissingUser(t *testing.T) {
	store := NewStore(events.NewBus())
	store.SetSelfProfile(models.User{ID: 1, Username: "selfuser"})

	snap := rotationSnapshot()
	snap.WaitList = []models.User{{ID: 42, Username: "straggler"}}
	store.SetData(snap)

	wl := store.WaitList()
	if len(wl) != 1 || wl[0].ID != 42 {
		t.Fatal("Expected the unknown wait list entry to be returned")
	}
	if _, exists := store.GetUser(42); !exists {
		t.Error("Expected the wait list entry to be registered")
	}
}
