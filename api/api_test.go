package api

import (
	"testing"

	"github.com/SecurityPuppy/plugdj-node/client"
	"github.com/SecurityPuppy/plugdj-node/models"
	"github.com/SecurityPuppy/plugdj-node/network"
)

func newTestAPI() (*API, *client.Client) {
	c := client.NewClient("wss://gateway.test/plug", "testkey")
	return New(c), c
}

func TestAPI_GettersGuardedWhileDisconnected(t *testing.T) {
	a, _ := newTestAPI()
	defer a.Close()

	if a.GetUsers() != nil {
		t.Error("GetUsers should be nil while disconnected")
	}
	if a.GetUser(1) != nil {
		t.Error("GetUser should be nil while disconnected")
	}
	if a.GetSelf().ID != 0 {
		t.Error("GetSelf should be zero while disconnected")
	}
	if a.GetMedia() != nil {
		t.Error("GetMedia should be nil while disconnected")
	}
	if a.GetRoomScore().Score != 0 {
		t.Error("GetRoomScore should be zero while disconnected")
	}
	if a.GetHost() != nil {
		t.Error("GetHost should be nil while disconnected")
	}
}

func TestAPI_EventListeners(t *testing.T) {
	a, _ := newTestAPI()
	defer a.Close()

	var got interface{}
	sub := a.AddEventListener(Chat, func(data interface{}) {
		got = data
	})

	a.DispatchEvent(Chat, "hello")
	if got != "hello" {
		t.Fatalf("Expected the dispatched payload, got %v", got)
	}

	if !a.RemoveEventListener(sub) {
		t.Fatal("RemoveEventListener should succeed for a live subscription")
	}
	got = nil
	a.DispatchEvent(Chat, "again")
	if got != nil {
		t.Error("A removed listener should not fire")
	}
}

func TestAPI_BridgesEngineEvents(t *testing.T) {
	a, c := newTestAPI()
	defer a.Close()

	var chat *models.ChatMessage
	a.AddEventListener(Chat, func(data interface{}) {
		chat = data.(*models.ChatMessage)
	})
	var score models.Score
	a.AddEventListener(RoomScoreUpdate, func(data interface{}) {
		score = data.(models.Score)
	})

	c.Bus().Emit(network.EventChat, &models.ChatMessage{Message: "bridged"})
	c.Bus().Emit(network.EventScoreUpdate, models.Score{Score: 0.75})

	if chat == nil || chat.Message != "bridged" {
		t.Error("Expected the chat event bridged onto the API bus")
	}
	if score.Score != 0.75 {
		t.Error("Expected the score event bridged onto the API bus")
	}
}

func TestAPI_CloseDetaches(t *testing.T) {
	a, c := newTestAPI()

	fired := false
	a.AddEventListener(Chat, func(data interface{}) {
		fired = true
	})

	a.Close()
	c.Bus().Emit(network.EventChat, &models.ChatMessage{Message: "late"})

	if fired {
		t.Error("A closed API should no longer bridge engine events")
	}
}
