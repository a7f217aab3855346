package client

import (
	"testing"

	"github.com/SecurityPuppy/plugdj-node/models"
	"github.com/SecurityPuppy/plugdj-node/rpc"
)

func lastRequest(t *testing.T, conn *MockConnection) rpc.Request {
	t.Helper()
	if len(conn.sent) == 0 {
		t.Fatal("Expected an outbound frame")
	}
	req, ok := conn.sent[len(conn.sent)-1].(rpc.Request)
	if !ok {
		t.Fatalf("Expected an rpc request, got %T", conn.sent[len(conn.sent)-1])
	}
	return req
}

func TestClient_Chat(t *testing.T) {
	c, conn := newTestClient()

	if err := c.Chat("hello room"); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	// Chat bypasses the rpc envelope.
	frame, ok := conn.sent[0].(models.ChatSend)
	if !ok {
		t.Fatalf("Expected a chat frame, got %T", conn.sent[0])
	}
	if frame.Type != "chat" || frame.Msg != "hello room" {
		t.Errorf("Unexpected chat frame: %+v", frame)
	}
}

func TestClient_Vote(t *testing.T) {
	c, conn := newTestClient()
	joinTestRoom(t, c)

	if err := c.Vote(1, nil); err != nil {
		t.Fatalf("Vote(1) failed: %v", err)
	}
	req := lastRequest(t, conn)
	if req.Name != "room.cast" {
		t.Fatalf("Expected room.cast, got %s", req.Name)
	}
	if req.Args[0] != true || req.Args[1] != "hist1" {
		t.Errorf("Unexpected cast args: %v", req.Args)
	}

	if err := c.Vote(0, nil); err != ErrInvalidVote {
		t.Errorf("Expected ErrInvalidVote for 0, got %v", err)
	}
	if err := c.Vote(2, nil); err != ErrInvalidVote {
		t.Errorf("Expected ErrInvalidVote for 2, got %v", err)
	}
}

func TestClient_CastFlagsDuplicate(t *testing.T) {
	c, conn := newTestClient()
	joinTestRoom(t, c)

	if err := c.Woot(nil); err != nil {
		t.Fatalf("Woot failed: %v", err)
	}
	if req := lastRequest(t, conn); req.Args[2] != false {
		t.Errorf("First cast should not be flagged duplicate: %v", req.Args)
	}

	if err := c.Meh(nil); err != nil {
		t.Fatalf("Meh failed: %v", err)
	}
	if req := lastRequest(t, conn); req.Args[2] != true {
		t.Errorf("A second cast on the same play should be flagged duplicate: %v", req.Args)
	}
}

func TestClient_ChangeNameGuards(t *testing.T) {
	c, _ := newTestClient()

	if err := c.ChangeName("ab", nil); err != ErrInvalidName {
		t.Errorf("Expected ErrInvalidName for a short name, got %v", err)
	}
	if err := c.ChangeName("http://spam.example", nil); err != ErrInvalidName {
		t.Errorf("Expected ErrInvalidName for a url, got %v", err)
	}
	if err := c.ChangeName("decent_name", nil); err != nil {
		t.Errorf("Expected a valid name to pass, got %v", err)
	}
}

func TestClient_AddDJSelfJoinsBooth(t *testing.T) {
	c, conn := newTestClient()
	joinTestRoom(t, c)

	if err := c.AddDJ(1, nil); err != nil {
		t.Fatalf("AddDJ failed: %v", err)
	}
	if req := lastRequest(t, conn); req.Name != "booth.join" {
		t.Errorf("Adding the local user should join the booth, got %s", req.Name)
	}

	if err := c.AddDJ(3, nil); err != nil {
		t.Fatalf("AddDJ failed: %v", err)
	}
	if req := lastRequest(t, conn); req.Name != "moderate.add_dj" {
		t.Errorf("Adding another user should moderate, got %s", req.Name)
	}
}

func TestClient_KickSelfIsNoop(t *testing.T) {
	c, conn := newTestClient()
	joinTestRoom(t, c)

	before := len(conn.sent)
	if err := c.KickUser(1, "testing"); err != nil {
		t.Fatalf("KickUser failed: %v", err)
	}
	if len(conn.sent) != before {
		t.Error("Kicking the local user should send nothing")
	}

	if err := c.KickUser(3, "testing"); err != nil {
		t.Fatalf("KickUser failed: %v", err)
	}
	req := lastRequest(t, conn)
	if req.Name != "moderate.kick" {
		t.Fatalf("Expected moderate.kick, got %s", req.Name)
	}
	if req.Args[2] != 60 {
		t.Errorf("Expected a 60 second kick, got %v", req.Args[2])
	}
}

func TestClient_BanUsesPermanentDuration(t *testing.T) {
	c, conn := newTestClient()
	joinTestRoom(t, c)

	if err := c.BanUser(3, "spam"); err != nil {
		t.Fatalf("BanUser failed: %v", err)
	}
	req := lastRequest(t, conn)
	if req.Name != "moderate.kick" {
		t.Fatalf("Expected moderate.kick, got %s", req.Name)
	}
	if req.Args[2] != -1 {
		t.Errorf("Expected duration -1, got %v", req.Args[2])
	}
}

func TestClient_ChangeRoomOptionsRequiresRoom(t *testing.T) {
	c, conn := newTestClient()

	err := c.ChangeRoomOptions(models.RoomOptions{WaitListEnabled: true}, nil)
	if err != ErrNotInRoom {
		t.Fatalf("Expected ErrNotInRoom, got %v", err)
	}

	joinTestRoom(t, c)
	if err := c.ChangeRoomOptions(models.RoomOptions{WaitListEnabled: true}, nil); err != nil {
		t.Fatalf("ChangeRoomOptions failed: %v", err)
	}
	req := lastRequest(t, conn)
	if req.Name != "room.update_options" {
		t.Errorf("Expected room.update_options, got %s", req.Name)
	}
	if req.Args[0] != "room1" {
		t.Errorf("Expected the room id as the first arg, got %v", req.Args[0])
	}
}

func TestClient_SendJSONWithoutSession(t *testing.T) {
	c := NewClient("wss://gateway.test/plug", "testkey")

	if err := c.Chat("nobody home"); err != ErrNotConnected {
		t.Errorf("Expected ErrNotConnected, got %v", err)
	}
}
