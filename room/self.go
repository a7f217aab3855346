// room/self.go
package room

import (
	"github.com/SecurityPuppy/plugdj-node/models"
)

// Self holds the local user's own profile. It is seeded from the room.join
// reply and refreshed whenever an update event names the local id.
type Self struct {
	user models.User
}

func (s *Self) Set(u models.User) {
	s.user = u
}

func (s *Self) User() models.User {
	return s.user
}

func (s *Self) ID() int64 {
	return s.user.ID
}

func (s *Self) Username() string {
	return s.user.Username
}
