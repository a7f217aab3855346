// room/rotation.go
package room

import (
	"github.com/SecurityPuppy/plugdj-node/logger"
	"github.com/SecurityPuppy/plugdj-node/models"
)

// Rotation/queue views over the registry plus room metadata. A user in the
// DJ queue is never classified as audience.

// DJs returns the queue in order. A queued id missing from the registry is
// logged and skipped.
func (s *Store) DJs() []*models.User {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.djsLocked()
}

func (s *Store) djsLocked() []*models.User {
	out := make([]*models.User, 0, len(s.queue))
	for _, id := range s.queue {
		u, exists := s.registry.Get(id)
		if !exists {
			logger.Log.Errorw("queued dj not in room users", "id", id)
			continue
		}
		out = append(out, u)
	}
	return out
}

// Audience returns everyone not in the DJ queue: the local user first, then
// privileged users, then the rest. The unprivileged partition is ordered
// alphabetically or by relationship.
func (s *Store) Audience(alphabetical bool) []*models.User {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.audienceLocked(alphabetical)
}

func (s *Store) audienceLocked(alphabetical bool) []*models.User {
	inQueue := make(map[int64]bool, len(s.queue))
	for _, id := range s.queue {
		inQueue[id] = true
	}

	var self *models.User
	var privileged, others []*models.User
	for _, u := range s.registry.Users() {
		if inQueue[u.ID] {
			continue
		}
		switch {
		case u.ID == s.self.ID():
			self = u
		case s.registry.IsPrivileged(u.ID):
			privileged = append(privileged, u)
		default:
			others = append(others, u)
		}
	}

	sortByUsername(privileged)
	if alphabetical {
		sortByUsername(others)
	} else {
		sortByRelationship(others)
	}

	out := append(privileged, others...)
	if self != nil {
		out = append([]*models.User{self}, out...)
	}
	return out
}

// JoinedUsers returns the full membership: DJs in queue order, then the
// audience with its partitions ordered alphabetically.
func (s *Store) JoinedUsers() []*models.User {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append(s.djsLocked(), s.audienceLocked(true)...)
}

// WaitList returns the booth wait list in order, registering any entry the
// membership list did not carry yet.
func (s *Store) WaitList() []*models.User {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	out := make([]*models.User, 0, len(s.waitUsers))
	for i := range s.waitUsers {
		if _, exists := s.registry.Get(s.waitUsers[i].ID); !exists {
			heal := s.waitUsers[i]
			s.registry.Add(&heal)
			logger.Log.Infow("wait list entry missing from room users, registered", "id", heal.ID)
		}
		if u, exists := s.registry.Get(s.waitUsers[i].ID); exists {
			out = append(out, u)
		}
	}
	return out
}
