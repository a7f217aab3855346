// room/registry.go
package room

import (
	"sort"
	"strings"

	"github.com/SecurityPuppy/plugdj-node/models"
)

// Permission levels, highest wins.
const (
	PermissionNone       = 0
	PermissionFeaturedDJ = 1
	PermissionBouncer    = 2
	PermissionManager    = 3
	PermissionCohost     = 4
	PermissionHost       = 5
	PermissionAmbassador = 9
	PermissionAdmin      = 10
)

// Registry 房间成员注册表
// It is the source of truth for membership queries. Privilege sets (staff,
// admins, ambassadors) live here alongside the user records because
// permission lookups consult all three.
type Registry struct {
	users       map[int64]*models.User
	staff       map[int64]int
	admins      map[int64]struct{}
	ambassadors map[int64]struct{}
	ownerID     int64
}

func NewRegistry() *Registry {
	r := &Registry{}
	r.Reset(nil, nil, nil, 0)
	return r
}

// Reset replaces all membership and privilege state.
func (r *Registry) Reset(staff map[int64]int, admins, ambassadors []int64, ownerID int64) {
	r.users = make(map[int64]*models.User)
	r.staff = make(map[int64]int)
	for id, level := range staff {
		r.staff[id] = level
	}
	r.admins = make(map[int64]struct{})
	for _, id := range admins {
		r.admins[id] = struct{}{}
	}
	r.ambassadors = make(map[int64]struct{})
	for _, id := range ambassadors {
		r.ambassadors[id] = struct{}{}
	}
	r.ownerID = ownerID
}

func (r *Registry) Get(id int64) (*models.User, bool) {
	u, exists := r.users[id]
	return u, exists
}

// Add registers a user. It is a no-op returning false if the id is already
// present.
func (r *Registry) Add(u *models.User) bool {
	if _, exists := r.users[u.ID]; exists {
		return false
	}
	r.users[u.ID] = u
	return true
}

// Remove unregisters an id. It is a no-op returning false if absent.
func (r *Registry) Remove(id int64) bool {
	if _, exists := r.users[id]; !exists {
		return false
	}
	delete(r.users, id)
	return true
}

func (r *Registry) Len() int {
	return len(r.users)
}

// Users returns the registered users in no particular order.
func (r *Registry) Users() []*models.User {
	out := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out
}

// Permission resolves an id's effective level: admin set, then ambassador
// set, then the explicit staff mapping, else none.
func (r *Registry) Permission(id int64) int {
	if _, ok := r.admins[id]; ok {
		return PermissionAdmin
	}
	if _, ok := r.ambassadors[id]; ok {
		return PermissionAmbassador
	}
	return r.staff[id]
}

func (r *Registry) HasPermission(id int64, required int) bool {
	return r.Permission(id) >= required
}

// IsPrivileged reports whether the id belongs to any privilege set.
func (r *Registry) IsPrivileged(id int64) bool {
	return r.Permission(id) > PermissionNone
}

// StaffList returns the registered staff sorted by descending permission,
// then alphabetically.
func (r *Registry) StaffList() []*models.User {
	var out []*models.User
	for id := range r.staff {
		if u, exists := r.users[id]; exists {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := r.Permission(out[i].ID), r.Permission(out[j].ID)
		if pi != pj {
			return pi > pj
		}
		return strings.ToLower(out[i].Username) < strings.ToLower(out[j].Username)
	})
	return out
}

func (r *Registry) AdminList() []*models.User {
	return r.collect(r.admins)
}

func (r *Registry) AmbassadorList() []*models.User {
	return r.collect(r.ambassadors)
}

func (r *Registry) collect(set map[int64]struct{}) []*models.User {
	var out []*models.User
	for id := range set {
		if u, exists := r.users[id]; exists {
			out = append(out, u)
		}
	}
	sortByUsername(out)
	return out
}

// HostUser returns the room owner, or nil if the owner is not registered.
func (r *Registry) HostUser() *models.User {
	return r.users[r.ownerID]
}

func sortByUsername(users []*models.User) {
	sort.SliceStable(users, func(i, j int) bool {
		return strings.ToLower(users[i].Username) < strings.ToLower(users[j].Username)
	})
}

func sortByRelationship(users []*models.User) {
	sort.SliceStable(users, func(i, j int) bool {
		if users[i].Relationship != users[j].Relationship {
			return users[i].Relationship < users[j].Relationship
		}
		return users[i].TotalPoints() < users[j].TotalPoints()
	})
}
