// room/room.go
package room

import (
	"sync"
	"time"

	"github.com/SecurityPuppy/plugdj-node/events"
	"github.com/SecurityPuppy/plugdj-node/logger"
	"github.com/SecurityPuppy/plugdj-node/models"
	"github.com/SecurityPuppy/plugdj-node/network"
)

// Store 房间状态存储
// Store owns all replicated room state: membership, queue, votes, curates,
// the derived score and the per-turn point ledger. All mutation funnels
// through the event-driven operations below; events are assumed to arrive in
// server-send order, one at a time.
type Store struct {
	mutex    sync.RWMutex
	bus      *events.Bus
	self     Self
	registry *Registry

	joined     bool
	joinTime   time.Time
	roomID     string
	historyID  string
	playlistID string
	media      *models.Media
	currentDJ  int64
	queue      []int64
	waitUsers  []models.User
	votes      map[int64]int
	curates    map[int64]bool
	score      models.Score
	ledger     *TurnLedger
}

func NewStore(bus *events.Bus) *Store {
	s := &Store{
		bus:      bus,
		registry: NewRegistry(),
	}
	s.clearLocked()
	return s
}

// clearLocked resets every piece of replicated state. Caller holds the lock
// (or owns the store exclusively during construction).
func (s *Store) clearLocked() {
	s.registry.Reset(nil, nil, nil, 0)
	s.joined = false
	s.joinTime = time.Time{}
	s.roomID = ""
	s.historyID = ""
	s.playlistID = ""
	s.media = nil
	s.currentDJ = 0
	s.queue = nil
	s.waitUsers = nil
	s.votes = make(map[int64]int)
	s.curates = make(map[int64]bool)
	s.score = models.NeutralScore()
	s.ledger = NewTurnLedger(0)
}

// SetSelfProfile seeds the local user's profile. Must run before SetData so
// the snapshot self-heal knows who the local user is.
func (s *Store) SetSelfProfile(u models.User) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.self.Set(u)
}

// SetData replaces all state wholesale from a join-time snapshot.
func (s *Store) SetData(snap *models.RoomSnapshot) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.clearLocked()
	s.joined = true
	s.joinTime = time.Now()
	s.roomID = snap.ID
	s.historyID = snap.HistoryID
	s.playlistID = snap.PlaylistID
	s.media = snap.Media
	s.currentDJ = snap.CurrentDJ

	s.registry.Reset(snap.Staff, snap.Admins, snap.Ambassadors, snap.Owner)
	for i := range snap.Users {
		u := snap.Users[i]
		u.Owner = u.ID == snap.Owner
		u.Permission = snap.Staff[u.ID]
		s.registry.Add(&u)
	}

	s.queue = make([]int64, 0, len(snap.DJs))
	for i := range snap.DJs {
		s.queue = append(s.queue, snap.DJs[i].ID)
	}
	s.waitUsers = append([]models.User(nil), snap.WaitList...)

	for id, vote := range snap.Votes {
		s.votes[id] = vote
	}
	for id, curated := range snap.Curates {
		s.curates[id] = curated
	}

	// The local user must be present post-join even if the snapshot omitted
	// them: synthesize a self record.
	if me, exists := s.registry.Get(s.self.ID()); exists {
		s.self.Set(*me)
	} else {
		heal := s.self.User()
		heal.Owner = heal.ID == snap.Owner
		heal.Permission = snap.Staff[heal.ID]
		s.registry.Add(&heal)
		s.self.Set(heal)
		logger.Log.Infow("local user missing from snapshot, synthesized", "id", heal.ID)
	}

	s.resetLedgerLocked()
}

// resetLedgerLocked starts a fresh turn ledger, folding in any votes the
// users already carry (snapshot arriving mid-turn).
func (s *Store) resetLedgerLocked() {
	s.ledger = NewTurnLedger(s.currentDJ)
	for _, u := range s.registry.Users() {
		s.ledger.Seed(u.ID, u.Vote)
	}
}

// recalcScoreLocked recomputes the room score. The returned value must be
// emitted on the score topic after the lock is released.
func (s *Store) recalcScoreLocked() models.Score {
	s.score = computeScore(s.votes, s.curates, s.registry.Len(), s.media != nil)
	return s.score
}

// VoteUpdate records one listener's vote for the current turn. An unknown id
// is logged and skipped.
func (s *Store) VoteUpdate(p models.VoteUpdate) {
	s.mutex.Lock()
	u, exists := s.registry.Get(p.ID)
	if !exists {
		s.mutex.Unlock()
		logger.Log.Errorw("vote update for user not in room", "id", p.ID)
		return
	}

	u.Vote = p.Vote
	s.votes[p.ID] = p.Vote
	s.ledger.CountVote(p.ID, p.Vote)
	score := s.recalcScoreLocked()
	s.mutex.Unlock()

	s.bus.Emit(network.EventScoreUpdate, score)
}

// CurateUpdate records a curation mark. Curated defaults to true when the
// payload omits it.
func (s *Store) CurateUpdate(p models.CurateUpdate) {
	s.mutex.Lock()
	u, exists := s.registry.Get(p.ID)
	if !exists {
		s.mutex.Unlock()
		logger.Log.Errorw("curate update for user not in room", "id", p.ID)
		return
	}

	curated := true
	if p.Curated != nil {
		curated = *p.Curated
	}
	u.Curated = curated
	s.curates[p.ID] = curated
	s.ledger.CountCurate(p.ID)
	score := s.recalcScoreLocked()
	s.mutex.Unlock()

	s.bus.Emit(network.EventScoreUpdate, score)
}

// UserJoin registers a live join. A duplicate id is a no-op.
func (s *Store) UserJoin(u models.User) {
	s.mutex.Lock()
	if !s.registry.Add(&u) {
		s.mutex.Unlock()
		return
	}
	score := s.recalcScoreLocked()
	s.mutex.Unlock()

	s.bus.Emit(network.EventScoreUpdate, score)
}

// UserLeave unregisters an id. An active approve vote for the current DJ is
// taken back from the turn ledger before the vote entry is removed.
func (s *Store) UserLeave(id int64) {
	s.mutex.Lock()
	if _, exists := s.registry.Get(id); !exists {
		s.mutex.Unlock()
		return
	}

	s.ledger.DropVoter(id, s.votes[id] == 1)
	delete(s.votes, id)
	s.registry.Remove(id)
	score := s.recalcScoreLocked()
	s.mutex.Unlock()

	s.bus.Emit(network.EventScoreUpdate, score)
}

// UserUpdate overwrites the mutable profile fields of a registered user in
// place. Updating the current DJ emits a media-update notification; updating
// the local user refreshes the self profile.
func (s *Store) UserUpdate(u models.User) {
	s.mutex.Lock()
	existing, exists := s.registry.Get(u.ID)
	if !exists {
		s.mutex.Unlock()
		logger.Log.Warnw("user update for user not in room", "id", u.ID)
		return
	}

	existing.Fans = u.Fans
	existing.Facebook = u.Facebook
	existing.Twitter = u.Twitter
	existing.DJPoints = u.DJPoints
	existing.ListenerPoints = u.ListenerPoints
	existing.CuratorPoints = u.CuratorPoints
	existing.Username = u.Username
	existing.Status = u.Status
	existing.AvatarID = u.AvatarID

	var mediaUpdate *models.MediaUpdate
	if existing.ID == s.currentDJ {
		mediaUpdate = &models.MediaUpdate{DJName: existing.Username, Media: s.media}
	}
	if existing.ID == s.self.ID() {
		s.self.Set(*existing)
	}
	s.mutex.Unlock()

	if mediaUpdate != nil {
		s.bus.Emit(network.EventMediaUpdate, mediaUpdate)
	}
}

// DJAdvance ends the current turn and starts the next one: snapshot the
// outgoing play, commit the outgoing ledger, clear all votes and curates,
// install the new media and DJ, and reset score and ledger.
func (s *Store) DJAdvance(p *models.DJAdvancePayload) *models.DJAdvanceResult {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var lastPlay *models.LastPlay
	if s.media != nil {
		mediaCopy := *s.media
		dj, _ := s.registry.Get(s.currentDJ)
		lastPlay = &models.LastPlay{DJ: dj, Media: &mediaCopy, Score: s.score, HistoryID: s.historyID}
		s.applyEarnedPointsLocked(p.Earn)
	}

	s.votes = make(map[int64]int)
	s.curates = make(map[int64]bool)
	for _, u := range s.registry.Users() {
		u.Vote = 0
		u.Curated = false
	}

	s.media = p.Media
	s.currentDJ = p.CurrentDJ
	s.playlistID = p.PlaylistID
	s.historyID = p.HistoryID
	s.score = models.NeutralScore()
	s.resetLedgerLocked()

	if s.media != nil && s.currentDJ != 0 {
		dj, _ := s.registry.Get(s.currentDJ)
		return &models.DJAdvanceResult{DJ: dj, Media: s.media, LastPlay: lastPlay}
	}
	return &models.DJAdvanceResult{LastPlay: lastPlay}
}

// applyEarnedPointsLocked commits the outgoing turn's ledger into user
// records. With earn set the DJ gets dj and curator points and every counted
// listener gets a listener point; without it only curator points land.
func (s *Store) applyEarnedPointsLocked(earn bool) {
	l := s.ledger
	if l == nil {
		// Should not happen; prefer a zeroed ledger over losing the turn.
		logger.Log.Errorw("turn ledger missing at commit, resetting")
		s.resetLedgerLocked()
		return
	}

	dj, djPresent := s.registry.Get(s.currentDJ)
	if earn {
		if djPresent {
			dj.DJPoints += l.DJPoints
			dj.CuratorPoints += l.CuratorPoints
		}
		for _, u := range s.registry.Users() {
			if u.ID == s.currentDJ || !l.HasListenerCredit(u.ID) {
				continue
			}
			u.ListenerPoints++
		}
	} else if djPresent {
		dj.CuratorPoints += l.CuratorPoints
	}

	if me, exists := s.registry.Get(s.self.ID()); exists {
		self := s.self.User()
		self.DJPoints = me.DJPoints
		self.ListenerPoints = me.ListenerPoints
		self.CuratorPoints = me.CuratorPoints
		s.self.Set(self)
	}
}

// --- 查询接口 ---

func (s *Store) Joined() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.joined
}

func (s *Store) JoinTime() time.Time {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.joinTime
}

func (s *Store) RoomID() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.roomID
}

func (s *Store) HistoryID() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.historyID
}

func (s *Store) Media() *models.Media {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.media
}

func (s *Store) CurrentDJ() int64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.currentDJ
}

func (s *Store) Score() models.Score {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.score
}

func (s *Store) GetUser(id int64) (*models.User, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.registry.Get(id)
}

func (s *Store) UserCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.registry.Len()
}

// SelfUser returns a copy of the local user's profile.
func (s *Store) SelfUser() models.User {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.self.User()
}

func (s *Store) Permission(id int64) int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.registry.Permission(id)
}

func (s *Store) StaffList() []*models.User {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.registry.StaffList()
}

func (s *Store) AdminList() []*models.User {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.registry.AdminList()
}

func (s *Store) AmbassadorList() []*models.User {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.registry.AmbassadorList()
}

func (s *Store) HostUser() *models.User {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.registry.HostUser()
}
