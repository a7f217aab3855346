// room/ledger.go
package room

// TurnLedger tracks the reputation points provisionally earned during one
// rotation turn. It is reset at every DJ advance and committed into user
// records at the turn boundary. All counting goes through explicit
// precondition checks; a ledger without an active DJ records nothing.
type TurnLedger struct {
	djID   int64
	active bool

	// DJPoints and CuratorPoints accrue to the current DJ.
	DJPoints      int
	CuratorPoints int

	// counted holds, per voter, the vote already counted toward the DJ so
	// repeated identical votes cannot double-count.
	counted map[int64]int

	// earned marks listeners who cast a counted vote or curation this turn.
	earned map[int64]struct{}
}

func NewTurnLedger(djID int64) *TurnLedger {
	return &TurnLedger{
		djID:    djID,
		active:  djID != 0,
		counted: make(map[int64]int),
		earned:  make(map[int64]struct{}),
	}
}

// DJ returns the id the ledger accrues to, and whether it is active.
func (l *TurnLedger) DJ() (int64, bool) {
	return l.djID, l.active
}

// Seed folds a user's pre-existing vote into a fresh ledger. Used when a
// snapshot arrives mid-turn with votes already cast.
func (l *TurnLedger) Seed(userID int64, vote int) {
	if vote == 0 {
		return
	}
	l.earned[userID] = struct{}{}
	if l.active && vote == 1 {
		l.DJPoints++
		l.counted[userID] = 1
	}
}

// CountVote records one listener's vote. An approve that was not previously
// counted increments the DJ's points; a disapprove after a counted approve
// takes it back. Anything else only marks listener credit.
func (l *TurnLedger) CountVote(voterID int64, vote int) {
	l.earned[voterID] = struct{}{}
	if !l.active {
		return
	}
	switch {
	case vote == 1 && l.counted[voterID] != 1:
		l.DJPoints++
		l.counted[voterID] = 1
	case vote == -1 && l.counted[voterID] == 1:
		l.DJPoints--
		l.counted[voterID] = -1
	}
}

// CountCurate credits one curation mark to the current DJ.
func (l *TurnLedger) CountCurate(curatorID int64) {
	l.earned[curatorID] = struct{}{}
	if l.active {
		l.CuratorPoints++
	}
}

// DropVoter undoes a leaving user's contribution. wooted reports whether the
// room still held an active approve vote for them.
func (l *TurnLedger) DropVoter(voterID int64, wooted bool) {
	if l.active && wooted {
		l.DJPoints--
	}
	delete(l.counted, voterID)
	delete(l.earned, voterID)
}

// HasListenerCredit reports whether the id earned a listener point this turn.
func (l *TurnLedger) HasListenerCredit(id int64) bool {
	_, ok := l.earned[id]
	return ok
}

// Zero clears all accrued counters, keeping the turn's DJ. This is the
// degraded-but-alive fallback when ledger state is found inconsistent.
func (l *TurnLedger) Zero() {
	l.DJPoints = 0
	l.CuratorPoints = 0
	l.counted = make(map[int64]int)
	l.earned = make(map[int64]struct{})
}
