package room

import (
	"context"
	"sync"

	"github.com/KirkDiggler/diceroom/internal/models"
	memberRepo "github.com/KirkDiggler/diceroom/internal/repositories/member"
	rollRepo "github.com/KirkDiggler/diceroom/internal/repositories/roll"
)

// Session is the live projection of one room for one user: the bounded
// roll window, the member roster, and the connection status. All
// reconciliation happens on a single event-processing goroutine; the
// store's change stream (or a follow-up snapshot query) is the only
// authority for view mutation, never an optimistic local update.
type Session struct {
	svc      *service
	roomID   string
	userName string

	ctx         context.Context
	stop        context.CancelFunc
	events      <-chan *models.ChangeEvent
	unsubscribe func()

	mu     sync.RWMutex
	status models.ConnectionStatus
	window []*models.Roll
	roster []*models.Member

	changed   chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// RoomID returns the session's room code
func (sess *Session) RoomID() string {
	return sess.roomID
}

// UserName returns the local user's display name
func (sess *Session) UserName() string {
	return sess.userName
}

// Status returns the current connection status
func (sess *Session) Status() models.ConnectionStatus {
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	return sess.status
}

// Changed returns a signal channel that receives after the projection
// mutates. Signals are coalesced; read Snapshot for the current state.
func (sess *Session) Changed() <-chan struct{} {
	return sess.changed
}

// Done is closed when the event loop exits
func (sess *Session) Done() <-chan struct{} {
	return sess.done
}

// Close tears down the subscription and stops the event loop
func (sess *Session) Close() {
	sess.closeOnce.Do(func() {
		if sess.stop != nil {
			sess.stop()
		}
		if sess.unsubscribe != nil {
			sess.unsubscribe()
		} else {
			close(sess.done)
		}
	})
}

// Snapshot returns a point-in-time copy of the projection
func (sess *Session) Snapshot() *Snapshot {
	sess.mu.RLock()
	defer sess.mu.RUnlock()

	rolls := make([]*models.Roll, len(sess.window))
	copy(rolls, sess.window)

	members := make([]*RosterMember, 0, len(sess.roster))
	for _, m := range sess.roster {
		members = append(members, &RosterMember{
			ID:       m.ID,
			Name:     m.Name,
			IsOnline: true, // No liveness signal; presence is the last roster query
			LastSeen: m.LastSeen,
		})
	}

	return &Snapshot{
		Status:  sess.status,
		RoomID:  sess.roomID,
		Rolls:   rolls,
		Members: members,
	}
}

// SubmitRoll draws fresh dice and inserts the resulting roll. The new
// roll is not spliced into the window here; the insert event arriving
// on the subscription is the single code path that makes it visible.
func (sess *Session) SubmitRoll(ctx context.Context, input *SubmitRollInput) (*models.Roll, error) {
	if sess.closed() {
		return nil, ErrSessionClosed
	}

	if input == nil {
		return nil, ErrInvalidDiceType
	}

	if !models.ValidDiceType(input.Faces) {
		return nil, ErrInvalidDiceType
	}

	if input.Count < models.MinDiceCount || input.Count > models.MaxDiceCount {
		return nil, ErrInvalidDiceCount
	}

	// Statistics mode is only offered for d4/d6/d8/d10; any other die
	// kind forces the mode back to sum.
	mode := input.Mode
	if mode != models.DisplayModeStatistics || !models.SupportsStatistics(input.Faces) {
		mode = models.DisplayModeSum
	}

	var target *int
	if mode == models.DisplayModeStatistics {
		if input.StatisticsTarget < 1 || input.StatisticsTarget > input.Faces {
			return nil, ErrInvalidStatisticsTarget
		}
		t := input.StatisticsTarget
		target = &t
	}

	results, _ := sess.svc.roller.RollMany(input.Faces, input.Count)
	total := models.ComputeTotal(mode, target, results)

	out, err := sess.svc.rollRepo.CreateRoll(ctx, &rollRepo.CreateRollInput{
		RoomID:            sess.roomID,
		UserName:          sess.userName,
		DiceType:          models.DiceTypeName(input.Faces),
		DiceCount:         input.Count,
		Results:           results,
		Total:             total,
		ResultDisplayMode: mode,
		StatisticsTarget:  target,
	})
	if err != nil {
		// Local state is untouched; no partial roll is shown
		return nil, err
	}

	return out.Roll, nil
}

// RerollAsNew submits a brand-new roll using an existing roll's dice
// kind, count, mode and target as parameters.
func (sess *Session) RerollAsNew(ctx context.Context, input *RerollInput) (*models.Roll, error) {
	source, err := sess.svc.rollRepo.GetRoll(ctx, &rollRepo.GetRollInput{
		RollID: input.RollID,
	})
	if err != nil {
		return nil, err
	}

	submit := &SubmitRollInput{
		Faces: source.Faces(),
		Count: source.DiceCount,
		Mode:  source.ResultDisplayMode,
	}
	if source.StatisticsTarget != nil {
		submit.StatisticsTarget = *source.StatisticsTarget
	}

	return sess.SubmitRoll(ctx, submit)
}

// RerollInPlace re-draws an existing roll and updates it by id. The
// aggregate is recomputed under the record's stored mode and target;
// author, dice kind and count are preserved. The window is updated by
// the echoed update event, not here.
func (sess *Session) RerollInPlace(ctx context.Context, input *RerollInput) (*models.Roll, error) {
	if sess.closed() {
		return nil, ErrSessionClosed
	}

	target, err := sess.svc.rollRepo.GetRoll(ctx, &rollRepo.GetRollInput{
		RollID: input.RollID,
	})
	if err != nil {
		return nil, err
	}

	results, _ := sess.svc.roller.RollMany(target.Faces(), target.DiceCount)
	total := models.ComputeTotal(target.ResultDisplayMode, target.StatisticsTarget, results)

	out, err := sess.svc.rollRepo.UpdateRoll(ctx, &rollRepo.UpdateRollInput{
		RollID:  target.ID,
		Results: results,
		Total:   total,
	})
	if err != nil {
		return nil, err
	}

	return out.Roll, nil
}

// DeleteRoll deletes a roll by id. Local removal is driven by the
// delete event, keeping a single authority for view mutation.
func (sess *Session) DeleteRoll(ctx context.Context, input *DeleteRollInput) error {
	if sess.closed() {
		return ErrSessionClosed
	}

	return sess.svc.rollRepo.DeleteRoll(ctx, &rollRepo.DeleteRollInput{
		RollID: input.RollID,
	})
}

// closed reports whether the event loop has exited
func (sess *Session) closed() bool {
	select {
	case <-sess.done:
		return true
	default:
		return false
	}
}

// run is the single-consumer reconciliation loop. It exits when the
// subscription channel closes.
func (sess *Session) run() {
	defer close(sess.done)

	for event := range sess.events {
		sess.apply(event)
	}
}

// apply dispatches one change event to the matching reconciliation
// rule. Every rule is idempotent, so an event echoed for a write this
// session already observed cannot double-apply.
func (sess *Session) apply(event *models.ChangeEvent) {
	if event == nil {
		return
	}

	switch event.Table {
	case models.TableRolls:
		switch event.Type {
		case models.EventInsert:
			sess.applyRollInserted(event.NewRoll)
		case models.EventUpdate:
			sess.applyRollUpdated(event.NewRoll)
		case models.EventDelete:
			sess.applyRollDeleted(event.OldRoll)
		}
	case models.TableUsers:
		// Full-refresh policy: any member-table event replaces the
		// roster wholesale from a snapshot query.
		sess.refreshRoster()
	}

	sess.signal()
}

// applyRollInserted prepends the roll and truncates the window to its
// bound. A roll already present is replaced in place instead.
func (sess *Session) applyRollInserted(roll *models.Roll) {
	if roll == nil {
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	for i, existing := range sess.window {
		if existing.ID == roll.ID {
			sess.window[i] = roll
			return
		}
	}

	sess.window = append([]*models.Roll{roll}, sess.window...)
	if len(sess.window) > sess.svc.windowSize {
		sess.window = sess.window[:sess.svc.windowSize]
	}
}

// applyRollUpdated replaces the matching entry in place. An update to
// a roll outside the visible window is irrelevant to this projection.
func (sess *Session) applyRollUpdated(roll *models.Roll) {
	if roll == nil {
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	for i, existing := range sess.window {
		if existing.ID == roll.ID {
			sess.window[i] = roll
			return
		}
	}
}

// applyRollDeleted removes the matching entry. The push stream cannot
// supply the roll that should now be last in the window, so dropping
// below the bound triggers one snapshot query to refill it.
func (sess *Session) applyRollDeleted(roll *models.Roll) {
	if roll == nil {
		return
	}

	sess.mu.Lock()
	removed := false
	for i, existing := range sess.window {
		if existing.ID == roll.ID {
			sess.window = append(sess.window[:i], sess.window[i+1:]...)
			removed = true
			break
		}
	}
	needRefill := removed && len(sess.window) < sess.svc.windowSize
	sess.mu.Unlock()

	if !needRefill {
		return
	}

	recent, err := sess.svc.rollRepo.GetRecentRolls(sess.ctx, &rollRepo.GetRecentRollsInput{
		RoomID: sess.roomID,
		Limit:  sess.svc.windowSize,
	})
	if err != nil {
		// The window stays short until the next event forces another
		// reconciliation; the store remains the source of truth.
		return
	}

	sess.mu.Lock()
	sess.window = recent.Rolls
	sess.mu.Unlock()
}

// refreshRoster replaces the roster from a snapshot query and
// re-asserts the local user's presence.
func (sess *Session) refreshRoster() {
	roster, err := sess.svc.memberRepo.GetRoomMembers(sess.ctx, &memberRepo.GetRoomMembersInput{
		RoomID: sess.roomID,
	})
	if err != nil {
		return
	}

	sess.mu.Lock()
	sess.roster = roster.Members
	sess.mu.Unlock()

	sess.ensureSelf()
}

// ensureSelf synthesizes a transient roster entry for the local user
// when the store's snapshot does not include them yet, so the caller
// always sees itself without waiting for the next roster refresh.
func (sess *Session) ensureSelf() {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	for _, m := range sess.roster {
		if m.Name == sess.userName {
			return
		}
	}

	sess.roster = append(sess.roster, &models.Member{
		ID:       sess.svc.uuid.NewUUID(),
		Name:     sess.userName,
		RoomID:   sess.roomID,
		LastSeen: sess.svc.clock.Now(),
	})
}

func (sess *Session) setStatus(status models.ConnectionStatus) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.status = status
}

// signal coalesces change notifications for the session's consumer
func (sess *Session) signal() {
	select {
	case sess.changed <- struct{}{}:
	default:
	}
}
