// Package optimistic implements the client-side optimistic-update protocol:
// a mutation is applied to in-memory view state before the network round
// trip completes, then confirmed on success or reverted exactly on failure.
// Each action type centralizes its apply/revert pair so the inverse is
// correct by construction (apply then revert is the identity).
package optimistic

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInFlight is returned when an action targets a view that already has an
// unresolved optimistic mutation. The caller treats it as a local no-op:
// overlapping optimistic adjustments on one target would drift the count.
var ErrInFlight = errors.New("optimistic: mutation already in flight for target")

// TargetKind distinguishes the aggregates a view tracks.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// Target identifies one aggregate's view-state slice.
type Target struct {
	Kind TargetKind
	ID   uint
}

func (t Target) String() string {
	return fmt.Sprintf("%s:%d", t.Kind, t.ID)
}

// ViewState is the slice of local view state an optimistic action touches.
type ViewState struct {
	Liked         bool
	LikesCount    int
	CommentsCount int
	Deleted       bool
}

// Action is an optimistic mutation with an exact inverse. Apply moves the
// state to its post-action shape; Revert restores the pre-action shape.
type Action interface {
	Name() string
	Apply(ViewState) ViewState
	Revert(ViewState) ViewState
}

// Like flips the liked flag on and raises the displayed count by one.
type Like struct{}

func (Like) Name() string { return "like" }

func (Like) Apply(s ViewState) ViewState {
	s.Liked = true
	s.LikesCount++
	return s
}

func (Like) Revert(s ViewState) ViewState {
	s.Liked = false
	s.LikesCount--
	return s
}

// Unlike flips the liked flag off and lowers the displayed count by one.
type Unlike struct{}

func (Unlike) Name() string { return "unlike" }

func (Unlike) Apply(s ViewState) ViewState {
	s.Liked = false
	s.LikesCount--
	return s
}

func (Unlike) Revert(s ViewState) ViewState {
	s.Liked = true
	s.LikesCount++
	return s
}

// Delete marks the view removed so it disappears immediately.
type Delete struct{}

func (Delete) Name() string { return "delete" }

func (Delete) Apply(s ViewState) ViewState {
	s.Deleted = true
	return s
}

func (Delete) Revert(s ViewState) ViewState {
	s.Deleted = false
	return s
}

// CommentAdd raises the displayed comment count by one; the authoritative
// comment row is merged on success.
type CommentAdd struct{}

func (CommentAdd) Name() string { return "comment_add" }

func (CommentAdd) Apply(s ViewState) ViewState {
	s.CommentsCount++
	return s
}

func (CommentAdd) Revert(s ViewState) ViewState {
	s.CommentsCount--
	return s
}

// CommentRemove lowers the displayed comment count by one.
type CommentRemove struct{}

func (CommentRemove) Name() string { return "comment_remove" }

func (CommentRemove) Apply(s ViewState) ViewState {
	s.CommentsCount--
	return s
}

func (CommentRemove) Revert(s ViewState) ViewState {
	s.CommentsCount++
	return s
}

// Controller holds per-target view state and enforces the single
// in-flight mutation guard. The UI model is single-threaded, but the mutex
// keeps the controller safe if the runtime drives it from more than one
// goroutine.
type Controller struct {
	mu       sync.Mutex
	states   map[Target]ViewState
	inFlight map[Target]struct{}
}

// NewController returns an empty controller.
func NewController() *Controller {
	return &Controller{
		states:   make(map[Target]ViewState),
		inFlight: make(map[Target]struct{}),
	}
}

// Load seeds a target's view state from an authoritative read.
func (c *Controller) Load(target Target, state ViewState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states[target] = state
}

// State returns the current view state for a target.
func (c *Controller) State(target Target) ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.states[target]
}

// Pending is an applied-but-unresolved optimistic mutation. Exactly one of
// Succeed, Fail, or Abandon must be called to resolve it.
type Pending struct {
	controller *Controller
	target     Target
	action     Action
	resolved   bool
}

// Begin applies the action's optimistic shape to the target's view state and
// marks the target in-flight. A target with an unresolved mutation returns
// ErrInFlight and its state is left untouched.
func (c *Controller) Begin(target Target, action Action) (*Pending, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.inFlight[target]; busy {
		return nil, ErrInFlight
	}

	c.states[target] = action.Apply(c.states[target])
	c.inFlight[target] = struct{}{}

	return &Pending{
		controller: c,
		target:     target,
		action:     action,
	}, nil
}

// Succeed confirms the optimistic shape and clears the in-flight marker.
// The optimistic adjustment already matches the server outcome, so no
// further count adjustment happens. merge, when non-nil, folds authoritative
// response data into the confirmed state.
func (p *Pending) Succeed(merge func(ViewState) ViewState) {
	c := p.controller
	c.mu.Lock()
	defer c.mu.Unlock()
	if p.resolved {
		return
	}
	p.resolved = true
	delete(c.inFlight, p.target)

	if merge != nil {
		c.states[p.target] = merge(c.states[p.target])
	}
}

// Fail restores the exact pre-action state and clears the in-flight marker.
// No automatic retry: the failure surfaces so the user can retry.
func (p *Pending) Fail() {
	c := p.controller
	c.mu.Lock()
	defer c.mu.Unlock()
	if p.resolved {
		return
	}
	p.resolved = true
	delete(c.inFlight, p.target)

	c.states[p.target] = p.action.Revert(c.states[p.target])
}

// Abandon clears the in-flight marker without touching view state. Used
// when the user navigates away before the request resolves: the request
// completes server-side and the next fresh read reflects the true state.
func (p *Pending) Abandon() {
	c := p.controller
	c.mu.Lock()
	defer c.mu.Unlock()
	if p.resolved {
		return
	}
	p.resolved = true
	delete(c.inFlight, p.target)
	delete(c.states, p.target)
}
