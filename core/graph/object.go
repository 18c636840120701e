package graph

import "sync/atomic"

// ID identifies an object inside its controller.
type ID uint64

// Object is implemented by every sub-asset a controller can store.
type Object interface {
	// ObjectID returns the identity of the object within its controller.
	ObjectID() ID
	// ObjectName returns the display name.
	ObjectName() string
	// Kind returns the object kind.
	Kind() Kind
	// Alive reports whether the object exists and has not been destroyed.
	// It is safe to call on nil pointers.
	Alive() bool

	destroy()
}

// Header carries the identity shared by all objects.
type Header struct {
	ID   ID
	Name string

	destroyed atomic.Bool
}

// ObjectID returns the object identity.
func (h *Header) ObjectID() ID { return h.ID }

// ObjectName returns the display name.
func (h *Header) ObjectName() string { return h.Name }

func (h *Header) destroy() { h.destroyed.Store(true) }

func (h *Header) alive() bool { return !h.destroyed.Load() }

// Motion is anything a state can play: a blend tree or a clip.
type Motion interface {
	Object
	isMotion()
}

// Layer is one animation track of a controller.
type Layer struct {
	Name         string
	StateMachine *StateMachine
}

// State is a single animation state.
type State struct {
	Header
	Motion      Motion
	Transitions []*Transition
	Behaviours  []*Behaviour
}

// NewState returns a detached state.
func NewState(id ID, name string) *State {
	return &State{Header: Header{ID: id, Name: name}}
}

func (s *State) Kind() Kind { return KindState }

func (s *State) Alive() bool { return s != nil && s.alive() }

// Transition is a directed edge to a state, a state machine, or the exit.
type Transition struct {
	Header
	DestinationState   *State
	DestinationMachine *StateMachine
	IsExit             bool

	kind Kind
}

// NewTransition returns a detached transition of the given kind.
// Kinds that are not transition kinds fall back to KindTransitionBase.
func NewTransition(id ID, kind Kind) *Transition {
	if !kind.IsTransition() {
		kind = KindTransitionBase
	}
	return &Transition{Header: Header{ID: id}, kind: kind}
}

func (t *Transition) Kind() Kind { return t.kind }

func (t *Transition) Alive() bool { return t != nil && t.alive() }

// HasTarget reports whether the transition leads somewhere: a live
// destination state, a live destination state machine, or the exit.
// A transition without any of them is dead.
func (t *Transition) HasTarget() bool {
	if t == nil {
		return false
	}
	return t.DestinationState.Alive() || t.DestinationMachine.Alive() || t.IsExit
}

// Behaviour is a script component attached to a state or a state machine.
type Behaviour struct {
	Header
	Script string
}

// NewBehaviour returns a detached behaviour.
func NewBehaviour(id ID, name, script string) *Behaviour {
	return &Behaviour{Header: Header{ID: id, Name: name}, Script: script}
}

func (b *Behaviour) Kind() Kind { return KindBehaviour }

func (b *Behaviour) Alive() bool { return b != nil && b.alive() }

// BlendTree blends child motions, which may themselves be blend trees.
type BlendTree struct {
	Header
	Children []Motion
}

// NewBlendTree returns a detached blend tree.
func NewBlendTree(id ID, name string) *BlendTree {
	return &BlendTree{Header: Header{ID: id, Name: name}}
}

func (b *BlendTree) Kind() Kind { return KindBlendTree }

func (b *BlendTree) Alive() bool { return b != nil && b.alive() }

func (b *BlendTree) isMotion() {}

// Clip is an animation clip. Clips are referenced by states and blend trees
// but are never scan candidates.
type Clip struct {
	Header
}

// NewClip returns a detached clip.
func NewClip(id ID, name string) *Clip {
	return &Clip{Header: Header{ID: id, Name: name}}
}

func (c *Clip) Kind() Kind { return KindClip }

func (c *Clip) Alive() bool { return c != nil && c.alive() }

func (c *Clip) isMotion() {}
