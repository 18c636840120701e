package graph

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrDuplicateID is returned when two stored objects share an identity.
var ErrDuplicateID = errors.New("duplicate object id")

// Controller is the root container. It owns the layers and the table of
// physically stored sub-assets.
type Controller struct {
	ID     ID
	Name   string
	Layers []*Layer

	mu     sync.RWMutex
	assets map[ID]Object
}

// NewController returns an empty controller.
func NewController(id ID, name string) *Controller {
	return &Controller{ID: id, Name: name, assets: make(map[ID]Object)}
}

// AddLayer appends a layer rooted at root and stores root.
func (c *Controller) AddLayer(name string, root *StateMachine) *Layer {
	l := &Layer{Name: name, StateMachine: root}
	c.Layers = append(c.Layers, l)
	if root != nil {
		_ = c.Add(root)
	}
	return l
}

// Add stores objects in the controller. Adding the same object twice is a
// no-op; adding a different object under a stored id fails.
func (c *Controller) Add(objs ...Object) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.assets == nil {
		c.assets = make(map[ID]Object)
	}
	for _, o := range objs {
		if o == nil || !o.Alive() {
			continue
		}
		if existing, ok := c.assets[o.ObjectID()]; ok {
			if existing == o {
				continue
			}
			return fmt.Errorf("%w: %d", ErrDuplicateID, o.ObjectID())
		}
		c.assets[o.ObjectID()] = o
	}
	return nil
}

// Lookup returns the stored object with the given id.
func (c *Controller) Lookup(id ID) (Object, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	o, ok := c.assets[id]
	return o, ok
}

// SubAssets returns every stored object ordered by id.
func (c *Controller) SubAssets() []Object {
	c.mu.RLock()
	objs := make([]Object, 0, len(c.assets))
	for _, o := range c.assets {
		objs = append(objs, o)
	}
	c.mu.RUnlock()

	sort.Slice(objs, func(i, j int) bool { return objs[i].ObjectID() < objs[j].ObjectID() })
	return objs
}

// Len returns the number of stored objects.
func (c *Controller) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.assets)
}

// Detach removes obj from storage and destroys it. It returns false when obj
// is not stored in this controller.
func (c *Controller) Detach(obj Object) bool {
	if obj == nil || !obj.Alive() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if stored, ok := c.assets[obj.ObjectID()]; !ok || stored != obj {
		return false
	}
	delete(c.assets, obj.ObjectID())
	obj.destroy()
	return true
}

// NewStateMachine creates and stores a state machine.
func (c *Controller) NewStateMachine(id ID, name string) *StateMachine {
	m := NewStateMachine(id, name)
	c.mustAdd(m)
	return m
}

// NewState creates and stores a state.
func (c *Controller) NewState(id ID, name string) *State {
	s := NewState(id, name)
	c.mustAdd(s)
	return s
}

// NewTransition creates and stores a transition.
func (c *Controller) NewTransition(id ID, kind Kind) *Transition {
	t := NewTransition(id, kind)
	c.mustAdd(t)
	return t
}

// NewBehaviour creates and stores a behaviour.
func (c *Controller) NewBehaviour(id ID, name, script string) *Behaviour {
	b := NewBehaviour(id, name, script)
	c.mustAdd(b)
	return b
}

// NewBlendTree creates and stores a blend tree.
func (c *Controller) NewBlendTree(id ID, name string) *BlendTree {
	b := NewBlendTree(id, name)
	c.mustAdd(b)
	return b
}

// NewClip creates and stores a clip.
func (c *Controller) NewClip(id ID, name string) *Clip {
	cl := NewClip(id, name)
	c.mustAdd(cl)
	return cl
}

func (c *Controller) mustAdd(o Object) {
	if err := c.Add(o); err != nil {
		panic(err)
	}
}
