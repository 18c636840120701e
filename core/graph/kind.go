package graph

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when a kind name cannot be parsed.
var ErrUnknownKind = errors.New("unknown object kind")

// Kind identifies the type of an object stored in a controller.
type Kind int

const (
	KindController Kind = iota
	KindStateMachine
	KindState
	KindStateTransition
	KindTransition
	KindTransitionBase
	KindBehaviour
	KindBlendTree
	KindClip
)

var kindNames = map[Kind]string{
	KindController:      "Controller",
	KindStateMachine:    "StateMachine",
	KindState:           "State",
	KindStateTransition: "StateTransition",
	KindTransition:      "Transition",
	KindTransitionBase:  "TransitionBase",
	KindBehaviour:       "Behaviour",
	KindBlendTree:       "BlendTree",
	KindClip:            "Clip",
}

// String returns the kind name used in documents and reports.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Recognized reports whether objects of this kind are scan candidates.
// Exactly seven kinds are recognized; controllers and clips never are.
func (k Kind) Recognized() bool {
	switch k {
	case KindStateMachine, KindState, KindStateTransition, KindTransition,
		KindTransitionBase, KindBehaviour, KindBlendTree:
		return true
	default:
		return false
	}
}

// IsTransition reports whether k is one of the transition kinds.
func (k Kind) IsTransition() bool {
	return k == KindStateTransition || k == KindTransition || k == KindTransitionBase
}

// ParseKind returns the kind for a name produced by Kind.String.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}
