package scan

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"controller-cleaner/core/graph"
)

var (
	// ErrCancelled marks a scan stopped on request. It is not a failure.
	ErrCancelled = errors.New("scan cancelled")
	// ErrGraphRead wraps failures reading the store or the controller graph.
	ErrGraphRead = errors.New("graph read failure")
	// ErrMissingController is reported when a result has no controller.
	ErrMissingController = errors.New("controller is missing")
	// ErrUnknownController is returned for keys without a registered result.
	ErrUnknownController = errors.New("unknown controller")
)

// AssetStore is the host store holding a controller's sub-assets.
type AssetStore interface {
	// LoadSubAssets returns every sub-asset physically stored with c.
	LoadSubAssets(ctx context.Context, c *graph.Controller) ([]graph.Object, error)
	// Destroy detaches obj from c's storage and destroys it in one step.
	Destroy(ctx context.Context, c *graph.Controller, obj graph.Object) error
	// SetDirty marks obj as modified so the store persists it.
	SetDirty(c *graph.Controller, obj graph.Object)
}

// ControllerSource discovers and opens controllers.
type ControllerSource interface {
	// Discover returns the keys of every known controller.
	Discover(ctx context.Context) ([]string, error)
	// Open returns the controller stored under key.
	Open(ctx context.Context, key string) (*graph.Controller, error)
}

// Status is the lifecycle state of a Result.
type Status int

const (
	StatusIdle Status = iota
	StatusScanning
	StatusFinalizing
	StatusCompleted
	StatusCancelled
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusScanning:
		return "scanning"
	case StatusFinalizing:
		return "finalizing"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Finished reports whether s is a terminal state.
func (s Status) Finished() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusFailed
}

// ObjectRef describes a sub-asset in reports.
type ObjectRef struct {
	ID   graph.ID `json:"id"`
	Name string   `json:"name"`
	Kind string   `json:"kind"`
}

func refOf(o graph.Object) ObjectRef {
	return ObjectRef{ID: o.ObjectID(), Name: o.ObjectName(), Kind: o.Kind().String()}
}

// String formats the reference as "name (Kind)".
func (r ObjectRef) String() string {
	return fmt.Sprintf("%s (%s)", r.Name, r.Kind)
}

// FailedObject is an obsolete object cleanup could not destroy.
type FailedObject struct {
	ObjectRef
	Error string `json:"error"`
}

// CleanupReport summarizes one cleanup run.
type CleanupReport struct {
	Controller string         `json:"controller"`
	Removed    []ObjectRef    `json:"removed"`
	Failed     []FailedObject `json:"failed,omitempty"`
	RepairErr  string         `json:"repair_error,omitempty"`
}

// String renders the human readable removal summary.
func (r *CleanupReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Removed %d unused sub-assets from %s!\n", len(r.Removed), r.Controller)
	for _, o := range r.Removed {
		b.WriteString("\n")
		b.WriteString(o.String())
	}
	for _, f := range r.Failed {
		fmt.Fprintf(&b, "\nfailed: %s: %s", f.ObjectRef, f.Error)
	}
	return b.String()
}

// Snapshot is a read-only view of a Result for presentation.
type Snapshot struct {
	Key            string      `json:"key"`
	Name           string      `json:"name"`
	Status         string      `json:"status"`
	Clean          bool        `json:"clean"`
	ObsoleteCount  int         `json:"obsolete_count"`
	Obsolete       []ObjectRef `json:"obsolete,omitempty"`
	Error          string      `json:"error,omitempty"`
	ElapsedSeconds float64     `json:"elapsed_seconds"`
	CanClean       bool        `json:"can_clean"`
	CanScan        bool        `json:"can_scan"`
	CanCancel      bool        `json:"can_cancel"`
}
