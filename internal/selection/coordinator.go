// Package selection tracks the single "edit target" shared across UI
// regions. The coordinator is a two-state machine: Idle (no selection) and
// Editing(id). The UI shell registers the bounds of its interactive regions
// and reports pointer-downs; a press inside none of the regions clears an
// active selection.
package selection

import (
	"image"
	"sync"
)

type Coordinator struct {
	mu      sync.Mutex
	editing string // "" means Idle
	regions map[string]image.Rectangle
}

func New() *Coordinator {
	return &Coordinator{regions: make(map[string]image.Rectangle)}
}

// Select makes id the edit target, replacing any previous target directly
// with no intermediate Idle state. Selecting the current target is a no-op;
// the returned flag reports whether the state changed.
func (c *Coordinator) Select(id string) bool {
	if id == "" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == id {
		return false
	}
	c.editing = id
	return true
}

// Clear returns to Idle. Used on explicit cancel, successful update and
// top-level view switches.
func (c *Coordinator) Clear() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == "" {
		return false
	}
	c.editing = ""
	return true
}

// Editing returns the current edit target, if any.
func (c *Coordinator) Editing() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editing, c.editing != ""
}

// SetRegion registers or moves a named interactive region. Regions are
// disjoint areas of the shell (typically the edit form and the list) whose
// bounds the shell keeps current across layout changes.
func (c *Coordinator) SetRegion(name string, bounds image.Rectangle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.regions[name] = bounds
}

// RemoveRegion unregisters a region, e.g. when its view unmounts.
func (c *Coordinator) RemoveRegion(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.regions, name)
}

// PointerDown evaluates the outside-click rule for one pointer press. It is
// a boundary-containment check, called on every press while a selection is
// active: the press clears the selection only when the point lies within no
// registered region. The returned flag reports whether it cleared.
func (c *Coordinator) PointerDown(p image.Point) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == "" {
		return false
	}
	for _, r := range c.regions {
		if p.In(r) {
			return false
		}
	}
	c.editing = ""
	return true
}
