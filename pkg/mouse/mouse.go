// Package mouse provides hit-region bookkeeping and mouse event
// classification for Bubble Tea components.
//
// Components register regions while rendering (render-then-measure) and
// resolve incoming tea.MouseMsg coordinates against the regions registered
// for the last frame.
package mouse

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Rect is a screen rectangle in terminal cells. W and H are exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Region is a named, clickable area.
type Region struct {
	ID   string
	Rect Rect
	Data any // Optional payload, e.g. a row index
}

// HitMap holds the regions of one rendered frame.
// Regions added later take priority over earlier ones.
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// AddRect registers a region.
func (h *HitMap) AddRect(id string, x, y, width, height int, data any) {
	h.Add(Region{ID: id, Rect: Rect{X: x, Y: y, W: width, H: height}, Data: data})
}

// Add registers a region.
func (h *HitMap) Add(r Region) {
	if r.Rect.Empty() {
		return
	}
	h.regions = append(h.regions, r)
}

// Test returns the topmost region containing (x, y), or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			r := h.regions[i]
			return &r
		}
	}
	return nil
}

// Find returns the most recently added region with the given ID.
func (h *HitMap) Find(id string) (Region, bool) {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].ID == id {
			return h.regions[i], true
		}
	}
	return Region{}, false
}

// Clear removes all regions.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Regions returns the registered regions in insertion order.
func (h *HitMap) Regions() []Region {
	return h.regions
}

// ActionType classifies a mouse message.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionRelease
	ActionHover
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
)

func (a ActionType) String() string {
	switch a {
	case ActionClick:
		return "click"
	case ActionRelease:
		return "release"
	case ActionHover:
		return "hover"
	case ActionScrollUp:
		return "scroll-up"
	case ActionScrollDown:
		return "scroll-down"
	case ActionScrollLeft:
		return "scroll-left"
	case ActionScrollRight:
		return "scroll-right"
	default:
		return "none"
	}
}

// Action is the result of classifying a mouse message against a hit map.
type Action struct {
	Type   ActionType
	Region *Region // nil when the event landed outside every region
	X, Y   int
}

// Handler couples a hit map with event classification.
type Handler struct {
	HitMap *HitMap
}

// NewHandler returns a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap()}
}

// HandleMouse classifies msg and resolves it against the current hit map.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	action := Action{
		X:      msg.X,
		Y:      msg.Y,
		Region: h.HitMap.Test(msg.X, msg.Y),
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			action.Type = ActionScrollUp
			if msg.Shift {
				action.Type = ActionScrollLeft
			}
		case tea.MouseButtonWheelDown:
			action.Type = ActionScrollDown
			if msg.Shift {
				action.Type = ActionScrollRight
			}
		case tea.MouseButtonWheelLeft:
			action.Type = ActionScrollLeft
		case tea.MouseButtonWheelRight:
			action.Type = ActionScrollRight
		default:
			action.Type = ActionClick
		}
	case tea.MouseActionRelease:
		action.Type = ActionRelease
	case tea.MouseActionMotion:
		action.Type = ActionHover
	}

	return action
}

// Clear drops every registered region. Call before re-registering a frame.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}

// IsPointerDown reports whether msg is a button press other than a wheel tick.
func IsPointerDown(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress && !tea.MouseEvent(msg).IsWheel()
}
