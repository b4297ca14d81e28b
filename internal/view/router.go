// Package view holds the active-section state machine. It deliberately does
// not re-check roles on Navigate: the sidebar filters what it offers, but a
// direct navigation call renders whatever section it names. That matches the
// shipped behavior and is covered by tests.
package view

import (
	"context"

	"github.com/BhupenderNayak/krishi-unnati-app/internal/domain"
)

// Stage is the top-level gate shown before the router itself.
type Stage string

const (
	StageLoading Stage = "loading"
	StageAuth    Stage = "auth"
	StageMain    Stage = "main"
)

// StageFor maps a session snapshot to the screen stage.
func StageFor(s domain.Session) Stage {
	switch s.State {
	case domain.SessionLoading:
		return StageLoading
	case domain.SessionAuthenticated:
		return StageMain
	default:
		return StageAuth
	}
}

// Screen renders the payload for one section.
type Screen func(ctx context.Context, profile *domain.Profile) (interface{}, error)

// Registry maps sections to their screens. Sections without a screen fall
// back to the dashboard.
type Registry map[domain.SectionID]Screen

// Router owns the active section. Not persisted; a fresh router starts at the
// dashboard.
type Router struct {
	screens Registry
	active  domain.SectionID
}

func NewRouter(screens Registry) *Router {
	return &Router{
		screens: screens,
		active:  domain.SectionDashboard,
	}
}

func (r *Router) Active() domain.SectionID {
	return r.active
}

// Navigate sets the active section unconditionally.
func (r *Router) Navigate(id domain.SectionID) {
	r.active = id
}

// Render dispatches to the active section's screen. Unknown or unregistered
// sections render the dashboard; the returned id is the section actually
// rendered.
func (r *Router) Render(ctx context.Context, profile *domain.Profile) (domain.SectionID, interface{}, error) {
	id := r.active
	screen, ok := r.screens[id]
	if !ok {
		id = domain.SectionDashboard
		screen, ok = r.screens[id]
		if !ok {
			return id, nil, nil
		}
	}

	payload, err := screen(ctx, profile)
	return id, payload, err
}
