// Package registry resolves the team references supplied by upstream
// collaborators (numeric ids, side labels, abbreviations, roster-derived ids)
// to the engine's game-scoped team handles. It is the only place in the
// engine where a raw reference is compared against anything.
package registry

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/vovakirdan/gridiron/internal/core"
)

// TeamIdentity describes one team as upstream collaborators know it.
type TeamIdentity struct {
	ID           int    // numeric team id, e.g. from a league database
	Abbreviation string // e.g. "KC"
	Name         string // e.g. "Kansas City"
	RosterID     string // id used by roster/player generation
	Aliases      []string
}

// Registry maps references to handles for the lifetime of one game.
// Lookups are safe for concurrent use; aliases may be added after creation
// but never rebound to the other team.
type Registry struct {
	mu         sync.RWMutex
	identities map[core.TeamHandle]TeamIdentity
	numeric    map[int64]core.TeamHandle
	labels     map[string]core.TeamHandle
}

// New creates a registry for a game between home and away.
// Returns an error if any reference would resolve to both teams.
func New(home, away TeamIdentity) (*Registry, error) {
	r := &Registry{
		identities: map[core.TeamHandle]TeamIdentity{
			core.Home: home,
			core.Away: away,
		},
		numeric: make(map[int64]core.TeamHandle),
		labels:  make(map[string]core.TeamHandle),
	}

	for _, h := range []core.TeamHandle{core.Home, core.Away} {
		id := r.identities[h]
		if err := r.bindNumeric(int64(id.ID), h); err != nil {
			return nil, err
		}

		labels := []string{strings.ToLower(h.String()), id.Abbreviation, id.Name, id.RosterID}
		labels = append(labels, id.Aliases...)
		for _, label := range labels {
			if err := r.bindString(label, h); err != nil {
				return nil, err
			}
		}
	}

	return r, nil
}

// Alias binds an extra reference to a team.
// Rebinding a reference to the other team is an error.
func (r *Registry) Alias(ref any, h core.TeamHandle) error {
	if !h.Valid() {
		return fmt.Errorf("registry: cannot alias %v to %s: %w", ref, h, core.ErrUnresolvedTeam)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	switch v := ref.(type) {
	case string:
		return r.bindString(v, h)
	default:
		n, ok := asInt64(ref)
		if !ok {
			return fmt.Errorf("registry: unsupported reference type %T", ref)
		}
		return r.bindNumeric(n, h)
	}
}

// Resolve maps a reference to a team handle.
// Accepts integer ids, strings (labels or numeric ids) and handles.
// Unknown references fail with core.ErrUnresolvedTeam; there is no default side.
func (r *Registry) Resolve(ref any) (core.TeamHandle, error) {
	if h, ok := ref.(core.TeamHandle); ok {
		if h.Valid() {
			return h, nil
		}
		return core.Neutral, fmt.Errorf("registry: %s is not a team: %w", h, core.ErrUnresolvedTeam)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if s, ok := ref.(string); ok {
		if n, isNum := parseNumeric(s); isNum {
			return r.lookupNumeric(n, ref)
		}
		if h, found := r.labels[normalize(s)]; found {
			return h, nil
		}
		return core.Neutral, fmt.Errorf("registry: team %q: %w", s, core.ErrUnresolvedTeam)
	}

	n, ok := asInt64(ref)
	if !ok {
		return core.Neutral, fmt.Errorf("registry: unsupported reference type %T: %w", ref, core.ErrUnresolvedTeam)
	}
	return r.lookupNumeric(n, ref)
}

// ScoreboardTarget returns the scoreboard column credited for a handle.
func (r *Registry) ScoreboardTarget(h core.TeamHandle) (core.Side, error) {
	switch h {
	case core.Home:
		return core.SideHome, nil
	case core.Away:
		return core.SideAway, nil
	default:
		return 0, fmt.Errorf("registry: no scoreboard side for %s: %w", h, core.ErrUnresolvedTeam)
	}
}

// Identity returns the identity registered for a handle.
func (r *Registry) Identity(h core.TeamHandle) (TeamIdentity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.identities[h]
	if !ok {
		return TeamIdentity{}, fmt.Errorf("registry: no identity for %s: %w", h, core.ErrUnresolvedTeam)
	}
	return id, nil
}

// Label returns the abbreviation for a handle, falling back to the handle name.
func (r *Registry) Label(h core.TeamHandle) string {
	id, err := r.Identity(h)
	if err != nil || id.Abbreviation == "" {
		return h.String()
	}
	return id.Abbreviation
}

// References returns every label bound to a handle, sorted.
func (r *Registry) References(h core.TeamHandle) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.labels))
	for label, bound := range r.labels {
		if bound == h {
			result = append(result, label)
		}
	}
	for n, bound := range r.numeric {
		if bound == h {
			result = append(result, strconv.FormatInt(n, 10))
		}
	}

	sort.Strings(result)
	return result
}

func (r *Registry) lookupNumeric(n int64, ref any) (core.TeamHandle, error) {
	h, ok := r.numeric[n]
	if !ok {
		return core.Neutral, fmt.Errorf("registry: team id %v: %w", ref, core.ErrUnresolvedTeam)
	}
	return h, nil
}

// bindString, bindNumeric and bindLabel must be called with mu held (or during New).

// bindString binds a textual reference. Numeric strings such as
// roster-derived ids share the numeric table so "1001" and 1001 agree.
func (r *Registry) bindString(ref string, h core.TeamHandle) error {
	if n, ok := parseNumeric(ref); ok {
		return r.bindNumeric(n, h)
	}
	return r.bindLabel(ref, h)
}

func (r *Registry) bindNumeric(n int64, h core.TeamHandle) error {
	if n == 0 {
		return nil // unset id
	}
	if bound, exists := r.numeric[n]; exists && bound != h {
		return fmt.Errorf("registry: team id %d already bound to %s", n, bound)
	}
	r.numeric[n] = h
	return nil
}

func (r *Registry) bindLabel(label string, h core.TeamHandle) error {
	key := normalize(label)
	if key == "" {
		return nil
	}
	if bound, exists := r.labels[key]; exists && bound != h {
		return fmt.Errorf("registry: reference %q already bound to %s", label, bound)
	}
	r.labels[key] = h
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func parseNumeric(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func asInt64(ref any) (int64, bool) {
	switch v := ref.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return uintToInt64(uint64(v))
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return uintToInt64(v)
	case uintptr:
		return uintToInt64(uint64(v))
	default:
		return 0, false
	}
}

func uintToInt64(v uint64) (int64, bool) {
	if v > math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}
