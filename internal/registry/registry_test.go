package registry

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/gridiron/internal/core"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := New(
		TeamIdentity{ID: 1, Abbreviation: "KC", Name: "Kansas City", RosterID: "kc-2025"},
		TeamIdentity{ID: 2, Abbreviation: "BUF", Name: "Buffalo", Aliases: []string{"Bills"}},
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return r
}

func TestResolveHeterogeneousReferences(t *testing.T) {
	r := newTestRegistry(t)

	tests := []struct {
		name     string
		ref      any
		expected core.TeamHandle
	}{
		{"numeric id", 1, core.Home},
		{"int64 id", int64(2), core.Away},
		{"numeric string", "1", core.Home},
		{"side label", "home", core.Home},
		{"side label upper case", "AWAY", core.Away},
		{"abbreviation", "kc", core.Home},
		{"full name with spaces", "  Buffalo ", core.Away},
		{"roster id", "kc-2025", core.Home},
		{"alias", "bills", core.Away},
		{"handle passthrough", core.Away, core.Away},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.Resolve(tc.ref)
			if err != nil {
				t.Fatalf("Resolve(%v) failed: %v", tc.ref, err)
			}
			if got != tc.expected {
				t.Errorf("Resolve(%v) = %v, expected %v", tc.ref, got, tc.expected)
			}
		})
	}
}

func TestResolveNumericAndLabelAgree(t *testing.T) {
	// The integer id of the home team and the "home" label must land on the
	// same handle and therefore the same scoreboard column.
	r := newTestRegistry(t)

	fromID, err := r.Resolve(1)
	if err != nil {
		t.Fatal(err)
	}
	fromLabel, err := r.Resolve("home")
	if err != nil {
		t.Fatal(err)
	}
	if fromID != fromLabel {
		t.Fatalf("id resolved to %v, label resolved to %v", fromID, fromLabel)
	}

	sideID, _ := r.ScoreboardTarget(fromID)
	sideLabel, _ := r.ScoreboardTarget(fromLabel)
	if sideID != sideLabel || sideID != core.SideHome {
		t.Errorf("scoreboard targets disagree: %v vs %v", sideID, sideLabel)
	}
}

func TestResolveIsStable(t *testing.T) {
	r := newTestRegistry(t)

	first, err := r.Resolve("BUF")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 50; i++ {
		got, err := r.Resolve("BUF")
		if err != nil || got != first {
			t.Fatalf("resolution %d = %v, %v; expected %v", i, got, err, first)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	r := newTestRegistry(t)

	refs := []any{99, "99", "dallas", "", "neutral", core.Neutral, 3.5, nil}
	for _, ref := range refs {
		h, err := r.Resolve(ref)
		if !errors.Is(err, core.ErrUnresolvedTeam) {
			t.Errorf("Resolve(%v) error = %v, expected ErrUnresolvedTeam", ref, err)
		}
		if h != core.Neutral {
			t.Errorf("Resolve(%v) = %v, expected no handle", ref, h)
		}
	}
}

func TestNewRejectsCollisions(t *testing.T) {
	_, err := New(
		TeamIdentity{ID: 7, Abbreviation: "NYG"},
		TeamIdentity{ID: 7, Abbreviation: "NYJ"},
	)
	if err == nil {
		t.Error("expected error for shared numeric id")
	}

	_, err = New(
		TeamIdentity{ID: 1, Abbreviation: "NY"},
		TeamIdentity{ID: 2, Abbreviation: "ny"},
	)
	if err == nil {
		t.Error("expected error for shared label")
	}
}

func TestNumericRosterIDs(t *testing.T) {
	r, err := New(
		TeamIdentity{ID: 1, RosterID: "1001"},
		TeamIdentity{ID: 2, RosterID: "2002", Aliases: []string{"77"}},
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	tests := []struct {
		name     string
		ref      any
		expected core.TeamHandle
	}{
		{"roster id string", "1001", core.Home},
		{"roster id as int", 2002, core.Away},
		{"numeric alias", "77", core.Away},
		{"team id", "2", core.Away},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.Resolve(tc.ref)
			if err != nil {
				t.Fatalf("Resolve(%v) failed: %v", tc.ref, err)
			}
			if got != tc.expected {
				t.Errorf("Resolve(%v) = %v, expected %v", tc.ref, got, tc.expected)
			}
		})
	}

	_, err = New(
		TeamIdentity{ID: 1, RosterID: "2"},
		TeamIdentity{ID: 2},
	)
	if err == nil {
		t.Error("expected error when a roster id collides with the other team's id")
	}
}

func TestResolveUnsignedIDs(t *testing.T) {
	r := newTestRegistry(t)

	if h, err := r.Resolve(uint64(2)); err != nil || h != core.Away {
		t.Errorf("Resolve(uint64(2)) = %v, %v", h, err)
	}
	if h, err := r.Resolve(uintptr(1)); err != nil || h != core.Home {
		t.Errorf("Resolve(uintptr(1)) = %v, %v", h, err)
	}
	if _, err := r.Resolve(uint64(math.MaxUint64)); !errors.Is(err, core.ErrUnresolvedTeam) {
		t.Errorf("Resolve(MaxUint64) error = %v, expected ErrUnresolvedTeam", err)
	}
}

func TestAlias(t *testing.T) {
	r := newTestRegistry(t)

	if err := r.Alias("chiefs", core.Home); err != nil {
		t.Fatalf("Alias() failed: %v", err)
	}
	if err := r.Alias(int64(4001), core.Away); err != nil {
		t.Fatalf("Alias() failed: %v", err)
	}

	if h, _ := r.Resolve("Chiefs"); h != core.Home {
		t.Errorf("Resolve(Chiefs) = %v, expected Home", h)
	}
	if h, _ := r.Resolve("4001"); h != core.Away {
		t.Errorf("Resolve(4001) = %v, expected Away", h)
	}

	if err := r.Alias("chiefs", core.Away); err == nil {
		t.Error("rebinding an alias to the other team should fail")
	}
	if err := r.Alias("x", core.Neutral); !errors.Is(err, core.ErrUnresolvedTeam) {
		t.Errorf("aliasing to Neutral should fail with ErrUnresolvedTeam, got %v", err)
	}
}

func TestScoreboardTargetNeutral(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.ScoreboardTarget(core.Neutral); !errors.Is(err, core.ErrUnresolvedTeam) {
		t.Errorf("ScoreboardTarget(Neutral) error = %v", err)
	}
}

func TestReferencesAndLabel(t *testing.T) {
	r := newTestRegistry(t)

	if got := r.Label(core.Away); got != "BUF" {
		t.Errorf("Label(Away) = %q, expected BUF", got)
	}

	refs := r.References(core.Home)
	want := map[string]bool{"1": true, "home": true, "kc": true, "kansas city": true, "kc-2025": true}
	if len(refs) != len(want) {
		t.Fatalf("References(Home) = %v", refs)
	}
	for _, ref := range refs {
		if !want[ref] {
			t.Errorf("unexpected reference %q", ref)
		}
	}
}
