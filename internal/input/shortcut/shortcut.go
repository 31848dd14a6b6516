// Package shortcut maps key chords to named signals.
//
// The first registrant of a chord wins. Later registrations of the same
// chord are rejected and logged, never an error the caller has to handle.
package shortcut

import (
	"sort"
	"sync"

	"github.com/dshills/loom/internal/input/key"
	"github.com/dshills/loom/internal/logging"
)

// Binding is a registered chord and the signal it emits.
type Binding struct {
	Chord  key.Chord
	Signal string
}

// Registry is a chord to signal table. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	bindings map[key.Chord]string
	log      *logging.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log *logging.Logger) *Registry {
	return &Registry{
		bindings: make(map[key.Chord]string),
		log:      logging.OrNop(log).WithComponent("shortcut"),
	}
}

// Register binds chord to signal. It returns false when the chord is
// already taken or the signal is empty.
func (r *Registry) Register(chord key.Chord, signal string) bool {
	if signal == "" {
		r.log.Warn("shortcut %s: empty signal name", chord)
		return false
	}
	chord = chord.Normalize()

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.bindings[chord]; ok {
		r.log.Warn("shortcut %s already bound to %q, ignoring %q", chord, existing, signal)
		return false
	}
	r.bindings[chord] = signal
	r.log.Debug("bound %s -> %s", chord, signal)
	return true
}

// RegisterSpec parses spec (for example "ctrl+shift+p") and registers it.
func (r *Registry) RegisterSpec(spec, signal string) bool {
	chord, err := key.ParseChord(spec)
	if err != nil {
		r.log.Warn("shortcut %q: %v", spec, err)
		return false
	}
	return r.Register(chord, signal)
}

// Lookup returns the signal bound to a translated key press.
func (r *Registry) Lookup(k key.Key, ch rune, mods key.Mod) (string, bool) {
	return r.LookupChord(key.NewChord(k, ch, mods))
}

// LookupChord returns the signal bound to chord.
func (r *Registry) LookupChord(chord key.Chord) (string, bool) {
	chord = chord.Normalize()

	r.mu.RLock()
	defer r.mu.RUnlock()

	signal, ok := r.bindings[chord]
	return signal, ok
}

// Unregister removes the binding for chord.
func (r *Registry) Unregister(chord key.Chord) bool {
	chord = chord.Normalize()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bindings[chord]; !ok {
		return false
	}
	delete(r.bindings, chord)
	return true
}

// Reset removes every binding.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings = make(map[key.Chord]string)
}

// Len returns the number of bindings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bindings)
}

// Bindings returns every binding sorted by chord string.
func (r *Registry) Bindings() []Binding {
	r.mu.RLock()
	out := make([]Binding, 0, len(r.bindings))
	for c, s := range r.bindings {
		out = append(out, Binding{Chord: c, Signal: s})
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Chord.String() < out[j].Chord.String()
	})
	return out
}
