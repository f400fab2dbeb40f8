package strategy

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wavepilot/internal/control"
	"github.com/vovakirdan/wavepilot/internal/input"
	"github.com/vovakirdan/wavepilot/internal/perception"
	"github.com/vovakirdan/wavepilot/internal/scale"
)

// Runtime is everything a strategy's wave units act through. The session
// builds one per run; unit functions close over it.
type Runtime struct {
	Input  input.Driver
	OCR    perception.Recognizer
	FullHD *scale.Scaler // Coordinates authored at 1920x1080
	Dev    *scale.Scaler // Coordinates copied from the author's own screen
	Waiter *Waiter
	Token  *control.Token
	Logger *log.Logger
}

// Definition is a registered, buildable strategy for one map/difficulty.
type Definition struct {
	// ID is the unique name used on the command line.
	ID string

	// Title is the human-readable map name.
	Title string

	// Difficulty labels the mode this strategy is written for.
	Difficulty string

	// Build produces the ordered unit sequence for one run.
	Build func(rt *Runtime) ([]Unit, error)
}

// Info is registry metadata for listing.
type Info struct {
	ID         string
	Title      string
	Difficulty string
}

var (
	regMu       sync.RWMutex
	definitions = make(map[string]Definition)
)

// Register adds a strategy definition. Typically called from an init()
// function. Panics on a duplicate or unnamed ID; both are programming
// errors, not runtime conditions.
func Register(def Definition) {
	regMu.Lock()
	defer regMu.Unlock()

	if def.ID == "" {
		panic("strategy: definition with empty ID")
	}
	if def.Build == nil {
		panic(fmt.Sprintf("strategy: definition %q has no Build", def.ID))
	}
	if _, exists := definitions[def.ID]; exists {
		panic(fmt.Sprintf("strategy: %q already registered", def.ID))
	}
	definitions[def.ID] = def
}

// List returns metadata for every registered strategy, sorted by ID.
func List() []Info {
	regMu.RLock()
	defer regMu.RUnlock()

	out := make([]Info, 0, len(definitions))
	for _, def := range definitions {
		out = append(out, Info{ID: def.ID, Title: def.Title, Difficulty: def.Difficulty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns the definition registered under id.
func Get(id string) (Definition, error) {
	regMu.RLock()
	defer regMu.RUnlock()

	def, ok := definitions[id]
	if !ok {
		return Definition{}, fmt.Errorf("strategy: unknown strategy %q", id)
	}
	return def, nil
}

// Exists reports whether a strategy is registered under id.
func Exists(id string) bool {
	regMu.RLock()
	defer regMu.RUnlock()
	_, ok := definitions[id]
	return ok
}
