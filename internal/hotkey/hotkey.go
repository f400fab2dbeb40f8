// Package hotkey installs the global start/stop key bindings. The game
// window keeps keyboard focus while automation runs, so in-process key
// handling never sees these presses; a system-wide hook does.
package hotkey

import (
	"github.com/charmbracelet/log"
	hook "github.com/robotn/gohook"
)

// Bindings maps global keys to session actions. Empty fields disable the
// corresponding binding.
type Bindings struct {
	Start string // default "f1"
	Stop  string // default "f2"
}

// DefaultBindings returns the stock F1/F2 layout.
func DefaultBindings() Bindings {
	return Bindings{Start: "f1", Stop: "f2"}
}

// Listen registers the bindings and starts the system-wide event hook in a
// background goroutine. Callbacks run on the hook's dispatch goroutine and
// must not block. The returned func tears the hook down.
func Listen(b Bindings, onStart, onStop func(), logger *log.Logger) func() {
	if b.Start != "" {
		hook.Register(hook.KeyDown, []string{b.Start}, func(e hook.Event) {
			logger.Info("start hotkey pressed", "key", b.Start)
			onStart()
		})
	}
	if b.Stop != "" {
		hook.Register(hook.KeyDown, []string{b.Stop}, func(e hook.Event) {
			logger.Info("stop hotkey pressed", "key", b.Stop)
			onStop()
		})
	}

	go func() {
		s := hook.Start()
		<-hook.Process(s)
	}()

	return func() {
		hook.End()
	}
}
