package script

import (
	_ "embed"
	"fmt"
)

//go:embed examples/training.yaml
var builtinTrainingYAML []byte

// Builtin scripts register at startup so a fresh install has something to run.
func init() {
	s, err := Parse(builtinTrainingYAML)
	if err != nil {
		panic(fmt.Sprintf("script: builtin training script invalid: %v", err))
	}
	Register(s)
}
