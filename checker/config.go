package checker

import (
	"encoding/json"
	"fmt"
	"os"
)

// RunCheck describes an optional emulation pass over an assembled program.
// Expectations left nil are not checked.
type RunCheck struct {
	RuntimeLimit          uint64            `json:"runtimeLimit"`
	RandomSeed            int64             `json:"randomSeed"`
	ExpectedCharDisplay   *string           `json:"expectedCharDisplay,omitempty"`
	ExpectedNumberDisplay *string           `json:"expectedNumberDisplay,omitempty"`
	ExpectedRegisters     map[string]uint8  `json:"expectedRegisters,omitempty"` // "r3": 44
	ExpectedRAM           map[string]uint8  `json:"expectedRAM,omitempty"`       // "10": 42
}

// ProgramCheck is one entry of the batch: a source file that must assemble,
// plus an optional run check.
type ProgramCheck struct {
	Name string    `json:"name"`
	Path string    `json:"path"`
	Run  *RunCheck `json:"run,omitempty"`
}

type Config struct {
	Name       string         `json:"name"`
	ResultsDir string         `json:"resultsDir"` // defaults to "results"
	Programs   []ProgramCheck `json:"programs"`
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read checker config: %w", err)
	}

	conf := new(Config)
	if err := json.Unmarshal(b, conf); err != nil {
		return nil, fmt.Errorf("could not parse checker config: %w", err)
	}
	if conf.ResultsDir == "" {
		conf.ResultsDir = "results"
	}
	return conf, nil
}
