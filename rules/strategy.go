package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nstehr/vimy-dig/model"
)

// Strategy holds the tunable numbers behind target selection. The defaults
// are tuned for the 30x15 league board.
type Strategy struct {
	Name string `yaml:"name"`

	// RadarWaypoints are visited in order, one per deployed radar.
	RadarWaypoints []model.Coord `yaml:"radarWaypoints"`

	// Search windows start WindowStep past the anchor. An anchor within
	// EdgeMargin of the far edge wraps to WrapX/WrapY instead. The window
	// stops FarMargin short of the far edge.
	WindowStep int `yaml:"windowStep"`
	EdgeMargin int `yaml:"edgeMargin"`
	FarMargin  int `yaml:"farMargin"`
	WrapX      int `yaml:"wrapX"`
	WrapY      int `yaml:"wrapY"`

	// MaxSamples bounds rejection sampling inside a window.
	MaxSamples int `yaml:"maxSamples"`
	// MaxRetargetSteps bounds the diagonal trap-avoidance walk; 0 means
	// width + height of the board.
	MaxRetargetSteps int `yaml:"maxRetargetSteps"`

	// Annotate attaches the deciding rule's name to every command.
	Annotate bool `yaml:"annotate"`
}

// DefaultStrategy staggers seven radars across the board and searches in
// four-cell steps.
func DefaultStrategy() Strategy {
	return Strategy{
		Name: "Staggered",
		RadarWaypoints: []model.Coord{
			{X: 6, Y: 9},
			{X: 8, Y: 4},
			{X: 12, Y: 10},
			{X: 17, Y: 4},
			{X: 20, Y: 10},
			{X: 23, Y: 4},
			{X: 26, Y: 10},
		},
		WindowStep: 4,
		EdgeMargin: 8,
		FarMargin:  4,
		WrapX:      4,
		WrapY:      3,
		MaxSamples: 64,
	}
}

// Validate clamps all values to usable ranges.
func (s *Strategy) Validate() {
	s.WindowStep = clampInt(s.WindowStep, 1, 16)
	s.EdgeMargin = clampInt(s.EdgeMargin, 0, 32)
	s.FarMargin = clampInt(s.FarMargin, 0, 32)
	s.WrapX = clampInt(s.WrapX, 0, 32)
	s.WrapY = clampInt(s.WrapY, 0, 32)
	s.MaxSamples = clampInt(s.MaxSamples, 1, 4096)
	s.MaxRetargetSteps = clampInt(s.MaxRetargetSteps, 0, 1024)
}

// LoadStrategy reads a YAML strategy file. Fields missing from the file keep
// their DefaultStrategy values.
func LoadStrategy(path string) (Strategy, error) {
	s := DefaultStrategy()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read strategy: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse strategy %s: %w", path, err)
	}
	s.Validate()
	return s, nil
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
