package highlight

import (
	"fmt"
	"strings"
)

// Policy decides how a newly created highlight enters the store.
type Policy interface {
	Apply(s *Store, h Highlight)
	Name() string
}

// ReplaceAll keeps at most one highlight: the newest replaces the set.
type ReplaceAll struct{}

func (ReplaceAll) Apply(s *Store, h Highlight) { s.Replace(h) }
func (ReplaceAll) Name() string                { return "single" }

// Accumulate keeps every highlight, overlapping ones included.
type Accumulate struct{}

func (Accumulate) Apply(s *Store, h Highlight) { s.Add(h) }
func (Accumulate) Name() string                { return "multi" }

// ParsePolicy maps a configuration value to a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "single":
		return ReplaceAll{}, nil
	case "multi":
		return Accumulate{}, nil
	default:
		return nil, fmt.Errorf("unknown highlight policy %q (want single or multi)", name)
	}
}
