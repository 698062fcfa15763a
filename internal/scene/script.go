package scene

import (
	"fmt"
	"os"
	"sort"

	"github.com/san-kum/seaweed/internal/vecmath"
	"gopkg.in/yaml.v3"
)

const (
	ActionLattice = "lattice"
	ActionBubbles = "bubbles"
	ActionThrust  = "thrust"
	ActionHalt    = "halt"
	ActionOrbit   = "orbit"
)

// Script is a timed sequence of events replayed against a scene.
type Script struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Events      []Event `yaml:"events"`

	next int
}

// Event fires once the scene clock reaches At seconds. X and Y are a world
// position for spawns and a velocity delta for thrust.
type Event struct {
	At     float64 `yaml:"at"`
	Action string  `yaml:"action"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
}

// LoadScript reads a script from a YAML file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseScript(data)
}

func ParseScript(data []byte) (*Script, error) {
	var sc Script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	for i, ev := range sc.Events {
		if err := ev.validate(); err != nil {
			return nil, fmt.Errorf("event %d: %w", i+1, err)
		}
	}
	sort.SliceStable(sc.Events, func(i, j int) bool { return sc.Events[i].At < sc.Events[j].At })

	return &sc, nil
}

func (ev Event) validate() error {
	switch ev.Action {
	case ActionLattice, ActionBubbles, ActionThrust, ActionHalt, ActionOrbit:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, ev.Action)
	}
	if ev.At < 0 {
		return fmt.Errorf("negative time %v", ev.At)
	}
	return nil
}

// ApplyDue applies every pending event whose time has been reached.
func (sc *Script) ApplyDue(s *Scene) error {
	now := s.Clock().Elapsed
	for sc.next < len(sc.Events) && sc.Events[sc.next].At <= now {
		ev := sc.Events[sc.next]
		sc.next++
		if err := s.Apply(ev); err != nil {
			return fmt.Errorf("event %d (%s at %.2fs): %w", sc.next, ev.Action, ev.At, err)
		}
	}
	return nil
}

func (sc *Script) Pending() int { return len(sc.Events) - sc.next }

func (sc *Script) Rewind() { sc.next = 0 }

// Apply performs a single event immediately.
func (s *Scene) Apply(ev Event) error {
	switch ev.Action {
	case ActionLattice:
		return s.SpawnLattice(vecmath.New(ev.X, ev.Y, 0))
	case ActionBubbles:
		return s.SpawnBubbles(vecmath.New(ev.X, ev.Y, 0))
	case ActionThrust:
		s.player.Thrust(ev.X, ev.Y)
	case ActionHalt:
		s.player.Halt()
	case ActionOrbit:
		s.player.SetOrbiting(true)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, ev.Action)
	}
	return nil
}
