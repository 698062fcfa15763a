package config

import (
	"sort"

	"github.com/san-kum/seaweed/internal/forces"
)

// Presets are complete named configurations. GetPreset returns copies.
var Presets = map[string]*Config{
	"reef":  DefaultConfig(),
	"calm":  calm(),
	"storm": storm(),
	"kelp":  kelp(),
}

func calm() *Config {
	c := DefaultConfig()
	c.Fish.Count = 3
	c.Fish.OrbitChance = 0
	c.Fish.MinSpeed, c.Fish.MaxSpeed = 60, 100
	c.Environment.Field = forces.KindPerlin
	c.Environment.Strength = 12
	c.Environment.Speed = 0.2
	return c
}

func storm() *Config {
	c := DefaultConfig()
	c.Fish.Count = 14
	c.Fish.OrbitChance = 0.7
	c.World.Drag = 0.9995
	c.Environment.Field = forces.KindPerlin
	c.Environment.Strength = 60
	c.Environment.Scale = 0.02
	c.Environment.Speed = 1.5
	c.Bubbles.Count = 48
	return c
}

func kelp() *Config {
	c := DefaultConfig()
	c.Seaweed.Count = 3
	c.Seaweed.Spacing = 200
	c.Seaweed.Grid = 16
	c.Seaweed.Stiffness = 3
	c.Fish.Count = 4
	c.Environment.Field = forces.KindNone
	return c
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
