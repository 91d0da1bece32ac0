package main

import "github.com/TexablePlum/Sort-Algoritms/core"

// SceneConfig represents a predefined visualization scene.
type SceneConfig struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Config      *Config `json:"-"`
}

// GetPredefinedScenes returns all available predefined scenes.
func GetPredefinedScenes() []SceneConfig {
	return []SceneConfig{
		{
			Name:        "classroom",
			Description: "Slow bubble sort over 60 bars, every comparison easy to follow",
			Config: &Config{
				Count:     60,
				Algorithm: "bubble",
				DelayMs:   45,
				Order:     string(core.OrderShuffled),
			},
		},
		{
			Name:        "showcase",
			Description: "Merge sort over 120 bars at a presentation-friendly pace",
			Config: &Config{
				Count:     120,
				Algorithm: "merge",
				DelayMs:   15,
				Order:     string(core.OrderShuffled),
			},
		},
		{
			Name:        "large_rush",
			Description: "Quick sort racing through 400 bars with minimal pacing",
			Config: &Config{
				Count:     400,
				Algorithm: "quick",
				DelayMs:   2,
				Order:     string(core.OrderShuffled),
			},
		},
		{
			Name:        "worst_case_insertion",
			Description: "Insertion sort against a fully reversed input, its worst case",
			Config: &Config{
				Count:     80,
				Algorithm: "insertion",
				DelayMs:   10,
				Order:     string(core.OrderReversed),
			},
		},
		{
			Name:        "already_sorted",
			Description: "Cocktail sort over sorted input: one silent pass, then the completion sweep",
			Config: &Config{
				Count:     100,
				Algorithm: "cocktail",
				DelayMs:   8,
				Order:     string(core.OrderSorted),
			},
		},
		{
			Name:        "headless_sprint",
			Description: "Heap sort over 1000 bars with pacing disabled, for timing runs",
			Config: &Config{
				Count:     1000,
				Algorithm: "heap",
				DelayMs:   0,
				Order:     string(core.OrderShuffled),
				Headless:  true,
			},
		},
	}
}

// GetSceneByName returns a copy of the Config for the named scene, or nil
// if the scene is not known. The copy keeps callers from mutating the
// preset table.
func GetSceneByName(name string) *Config {
	for _, scene := range GetPredefinedScenes() {
		if scene.Name == name {
			return scene.Config.Clone()
		}
	}
	return nil
}
