package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/TexablePlum/Sort-Algoritms/core"
)

func TestValidateConfigFillsDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ValidateConfig(cfg))

	want := DefaultConfig()
	want.DelayMs = 0
	want.FrameIntervalMs = 0
	want.MetricsIntervalMs = 0
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateConfigRejects(t *testing.T) {
	cases := []struct {
		name string
		cfg  *Config
	}{
		{"nil config", nil},
		{"count below minimum", &Config{Count: 1}},
		{"count above maximum", &Config{Count: MaxBarCount + 1}},
		{"negative delay", &Config{DelayMs: -1}},
		{"unknown algorithm", &Config{Algorithm: "zzz"}},
		{"unknown order", &Config{Order: "diagonal"}},
		{"bad bar color", &Config{BarColor: "red"}},
		{"bad active color", &Config{ActiveColor: "#12"}},
		{"negative frame interval", &Config{FrameIntervalMs: -5}},
		{"negative trace capacity", &Config{TraceCapacity: -1}},
		{"negative metrics interval", &Config{MetricsIntervalMs: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, ValidateConfig(tc.cfg))
		})
	}
}

func TestConfigCloneIndependent(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Count = 999
	clone.Algorithm = "quick"

	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("Original mutated through clone (-want +got):\n%s", diff)
	}
}

func TestConfigLayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 42
	cfg.Order = string(core.OrderReversed)

	want := core.Layout{
		Count:        42,
		Spacing:      DefaultSpacing,
		Width:        CanvasWidth,
		Height:       CanvasHeight,
		MinMagnitude: MinBarMagnitude,
		BarColor:     core.DefaultBarColor,
		Order:        core.OrderReversed,
	}
	if diff := cmp.Diff(want, cfg.Layout()); diff != "" {
		t.Errorf("Layout mismatch (-want +got):\n%s", diff)
	}
}

func TestPredefinedScenesAreValid(t *testing.T) {
	scenes := GetPredefinedScenes()
	require.NotEmpty(t, scenes)

	for _, scene := range scenes {
		require.NotEmpty(t, scene.Name)
		require.NotEmpty(t, scene.Description)
		require.NotNil(t, scene.Config)
		require.NoError(t, ValidateConfig(scene.Config.Clone()), "scene %s", scene.Name)
	}
}

func TestGetSceneByNameClones(t *testing.T) {
	first := GetSceneByName("classroom")
	require.NotNil(t, first)
	first.Count = 9999

	second := GetSceneByName("classroom")
	require.NotNil(t, second)
	require.Equal(t, 60, second.Count)

	require.Nil(t, GetSceneByName("nope"))
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.yaml")
	data := "count: 150\nalgorithm: quick\ndelay_ms: 5\norder: reversed\nlisten_addr: 0.0.0.0:9090\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, 150, cfg.Count)
	require.Equal(t, "quick", cfg.Algorithm)
	require.Equal(t, 5, cfg.DelayMs)
	require.Equal(t, string(core.OrderReversed), cfg.Order)
	require.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)

	// Omitted keys keep their defaults.
	require.Equal(t, string(core.DefaultBarColor), cfg.BarColor)
	require.Equal(t, DefaultStaticDir, cfg.StaticDir)
}

func TestLoadConfigFileRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "typo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("countt: 10\n"), 0o644))

	_, err := LoadConfigFile(path)
	require.Error(t, err)
}

func TestLoadConfigFileRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("count: 99999\n"), 0o644))

	_, err := LoadConfigFile(path)
	require.Error(t, err)
}

func TestLoadConfigFileMissing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLayoutHash(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	require.Equal(t, computeLayoutHash(a), computeLayoutHash(b))
	require.Len(t, computeLayoutHash(a), LayoutHashLength)

	b.Count = 200
	require.NotEqual(t, computeLayoutHash(a), computeLayoutHash(b))

	b = DefaultConfig()
	b.Order = string(core.OrderSorted)
	require.NotEqual(t, computeLayoutHash(a), computeLayoutHash(b))

	// Pacing does not move bars, so it must not change the hash.
	b = DefaultConfig()
	b.DelayMs = 999
	require.Equal(t, computeLayoutHash(a), computeLayoutHash(b))
}
