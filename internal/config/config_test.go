// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/gogpu/gpuctx"
	"github.com/gogpu/gputypes"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", `platform: scripted
backends: [gl]
power_preference: high-performance
debug: true
fail:
  - primary-gpu:adapter
log_level: debug
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Platform != "scripted" || !cfg.Debug || cfg.PowerPreference != "high-performance" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if !slices.Equal(cfg.Backends, []string{"gl"}) || !slices.Equal(cfg.Fail, []string{"primary-gpu:adapter"}) {
		t.Fatalf("unexpected lists: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"platform":"wgpu","label":"demo","trace_driver":true,"shader":"s.wgsl"}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Platform != "wgpu" || cfg.Label != "demo" || !cfg.TraceDriver || cfg.Shader != "s.wgsl" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "platform=\"scripted\"\nbackends=[\"webgpu\",\"webgl\"]\ntarget_tag=\"div\"\nshader_root=\"/srv\"\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Platform != "scripted" || cfg.TargetTag != "div" || cfg.ShaderRoot != "/srv" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	kinds, err := cfg.BackendKinds()
	if err != nil {
		t.Fatalf("BackendKinds: %v", err)
	}
	if !slices.Equal(kinds, []gpuctx.BackendKind{gpuctx.PrimaryGPU, gpuctx.PortableGL}) {
		t.Errorf("BackendKinds() = %v", kinds)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
	p = writeTempFile(t, d, "bad.json", "{")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestWithDefaults(t *testing.T) {
	cfg := Config{Platform: "scripted"}.WithDefaults()
	d := Default()
	if cfg.Platform != "scripted" {
		t.Errorf("Platform = %q, want scripted", cfg.Platform)
	}
	if !slices.Equal(cfg.Backends, d.Backends) || cfg.Label != d.Label || cfg.LogLevel != d.LogLevel {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestPower(t *testing.T) {
	tests := []struct {
		in      string
		want    gputypes.PowerPreference
		wantErr bool
	}{
		{"", gputypes.PowerPreferenceNone, false},
		{"none", gputypes.PowerPreferenceNone, false},
		{"low-power", gputypes.PowerPreferenceLowPower, false},
		{"High-Performance", gputypes.PowerPreferenceHighPerformance, false},
		{"turbo", gputypes.PowerPreferenceNone, true},
	}
	for _, tt := range tests {
		got, err := Config{PowerPreference: tt.in}.Power()
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("Power(%q) = %v, %v; want %v, wantErr %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestLevel(t *testing.T) {
	if l, err := (Config{LogLevel: "debug"}).Level(); err != nil || l != slog.LevelDebug {
		t.Errorf("Level(debug) = %v, %v", l, err)
	}
	if l, err := (Config{}).Level(); err != nil || l != slog.LevelWarn {
		t.Errorf("Level(\"\") = %v, %v", l, err)
	}
	if _, err := (Config{LogLevel: "loud"}).Level(); err == nil {
		t.Error("Level(loud) should fail")
	}
}

func TestOptions(t *testing.T) {
	if _, err := (Config{Backends: []string{"vulkan"}}).Options(); err == nil {
		t.Error("Options() with unknown backend should fail")
	}
	opts, err := Default().Options()
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	if len(opts) != 4 {
		t.Errorf("len(Options()) = %d, want 4", len(opts))
	}
}
