// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/playbook/lib/cli"
	"github.com/bureau-foundation/playbook/lib/config"
	"github.com/bureau-foundation/playbook/lib/playbook"
	"github.com/bureau-foundation/playbook/lib/scenario"
)

func testRegistry(extra ...scenario.Scenario) *playbook.Playbook {
	registry := playbook.New()
	registry.SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	registry.Add("Button",
		scenario.New("primary", scenario.Fixed(20, 1),
			scenario.ViewFunc(func() string { return "primary button" }), scenario.WithDelay(0)),
		scenario.New("secondary", scenario.Fixed(20, 1),
			scenario.ViewFunc(func() string { return "secondary button" }), scenario.WithDelay(0)),
	)
	registry.Add("Badge",
		scenario.New("new", scenario.Fixed(10, 1),
			scenario.ViewFunc(func() string { return "NEW" }), scenario.WithDelay(0)),
	)
	if len(extra) > 0 {
		registry.Add("Broken", extra...)
	}
	return registry
}

// run executes the command tree with args and returns stdout, stderr,
// and the error.
func run(t *testing.T, registry *playbook.Playbook, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvironmentVariable, "")
	var stdout, stderr bytes.Buffer
	err := Root(registry, Streams{Stdout: &stdout, Stderr: &stderr}).Execute(args)
	return stdout.String(), stderr.String(), err
}

func TestList(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name: "all",
			args: []string{"list"},
			want: []string{"Button/primary", "Button/secondary", "Badge/new", "fixed(20x1)", "3 of 3 scenarios"},
		},
		{
			name:    "query",
			args:    []string{"list", "--query", "second"},
			want:    []string{"Button/secondary", "1 of 3 scenarios"},
			notWant: []string{"Button/primary", "Badge/new"},
		},
		{
			name: "kind match keeps the group",
			args: []string{"list", "-q", "badge"},
			want: []string{"Badge/new", "1 of 3 scenarios"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			stdout, _, err := run(t, testRegistry(), test.args...)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			for _, want := range test.want {
				if !strings.Contains(stdout, want) {
					t.Errorf("output missing %q:\n%s", want, stdout)
				}
			}
			for _, notWant := range test.notWant {
				if strings.Contains(stdout, notWant) {
					t.Errorf("output contains %q:\n%s", notWant, stdout)
				}
			}
		})
	}
}

func TestSnapshotWritesFiles(t *testing.T) {
	dir := t.TempDir()
	stdout, _, err := run(t, testRegistry(), "snapshot", "--out", dir, "--profile", "ascii")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if !strings.Contains(stdout, "wrote 3 scenarios") {
		t.Errorf("stdout = %q", stdout)
	}

	for path, want := range map[string]string{
		"Button/primary.txt":   "primary button",
		"Button/secondary.ans": "secondary button",
		"Badge/new.txt":        "NEW",
	} {
		data, err := os.ReadFile(filepath.Join(dir, path))
		if err != nil {
			t.Fatalf("reading %s: %v", path, err)
		}
		if !strings.Contains(string(data), want) {
			t.Errorf("%s = %q, want it to contain %q", path, data, want)
		}
	}
}

func TestSnapshotQuery(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := run(t, testRegistry(), "snapshot", "--out", dir, "-q", "badge"); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Badge", "new.ans")); err != nil {
		t.Errorf("badge not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Button")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Button directory exists for a badge-only query (err %v)", err)
	}
}

func TestSnapshotNoMatch(t *testing.T) {
	_, _, err := run(t, testRegistry(), "snapshot", "--out", t.TempDir(), "-q", "nothing")
	var toolErr *cli.ToolError
	if !errors.As(err, &toolErr) || toolErr.Category != cli.CategoryNotFound {
		t.Fatalf("err = %v, want a not-found error", err)
	}
}

func TestSnapshotFailureExitCode(t *testing.T) {
	broken := scenario.New("explodes", scenario.Fixed(10, 1),
		scenario.ViewFunc(func() string { panic("boom") }), scenario.WithDelay(0))
	dir := t.TempDir()

	_, stderr, err := run(t, testRegistry(broken), "snapshot", "--out", dir)
	var exit *cli.ExitError
	if !errors.As(err, &exit) || exit.Code != 1 {
		t.Fatalf("err = %v, want exit code 1", err)
	}
	if !strings.Contains(stderr, "failed Broken/explodes") {
		t.Errorf("stderr = %q, want the failure reported", stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "Button", "primary.ans")); err != nil {
		t.Errorf("healthy scenarios not written: %v", err)
	}
}

func TestSnapshotBundleInspect(t *testing.T) {
	for _, compression := range []string{"zstd", "lz4", "none"} {
		t.Run(compression, func(t *testing.T) {
			bundle := filepath.Join(t.TempDir(), "frames.plbk")
			registry := testRegistry()
			if _, _, err := run(t, registry,
				"snapshot", "--bundle", bundle, "--compression", compression,
				"--profile", "ascii", "--name", "Review"); err != nil {
				t.Fatalf("snapshot: %v", err)
			}

			stdout, _, err := run(t, registry, "inspect", bundle)
			if err != nil {
				t.Fatalf("inspect: %v", err)
			}
			for _, want := range []string{`"Review"`, "3 scenarios", "Button/primary", "20x1", "ascii"} {
				if !strings.Contains(stdout, want) {
					t.Errorf("inspect output missing %q:\n%s", want, stdout)
				}
			}

			stdout, _, err = run(t, registry, "inspect", bundle, "--show", "Badge/new", "--plain")
			if err != nil {
				t.Fatalf("inspect --show: %v", err)
			}
			if !strings.Contains(stdout, "NEW") {
				t.Errorf("--show output = %q", stdout)
			}

			stdout, _, err = run(t, registry, "inspect", bundle, "--diagnose")
			if err != nil {
				t.Fatalf("inspect --diagnose: %v", err)
			}
			if !strings.Contains(stdout, `"shots"`) {
				t.Errorf("--diagnose output = %q", stdout)
			}
		})
	}
}

func TestInspectErrors(t *testing.T) {
	garbage := filepath.Join(t.TempDir(), "garbage")
	if err := os.WriteFile(garbage, []byte("not a bundle"), 0o644); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name     string
		args     []string
		category cli.ErrorCategory
	}{
		{"no path", []string{"inspect"}, cli.CategoryValidation},
		{"missing file", []string{"inspect", filepath.Join(t.TempDir(), "absent")}, cli.CategoryNotFound},
		{"not a bundle", []string{"inspect", garbage}, cli.CategoryValidation},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := run(t, testRegistry(), test.args...)
			var toolErr *cli.ToolError
			if !errors.As(err, &toolErr) || toolErr.Category != test.category {
				t.Fatalf("err = %v, want category %s", err, test.category)
			}
		})
	}
}

func TestVersionFlag(t *testing.T) {
	stdout, _, err := run(t, testRegistry(), "--version")
	if err != nil {
		t.Fatalf("--version: %v", err)
	}
	if !strings.HasPrefix(stdout, "playbook ") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := run(t, testRegistry(), "galery")
	if err == nil || !strings.Contains(err.Error(), "gallery") {
		t.Fatalf("err = %v, want a suggestion of gallery", err)
	}
}

func TestSettingsLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "playbook.jsonc")
	content := "{\n" +
		"  // comments are allowed\n" +
		"  \"name\": \"From file\",\n" +
		"  \"snapshot\": {\"limit\": 12, \"color_scheme\": \"dark\"},\n" +
		"}\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		args      []string
		wantName  string
		wantLimit int
		wantError bool
	}{
		{name: "file only", args: []string{"--config", path}, wantName: "From file", wantLimit: 12},
		{name: "flag overrides", args: []string{"--config", path, "--name", "Flag", "--limit", "3"}, wantName: "Flag", wantLimit: 3},
		{name: "zero limit from flag", args: []string{"--config", path, "--limit", "0"}, wantName: "From file", wantLimit: 0},
		{name: "invalid scheme", args: []string{"--scheme", "sepia"}, wantError: true},
		{name: "negative limit", args: []string{"--limit", "-1"}, wantError: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv(config.EnvironmentVariable, "")
			var common settings
			if err := common.flagSet("test").Parse(test.args); err != nil {
				t.Fatalf("parse: %v", err)
			}
			cfg, err := common.load()
			if test.wantError {
				if err == nil {
					t.Fatal("load succeeded, want an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if cfg.Name != test.wantName || cfg.Snapshot.Limit != test.wantLimit {
				t.Errorf("name %q limit %d, want %q %d", cfg.Name, cfg.Snapshot.Limit, test.wantName, test.wantLimit)
			}
		})
	}
}

func TestFanoutHandler(t *testing.T) {
	var warnings, everything bytes.Buffer
	handler := fanoutHandler{
		slog.NewTextHandler(&warnings, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(&everything, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}
	logger := slog.New(handler).With("scenario", "Button/primary")

	if !handler.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("fanout disabled for a level one handler accepts")
	}
	logger.Debug("rendering")
	logger.Warn("capture failed")

	if strings.Contains(warnings.String(), "rendering") {
		t.Errorf("warn handler received debug record: %s", warnings.String())
	}
	if !strings.Contains(warnings.String(), "capture failed") || !strings.Contains(warnings.String(), "Button/primary") {
		t.Errorf("warn handler output = %q", warnings.String())
	}
	if strings.Count(everything.String(), "\n") != 2 {
		t.Errorf("debug handler output = %q, want two records", everything.String())
	}
}

func TestNewLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	var base bytes.Buffer
	logger, closeLog, err := newLogger(slog.NewTextHandler(&base, nil), path)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Info("hello")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Errorf("log file = %q", data)
	}
	if !strings.Contains(base.String(), "hello") {
		t.Errorf("base handler = %q", base.String())
	}
}
