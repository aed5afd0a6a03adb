// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/playbook/lib/cli"
	"github.com/bureau-foundation/playbook/lib/playbook"
	"github.com/bureau-foundation/playbook/lib/playbookui"
	"github.com/bureau-foundation/playbook/lib/store"
)

// runSession runs the catalog or gallery TUI until the user quits.
//
// Background logging (capture failures, duplicate registrations) is
// routed to the status bar, since writing to stderr would corrupt the
// alt-screen. --log-output adds a JSON file that receives everything.
func runSession(registry *playbook.Playbook, mode store.Mode, common *settings) error {
	cfg, err := common.load()
	if err != nil {
		return err
	}
	pipelineConfig, err := cfg.Pipeline()
	if err != nil {
		return cli.Validation("%w", err)
	}

	tuiHandler := playbookui.NewLogHandler(slog.LevelWarn)
	logger, closeLog, err := newLogger(tuiHandler, common.logOutput)
	if err != nil {
		return err
	}
	defer closeLog()
	registry.SetLogger(logger)
	pipelineConfig.Logger = logger

	session := store.New(registry, store.Config{
		Name:     cfg.Name,
		Mode:     mode,
		Snapshot: pipelineConfig,
	})
	defer session.Close()

	model := playbookui.New(session, playbookui.Options{
		Scheme:    liveScheme(lipgloss.HasDarkBackground()),
		Profile:   lipgloss.ColorProfile(),
		ExportDir: cfg.Export.Dir,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	tuiHandler.SetProgram(program)

	if _, err := program.Run(); err != nil {
		return cli.Internal("running %s: %w", mode, err)
	}
	return nil
}
