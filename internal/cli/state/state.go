// Package state persists what the last fetch and run did in a workspace.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// WorkspaceState records the most recent fetch and run.
type WorkspaceState struct {
	ProblemURL string    `json:"problem_url,omitempty"`
	CaseCount  int       `json:"case_count,omitempty"`
	FetchedAt  time.Time `json:"fetched_at,omitempty"`
	LastSource string    `json:"last_source,omitempty"`
	LastPassed *bool     `json:"last_passed,omitempty"`
	LastRunAt  time.Time `json:"last_run_at,omitempty"`
}

func Load(path string) (WorkspaceState, error) {
	var st WorkspaceState
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return st, fmt.Errorf("read workspace state failed: %w", err)
	}
	if len(data) == 0 {
		return st, nil
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return st, fmt.Errorf("parse workspace state failed: %w", err)
	}
	return st, nil
}

func Save(path string, st WorkspaceState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create workspace state dir failed: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal workspace state failed: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write workspace state failed: %w", err)
	}
	return nil
}

func Clear(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove workspace state failed: %w", err)
	}
	return nil
}
