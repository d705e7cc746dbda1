// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of b9s

package view

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/b9s/b9s/internal/dao"
	"github.com/derailed/tview"
	"github.com/wI2L/jsondiff"
)

// Editor errors
var (
	ErrEditorCancelled = errors.New("editor cancelled")
	ErrNoChanges       = errors.New("no changes detected")
)

// EditSession represents an in-progress edit operation.
type EditSession struct {
	ResourceID *dao.ResourceID
	ID         string
	Original   map[string]interface{}
	TempFile   string
	ErrorMsg   string
}

// NewEditSession creates a new edit session.
func NewEditSession(rid *dao.ResourceID, id string) *EditSession {
	return &EditSession{
		ResourceID: rid,
		ID:         id,
	}
}

// Fetch loads the current entity state through its accessor.
func (e *EditSession) Fetch(ctx context.Context, getter dao.Getter) error {
	o, err := getter.Get(ctx, e.ID)
	if err != nil {
		return err
	}

	// Round trip through JSON to get an editable map.
	raw, err := json.Marshal(o.GetRaw())
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("failed to decode entity: %w", err)
	}

	e.Original = m
	return nil
}

// StartEdit creates a temp file, spawns the editor, and returns the modified
// JSON. It suspends the TUI during editing.
func (e *EditSession) StartEdit(app *tview.Application) (map[string]interface{}, error) {
	tmpFile, err := os.CreateTemp("", "b9s-edit-*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	e.TempFile = tmpFile.Name()

	if err := e.writeJSONWithError(tmpFile); err != nil {
		tmpFile.Close()
		return nil, err
	}
	tmpFile.Close()

	exitCode, err := e.spawnEditor(app)
	if err != nil {
		return nil, fmt.Errorf("editor failed: %w", err)
	}

	// Non-zero exit means cancel.
	if exitCode != 0 {
		return nil, ErrEditorCancelled
	}

	content, err := os.ReadFile(e.TempFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}

	content = stripErrorComment(content)

	var modified map[string]interface{}
	if err := json.Unmarshal(content, &modified); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	return modified, nil
}

// spawnEditor suspends the TUI and launches the editor.
func (e *EditSession) spawnEditor(app *tview.Application) (int, error) {
	editor := getEditor()

	var exitCode int
	suspended := app.Suspend(func() {
		cmd := exec.Command(editor, e.TempFile)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				exitCode = exitErr.ExitCode()
			} else {
				exitCode = 1
			}
		}
	})

	if !suspended {
		return 1, errors.New("failed to suspend application")
	}

	return exitCode, nil
}

// writeJSONWithError writes JSON to the temp file, optionally with error at top.
func (e *EditSession) writeJSONWithError(f *os.File) error {
	var buf bytes.Buffer

	if e.ErrorMsg != "" {
		buf.WriteString("// ERROR: " + e.ErrorMsg + "\n")
		buf.WriteString("// Fix the issue below and save, or save without changes to cancel.\n")
		buf.WriteString("// ---\n\n")
	}

	jsonBytes, err := json.MarshalIndent(e.Original, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	buf.Write(jsonBytes)
	buf.WriteString("\n")

	_, err = f.Write(buf.Bytes())
	return err
}

// Cleanup removes the temporary file.
func (e *EditSession) Cleanup() {
	if e.TempFile != "" {
		os.Remove(e.TempFile)
		e.TempFile = ""
	}
}

// SetError sets the error message for display on retry.
func (e *EditSession) SetError(msg string) {
	e.ErrorMsg = msg
}

// GeneratePatch diffs the original and modified documents. It returns
// ErrNoChanges when the two are identical.
func GeneratePatch(original, modified map[string]interface{}) (jsondiff.Patch, error) {
	patch, err := jsondiff.Compare(original, modified)
	if err != nil {
		return nil, fmt.Errorf("failed to generate patch: %w", err)
	}

	if len(patch) == 0 {
		return nil, ErrNoChanges
	}

	return patch, nil
}

// getEditor returns the editor command to use.
// Checks $EDITOR, then falls back to vim, then nano.
func getEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	if _, err := exec.LookPath("vim"); err == nil {
		return "vim"
	}
	return "nano"
}

// stripErrorComment removes the error comment block from the top of content.
func stripErrorComment(content []byte) []byte {
	lines := bytes.Split(content, []byte("\n"))
	startIdx := 0

	for i, line := range lines {
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 {
			continue
		}
		if bytes.HasPrefix(trimmed, []byte("//")) {
			startIdx = i + 1
			continue
		}
		break
	}

	if startIdx > 0 && startIdx < len(lines) {
		return bytes.Join(lines[startIdx:], []byte("\n"))
	}
	return content
}

// EditResource performs the full edit flow for an entity: fetch, edit in
// $EDITOR, diff, then submit the modified body. The loop allows retry when
// the backend rejects an update.
func EditResource(ctx context.Context, app *App, f dao.Factory, rid *dao.ResourceID, id string) error {
	acc, err := dao.AccessorFor(f, rid)
	if err != nil {
		return err
	}

	updater, ok := acc.(dao.Updater)
	if !ok {
		return fmt.Errorf("edit not supported for %s", rid.String())
	}

	session := NewEditSession(rid, id)
	defer session.Cleanup()

	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := session.Fetch(fetchCtx, acc); err != nil {
		return fmt.Errorf("failed to fetch entity: %w", err)
	}

	for {
		modified, err := session.StartEdit(app.Application)
		if err != nil {
			if errors.Is(err, ErrEditorCancelled) {
				return ErrEditorCancelled
			}
			return err
		}

		if _, err := GeneratePatch(session.Original, modified); err != nil {
			if errors.Is(err, ErrNoChanges) {
				// A save without changes after an error means give up.
				if session.ErrorMsg != "" {
					return ErrEditorCancelled
				}
				return ErrNoChanges
			}
			return err
		}

		updateCtx, updateCancel := context.WithTimeout(ctx, 2*time.Minute)
		_, err = updater.Update(updateCtx, id, modified)
		updateCancel()

		if err != nil {
			session.SetError(err.Error())
			session.Original = modified
			continue
		}

		return nil
	}
}
