package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/signate-deploy/signate-deploy/internal/config"
)

// ErrDirExists is returned when a competition directory is already present.
var ErrDirExists = errors.New("directory already exists")

// Outcome says what happened to one target file.
type Outcome int

const (
	Skipped Outcome = iota
	Created
	Updated
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	default:
		return "skipped"
	}
}

// Result pairs a target path with its outcome.
type Result struct {
	Path    string
	Outcome Outcome
}

// Materialize writes content to path unless the file exists and force is false.
func Materialize(path, content string, force bool) (Outcome, error) {
	if !force && exists(path) {
		return Skipped, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return Skipped, fmt.Errorf("failed to create parent directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return Skipped, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return Created, nil
}

// AppendFragment adds fragment to path once, keyed by marker. A file that
// already carries the marker is left alone even when force is set.
func AppendFragment(path, fragment, marker string, force bool) (Outcome, error) {
	existing, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Materialize(path, fragment, false)
	}
	if err != nil {
		return Skipped, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// TODO: decide whether force should replace an existing fragment in place
	if strings.Contains(string(existing), marker) {
		return Skipped, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return Skipped, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString("\n" + fragment); err != nil {
		return Skipped, fmt.Errorf("failed to append to %s: %w", path, err)
	}
	return Updated, nil
}

// InitRepo sets up the workflows and .gitignore fragment under root.
func InitRepo(root string, force bool, opts WorkflowOptions) ([]Result, error) {
	workflows, err := RenderWorkflows(opts)
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, wf := range workflows {
		outcome, err := Materialize(filepath.Join(root, wf.Path), wf.Content, force)
		if err != nil {
			return results, err
		}
		results = append(results, Result{Path: wf.Path, Outcome: outcome})
	}

	outcome, err := AppendFragment(filepath.Join(root, ".gitignore"), GitignoreFragment(), GitignoreMarker, force)
	if err != nil {
		return results, err
	}
	results = append(results, Result{Path: ".gitignore", Outcome: outcome})
	return results, nil
}

// Competition creates dir with its config, starter script and dependency
// list. A relative dir is taken from root. Nothing is written when dir
// already exists.
func Competition(root, dir string, cfg *config.CompetitionConfig) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	target := dir
	if !filepath.IsAbs(dir) {
		target = filepath.Join(root, dir)
	}
	if _, err := os.Lstat(target); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDirExists, dir)
	}

	data, err := cfg.Marshal()
	if err != nil {
		return nil, err
	}
	train, err := TrainScript(dir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(target, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	files := []struct {
		name    string
		content string
	}{
		{config.FileName, string(data)},
		{"train.py", train},
		{"requirements.txt", Requirements()},
	}

	var results []Result
	for _, file := range files {
		if err := os.WriteFile(filepath.Join(target, file.name), []byte(file.content), 0644); err != nil {
			return results, fmt.Errorf("failed to create file %s: %w", file.name, err)
		}
		results = append(results, Result{Path: filepath.Join(dir, file.name), Outcome: Created})
	}
	return results, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
