package locator

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNotFound is returned when no strategy produced a candidate.
var ErrNotFound = errors.New("executable not found")

// Env holds every ambient input the lookup depends on, so that callers (and
// tests) decide what the process environment looks like.
type Env struct {
	SearchPath  string // PATH-style list
	PathExt     string // Windows only, PATHEXT-style list
	UserBase    string // per-user install base used by `pip install --user`
	Interpreter string // path of the running interpreter/binary
	GOOS        string
}

// DefaultEnv reads the lookup inputs from the current process.
func DefaultEnv() Env {
	env := Env{
		SearchPath: os.Getenv("PATH"),
		PathExt:    os.Getenv("PATHEXT"),
		GOOS:       runtime.GOOS,
	}
	// a failure here only disables the user-site strategy
	if base, err := userBase(env.GOOS); err == nil {
		env.UserBase = base
	}
	if exe, err := os.Executable(); err == nil {
		env.Interpreter = exe
	}
	return env
}

// Locate finds an invocable path for name. Strategies run in order and the
// first hit wins: the search path, the per-user scripts directory, then the
// interpreter's own directory.
func Locate(name string, env Env) (string, error) {
	if found, ok := searchPath(name, env); ok {
		return found, nil
	}
	if env.UserBase != "" {
		if found, ok := probe([]string{filepath.Join(env.UserBase, scriptsDir(env.GOOS))}, name, env.GOOS); ok {
			return found, nil
		}
	}
	if env.Interpreter != "" {
		dir := filepath.Dir(env.Interpreter)
		if found, ok := probe([]string{filepath.Join(dir, scriptsDir(env.GOOS)), dir}, name, env.GOOS); ok {
			return found, nil
		}
	}
	return "", ErrNotFound
}

func searchPath(name string, env Env) (string, bool) {
	if env.SearchPath == "" {
		return "", false
	}
	names := []string{name}
	if env.GOOS == "windows" && filepath.Ext(name) == "" {
		names = nil
		for _, ext := range pathExts(env.PathExt) {
			names = append(names, name+ext)
		}
		names = append(names, name)
	}
	for _, dir := range filepath.SplitList(env.SearchPath) {
		if dir == "" {
			dir = "."
		}
		for _, n := range names {
			candidate := filepath.Join(dir, n)
			if isExecutable(candidate, env.GOOS) {
				return candidate, true
			}
		}
	}
	return "", false
}

func probe(dirs []string, name, goos string) (string, bool) {
	for _, dir := range dirs {
		for _, n := range nameVariants(name, goos) {
			candidate := filepath.Join(dir, n)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
	}
	return "", false
}

// nameVariants lists name with the platform executable suffix first.
func nameVariants(name, goos string) []string {
	if goos == "windows" && !strings.HasSuffix(strings.ToLower(name), ".exe") {
		return []string{name + ".exe", name}
	}
	return []string{name}
}

func isExecutable(path, goos string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if goos == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

func pathExts(raw string) []string {
	if raw == "" {
		return []string{".com", ".exe", ".bat", ".cmd"}
	}
	var exts []string
	for _, e := range strings.Split(strings.ToLower(raw), ";") {
		if e == "" {
			continue
		}
		if e[0] != '.' {
			e = "." + e
		}
		exts = append(exts, e)
	}
	return exts
}

func scriptsDir(goos string) string {
	if goos == "windows" {
		return "Scripts"
	}
	return "bin"
}

// userBase mirrors where `pip install --user` places console scripts.
func userBase(goos string) (string, error) {
	if base := os.Getenv("PYTHONUSERBASE"); base != "" {
		return base, nil
	}
	if goos == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Python"), nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local"), nil
}
