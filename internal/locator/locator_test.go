package locator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTool(t *testing.T, dir, name string, mode os.FileMode) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), mode); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLocateSearchPathWins(t *testing.T) {
	root := t.TempDir()
	onPath := writeTool(t, filepath.Join(root, "path"), "signate", 0o755)
	writeTool(t, filepath.Join(root, "user", "bin"), "signate", 0o755)
	writeTool(t, filepath.Join(root, "py", "bin"), "signate", 0o755)

	env := Env{
		SearchPath:  filepath.Join(root, "path"),
		UserBase:    filepath.Join(root, "user"),
		Interpreter: filepath.Join(root, "py", "python3"),
		GOOS:        "linux",
	}
	got, err := Locate("signate", env)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != onPath {
		t.Fatalf("expected %s, got %s", onPath, got)
	}
}

func TestLocateUserBaseBeforeInterpreter(t *testing.T) {
	root := t.TempDir()
	userTool := writeTool(t, filepath.Join(root, "user", "bin"), "signate", 0o755)
	writeTool(t, filepath.Join(root, "py"), "signate", 0o755)

	env := Env{
		SearchPath:  filepath.Join(root, "empty"),
		UserBase:    filepath.Join(root, "user"),
		Interpreter: filepath.Join(root, "py", "python3"),
		GOOS:        "linux",
	}
	got, err := Locate("signate", env)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != userTool {
		t.Fatalf("expected %s, got %s", userTool, got)
	}
}

func TestLocateInterpreterDirs(t *testing.T) {
	root := t.TempDir()
	pyDir := filepath.Join(root, "py")

	env := Env{Interpreter: filepath.Join(pyDir, "python3"), GOOS: "linux"}

	sibling := writeTool(t, pyDir, "signate", 0o644)
	got, err := Locate("signate", env)
	if err != nil || got != sibling {
		t.Fatalf("expected %s, got %q (%v)", sibling, got, err)
	}

	scripts := writeTool(t, filepath.Join(pyDir, "bin"), "signate", 0o644)
	got, err = Locate("signate", env)
	if err != nil || got != scripts {
		t.Fatalf("scripts dir should be probed before the interpreter dir: want %s, got %q (%v)", scripts, got, err)
	}
}

func TestLocateWindowsVariants(t *testing.T) {
	root := t.TempDir()
	exe := writeTool(t, filepath.Join(root, "user", "Scripts"), "signate.exe", 0o644)
	writeTool(t, filepath.Join(root, "user", "Scripts"), "signate", 0o644)

	env := Env{UserBase: filepath.Join(root, "user"), GOOS: "windows"}
	got, err := Locate("signate", env)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != exe {
		t.Fatalf("expected suffixed variant %s, got %s", exe, got)
	}
}

func TestLocateWindowsSearchPathExt(t *testing.T) {
	root := t.TempDir()
	cmd := writeTool(t, root, "signate.cmd", 0o644)

	env := Env{SearchPath: root, PathExt: ".EXE;.CMD", GOOS: "windows"}
	got, err := Locate("signate", env)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != cmd {
		t.Fatalf("expected %s, got %s", cmd, got)
	}
}

func TestLocateSkipsNonExecutableOnPath(t *testing.T) {
	root := t.TempDir()
	writeTool(t, filepath.Join(root, "a"), "signate", 0o644)
	want := writeTool(t, filepath.Join(root, "b"), "signate", 0o755)

	env := Env{
		SearchPath: filepath.Join(root, "a") + string(os.PathListSeparator) + filepath.Join(root, "b"),
		GOOS:       "linux",
	}
	got, err := Locate("signate", env)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestLocateNotFound(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "bin", "signate"), 0o755); err != nil {
		t.Fatal(err)
	}
	env := Env{
		SearchPath:  filepath.Join(root, "bin"),
		UserBase:    root,
		Interpreter: filepath.Join(root, "python3"),
		GOOS:        "linux",
	}
	_, err := Locate("signate", env)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLocateEmptyEnv(t *testing.T) {
	if _, err := Locate("signate", Env{GOOS: "linux"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
