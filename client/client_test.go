package client

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/signate-deploy/signate-deploy/internal/runner/runnertest"
)

func TestSignateListCommands(t *testing.T) {
	fake := &runnertest.Fake{}
	fake.Queue(0, "", "")
	fake.Queue(0, "", "")
	fake.Queue(4, "", "")
	s := &Signate{Path: "/opt/bin/signate", Dir: "/work", Runner: fake}
	ctx := context.Background()

	if code, err := s.CompetitionList(ctx); err != nil || code != 0 {
		t.Fatalf("CompetitionList: %d, %v", code, err)
	}
	if code, err := s.TaskList(ctx, "comp-1"); err != nil || code != 0 {
		t.Fatalf("TaskList: %d, %v", code, err)
	}
	if code, err := s.FileList(ctx, "task-1"); err != nil || code != 4 {
		t.Fatalf("FileList should forward the exit code: %d, %v", code, err)
	}

	want := [][]string{
		{"/opt/bin/signate", "competition-list"},
		{"/opt/bin/signate", "task-list", "--competition_key", "comp-1"},
		{"/opt/bin/signate", "file-list", "--task_key", "task-1"},
	}
	for i, w := range want {
		if fake.Calls[i].Mode != "passthrough" {
			t.Fatalf("call %d should be passthrough", i)
		}
		if got := fake.Argv(i); !reflect.DeepEqual(got, w) {
			t.Fatalf("call %d: expected %v, got %v", i, w, got)
		}
		if fake.Calls[i].Command.Dir != "/work" {
			t.Fatalf("call %d ran in %q", i, fake.Calls[i].Command.Dir)
		}
	}
}

func TestSignateTokenFailureUsesStdoutWhenStderrEmpty(t *testing.T) {
	fake := &runnertest.Fake{}
	fake.Queue(1, "invalid credentials", "")
	s := &Signate{Path: "signate", Prefix: []string{"-q"}, Runner: fake}

	err := s.Token(context.Background(), "a@b.c", "pw")
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected ToolError, got %v", err)
	}
	if toolErr.Output != "invalid credentials" || toolErr.ExitCode != 1 {
		t.Fatalf("unexpected error %+v", toolErr)
	}
	want := []string{"signate", "-q", "token", "--email=a@b.c", "--password=pw"}
	if got := fake.Argv(0); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if fake.Calls[0].Mode != "capture" {
		t.Fatal("token should be captured")
	}
}

func TestNewGitHubSplitsCommandLine(t *testing.T) {
	g, err := NewGitHub(`gh --repo "me/my comp"`, "", &runnertest.Fake{})
	if err != nil {
		t.Fatalf("NewGitHub: %v", err)
	}
	if want := []string{"gh", "--repo", "me/my comp"}; !reflect.DeepEqual(g.Command, want) {
		t.Fatalf("expected %v, got %v", want, g.Command)
	}
	if _, err := NewGitHub("   ", "", &runnertest.Fake{}); err == nil {
		t.Fatal("expected an error for an empty command")
	}
	if _, err := NewGitHub(`gh "unterminated`, "", &runnertest.Fake{}); err == nil {
		t.Fatal("expected an error for an unterminated quote")
	}
}

func TestRunWorkflow(t *testing.T) {
	fake := &runnertest.Fake{}
	g := &GitHub{Command: []string{"gh"}, Dir: "/repo", Runner: fake}

	err := g.RunWorkflow(context.Background(), "signate-submit.yml",
		Input{Key: "competition_dir", Value: "my comp"},
		Input{Key: "memo", Value: "it's v1; $(rm -rf)"},
	)
	if err != nil {
		t.Fatalf("RunWorkflow: %v", err)
	}
	want := []string{"gh", "workflow", "run", "signate-submit.yml", "-f", "competition_dir=my comp", "-f", "memo=it's v1; $(rm -rf)"}
	if got := fake.Argv(0); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if fake.Calls[0].Command.Dir != "/repo" {
		t.Fatalf("unexpected dir %q", fake.Calls[0].Command.Dir)
	}
}

func TestRunWorkflowFailure(t *testing.T) {
	fake := &runnertest.Fake{}
	fake.Queue(1, "", "could not find any workflows named signate-download.yml")
	g := &GitHub{Command: []string{"gh"}, Runner: fake}

	err := g.RunWorkflow(context.Background(), "signate-download.yml")
	var toolErr *ToolError
	if !errors.As(err, &toolErr) || toolErr.Output != "could not find any workflows named signate-download.yml" {
		t.Fatalf("expected ToolError with stderr, got %v", err)
	}
}

func TestSetSecret(t *testing.T) {
	fake := &runnertest.Fake{}
	g := &GitHub{Command: []string{"gh", "--repo", "me/comp"}, Runner: fake}

	if err := g.SetSecret(context.Background(), "SIGNATE_TOKEN_B64", "eyJ0b2tlbiI6IngifQ=="); err != nil {
		t.Fatalf("SetSecret: %v", err)
	}
	want := []string{"gh", "--repo", "me/comp", "secret", "set", "SIGNATE_TOKEN_B64", "--body", "eyJ0b2tlbiI6IngifQ=="}
	if got := fake.Argv(0); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestOpenWorkflowPage(t *testing.T) {
	fake := &runnertest.Fake{}
	fake.Queue(0, "https://github.com/me/comp\n", "")
	var opened string
	g := &GitHub{Command: []string{"gh"}, Runner: fake, OpenURL: func(u string) error {
		opened = u
		return nil
	}}

	got, err := g.OpenWorkflowPage(context.Background(), "signate-download.yml")
	if err != nil {
		t.Fatalf("OpenWorkflowPage: %v", err)
	}
	want := "https://github.com/me/comp/actions/workflows/signate-download.yml"
	if got != want || opened != want {
		t.Fatalf("expected %s, got %s (opened %s)", want, got, opened)
	}
	if argv := fake.Argv(0); !reflect.DeepEqual(argv, []string{"gh", "repo", "view", "--json", "url", "--jq", ".url"}) {
		t.Fatalf("unexpected argv %v", argv)
	}
}

func TestNewSignate(t *testing.T) {
	s, err := NewSignate("python3 -m signate", "/work", &runnertest.Fake{})
	if err != nil {
		t.Fatalf("NewSignate: %v", err)
	}
	want := []string{"python3", "-m", "signate", "competition-list"}
	if got := s.Argv("competition-list"); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if _, err := NewSignate("", "", &runnertest.Fake{}); err == nil {
		t.Fatal("expected an error for an empty command")
	}
}
