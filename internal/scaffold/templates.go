package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// GitHub expressions use ${{ }}, so our own placeholders are [[ ]].
var templates = template.Must(
	template.New("").Delims("[[", "]]").Option("missingkey=error").ParseFS(templateFS, "templates/*.tmpl"),
)

// GitignoreMarker identifies the fragment inside an existing .gitignore.
const GitignoreMarker = "# === signate-deploy ==="

const (
	SubmitWorkflow   = "signate-submit.yml"
	DownloadWorkflow = "signate-download.yml"
	WorkflowDir      = ".github/workflows"
)

// WorkflowOptions parameterize the generated GitHub Actions workflows.
type WorkflowOptions struct {
	PythonVersion   string
	RetentionDays   int
	SecretName      string
	DefaultPackages string
}

// DefaultWorkflowOptions matches what `signate token` + `gh secret set` produce.
func DefaultWorkflowOptions() WorkflowOptions {
	return WorkflowOptions{
		PythonVersion:   "3.12",
		RetentionDays:   90,
		SecretName:      "SIGNATE_TOKEN_B64",
		DefaultPackages: "pandas numpy scikit-learn lightgbm",
	}
}

// Workflow is one rendered workflow file.
type Workflow struct {
	Path    string // relative to the repository root
	Content string
}

// RenderWorkflows renders both workflows and checks that each is valid YAML.
func RenderWorkflows(opts WorkflowOptions) ([]Workflow, error) {
	if opts.PythonVersion == "" || opts.SecretName == "" || opts.RetentionDays <= 0 {
		return nil, fmt.Errorf("incomplete workflow options: %+v", opts)
	}

	var workflows []Workflow
	for _, name := range []string{SubmitWorkflow, DownloadWorkflow} {
		content, err := render(name+".tmpl", opts)
		if err != nil {
			return nil, err
		}
		var doc map[string]any
		if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
			return nil, fmt.Errorf("rendered %s is not valid YAML: %w", name, err)
		}
		workflows = append(workflows, Workflow{
			Path:    filepath.Join(WorkflowDir, name),
			Content: content,
		})
	}
	return workflows, nil
}

// GitignoreFragment is the block appended to the repository's .gitignore.
func GitignoreFragment() string {
	content, err := render("gitignore.tmpl", nil)
	if err != nil {
		panic(err)
	}
	return content
}

// TrainScript renders the starter training script for a competition directory.
func TrainScript(competitionDir string) (string, error) {
	return render("train.py.tmpl", struct{ CompetitionDir string }{filepath.ToSlash(competitionDir)})
}

// Requirements is the default dependency list for the starter script.
func Requirements() string {
	content, err := render("requirements.txt.tmpl", nil)
	if err != nil {
		panic(err)
	}
	return content
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
