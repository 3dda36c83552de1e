package cmd

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var setupTokenCmd = &cobra.Command{
	Use:   "setup-token --email <email> --password <password> [--set-secret]",
	Short: "Fetch a SIGNATE token and store it as a GitHub secret",
	Long: `Log in with the signate CLI and Base64-encode the resulting credential
file (~/.signate/signate.json) for the workflows.

With --set-secret the value is stored as the SIGNATE_TOKEN_B64 repository
secret through gh. Without it, the gh command to run is printed instead.
Missing --email/--password are prompted for on a terminal.

Examples:
  signate-deploy setup-token --email=you@example.com --password=your-password
  signate-deploy setup-token --email=you@example.com --set-secret`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := cmd.Flags().GetString("email")
		if err != nil {
			return err
		}
		password, err := cmd.Flags().GetString("password")
		if err != nil {
			return err
		}
		setSecret, err := cmd.Flags().GetBool("set-secret")
		if err != nil {
			return err
		}

		if email == "" {
			if email, err = ask("SIGNATE email", false); err != nil {
				return err
			}
		}
		if password == "" {
			if password, err = ask("SIGNATE password", true); err != nil {
				return err
			}
		}

		s, err := resolveSignate()
		if err != nil {
			return err
		}

		printer.Step("Fetching SIGNATE token...")
		debugArgv("running", s.Argv("token", "--email="+email, "--password="+password))
		if err := s.Token(cmd.Context(), email, password); err != nil {
			return toolFailed("failed to fetch the SIGNATE token.", err)
		}
		printer.Success("Token fetched")

		encoded, err := encodeCredential(settings.CredentialPath)
		if err != nil {
			return fail("%v", err)
		}
		printer.Success("Base64 encoded")

		if !setSecret {
			printer.Blank()
			printer.Line("Base64-encoded token (store it as a GitHub secret):")
			printer.Line("  gh secret set %s --body '%s'", settings.SecretName, encoded)
			printer.Blank()
			printer.Line("Or let this command set it for you:")
			printer.Line("  signate-deploy setup-token --email=%s --password=*** --set-secret", email)
			return nil
		}

		gh, err := newGitHub()
		if err != nil {
			return err
		}
		printer.Step("Setting GitHub secret...")
		debugArgv("running", gh.Argv("secret", "set", settings.SecretName, "--body", "***"))
		if err := gh.SetSecret(cmd.Context(), settings.SecretName, encoded); err != nil {
			return toolFailed("gh secret set failed.", err)
		}
		printer.Success("%s is set", settings.SecretName)
		printer.NextSteps("Done! Next step:", "signate-deploy init <competition-dir> --task-key <task_key>")
		return nil
	},
}

// encodeCredential reads the file `signate token` wrote and Base64-encodes it.
func encodeCredential(path string) (string, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%s not found", path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return "", fmt.Errorf("%s is empty", path)
	}
	return base64.StdEncoding.EncodeToString(content), nil
}

func ask(prompt string, secret bool) (string, error) {
	if !isTerminal() {
		return "", fail("%s is required (stdin is not a terminal)", prompt)
	}
	var (
		value string
		err   error
	)
	if secret {
		value, err = prompter.Password(prompt)
	} else {
		value, err = prompter.Line(prompt)
	}
	if err != nil {
		return "", fail("%v", err)
	}
	if value == "" {
		return "", fail("%s cannot be empty", prompt)
	}
	return value, nil
}

func init() {
	rootCmd.AddCommand(setupTokenCmd)
	setupTokenCmd.Flags().String("email", "", "SIGNATE account email")
	setupTokenCmd.Flags().String("password", "", "SIGNATE account password")
	setupTokenCmd.Flags().Bool("set-secret", false, "Store the token as a GitHub secret with gh")
}
