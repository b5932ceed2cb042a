package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/promptstudio/promptstudio-go/internal/client"
	"github.com/promptstudio/promptstudio-go/internal/collection"
	"github.com/promptstudio/promptstudio-go/internal/config"
	"github.com/promptstudio/promptstudio-go/internal/logging"
)

// errReported marks a failure the notifier has already shown.
var errReported = errors.New("reported")

// app carries the clients shared by every command. It is filled in once the
// global flags are parsed.
type app struct {
	client *client.Client
	store  *collection.Store
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	cfg := config.LoadClient()
	a := &app{}

	root := &cobra.Command{
		Use:           "promptctl",
		Short:         "Prompt Studio command line client",
		Long:          "Manage your prompts, browse the public library and enhance prompt text through a Prompt Studio server.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.logger = logging.NewWithWriter(cmd.ErrOrStderr(), logging.Options{Level: cfg.LogLevel})
			a.client = client.New(cfg.BaseURL, cfg.Token, &http.Client{Timeout: cfg.Timeout})
			a.store = collection.NewStore(a.client.Prompts(), a.logger)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "server base URL (PROMPTSTUDIO_URL)")
	flags.StringVar(&cfg.Token, "token", cfg.Token, "access token (PROMPTSTUDIO_TOKEN)")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "request timeout (PROMPTSTUDIO_TIMEOUT)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (LOG_LEVEL)")

	root.AddCommand(newEnhanceCmd(a))
	root.AddCommand(newIdeasCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newLibraryCmd(a))
	root.AddCommand(newViewCmd(a))
	root.AddCommand(newCreateCmd(a))
	root.AddCommand(newUpdateCmd(a))
	root.AddCommand(newDeleteCmd(a))
	root.AddCommand(newStatsCmd(a))
	root.AddCommand(newProfileCmd(a))
	return root
}

// requireSignIn fails early for commands that act on the caller's own data.
func (a *app) requireSignIn() error {
	if a.client.UserID() == "" {
		return fmt.Errorf("%w: set PROMPTSTUDIO_TOKEN or pass --token", client.ErrNoToken)
	}
	return nil
}

// notifier prints editor messages to the command's error stream.
type notifier struct {
	w io.Writer
}

func (n notifier) Success(msg string) { fmt.Fprintln(n.w, msg) }
func (n notifier) Error(msg string)   { fmt.Fprintln(n.w, "Error:", msg) }

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
