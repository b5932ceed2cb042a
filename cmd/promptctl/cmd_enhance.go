package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptstudio/promptstudio-go/internal/editor"
	"github.com/promptstudio/promptstudio-go/internal/model"
)

func newEnhanceCmd(a *app) *cobra.Command {
	var (
		text   string
		file   string
		id     string
		apply  bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "enhance",
		Short: "Enhance prompt text",
		Long: "Sends prompt text to the server's enhancement gateway and prints the rewrite.\n" +
			"Text comes from --text, --file or stdin. With --id the stored prompt is loaded,\n" +
			"and --apply saves the enhanced content back to it.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			doc := &editor.Document{}
			if id != "" {
				p, err := a.client.Prompts().Get(ctx, id)
				if err != nil {
					return fmt.Errorf("load prompt %s: %w", id, err)
				}
				doc = editor.DocumentFrom(p)
			}
			if id == "" || text != "" || file != "" {
				content, err := readContent(cmd.InOrStdin(), text, file)
				if err != nil {
					return err
				}
				doc.Content = content
			}

			ctl := editor.NewController(doc, a.client, notifier{cmd.ErrOrStderr()})
			defer ctl.Close()

			if err := ctl.Enhance(ctx); err != nil {
				return errReported
			}
			result, _ := ctl.Result()

			if asJSON {
				if err := printJSON(out, result); err != nil {
					return err
				}
			} else {
				printResult(out, result)
			}

			if !apply {
				return ctl.Discard()
			}
			if err := ctl.Accept(); err != nil {
				return err
			}
			if id == "" {
				return nil
			}
			if _, err := a.store.Update(ctx, id, doc.Patch()); err != nil {
				return fmt.Errorf("save prompt %s: %w", id, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "prompt text to enhance")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read prompt text from a file, - for stdin")
	cmd.Flags().StringVar(&id, "id", "", "enhance a stored prompt")
	cmd.Flags().BoolVar(&apply, "apply", false, "accept the enhancement and save it to --id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.MarkFlagsMutuallyExclusive("text", "file")
	return cmd
}

// readContent resolves prompt text from a flag, a file or r.
func readContent(r io.Reader, text, file string) (string, error) {
	switch {
	case text != "":
		return text, nil
	case file != "" && file != "-":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

func printResult(w io.Writer, r model.EnhancementResult) {
	fmt.Fprintln(w, strings.TrimSpace(r.Enhanced))
	if len(r.Improvements) > 0 {
		fmt.Fprintln(w, "\nImprovements:")
		for _, s := range r.Improvements {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}
	if len(r.Suggestions) > 0 {
		fmt.Fprintln(w, "\nSuggestions:")
		for _, s := range r.Suggestions {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}
}

func newIdeasCmd(a *app) *cobra.Command {
	var (
		category string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "ideas <topic>",
		Short: "Generate prompt ideas for a topic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.Ideas(cmd.Context(), strings.Join(args, " "), category)
			if err != nil {
				return errors.New(editor.Message(err))
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, resp)
			}
			if len(resp.Prompts) == 0 {
				fmt.Fprintln(out, "No ideas returned.")
				return nil
			}
			for i, idea := range resp.Prompts {
				fmt.Fprintf(out, "%d. %s\n", i+1, idea.Title)
				if idea.Description != "" {
					fmt.Fprintf(out, "   %s\n", idea.Description)
				}
				fmt.Fprintf(out, "   %s\n\n", idea.Prompt)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "idea category (default general)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}
