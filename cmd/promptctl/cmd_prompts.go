package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/promptstudio/promptstudio-go/internal/collection"
	"github.com/promptstudio/promptstudio-go/internal/editor"
	"github.com/promptstudio/promptstudio-go/internal/model"
)

// queryFlags are the local filters shared by list and library.
type queryFlags struct {
	search   string
	category string
	sort     string
	asJSON   bool
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "match title, description or tags")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "only show one category")
	cmd.Flags().StringVar(&f.sort, "sort", "", "order by views, likes or recent")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the prompts as JSON")
}

func (f *queryFlags) query() (collection.Query, error) {
	q := collection.Query{
		Search:   f.search,
		Category: model.Category(f.category),
		Sort:     collection.Sort(f.sort),
	}
	if !q.Category.Valid() {
		return q, fmt.Errorf("unknown category %q", f.category)
	}
	switch q.Sort {
	case collection.SortNone, collection.SortViews, collection.SortLikes, collection.SortRecent:
	default:
		return q, fmt.Errorf("unknown sort %q", f.sort)
	}
	return q, nil
}

func (f *queryFlags) print(w io.Writer, prompts []model.Prompt) error {
	if f.asJSON {
		return printJSON(w, prompts)
	}
	if len(prompts) == 0 {
		fmt.Fprintln(w, "No prompts found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tVIEWS\tLIKES\tPUBLIC\tUPDATED")
	for _, p := range prompts {
		category := string(p.Category)
		if category == "" {
			category = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%t\t%s\n",
			p.ID, p.Title, category, p.Views, p.Likes, p.IsPublic, p.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func newListCmd(a *app) *cobra.Command {
	var f queryFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your prompts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := f.query()
			if err != nil {
				return err
			}
			if err := a.requireSignIn(); err != nil {
				return err
			}
			prompts := a.store.ListOwn(cmd.Context(), a.client.UserID())
			return f.print(cmd.OutOrStdout(), collection.Filter(prompts, q))
		},
	}
	f.register(cmd)
	return cmd
}

func newLibraryCmd(a *app) *cobra.Command {
	var f queryFlags
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Browse the public prompt library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := f.query()
			if err != nil {
				return err
			}
			prompts := a.store.ListPublic(cmd.Context())
			return f.print(cmd.OutOrStdout(), collection.Filter(prompts, q))
		},
	}
	f.register(cmd)
	return cmd
}

func newViewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view <id>",
		Short: "Count a view of a public prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.client.Prompts().RecordView(cmd.Context(), args[0])
		},
	}
}

// promptFlags are the editable fields of a prompt.
type promptFlags struct {
	title       string
	description string
	content     string
	file        string
	tags        []string
	untag       []string
	category    string
	public      bool
}

func (f *promptFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "prompt title")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "short description")
	cmd.Flags().StringVar(&f.content, "content", "", "prompt text")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "read prompt text from a file, - for stdin")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "add a tag (repeatable)")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "prompt category")
	cmd.Flags().BoolVar(&f.public, "public", false, "share in the public library")
	cmd.MarkFlagsMutuallyExclusive("content", "file")
}

// apply copies the flags the user set onto doc and reports whether anything
// changed.
func (f *promptFlags) apply(cmd *cobra.Command, doc *editor.Document) (bool, error) {
	changed := false
	set := cmd.Flags().Changed

	if set("title") {
		doc.Title, changed = f.title, true
	}
	if set("description") {
		doc.Description, changed = f.description, true
	}
	if set("content") || set("file") {
		content, err := readContent(cmd.InOrStdin(), f.content, f.file)
		if err != nil {
			return false, err
		}
		doc.Content, changed = content, true
	}
	for _, tag := range f.tags {
		if doc.AddTag(tag) {
			changed = true
		}
	}
	for _, tag := range f.untag {
		doc.RemoveTag(strings.TrimSpace(tag))
		changed = true
	}
	if set("category") {
		c := model.Category(f.category)
		if !c.Valid() {
			return false, fmt.Errorf("unknown category %q", f.category)
		}
		doc.Category, changed = c, true
	}
	if set("public") {
		doc.IsPublic, changed = f.public, true
	}
	return changed, nil
}

func newCreateCmd(a *app) *cobra.Command {
	var f promptFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSignIn(); err != nil {
				return err
			}

			doc := &editor.Document{}
			if _, err := f.apply(cmd, doc); err != nil {
				return err
			}
			if err := doc.Validate(); err != nil {
				return errors.New(editor.Message(err))
			}

			p, err := a.store.Create(cmd.Context(), doc.Draft(), a.client.UserID())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.ID)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var f promptFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			p, err := a.client.Prompts().Get(ctx, id)
			if err != nil {
				return fmt.Errorf("load prompt %s: %w", id, err)
			}
			doc := editor.DocumentFrom(p)

			changed, err := f.apply(cmd, doc)
			if err != nil {
				return err
			}
			if !changed {
				return errors.New("nothing to update")
			}
			if err := doc.Validate(); err != nil {
				return errors.New(editor.Message(err))
			}

			updated, err := a.store.Update(ctx, id, doc.Patch())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s at %s\n", updated.ID, updated.UpdatedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringSliceVar(&f.untag, "untag", nil, "remove a tag (repeatable)")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete prompts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSignIn(); err != nil {
				return err
			}
			for _, id := range args {
				if err := a.store.Delete(cmd.Context(), id); err != nil {
					return fmt.Errorf("delete %s: %w", id, err)
				}
			}
			return nil
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise your prompts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSignIn(); err != nil {
				return err
			}
			s := collection.ComputeStats(a.store.ListOwn(cmd.Context(), a.client.UserID()))

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, s)
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Prompts\t%d\n", s.Total)
			fmt.Fprintf(tw, "Public\t%d\n", s.Public)
			fmt.Fprintf(tw, "Views\t%d\n", s.Views)
			fmt.Fprintf(tw, "Likes\t%d\n", s.Likes)
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func newProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.client.Profile(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
}
