package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/vladocavric/survey-js/pkg/dnd"
	"github.com/vladocavric/survey-js/pkg/editor"
	"github.com/vladocavric/survey-js/pkg/importer"
	"github.com/vladocavric/survey-js/pkg/mutate"
	"github.com/vladocavric/survey-js/pkg/preview"
	"github.com/vladocavric/survey-js/pkg/prompt"
	"github.com/vladocavric/survey-js/pkg/schema"
	"github.com/vladocavric/survey-js/pkg/tree"
	"github.com/vladocavric/survey-js/pkg/visibility"
)

func (a *app) newNewCmd() *cobra.Command {
	var (
		title       string
		description string
		force       bool
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an empty form document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(a.formPath); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", a.formPath)
			}
			session := editor.New(editor.WithLogger(a.logger()))
			if err := session.SetMeta(cmd.Context(), title, description); err != nil {
				return err
			}
			if err := a.save(session.Form()); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Form written to %s\n", a.formPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", schema.DefaultFormTitle, "Form title")
	cmd.Flags().StringVar(&description, "description", "", "Form description")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing document")
	return cmd
}

func (a *app) newShowCmd() *cobra.Command {
	var answersPath string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the element outline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := a.open()
			if err != nil {
				return err
			}
			answers, err := loadAnswers(answersPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, prompt.Outline(session.Form(), answers))
			return nil
		},
	}
	cmd.Flags().StringVar(&answersPath, "answers", "", "JSON file of sample answers used to mark hidden elements")
	return cmd
}

func (a *app) newAddCmd() *cobra.Command {
	var (
		parent string
		title  string
	)
	cmd := &cobra.Command{
		Use:   "add <kind>",
		Short: "Add an element to the root or to a container",
		Long:  "Add an element. Kind is a question type (" + kindList() + ") or panel/dynamicpanel.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := schema.ParseKind(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return a.mutate(func(s *editor.Session) error {
				el, err := s.AddElement(ctx, kind, parent)
				if err != nil {
					return err
				}
				id := el.Identifier()
				if title != "" {
					if id, err = s.RetitleElement(ctx, id, title); err != nil {
						return err
					}
				}
				fmt.Fprintln(a.stdout, id)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&parent, "parent", "p", "", "Container to add into (root when empty)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "Title for the new element; also regenerates its identifier")
	return cmd
}

func kindList() string {
	names := make([]string, len(schema.QuestionTypes))
	for i, t := range schema.QuestionTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func (a *app) newUpdateCmd() *cobra.Command {
	var (
		name        string
		title       string
		description string
		visibleIf   string
		qtype       string
		required    bool
		readOnly    bool
		visible     bool
		choices     []string
		minCount    int
		maxCount    int
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the properties of an element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var patch mutate.Patch
			if flags.Changed("name") {
				patch.Identifier = &name
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("visible-if") {
				patch.VisibleIf = &visibleIf
			}
			if flags.Changed("visible") {
				patch.Visible = &visible
			}
			if flags.Changed("required") {
				patch.IsRequired = &required
			}
			if flags.Changed("read-only") {
				patch.ReadOnly = &readOnly
			}
			if flags.Changed("type") {
				t := schema.QuestionType(strings.ToLower(qtype))
				if !t.Valid() {
					return fmt.Errorf("unknown question type %q", qtype)
				}
				patch.Type = &t
			}
			if flags.Changed("choices") {
				patch.Choices = choices
			}
			if flags.Changed("min-panels") {
				patch.MinPanelCount = &minCount
			}
			if flags.Changed("max-panels") {
				patch.MaxPanelCount = &maxCount
			}

			ctx := cmd.Context()
			id := args[0]
			return a.mutate(func(s *editor.Session) error {
				if !patch.Empty() {
					if err := s.UpdateElement(ctx, id, patch); err != nil {
						return err
					}
					if patch.Identifier != nil {
						id = *patch.Identifier
					}
				}
				if flags.Changed("title") {
					next, err := s.RetitleElement(ctx, id, title)
					if err != nil {
						return err
					}
					id = next
				}
				fmt.Fprintln(a.stdout, id)
				return nil
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "New identifier")
	flags.StringVar(&title, "title", "", "New title; regenerates generated identifiers")
	flags.StringVar(&description, "description", "", "New description")
	flags.StringVar(&visibleIf, "visible-if", "", "Visibility rule, e.g. \"{country} = 'NL'\"")
	flags.StringVar(&qtype, "type", "", "Question type")
	flags.BoolVar(&required, "required", false, "Mark the question as required")
	flags.BoolVar(&readOnly, "read-only", false, "Mark the question as read-only")
	flags.BoolVar(&visible, "visible", true, "Show or hide the element")
	flags.StringSliceVar(&choices, "choices", nil, "Comma separated choice list")
	flags.IntVar(&minCount, "min-panels", 0, "Minimum dynamic panel count")
	flags.IntVar(&maxCount, "max-panels", 0, "Maximum dynamic panel count")
	return cmd
}

func (a *app) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an element and everything inside it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(func(s *editor.Session) error {
				return s.DeleteElement(cmd.Context(), args[0])
			})
		},
	}
}

func (a *app) newMoveCmd() *cobra.Command {
	var (
		into  string
		index int
	)
	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Move an element to another position or container",
		Long: "Move an element. The index addresses the destination as it was before " +
			"the element was removed; a negative index appends.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.open()
			if err != nil {
				return err
			}
			form := session.Form()
			pos, ok := tree.Locate(form.Elements, args[0])
			if !ok {
				return fmt.Errorf("move %q: %w", args[0], mutate.ErrNotFound)
			}

			dest := dnd.RootAt(index)
			seq := form.Elements
			if into != "" {
				container, found := tree.Find(form.Elements, into)
				if !found {
					return fmt.Errorf("move into %q: %w", into, mutate.ErrNotFound)
				}
				if dest, ok = dnd.In(container, index); !ok {
					return fmt.Errorf("move into question %q: %w", into, mutate.ErrInvalidKind)
				}
				seq, _ = tree.EditableSequence(container)
			}
			if index < 0 {
				dest.Index = len(seq)
			}

			err = session.Move(cmd.Context(), dnd.FromPosition(pos), dest)
			if err != nil && !errors.Is(err, dnd.ErrDestinationNotFound) {
				return err
			}
			if saveErr := a.save(session.Form()); saveErr != nil {
				return saveErr
			}
			return err
		},
	}
	cmd.Flags().StringVar(&into, "into", "", "Destination container (root when empty)")
	cmd.Flags().IntVar(&index, "index", -1, "Destination index")
	return cmd
}

func (a *app) newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Report duplicate identifiers and broken visibility rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := a.open()
			if err != nil {
				return err
			}
			diags := session.Lint()
			for _, d := range diags {
				fmt.Fprintf(a.stderr, "%s: %s\n", a.formPath, d)
			}
			if len(diags) > 0 {
				return fmt.Errorf("%d problem(s) found", len(diags))
			}
			return nil
		},
	}
}

func (a *app) newImportCmd() *cobra.Command {
	var (
		operation string
		parent    string
		external  bool
		list      bool
	)
	cmd := &cobra.Command{
		Use:   "import <openapi-document>",
		Short: "Append elements generated from an OpenAPI request body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			doc, err := importer.New(importer.WithExternalRefs(external)).Load(ctx, raw)
			if err != nil {
				return err
			}
			if list {
				for _, op := range doc.Operations() {
					marker := " "
					if op.HasBody {
						marker = "*"
					}
					fmt.Fprintf(a.stdout, "%s %-24s %s %s\n", marker, op.ID, op.Method, op.Path)
				}
				return nil
			}
			return a.mutate(func(s *editor.Session) error {
				elements, err := doc.Elements(operation, s.Form().Elements)
				if err != nil {
					return err
				}
				if err := s.ImportElements(ctx, parent, elements); err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "Imported %d element(s)\n", tree.Count(elements))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&operation, "operation", "o", "", "Operation ID (optional when only one operation has a body)")
	cmd.Flags().StringVarP(&parent, "parent", "p", "", "Container to import into (root when empty)")
	cmd.Flags().BoolVar(&external, "external-refs", false, "Resolve references to other files")
	cmd.Flags().BoolVar(&list, "list", false, "List operations instead of importing")
	return cmd
}

func (a *app) newPreviewCmd() *cobra.Command {
	var (
		output      string
		answersPath string
		templateDir string
		templateNm  string
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render an HTML outline of the form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := a.open()
			if err != nil {
				return err
			}
			answers, err := loadAnswers(answersPath)
			if err != nil {
				return err
			}
			opts := []preview.Option{preview.WithTemplate(templateNm)}
			if templateDir != "" {
				opts = append(opts, preview.WithFS(os.DirFS(templateDir)))
			}
			renderer, err := preview.New(opts...)
			if err != nil {
				return err
			}
			html, err := renderer.RenderString(session.Form(), answers)
			if err != nil {
				return err
			}
			if output == "" {
				fmt.Fprintln(a.stdout, html)
				return nil
			}
			if err := os.WriteFile(output, []byte(html), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Preview written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().StringVar(&answersPath, "answers", "", "JSON file of sample answers used to mark hidden elements")
	cmd.Flags().StringVar(&templateDir, "templates", "", "Directory holding custom templates")
	cmd.Flags().StringVar(&templateNm, "template", preview.DefaultTemplate, "Template name")
	return cmd
}

// loadAnswers reads a JSON object of sample answers. The reserved "extras"
// key, when present, fills the extras namespace.
func loadAnswers(path string) (visibility.Context, error) {
	if path == "" {
		return visibility.Context{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return visibility.Context{}, err
	}
	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return visibility.Context{}, fmt.Errorf("parse answers %s: %w", path, err)
	}
	ctx := visibility.Context{Values: values}
	if extras, ok := values["extras"].(map[string]any); ok {
		ctx.Extras = extras
		delete(values, "extras")
	}
	return ctx, nil
}
