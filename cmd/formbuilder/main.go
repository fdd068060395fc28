package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vladocavric/survey-js/pkg/codec"
	"github.com/vladocavric/survey-js/pkg/editor"
	"github.com/vladocavric/survey-js/pkg/schema"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		log.Fatalf("formbuilder: %v", err)
	}
}

// app carries the persistent flags shared by every command.
type app struct {
	formPath string
	verbose  bool
	stdout   io.Writer
	stderr   io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}
	root := &cobra.Command{
		Use:           "formbuilder",
		Short:         "Build nested survey forms from the command line",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVarP(&a.formPath, "form", "f", "form.json", "Form document to edit (.json, .yaml or .yml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log every command to stderr")

	root.AddCommand(
		a.newNewCmd(),
		a.newShowCmd(),
		a.newAddCmd(),
		a.newUpdateCmd(),
		a.newDeleteCmd(),
		a.newMoveCmd(),
		a.newLintCmd(),
		a.newImportCmd(),
		a.newPreviewCmd(),
		a.newEditCmd(),
	)
	return root
}

func (a *app) logger() *slog.Logger {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
}

// open loads the form file into a session. Notifications go to stderr.
func (a *app) open(options ...editor.Option) (*editor.Session, error) {
	form, err := codec.LoadFile(a.formPath)
	if err != nil {
		return nil, err
	}
	base := []editor.Option{
		editor.WithForm(form),
		editor.WithLogger(a.logger()),
		editor.WithNotifier(editor.NotifierFunc(func(_ context.Context, message string) {
			fmt.Fprintln(a.stderr, message)
		})),
	}
	return editor.New(append(base, options...)...), nil
}

func (a *app) save(form schema.Form) error {
	return codec.SaveFile(a.formPath, form)
}

// mutate opens the form, runs fn against the session and saves the result.
func (a *app) mutate(fn func(s *editor.Session) error) error {
	session, err := a.open()
	if err != nil {
		return err
	}
	if err := fn(session); err != nil {
		return err
	}
	return a.save(session.Form())
}
