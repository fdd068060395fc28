package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vladocavric/survey-js/pkg/editor"
	"github.com/vladocavric/survey-js/pkg/prompt"
	"github.com/vladocavric/survey-js/pkg/schema"
)

func (a *app) newEditCmd() *cobra.Command {
	var (
		answersPath string
		autosave    bool
	)
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the form interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			answers, err := loadAnswers(answersPath)
			if err != nil {
				return err
			}
			driver := prompt.NewSurveyDriver()
			session, err := a.open(editor.WithNotifier(prompt.NewNotifier(driver)))
			if err != nil {
				return err
			}
			if autosave {
				session.OnChange(func(form schema.Form) {
					if err := a.save(form); err != nil {
						a.logger().Error("autosave failed", "path", a.formPath, "error", err)
					}
				})
			}

			runner := prompt.NewRunner(session, driver,
				prompt.WithAnswers(answers),
				prompt.WithSave(func(_ context.Context, form schema.Form) error {
					return a.save(form)
				}),
			)
			err = runner.Run(cmd.Context())
			if errors.Is(err, prompt.ErrAborted) {
				fmt.Fprintln(a.stderr, "Aborted; unsaved changes were discarded.")
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&answersPath, "answers", "", "JSON file of sample answers used to mark hidden elements")
	cmd.Flags().BoolVar(&autosave, "autosave", false, "Write the document after every change")
	return cmd
}
