package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wazihub/wazi-go/internal/models"
	"github.com/wazihub/wazi-go/internal/store"
)

func newSurveysCommand(app func() *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "surveys",
		Short: "Manage your surveys",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your surveys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			if err := a.stores.Surveys.FetchSurveys(cmd.Context()); err != nil {
				return err
			}
			for _, sv := range a.stores.Surveys.Surveys() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  [%s]\n", sv.ID, sv.Title, sv.PaymentOption)
			}
			return nil
		},
	}

	var title, description, paymentOption, filePath string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a survey from an attachment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			data, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("read survey file: %w", err)
			}
			a.stores.Surveys.SetSelectedFile(&models.FileUpload{
				Name: filepath.Base(filePath),
				Data: data,
			})
			if err := a.stores.Surveys.CreateSurvey(cmd.Context(), title, description, paymentOption); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "survey created")
			return nil
		},
	}
	create.Flags().StringVar(&title, "title", "", "survey title")
	create.Flags().StringVar(&description, "description", "", "survey description")
	create.Flags().StringVar(&paymentOption, "payment-option", "", "payment option tag")
	create.Flags().StringVar(&filePath, "file", "", "path of the file to attach")

	del := &cobra.Command{
		Use:   "delete <survey-id>",
		Short: "Delete a survey",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().stores.Surveys.DeleteSurvey(cmd.Context(), args[0])
		},
	}

	responses := &cobra.Command{
		Use:   "responses <survey-id>",
		Short: "Show a survey's responses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := app().stores.Surveys.FetchResponses(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, r := range out {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %v\n", r.ID, r.UserID, r.Answers)
			}
			return nil
		},
	}

	var upTitle, upDescription, upPaymentOption string
	update := &cobra.Command{
		Use:   "update <survey-id>",
		Short: "Edit a survey's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().stores.Surveys.UpdateSurvey(cmd.Context(), args[0], upTitle, upDescription, upPaymentOption)
		},
	}
	update.Flags().StringVar(&upTitle, "title", "", "survey title")
	update.Flags().StringVar(&upDescription, "description", "", "survey description")
	update.Flags().StringVar(&upPaymentOption, "payment-option", "", "payment option tag")

	respond := &cobra.Command{
		Use:   "respond <survey-id> <question=answer>...",
		Short: "Submit answers to a survey",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			answers := map[string]string{}
			for _, pair := range args[1:] {
				k, v, ok := strings.Cut(pair, "=")
				if !ok {
					return fmt.Errorf("answer %q is not question=answer", pair)
				}
				answers[k] = v
			}
			return app().stores.Surveys.SubmitResponse(cmd.Context(), args[0], answers)
		},
	}

	show := &cobra.Command{
		Use:   "show <survey-id>",
		Short: "Show a single survey",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sv, err := app().api.GetSurvey(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  [%s]\n%s\n", sv.ID, sv.Title, sv.PaymentOption, sv.Description)
			if sv.File != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "file: %s\n", sv.File.URI)
			}
			return nil
		},
	}

	cmd.AddCommand(list, create, del, responses, update, respond, show, newSurveyFormCommand(app))
	return cmd
}

// newSurveyFormCommand drives the draft editor end to end from flags: stage
// the questions, validate, submit. Question specs read "text:type" or
// "text:type:opt1|opt2".
func newSurveyFormCommand(app func() *appContext) *cobra.Command {
	var title string
	var questionSpecs []string
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose and submit a question-based survey",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			form := a.stores.SurveyForm
			form.SetTitle(title)
			for i, spec := range questionSpecs {
				if i > 0 {
					form.AddQuestion()
				}
				parts := strings.SplitN(spec, ":", 3)
				qtype := store.QuestionText
				if len(parts) > 1 && parts[1] != "" {
					qtype = store.QuestionType(parts[1])
				}
				form.UpdateQuestion(i, parts[0], qtype)
				if len(parts) == 3 {
					for j, opt := range strings.Split(parts[2], "|") {
						form.AddOption(i)
						form.SetOption(i, j, opt)
					}
				}
			}
			if err := form.Submit(cmd.Context()); err != nil {
				for field, msg := range form.Errors() {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", field, msg)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "survey submitted")
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "survey title")
	cmd.Flags().StringArrayVar(&questionSpecs, "question", nil, "question as text:type[:opt1|opt2]")
	return cmd
}
