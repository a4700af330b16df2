package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wazihub/wazi-go/internal/models"
)

func newQuestionsCommand(app func() *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Browse and ask community questions",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			if err := a.stores.Questions.FetchQuestions(cmd.Context()); err != nil {
				return err
			}
			for _, q := range a.stores.Questions.Questions() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  (%d responses)  %s\n",
					q.ID, q.Text, len(q.Responses), q.CreatedAt)
			}
			return nil
		},
	}

	ask := &cobra.Command{
		Use:   "ask <text>",
		Short: "Submit a new question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().stores.Questions.SubmitQuestion(cmd.Context(), strings.Join(args, " "))
		},
	}

	respond := &cobra.Command{
		Use:   "respond <question-id> <text>",
		Short: "Respond to a question",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().stores.Questions.SubmitResponse(cmd.Context(), args[0], strings.Join(args[1:], " "))
		},
	}

	responses := &cobra.Command{
		Use:   "responses <question-id>",
		Short: "Show a question's responses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if err := a.stores.Questions.FetchResponses(cmd.Context(), args[0]); err != nil {
				return err
			}
			for _, q := range a.stores.Questions.Questions() {
				if q.ID != args[0] {
					continue
				}
				for _, r := range q.Responses {
					author := r.UserID
					if r.User != nil {
						author = r.User.FirstName + " " + r.User.LastName
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", author, r.ResponseText)
				}
			}
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <question-id>",
		Short: "Show a single question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := app().api.GetQuestion(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  (%d responses)\n", q.ID, q.Text, len(q.Responses))
			return nil
		},
	}

	upload := &cobra.Command{
		Use:   "upload <file.json>",
		Short: "Bulk-upload questions from a JSON array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read questions file: %w", err)
			}
			var batch []models.Question
			if err := json.Unmarshal(raw, &batch); err != nil {
				return fmt.Errorf("parse questions file: %w", err)
			}
			a := app()
			if user := a.stores.Session.User(); user != nil {
				for i := range batch {
					if batch[i].UserID == "" {
						batch[i].UserID = user.ID
					}
				}
			}
			if err := a.stores.Questions.UploadQuestions(cmd.Context(), batch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %d questions\n", len(batch))
			return nil
		},
	}

	cmd.AddCommand(list, ask, respond, responses, show, upload)
	return cmd
}
