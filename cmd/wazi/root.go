package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var (
		configPath string
		ephemeral  bool
		verbose    bool
		app        *appContext
	)

	root := &cobra.Command{
		Use:           "wazi",
		Short:         "Wazi client: questions, surveys, videos, payments and rewards",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			app, err = newAppContext(cmd.Context(), configPath, ephemeral, verbose)
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if app != nil {
				app.close()
			}
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "path to config file")
	root.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep session state in memory only")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	appRef := func() *appContext { return app }
	root.AddCommand(
		newLoginCommand(appRef),
		newSignupCommand(appRef),
		newLogoutCommand(appRef),
		newWhoamiCommand(appRef),
		newProfileCommand(appRef),
		newQuestionsCommand(appRef),
		newSurveysCommand(appRef),
		newVideosCommand(appRef),
		newPaymentsCommand(appRef),
		newRewardsCommand(appRef),
	)
	return root
}
