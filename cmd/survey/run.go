package main

import (
	"github.com/aretw0/survey/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Answer the survey interactively",
	Long: `Starts a session in the terminal. Type "back" to revisit the previous question,
"quit" to leave without saving, or press Enter to keep a recorded answer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		jsonMode, _ := cmd.Flags().GetBool("json")
		plain, _ := cmd.Flags().GetBool("plain")

		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()

		return cli.Execute(sc, cli.RunOptions{
			Config: cfg,
			JSON:   jsonMode,
			Plain:  plain,
			In:     cmd.InOrStdin(),
			Out:    cmd.OutOrStdout(),
		}, logger)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	runCmd.Flags().Bool("plain", false, "Disable the banner and markdown rendering")
	runCmd.Flags().String("store", "", "Submission store: memory, file, redis or textdb")

	// 'run' is the default when no command is given.
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
