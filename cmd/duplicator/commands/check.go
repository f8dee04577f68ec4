// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var checkFlags runOptions

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate an event and the configuration without calling GitHub",
	Long: `Run only the event filter: report whether the event would trigger a
duplication and which repositories it would target. No API calls are made.`,
	Run: func(cmd *cobra.Command, args []string) {
		action := newAction(cmd.OutOrStdout(), os.Getenv, &checkFlags)
		exitOnError(action, runWorkflow(cmd.Context(), action, "check", &checkFlags))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addRunFlags(checkCmd, &checkFlags)
}
