package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ytget/player-bridge/internal/bridge"
)

var (
	title  string
	legacy bool
)

var launchCmd = &cobra.Command{
	Use:   "launch <url>",
	Short: "Open a locator in the external player",
	Long: `Open a locator in the external player, or in any capable application
when the player is not installed.

Prints the outcome: target, fallback or failed. With --legacy the launchVLC
method is used and the printed value is true only when the player got it.`,
	Args: cobra.ExactArgs(1),
	RunE: runLaunch,
}

func init() {
	launchCmd.Flags().StringVarP(&title, "title", "t", "", "title shown by the player")
	launchCmd.Flags().BoolVar(&legacy, "legacy", false, "use the launchVLC method")
	rootCmd.AddCommand(launchCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	params := map[string]any{bridge.ArgURL: args[0]}
	if title != "" {
		params[bridge.ArgTitle] = title
	}

	if legacy {
		ok, err := callFor[bool](cmd, playerChannel, bridge.MethodLaunchVLC, params)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), *ok)
		return err
	}
	reply, err := callFor[bridge.LaunchReply](cmd, playerChannel, bridge.MethodLaunchPlayer, params)
	if err != nil {
		return err
	}
	if reply.Error != "" {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", reply.Outcome, reply.Error)
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), reply.Outcome)
	return err
}
