package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var callCmd = &cobra.Command{
	Use:   "call <channel> <method> [json arguments]",
	Short: "Call any channel method",
	Example: `  bridgectl call com.ytget.player_bridge/vlc launchVLC '{"url":"http://host/v.mkv"}'
  bridgectl call com.ytget.player_bridge/device_info getTotalMemory`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) error {
	var params any
	if len(args) == 3 {
		if !json.Valid([]byte(args[2])) {
			return fmt.Errorf("arguments are not valid JSON: %s", args[2])
		}
		params = json.RawMessage(args[2])
	}
	resp, err := call(cmd, args[0], args[1], params)
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(resp.Result))
	return err
}
