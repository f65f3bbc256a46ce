package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ytget/player-bridge/internal/bridge"
)

var report bool

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Show the total device memory in MB",
	Long: `Show the total physical memory of the device in megabytes.

The bridge answers with a default value when the memory cannot be read;
--report tells whether the value was measured or assumed.`,
	Args: cobra.NoArgs,
	RunE: runMemory,
}

func init() {
	memoryCmd.Flags().BoolVar(&report, "report", false, "print the full memory report")
	rootCmd.AddCommand(memoryCmd)
}

func runMemory(cmd *cobra.Command, _ []string) error {
	if report {
		r, err := callFor[bridge.MemoryReply](cmd, deviceChannel, bridge.MethodGetMemoryReport, nil)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), r)
	}

	mb, err := callFor[int](cmd, deviceChannel, bridge.MethodGetTotalMemory, nil)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d MB\n", *mb)
	return err
}
