package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/ytget/player-bridge/internal/channel"
	"github.com/ytget/player-bridge/internal/config"
	"github.com/ytget/player-bridge/internal/logger"
	"github.com/ytget/player-bridge/internal/transport"
)

var (
	address       string
	timeout       time.Duration
	verbose       bool
	playerChannel string
	deviceChannel string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bridgectl",
	Short: "Call the method channels of a running player bridge",
	Long: `bridgectl talks to a running player-bridge over its WebSocket channel
endpoint. It can launch a locator in the external player, read the device
memory, or call any channel method with raw JSON arguments.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&address, "address", "a", "127.0.0.1:9847", "address of the bridge")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Second, "time to wait for a reply")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log the transport")
	rootCmd.PersistentFlags().StringVar(&playerChannel, "channel.player", config.DefaultPlayerChannel, "name of the player channel")
	rootCmd.PersistentFlags().StringVar(&deviceChannel, "channel.device", config.DefaultDeviceInfoChannel, "name of the device info channel")
}

// call dials the bridge and runs one method call.
func call(cmd *cobra.Command, ch, method string, args any) (*channel.Response, error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	log := logger.Nop()
	if verbose {
		log = logger.NewConsole(true, "ctl", false)
	}
	c, err := transport.Dial(ctx, address, log)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	return c.Call(ctx, ch, method, args)
}

// callFor runs one method call and decodes an ok result into T.
func callFor[T any](cmd *cobra.Command, ch, method string, args any) (*T, error) {
	resp, err := call(cmd, ch, method, args)
	if err != nil {
		return nil, err
	}
	return channel.Unwrap[T](resp)
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
