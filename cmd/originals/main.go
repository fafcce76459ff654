// Command originals is a cobra-based CLI front end exercising the
// Originals SDK end to end: create a did:peer asset, publish it to
// did:webvh, inscribe it on did:btco, transfer ownership, and resolve any
// DID the asset has held.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/originals-sdk/sdk/settings"
	"github.com/originals-sdk/sdk/ulogger"
)

var (
	flagNetwork  string
	flagLogLevel string
	flagDomain   string
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "originals",
		Short: "Manage content-addressed digital assets across did:peer, did:webvh, and did:btco",
	}

	cmd.PersistentFlags().StringVar(&flagNetwork, "network", string(settings.NetworkRegtest), "bitcoin network (mainnet|testnet|signet|regtest)")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", string(ulogger.LevelInfo), "log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&flagDomain, "domain", "example.com", "domain used for did:webvh publication")

	cmd.AddCommand(newLifecycleCmd())
	cmd.AddCommand(newResolveCmd())
	cmd.AddCommand(newBatchCmd())

	return cmd
}

func loadSettings() *settings.Settings {
	s := settings.Default()
	s.Network = settings.Network(flagNetwork)
	s.Logging.Level = ulogger.Level(flagLogLevel)
	s.WebVHNetwork = flagDomain
	return s
}
