package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/originals-sdk/sdk/pkg/adapters"
	"github.com/originals-sdk/sdk/pkg/did"
)

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <did>",
		Short: "Resolve a did:peer, did:webvh, or did:btco identifier to its DID document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := did.NewResolver(adapters.NewMockOrdinalsProvider(1_000_000, 5.0), &did.HTTPLogFetcher{})

			doc, err := resolver.ResolveDID(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("resolve %s: %w", args[0], err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}

	return cmd
}
