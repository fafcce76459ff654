package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/originals-sdk/sdk/pkg/lifecycle"
	"github.com/originals-sdk/sdk/pkg/resource"
	"github.com/originals-sdk/sdk/pkg/sdk"
)

type batchOpts struct {
	contentFiles []string
	contentType  string
	creator      string
	slug         string
	feeRate      float64
	concurrency  int
	publish      bool
	inscribe     bool
}

func newBatchCmd() *cobra.Command {
	opts := &batchOpts{}

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Create (and optionally publish/inscribe) draft assets for many content files with bounded concurrency",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatchCmd(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.contentFiles, "content", nil, "paths to the resource content files (required, one asset per file)")
	cmd.Flags().StringVar(&opts.contentType, "content-type", "application/octet-stream", "MIME type of the resource content")
	cmd.Flags().StringVar(&opts.creator, "creator", "", "creator identifier recorded in provenance")
	cmd.Flags().StringVar(&opts.slug, "slug", "", "path segment used when publishing to did:webvh")
	cmd.Flags().Float64Var(&opts.feeRate, "fee-rate", 5.0, "sat/vB fee rate for inscribe")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", lifecycle.DefaultBatchConcurrency, "max assets processed concurrently per stage")
	cmd.Flags().BoolVar(&opts.publish, "publish", false, "also publish every created asset to did:webvh")
	cmd.Flags().BoolVar(&opts.inscribe, "inscribe", false, "also inscribe every created asset to did:btco (implies --publish is not required)")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}

func runBatchCmd(cmd *cobra.Command, opts *batchOpts) error {
	s := loadSettings()
	instance, err := sdk.New(s, sdk.Dependencies{})
	if err != nil {
		return fmt.Errorf("build sdk: %w", err)
	}

	ctx := context.Background()

	createItems := make([]lifecycle.CreateBatchItem, 0, len(opts.contentFiles))
	for _, path := range opts.contentFiles {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read content file %q: %w", path, err)
		}
		r, err := instance.AddResource(content, resource.CreateOptions{Type: resource.TypeData, ContentType: opts.contentType})
		if err != nil {
			return fmt.Errorf("store resource for %q: %w", path, err)
		}
		createItems = append(createItems, lifecycle.CreateBatchItem{
			Resources: []*resource.Resource{r},
			Options:   lifecycle.CreateDraftOptions{Creator: opts.creator},
		})
	}

	created := instance.CreateAssetBatch(ctx, createItems, opts.concurrency)
	fmt.Fprintf(cmd.OutOrStdout(), "create: %d/%d succeeded\n", created.Stats.Succeeded, created.Stats.Total)

	assets := created.Successes

	if opts.publish || opts.inscribe {
		publishItems := make([]lifecycle.PublishBatchItem, len(assets))
		for i, a := range assets {
			publishItems[i] = lifecycle.PublishBatchItem{Asset: a, Options: lifecycle.PublishOptions{Domain: s.WebVHNetwork, Slug: opts.slug}}
		}
		published := instance.PublishBatch(ctx, publishItems, opts.concurrency)
		fmt.Fprintf(cmd.OutOrStdout(), "publish: %d/%d succeeded\n", published.Stats.Succeeded, published.Stats.Total)
		assets = published.Successes
	}

	if opts.inscribe {
		inscribeItems := make([]lifecycle.InscribeBatchItem, len(assets))
		for i, a := range assets {
			inscribeItems[i] = lifecycle.InscribeBatchItem{Asset: a, Options: lifecycle.InscribeOptions{FeeRate: opts.feeRate}}
		}
		inscribed := instance.InscribeBatch(ctx, inscribeItems, opts.concurrency)
		fmt.Fprintf(cmd.OutOrStdout(), "inscribe: %d/%d succeeded\n", inscribed.Stats.Succeeded, inscribed.Stats.Total)
		assets = inscribed.Successes
	}

	summary := make([]map[string]interface{}, 0, len(assets))
	for _, a := range assets {
		summary = append(summary, map[string]interface{}{
			"id":    a.ID(),
			"layer": a.CurrentLayer(),
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
