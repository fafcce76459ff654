package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/originals-sdk/sdk/pkg/lifecycle"
	"github.com/originals-sdk/sdk/pkg/resource"
	"github.com/originals-sdk/sdk/pkg/sdk"
)

type lifecycleOpts struct {
	contentFile string
	contentType string
	creator     string
	slug        string
	feeRate     float64
	recipient   string
	steps       []string
}

func newLifecycleCmd() *cobra.Command {
	opts := &lifecycleOpts{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one or more lifecycle steps (create, publish, inscribe, transfer, deactivate) against a fresh asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLifecycle(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.contentFile, "content", "", "path to the resource content file (required)")
	cmd.Flags().StringVar(&opts.contentType, "content-type", "application/octet-stream", "MIME type of the resource content")
	cmd.Flags().StringVar(&opts.creator, "creator", "", "creator identifier recorded in provenance")
	cmd.Flags().StringVar(&opts.slug, "slug", "", "path segment used when publishing to did:webvh")
	cmd.Flags().Float64Var(&opts.feeRate, "fee-rate", 5.0, "sat/vB fee rate for inscribe/transfer")
	cmd.Flags().StringVar(&opts.recipient, "recipient", "", "recipient Taproot address for the transfer step")
	cmd.Flags().StringSliceVar(&opts.steps, "steps", []string{"create", "publish", "inscribe"}, "steps to run, in order: create,publish,inscribe,transfer,deactivate")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}

func runLifecycle(cmd *cobra.Command, opts *lifecycleOpts) error {
	requestID := uuid.NewString()

	content, err := os.ReadFile(opts.contentFile)
	if err != nil {
		return fmt.Errorf("read content file: %w", err)
	}

	s := loadSettings()
	instance, err := sdk.New(s, sdk.Dependencies{})
	if err != nil {
		return fmt.Errorf("build sdk: %w", err)
	}
	instance.Logger = instance.Logger.With(map[string]interface{}{"requestId": requestID})

	r, err := instance.AddResource(content, resource.CreateOptions{Type: resource.TypeData, ContentType: opts.contentType})
	if err != nil {
		return fmt.Errorf("store resource: %w", err)
	}

	ctx := context.Background()
	progress := func(p lifecycle.Progress) {
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %d%% %s\n", p.Phase, p.Percentage, p.Message)
	}

	asset, err := instance.CreateAsset([]*resource.Resource{r}, lifecycle.CreateDraftOptions{Creator: opts.creator, OnProgress: progress})
	if err != nil {
		return fmt.Errorf("create draft: %w", err)
	}

	for _, step := range opts.steps {
		switch step {
		case "publish":
			asset, err = instance.Publish(ctx, asset, lifecycle.PublishOptions{Domain: s.WebVHNetwork, Slug: opts.slug, OnProgress: progress})
		case "inscribe":
			asset, err = instance.Inscribe(ctx, asset, lifecycle.InscribeOptions{FeeRate: opts.feeRate, OnProgress: progress})
		case "transfer":
			if opts.recipient == "" {
				err = fmt.Errorf("transfer step requires --recipient")
			} else {
				var result *lifecycle.TransferResult
				result, err = instance.Transfer(ctx, asset, opts.recipient, lifecycle.TransferOptions{FeeRate: opts.feeRate, OnProgress: progress})
				if err == nil {
					asset = result.Asset
				}
			}
		case "deactivate":
			asset, err = instance.Deactivate(ctx, asset, lifecycle.DeactivateOptions{FeeRate: opts.feeRate, OnProgress: progress})
		case "create":
			continue
		default:
			err = fmt.Errorf("unknown step %q", step)
		}
		if err != nil {
			return err
		}
	}

	summary := map[string]interface{}{
		"id":         asset.ID(),
		"layer":      asset.CurrentLayer(),
		"bindings":   asset.Bindings(),
		"provenance": asset.ProvenanceSummary(),
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
