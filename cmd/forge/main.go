// Command forge drives a staged document-to-dataset curation pipeline.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/crucible-labs/forge-cli/internal/adapters/driven/config/file"
	"github.com/crucible-labs/forge-cli/internal/adapters/driven/llm/openai"
	"github.com/crucible-labs/forge-cli/internal/adapters/driven/pages/ledongthuc"
	"github.com/crucible-labs/forge-cli/internal/adapters/driven/reviewer/terminal"
	"github.com/crucible-labs/forge-cli/internal/adapters/driving/cli"
	"github.com/crucible-labs/forge-cli/internal/core/domain"
	"github.com/crucible-labs/forge-cli/internal/core/services"
	"github.com/crucible-labs/forge-cli/internal/extractors/docx"
	"github.com/crucible-labs/forge-cli/internal/extractors/pdf"
)

func main() {
	_ = godotenv.Load(".env")

	cli.SetDependencies(&cli.Dependencies{
		NewIngest: func(layout domain.Layout) (*services.IngestService, error) {
			return services.NewIngestService(layout,
				docx.New(),
				pdf.New(ledongthuc.New()),
			), nil
		},
		NewRefine: func(layout domain.Layout) (*services.RefineService, error) {
			return services.NewRefineService(layout), nil
		},
		NewSegment: func(layout domain.Layout) (*services.SegmentService, error) {
			return services.NewSegmentService(layout), nil
		},
		NewDraft: func(layout domain.Layout, model string) (*services.DraftService, error) {
			cfg, err := file.Load(layout.Root)
			if err != nil {
				return nil, err
			}
			if model == "" {
				model = cfg.Draft.Model
			}
			drafter, err := openai.NewDrafter(openai.DrafterConfig{
				APIKey:            os.Getenv("OPENAI_API_KEY"),
				Model:             model,
				RequestsPerSecond: cfg.Draft.RequestsPerSecond,
				Burst:             cfg.Draft.Burst,
			})
			if err != nil {
				return nil, err
			}
			return services.NewDraftService(layout, drafter), nil
		},
		NewCanonicalize: func(layout domain.Layout) (*services.CanonicalService, error) {
			return services.NewCanonicalService(layout, terminal.New(os.Stdin, os.Stdout)), nil
		},
	})

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
