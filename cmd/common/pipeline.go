package common

import (
	"github.com/trovehq/prowler/internal/buylinks"
	"github.com/trovehq/prowler/internal/dedup"
	"github.com/trovehq/prowler/internal/extractor"
	"github.com/trovehq/prowler/internal/monitor"
	"github.com/trovehq/prowler/internal/source/apify"
)

// NewPipeline assembles the full processing pipeline: Apify content
// source, Anthropic extractor, deduplicator and buy link generator over
// the given repositories. Pipeline credentials must already be validated.
func NewPipeline(deps CommandDeps, repos *Repositories) *monitor.Pipeline {
	sourceCfg := deps.Config.GetSourceConfig()
	extractorCfg := deps.Config.GetExtractorConfig()

	contentSource := apify.NewClient(sourceCfg, deps.Logger)
	modelClient := extractor.NewAnthropicClient(extractorCfg)
	productExtractor := extractor.New(modelClient, extractorCfg, deps.Logger)
	deduplicator := dedup.New(repos.Products, deps.Logger)

	return monitor.NewPipeline(monitor.PipelineParams{
		Source:      contentSource,
		Extractor:   productExtractor,
		Dedup:       deduplicator,
		Links:       buylinks.NewGenerator(),
		Influencers: repos.Influencers,
		Products:    repos.Products,
		Activity:    repos.Activity,
		PostLimit:   sourceCfg.PostLimit,
		Logger:      deps.Logger,
	})
}
