package main

import (
	"fmt"
	"log"
	"log/slog"
	"time"

	"ainewsdaily/internal/config"
	"ainewsdaily/internal/model"
	"ainewsdaily/internal/pipeline"
	"ainewsdaily/internal/repository"
	"ainewsdaily/pkg/feeds"
	"ainewsdaily/pkg/llm"
	"ainewsdaily/pkg/speech"
	"ainewsdaily/pkg/storage"

	"github.com/spf13/cobra"
)

var targetDate string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and store the edition for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		if targetDate != "" {
			if _, err := time.Parse(model.DateLayout, targetDate); err != nil {
				return fmt.Errorf("invalid --date %q: %w", targetDate, err)
			}
			cfg.TargetDate = targetDate
		}

		if err := cfg.RequireGenerator(); err != nil {
			log.Fatalf("error loading config: %v", err)
		}

		ctx := cmd.Context()

		conn := connectDB(ctx)
		defer conn.Close()

		publisher, err := storage.NewPublisher(cfg.Storage)
		if err != nil {
			log.Fatalf("error creating storage client: %v", err)
		}

		openAIClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey)
		voice := speech.NewChain(
			speech.NewElevenLabsClient(cfg.ElevenLabsAPIKey, cfg.ElevenLabsVoiceID),
			speech.NewOpenAISpeech(cfg.OpenAIAPIKey),
		)

		p := pipeline.New(pipeline.Options{
			Store:       repository.NewNewsRepository(conn),
			Completer:   completer(openAIClient),
			Headlines:   feeds.NewClient(cfg.FeedURLs),
			Media:       pipeline.NewSynthesizer(openAIClient, voice, publisher, storage.NewNamer(), cfg.CallTimeout),
			Cache:       editionCache(ctx),
			Policy:      pipeline.Policy{Days: cfg.RetentionDays},
			CallTimeout: cfg.CallTimeout,
			RunTimeout:  cfg.RunTimeout,
		})

		report, err := p.Run(ctx, cfg.Target(time.Now()))
		if err != nil {
			return fmt.Errorf("generation run aborted: %w", err)
		}

		if report.Inserted == 0 {
			slog.Warn("run finished without new items", "generated", report.Generated)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&targetDate, "date", "", "edition date as YYYY-MM-DD (overrides TARGET_DATE)")
}

func completer(openAIClient *llm.OpenAIClient) llm.Completer {
	if cfg.LLMProvider == config.ProviderAnthropic {
		return llm.NewAnthropicClient(cfg.AnthropicAPIKey)
	}
	return openAIClient
}
