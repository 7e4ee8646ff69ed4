package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	bookingx "github.com/alfredlabs/alfred/agent/booking"
	catalogx "github.com/alfredlabs/alfred/agent/catalog"
	extractx "github.com/alfredlabs/alfred/agent/extract"
	oraclex "github.com/alfredlabs/alfred/agent/oracle"
	orchestratorx "github.com/alfredlabs/alfred/agent/orchestrator"
	promptx "github.com/alfredlabs/alfred/agent/prompt"
	respondx "github.com/alfredlabs/alfred/agent/respond"
	sessionx "github.com/alfredlabs/alfred/agent/session"
	configx "github.com/alfredlabs/alfred/pkg/config"
	llmx "github.com/alfredlabs/alfred/pkg/llm"
	_ "github.com/alfredlabs/alfred/pkg/logger/autoload"
)

var version = "dev"

type AppConfig struct {
	CatalogDriver string `envconfig:"CATALOG_DRIVER" split_words:"true" default:"file"`
	CatalogPath   string `envconfig:"CATALOG_PATH" split_words:"true" default:"restaurants_db.json"`
	SeedSize      int    `envconfig:"SEED_SIZE" split_words:"true" default:"20"`
}

func main() {
	root := &cobra.Command{
		Use:           "alfred",
		Short:         "Alfred, a restaurant discovery and reservation assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "chat",
			Short: "Start an interactive conversation session",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runChat(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Generate a fresh restaurant catalog and write it to the store",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runSeed(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the build version",
			Run: func(*cobra.Command, []string) {
				fmt.Println(version)
			},
		},
	)

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newStore(ctx context.Context, cfg AppConfig) (catalogx.Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.CatalogDriver)) {
	case "", "file":
		return catalogx.NewFileStore(cfg.CatalogPath), nil
	case "postgres":
		store := catalogx.NewBunStore(*configx.MustNew[catalogx.BunConfig]("POSTGRES"))
		if err := store.Init(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown catalog driver %q", cfg.CatalogDriver)
	}
}

func runSeed(ctx context.Context) error {
	cfg := configx.MustNew[AppConfig]("")
	store, err := newStore(ctx, *cfg)
	if err != nil {
		return err
	}

	restaurants := catalogx.Seed(cfg.SeedSize, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err := store.Save(ctx, restaurants); err != nil {
		return err
	}

	log.Info().Int("restaurants", len(restaurants)).Str("driver", cfg.CatalogDriver).Msg("catalog seeded")
	return nil
}

func runChat(ctx context.Context) error {
	cfg := configx.MustNew[AppConfig]("")
	store, err := newStore(ctx, *cfg)
	if err != nil {
		return err
	}

	restaurants, err := store.Load(ctx)
	if errors.Is(err, os.ErrNotExist) {
		restaurants = catalogx.Seed(cfg.SeedSize, rand.New(rand.NewSource(time.Now().UnixNano())))
		if err := store.Save(ctx, restaurants); err != nil {
			return err
		}
		log.Info().Int("restaurants", len(restaurants)).Msg("catalog created")
	} else if err != nil {
		return err
	}

	llmCfg := configx.MustNew[llmx.Config]("LLM")
	client := llmx.NewClient(*llmCfg)
	if client == nil {
		return errors.New("llm client is not configured, set LLM_API_KEY")
	}

	adapter := oraclex.New(client, *llmCfg)
	prompts := promptx.Load()

	orch, err := orchestratorx.New(
		restaurants,
		extractx.NewClassifier(adapter, prompts.Intent),
		extractx.NewQueryService(adapter, prompts.SearchParams),
		extractx.NewDateTimeService(adapter, prompts.DateTime),
		extractx.NewPartyService(adapter, prompts.PartySize),
		extractx.NewResolver(adapter, prompts.Resolve),
		respondx.NewGenerator(adapter, prompts),
		bookingx.NewLedger(store),
	)
	if err != nil {
		return err
	}

	sess := sessionx.New(time.Now())
	sess.Append(sessionx.RoleAssistant, orchestratorx.Greeting)
	fmt.Println("alfred> " + orchestratorx.Greeting)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		reply, err := orch.HandleTurn(ctx, sess, line)
		if err != nil {
			log.Error().Err(err).Msg("turn failed")
			continue
		}
		fmt.Println("alfred> " + reply)
	}
	return scanner.Err()
}
