package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/c-bata/go-prompt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/term"

	"github.com/doodlepoker/waspclient/pkg/config"
	"github.com/doodlepoker/waspclient/pkg/doodle"
	"github.com/doodlepoker/waspclient/pkg/journal"
	"github.com/doodlepoker/waspclient/pkg/log"
	"github.com/doodlepoker/waspclient/pkg/metrics"
	"github.com/doodlepoker/waspclient/pkg/service"
	"github.com/doodlepoker/waspclient/pkg/sign"
	"github.com/doodlepoker/waspclient/pkg/wasp"
)

const metricsEndpoint = "/metrics"

func main() {
	bootLogger := log.NewZapLogger(log.Config{Format: "console", Level: log.LevelInfo, Output: "stderr"})
	cfg, err := config.Load(bootLogger)
	if err != nil {
		bootLogger.Fatal("Failed to load config", "error", err)
	}

	logger := log.New(cfg.Log)
	ctx, cancel := context.WithCancel(log.SetContextLogger(context.Background(), logger))
	defer cancel()

	waspClient := wasp.NewClient(cfg.WaspAPIURL, wasp.WithLogger(logger))

	chainID, ok, err := cfg.ParsedChainID()
	if err != nil {
		logger.Fatal("Invalid chain id", "error", err)
	}
	if !ok {
		if chainID, err = waspClient.DiscoverChainID(ctx); err != nil {
			logger.Fatal("Failed to discover chain", "error", err)
		}
	}
	logger.Info("Using chain", "chainID", chainID)

	contract, err := cfg.ContractHname()
	if err != nil {
		logger.Fatal("Invalid contract", "error", err)
	}

	signer, err := cfg.Signer()
	if err != nil {
		logger.Fatal("Invalid seed", "error", err)
	}
	if signer == nil {
		var seed [sign.SeedSize]byte
		if _, err := rand.Read(seed[:]); err != nil {
			logger.Fatal("Failed to generate seed", "error", err)
		}
		signer = sign.NewED25519SignerFromSeed(seed, 0)
		fmt.Printf("Generated a new seed, set DOODLE_SEED=%s to reuse it.\n", base58.Encode(seed[:]))
	}

	store, err := journal.Open(cfg.Journal)
	if err != nil {
		logger.Fatal("Failed to open journal", "error", err)
	}
	defer store.Close()

	m := metrics.NewMetrics()
	svc, err := service.New(service.Config{
		ChainID:        chainID,
		Contract:       contract,
		EventsURL:      cfg.WaspWSURL,
		ReconnectDelay: cfg.ReconnectDelay,
	}, waspClient,
		service.WithKeyPair(signer),
		service.WithJournal(store),
		service.WithMetrics(m),
		service.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal("Failed to create service", "error", err)
	}
	if err := doodle.RegisterEvents(svc.Events()); err != nil {
		logger.Fatal("Failed to register events", "error", err)
	}
	if err := printEvents(svc.Events(), os.Stdout); err != nil {
		logger.Fatal("Failed to register event printers", "error", err)
	}
	if err := svc.Start(ctx); err != nil {
		logger.Fatal("Failed to start event channel", "error", err)
	}
	defer svc.Close()

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsMux := http.NewServeMux()
		metricsMux.Handle(metricsEndpoint, promhttp.Handler())
		metricsServer = &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux}

		go func() {
			logger.Info("Prometheus metrics available", "listenAddr", cfg.MetricsAddr, "endpoint", metricsEndpoint)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failure", "error", err)
			}
		}()
	}

	operator := NewOperator(ctx, svc, store, os.Stdout)

	initialState, _ := term.GetState(int(os.Stdin.Fd()))
	handleExit := func() {
		if initialState != nil {
			_ = term.Restore(int(os.Stdin.Fd()), initialState)
		}
		_ = exec.Command("stty", "sane").Run()
	}

	options := append(getStyleOptions(),
		prompt.OptionPrefix(">>> "),
		prompt.OptionAddKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(*prompt.Buffer) {
				fmt.Println("Exiting doodle CLI.")
				handleExit()
				os.Exit(0)
			},
		}),
		prompt.OptionAddKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn:  func(*prompt.Buffer) {},
		}),
	)
	p := prompt.New(operator.Execute, operator.Complete, options...)

	promptExitCh := make(chan struct{})
	go func() {
		p.Run()
		close(promptExitCh)
	}()

	select {
	case <-operator.Wait():
	case <-promptExitCh:
	}
	handleExit()

	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down metrics server", "error", err)
		}
	}
	fmt.Println("Exiting doodle CLI.")
}

func getStyleOptions() []prompt.Option {
	return []prompt.Option{
		prompt.OptionTitle("Doodle CLI"),
		prompt.OptionPrefixTextColor(prompt.Yellow),
		prompt.OptionPreviewSuggestionTextColor(prompt.Cyan),

		prompt.OptionSuggestionTextColor(prompt.White),
		prompt.OptionSuggestionBGColor(prompt.DarkBlue),

		prompt.OptionDescriptionTextColor(prompt.Black),
		prompt.OptionDescriptionBGColor(prompt.Yellow),

		prompt.OptionSelectedSuggestionTextColor(prompt.Black),
		prompt.OptionSelectedSuggestionBGColor(prompt.Yellow),

		prompt.OptionSelectedDescriptionTextColor(prompt.White),
		prompt.OptionSelectedDescriptionBGColor(prompt.DarkBlue),

		prompt.OptionShowCompletionAtStart(),
	}
}
