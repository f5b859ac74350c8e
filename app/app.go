// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/spf13/viper"
	solverConfig "github.com/sprintertech/solver-config/go/config"
	"github.com/sprintertech/svm-spoke/api"
	"github.com/sprintertech/svm-spoke/api/handlers"
	"github.com/sprintertech/svm-spoke/cache"
	"github.com/sprintertech/svm-spoke/cctp"
	"github.com/sprintertech/svm-spoke/chains/svm"
	"github.com/sprintertech/svm-spoke/config"
	"github.com/sprintertech/svm-spoke/health"
	"github.com/sprintertech/svm-spoke/metrics"
	"github.com/sprintertech/svm-spoke/multicall"
	"github.com/sprintertech/svm-spoke/periphery"
	"github.com/sprintertech/svm-spoke/spoke"
	"github.com/sprintertech/svm-spoke/store"
	"github.com/sygmaprotocol/sygma-core/observability"
)

var Version string

func Run() error {
	var err error

	configFlag := viper.GetString(config.ConfigFlagName)
	baseConfigFlag := viper.GetString(config.BaseConfigFlagName)

	var base *config.RawConfig
	if baseConfigFlag != "" {
		data := make(map[string]interface{})
		err = config.ReadFile(baseConfigFlag, &data)
		panicOnError(err)
		base, err = config.GetBaseConfig(data)
		panicOnError(err)
	}

	var configuration *config.Config
	if strings.ToLower(configFlag) == "env" {
		configuration, err = config.GetConfigFromENV(base)
		panicOnError(err)
	} else {
		configuration, err = config.GetConfigFromFile(configFlag, base)
		panicOnError(err)
	}

	observability.ConfigureLogger(configuration.RelayerConfig.LogLevel, os.Stdout)

	log.Info().Msg("Successfully loaded configuration")

	var sc solverConfig.SolverConfig
	if path := viper.GetString(config.SolverConfigFlagName); path != "" {
		err = config.ReadFile(path, &sc)
		panicOnError(err)
		log.Info().Msgf("Loaded solver configuration from %s", path)
	}

	mp, err := observability.InitMetricProvider(context.Background(), configuration.RelayerConfig.OpenTelemetryCollectorURL)
	panicOnError(err)
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Error().Msgf("Error shutting down meter provider: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signerCache := cache.NewSignerCache(ctx)

	var svmConfig *svm.SVMConfig
	for _, chainConfig := range configuration.ChainConfigs {
		switch chainConfig["type"] {
		case "svm":
			{
				if svmConfig != nil {
					panic(fmt.Errorf("only one svm chain can be hosted"))
				}
				svmConfig, err = svm.NewSVMConfig(chainConfig, sc)
				panicOnError(err)
			}
		default:
			panic(fmt.Errorf("type '%s' not recognized", chainConfig["type"]))
		}
	}
	if svmConfig == nil {
		panic(fmt.Errorf("no svm chain configured"))
	}
	chainID := *svmConfig.GeneralChainConfig.Id

	db, err := store.Open(svmConfig.GeneralChainConfig.DBPath)
	panicOnError(err)
	defer db.Close()
	log.Info().Str("path", svmConfig.GeneralChainConfig.DBPath).Msg("Opened program account store")

	transmitterAuthority, err := cctp.TransmitterAuthority(svmConfig.TransmitterProgramID, svmConfig.ProgramID)
	panicOnError(err)

	// gauges read the state through a handle that records no metrics
	stateView := spoke.NewSpokePool(db, svmConfig.ProgramID, svmConfig.Seed)
	spokeMetrics, err := metrics.NewSvmSpokeMetrics(ctx, mp.Meter("spoke-metric-provider"), stateView, configuration.RelayerConfig.Env, configuration.RelayerConfig.Id, Version)
	panicOnError(err)

	messenger := cctp.NewLedgerMessenger(svmConfig.MessengerProgramID, svmConfig.LocalDomain)
	multicallHandler, err := multicall.NewHandler()
	panicOnError(err)
	pool := spoke.NewSpokePool(
		db,
		svmConfig.ProgramID,
		svmConfig.Seed,
		spoke.WithMessenger(messenger),
		spoke.WithMessageTransmitter(transmitterAuthority),
		spoke.WithMetrics(spokeMetrics),
		spoke.WithMessageHandler(multicall.PROGRAM_ID, multicallHandler),
	)
	err = bootstrapPool(db, pool, svmConfig)
	panicOnError(err)

	var quoteHandler *handlers.QuoteHandler
	var nonceHandler *handlers.NonceHandler
	if !svmConfig.PeripheryProgramID.IsZero() {
		p := periphery.NewPeriphery(
			db,
			svmConfig.PeripheryProgramID,
			svmConfig.Seed,
			messenger,
			periphery.WithQuoteVerifier(signerCache),
			periphery.WithMetrics(spokeMetrics),
		)
		err = bootstrapPeriphery(db, p, svmConfig)
		panicOnError(err)

		quoteHandler = handlers.NewQuoteHandler(signerCache, svmConfig.QuoteSigner)
		nonceHandler = handlers.NewNonceHandler(p)
	}

	tokens := config.NewTokenStore(svmConfig.Tokens)
	poolHandler := handlers.NewPoolHandler(pool, tokens)
	relayHashHandler := handlers.NewRelayHashHandler(chainID)
	burnMessageHandler := handlers.NewBurnMessageHandler(cctp.NewMessageView(db, messenger))

	wg := conc.NewWaitGroup()
	wg.Go(func() {
		health.StartHealthEndpoint(ctx, configuration.RelayerConfig.HealthPort, poolHealth{pool: pool})
	})
	wg.Go(func() {
		api.Serve(ctx, configuration.RelayerConfig.ApiAddr, poolHandler, relayHashHandler, quoteHandler, nonceHandler, burnMessageHandler)
	})

	sysErr := make(chan os.Signal, 1)
	signal.Notify(sysErr,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGHUP,
		syscall.SIGQUIT)

	hostName := viper.GetString("name")
	log.Info().Msgf("Started spoke host: %s for chain %d with program %s. Version: v%s", hostName, chainID, svmConfig.ProgramID, Version)

	sig := <-sysErr
	log.Info().Msgf("terminating got ` [%v] signal", sig)
	cancel()
	wg.Wait()
	return nil
}

// bootstrapPool initializes the program state on a fresh store when an owner is configured.
// The owner is credited the rent of the state record first.
func bootstrapPool(db *store.DB, pool *spoke.SpokePool, c *svm.SVMConfig) error {
	_, err := pool.State()
	if err == nil || !errors.Is(err, spoke.ErrNotInitialized) {
		return err
	}
	if c.Owner.IsZero() {
		log.Warn().Msg("Spoke pool not initialized and no owner configured")
		return nil
	}

	size, err := store.States.Size(&store.SpokeState{})
	if err != nil {
		return err
	}
	err = fundOwner(db, c.Owner, size)
	if err != nil {
		return err
	}
	return pool.Initialize(c.Owner, spoke.InitializeParams{
		ChainId:                *c.GeneralChainConfig.Id,
		RemoteDomain:           c.RemoteDomain,
		CrossDomainAdmin:       c.CrossDomainAdmin,
		DepositQuoteTimeBuffer: c.DepositQuoteTimeBuffer,
		FillDeadlineBuffer:     c.FillDeadlineBuffer,
	})
}

func bootstrapPeriphery(db *store.DB, p *periphery.Periphery, c *svm.SVMConfig) error {
	_, err := p.State()
	if err == nil || !errors.Is(err, periphery.ErrNotInitialized) {
		return err
	}
	if c.Owner.IsZero() {
		log.Warn().Msg("Periphery not initialized and no owner configured")
		return nil
	}

	size, err := store.PeripheryStates.Size(&store.PeripheryState{})
	if err != nil {
		return err
	}
	err = fundOwner(db, c.Owner, size)
	if err != nil {
		return err
	}
	return p.Initialize(c.Owner, periphery.InitializeParams{
		LocalDomain: c.LocalDomain,
		QuoteSigner: c.QuoteSigner,
	})
}

func fundOwner(db *store.DB, owner solana.PublicKey, size int) error {
	return db.Update(func(tx *store.Tx) error {
		return tx.Airdrop(owner, store.MinimumBalance(size))
	})
}

type poolHealth struct {
	pool *spoke.SpokePool
}

// Healthy treats an uninitialized pool as healthy, the store is still readable.
func (h poolHealth) Healthy() error {
	_, err := h.pool.State()
	if err != nil && !errors.Is(err, spoke.ErrNotInitialized) {
		return err
	}
	return nil
}

func panicOnError(err error) {
	if err != nil {
		panic(err)
	}
}
