package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"deploy_config/internal/app/assembler"
	"deploy_config/internal/app/port"
	"deploy_config/internal/app/render"
	"deploy_config/internal/app/service"
	"deploy_config/internal/config"
	"deploy_config/internal/domain/entity"
	"deploy_config/internal/infrastructure/envloader"
	"deploy_config/internal/infrastructure/httpclient"
	clientprovider "deploy_config/internal/infrastructure/network/client"
	networkdefinition "deploy_config/internal/infrastructure/network/definition"
	"deploy_config/internal/infrastructure/restapi"
	"deploy_config/internal/infrastructure/signer"
	"deploy_config/internal/pkg/logger"
	"deploy_config/internal/pkg/metrics"
	"deploy_config/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// app holds everything the commands share, built once in Before.
type app struct {
	cfg         *config.Config
	env         *envloader.Environment
	configs     *assembler.Provider
	definitions *networkdefinition.NetworkDefinitionProvider
	log         port.Logger
	zap         *zap.Logger
}

func main() {
	a := &app{}
	cliApp := &cli.App{
		Name:  "deploy_config",
		Usage: "assemble and inspect smart-contract deployment network configuration",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env-file", Usage: "dotenv file seeding the environment", EnvVars: []string{"DEPLOY_CONFIG_ENV_FILE"}},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "tool settings YAML file", EnvVars: []string{"CONFIG_PATH"}},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error", EnvVars: []string{"LOG_LEVEL"}},
		},
		Before: a.setup,
		After: func(*cli.Context) error {
			logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print the assembled configuration",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "json", Usage: "json or yaml"},
					&cli.BoolFlag{Name: "reveal", Usage: "print private keys and API keys unmasked"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write to this file instead of stdout"},
				},
				Action: a.show,
			},
			{
				Name:   "env",
				Usage:  "list the deploy variables and whether they are set",
				Action: a.envStatus,
			},
			{
				Name:   "accounts",
				Usage:  "derive signer addresses from the configured private keys",
				Action: a.accounts,
			},
			{
				Name:      "probe",
				Usage:     "query the RPC endpoints of the configured networks",
				ArgsUsage: "[network...]",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "timeout", Value: 30 * time.Second, Usage: "overall deadline"},
				},
				Action: a.probe,
			},
			{
				Name:  "explorers",
				Usage: "check the block-explorer API keys",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "timeout", Value: 30 * time.Second, Usage: "overall deadline"},
				},
				Action: a.explorers,
			},
			{
				Name:   "serve",
				Usage:  "serve the configuration over HTTP",
				Action: a.serve,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		logger.Sync()
		os.Exit(1)
	}
}

func (a *app) setup(c *cli.Context) error {
	var err error
	if path := c.String("config"); path != "" {
		a.cfg, err = config.LoadConfig(path)
		if err != nil {
			return err
		}
	} else {
		a.cfg = config.Default()
	}

	level := a.cfg.Logging.Level
	if c.IsSet("log-level") {
		level = c.String("log-level")
	}
	logger.InitSlog(level)
	a.log = logger.NewSlogAdapter()
	a.zap = logger.Zap()

	envFile := a.cfg.EnvFile
	if c.IsSet("env-file") {
		envFile = c.String("env-file")
	}
	a.env, err = envloader.Load(envFile, a.log)
	if err != nil {
		return err
	}

	a.configs = assembler.NewProvider(a.env, a.log)
	a.definitions = networkdefinition.NewNetworkDefinitionProvider(a.log)

	metrics.MustRegisterMetrics()
	metrics.ConfigVariablesSet.Set(float64(len(networkdefinition.EnvVars) - len(assembler.MissingVariables(a.env))))
	return nil
}

func (a *app) show(c *cli.Context) error {
	format, err := render.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}
	cfg := a.configs.GetConfig()
	if !c.Bool("reveal") {
		cfg = render.Redact(cfg)
	}
	out, err := render.Encode(cfg, format)
	if err != nil {
		return err
	}

	if path := c.String("output"); path != "" {
		if err := utils.WriteFileAtomic(path, out, 0o600); err != nil {
			return err
		}
		a.log.Info("Configuration written", "path", path, "format", string(format), "revealed", c.Bool("reveal"))
		return nil
	}
	_, err = c.App.Writer.Write(out)
	return err
}

func (a *app) envStatus(c *cli.Context) error {
	missing := make(map[string]struct{})
	for _, key := range assembler.MissingVariables(a.env) {
		missing[key] = struct{}{}
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VARIABLE\tSTATUS")
	for _, key := range networkdefinition.EnvVars {
		status := "set"
		if _, ok := missing[key]; ok {
			status = "empty"
		}
		fmt.Fprintf(w, "%s\t%s\n", key, status)
	}
	return w.Flush()
}

func (a *app) accounts(c *cli.Context) error {
	accounts := signer.NewKeyResolver().Accounts(a.configs.GetConfig())

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NETWORK\tINDEX\tADDRESS")
	for _, acc := range accounts {
		addr := acc.Address
		if acc.Error != "" {
			addr = "error: " + acc.Error
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", acc.Network, acc.Index, addr)
	}
	return w.Flush()
}

func (a *app) probeService() (port.ProbeService, port.BlockchainClientProvider) {
	clients := clientprovider.NewEVMClientProvider(a.cfg, a.log)
	return service.NewProbeService(a.zap, a.cfg, a.configs, a.definitions, clients), clients
}

func (a *app) explorerService() port.ExplorerService {
	timeout := time.Duration(a.cfg.Explorer.RequestTimeoutMillis) * time.Millisecond
	return service.NewExplorerService(a.zap, a.cfg, a.configs, a.definitions, httpclient.NewExplorerClient(timeout, a.zap))
}

func (a *app) probe(c *cli.Context) error {
	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	probes, clients := a.probeService()
	defer clients.CloseAll()

	results := probes.ProbeAll(ctx, c.Args().Slice())
	if err := writeJSON(c, results); err != nil {
		return err
	}
	for _, r := range results {
		if r.Status == entity.ProbeFailed || r.Status == entity.ProbeMismatch {
			return cli.Exit("one or more networks failed the probe", 2)
		}
	}
	return nil
}

func (a *app) explorers(c *cli.Context) error {
	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	results := a.explorerService().CheckAll(ctx)
	if err := writeJSON(c, results); err != nil {
		return err
	}
	for _, r := range results {
		if r.Status == entity.CredentialInvalid || r.Status == entity.CredentialError {
			return cli.Exit("one or more explorer keys failed the check", 2)
		}
	}
	return nil
}

func writeJSON(c *cli.Context, v any) error {
	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(out))
	return err
}

func (a *app) serve(c *cli.Context) error {
	gin.SetMode(gin.ReleaseMode)

	probes, clients := a.probeService()
	defer clients.CloseAll()

	handler := restapi.NewConfigHandler(a.configs, a.definitions, probes, a.explorerService(), signer.NewKeyResolver())
	router := restapi.SetupRouter(handler, a.cfg, a.zap)

	srv := &http.Server{
		Addr:         a.cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		a.zap.Info("Server starting", zap.String("addr", a.cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	}
	a.zap.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	a.zap.Info("Server exiting")
	return nil
}
