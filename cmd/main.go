// cmd/main.go

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bizbooks-service/docs"
	"github.com/bizbooks-service/pkg/api"
	"github.com/bizbooks-service/pkg/config"
	"github.com/bizbooks-service/pkg/document"
	"github.com/bizbooks-service/pkg/export"
	"github.com/bizbooks-service/pkg/logging"
	"github.com/bizbooks-service/pkg/render"
	"github.com/bizbooks-service/pkg/session"
	"github.com/bizbooks-service/pkg/storage"
	"github.com/bizbooks-service/pkg/store"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		logging.GetLogger().WithError(err).Error("command failed")
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "bizbooks",
		Usage:     "invoices, tax entries and expense exports for small businesses",
		Version:   version,
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: config.DefaultFile, EnvVars: []string{"BIZBOOKS_CONFIG"}, Usage: "YAML config file"},
			&cli.StringFlag{Name: "log-level", Usage: "override the configured log level"},
			&cli.BoolFlag{Name: "memory", Usage: "use an in-memory store instead of Postgres"},
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			exportCommand(),
		},
	}
}

// loadConfig applies flags on top of the file and environment.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, err
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("listen") {
		cfg.ListenAddr = c.String("listen")
	}
	logging.SetLevel(cfg.LogLevel)
	return cfg, nil
}

func openRepository(ctx context.Context, c *cli.Context, cfg config.Config) (store.Repository, func(), error) {
	if c.Bool("memory") {
		return store.NewMemory(), func() {}, nil
	}
	if err := cfg.RequireDatabase(); err != nil {
		return nil, nil, err
	}
	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { _ = db.Close() }, nil
}

func openStorage(ctx context.Context, cfg config.Config) (storage.Store, func(), error) {
	objects, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {}
	if closer, ok := objects.(io.Closer); ok {
		closeFn = func() { _ = closer.Close() }
	}
	return objects, closeFn, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "listen", Usage: "listen address, e.g. :8080"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			repo, closeRepo, err := openRepository(ctx, c, cfg)
			if err != nil {
				return err
			}
			defer closeRepo()
			objects, closeObjects, err := openStorage(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeObjects()

			logger := logging.GetLogger()
			docs.SwaggerInfo.Version = version
			svc := export.NewService(repo, objects, cfg.PageWidth, logger)
			router := api.NewRouter(api.NewHandler(repo, svc, objects, logger, cfg.Locale))

			srv := &http.Server{
				Addr:              cfg.ListenAddr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				logger.WithFields(logrus.Fields{"addr": cfg.ListenAddr, "storage": cfg.Storage.Provider}).Info("listening")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create the database tables",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if err := cfg.RequireDatabase(); err != nil {
				return err
			}
			db, err := store.Open(c.Context, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.Migrate(c.Context); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, "migrations applied")
			return nil
		},
	}
}

func exportFlags(extra ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{Name: "user", Required: true, Usage: "user id to export for"},
		&cli.StringFlag{Name: "locale", Usage: "date locale, e.g. en-GB"},
		&cli.StringFlag{Name: "format", Value: string(render.FormatPDF), Usage: "pdf or xlsx"},
		&cli.StringFlag{Name: "out", Usage: "output directory or file (default: current directory)"},
		&cli.BoolFlag{Name: "archive", Usage: "also store the file in object storage"},
	}, extra...)
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write a document to disk",
		Subcommands: []*cli.Command{
			{
				Name:  "invoice",
				Usage: "export one invoice by number",
				Flags: exportFlags(&cli.StringFlag{Name: "number", Required: true, Usage: "invoice number"}),
				Action: func(c *cli.Context) error {
					return runExport(c, func(ctx context.Context, svc *export.Service, sess session.Session, opts export.Options) (*export.Result, error) {
						return svc.InvoiceByNumber(ctx, sess, c.String("number"), opts)
					})
				},
			},
			{
				Name:  "tax-report",
				Usage: "export the tax report for one year or all years",
				Flags: exportFlags(&cli.IntFlag{Name: "year", Usage: "tax year (default: all years)"}),
				Action: func(c *cli.Context) error {
					return runExport(c, func(ctx context.Context, svc *export.Service, sess session.Session, opts export.Options) (*export.Result, error) {
						return svc.TaxReport(ctx, sess, c.Int("year"), opts)
					})
				},
			},
		},
	}
}

type exportFunc func(ctx context.Context, svc *export.Service, sess session.Session, opts export.Options) (*export.Result, error)

func runExport(c *cli.Context, fn exportFunc) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}
	locale := c.String("locale")
	if locale == "" {
		locale = cfg.Locale
	}
	sess, err := session.New(c.String("user"), locale)
	if err != nil {
		return err
	}

	repo, closeRepo, err := openRepository(c.Context, c, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()
	objects, closeObjects, err := openStorage(c.Context, cfg)
	if err != nil {
		return err
	}
	defer closeObjects()

	svc := export.NewService(repo, objects, cfg.PageWidth, logging.GetLogger())
	res, err := fn(c.Context, svc, sess, export.Options{Format: format, Archive: c.Bool("archive")})
	if errors.Is(err, document.ErrNoRecordsToExport) {
		fmt.Fprintln(c.App.Writer, "nothing to export")
		return nil
	}
	if err != nil {
		return err
	}

	path := outputPath(c.String("out"), res.FileName)
	if err := os.WriteFile(path, res.Data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "wrote %s (%d bytes)\n", path, len(res.Data))
	if res.ArchiveKey != "" {
		fmt.Fprintf(c.App.Writer, "archived as %s\n", res.ArchiveKey)
	}
	return nil
}

// outputPath treats out as a directory when it exists as one or is empty.
func outputPath(out, fileName string) string {
	if out == "" {
		return fileName
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, fileName)
	}
	return out
}
