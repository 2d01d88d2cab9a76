package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/iudanet/starmap/internal/config"
	"github.com/iudanet/starmap/internal/server/audit"
	"github.com/iudanet/starmap/internal/server/service"
	"github.com/iudanet/starmap/internal/server/storage/sqlite"
)

type buildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// app общее состояние команд
type app struct {
	info    buildInfo
	cfgFile string
}

func newRootCmd(info buildInfo) *cobra.Command {
	a := &app{info: info}

	cmd := &cobra.Command{
		Use:   "starmap",
		Short: "Shared StarRupture map server",
		Long: `StarMap keeps the bases, points of interest and resource links of a
StarRupture world on a shared map, behind player and admin accounts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./starmap.yaml)")

	cmd.AddCommand(a.newServeCmd())
	cmd.AddCommand(a.newUserCmd())
	cmd.AddCommand(a.newConfigCmd())
	cmd.AddCommand(a.newVersionCmd())

	return cmd
}

// flagKeys связывает флаги команд с ключами конфигурации
var flagKeys = map[string]string{
	"host":       "server.host",
	"port":       "server.port",
	"public-dir": "server.public_dir",
	"db":         "storage.path",
	"revoked-db": "storage.revocation_path",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// loadConfig читает конфигурацию: флаги > окружение > файл > значения по умолчанию
func (a *app) loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	v, err := config.NewViper(a.cfgFile)
	if err != nil {
		return nil, err
	}

	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	return config.Load(v)
}

// storeFlags добавляет флаги путей хранилища
func storeFlags(flags *pflag.FlagSet) {
	flags.String("db", "", "path to the SQLite database")
}

// openUsers открывает хранилище для команд обслуживания
func openUsers(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*service.Users, func(), error) {
	store, err := sqlite.New(ctx, cfg.Storage.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}

	closeFn := func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}

	users := service.NewUsers(logger, store, audit.NewTrail(logger, store))
	return users, closeFn, nil
}
