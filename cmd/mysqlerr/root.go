package main

import (
	"net/http"
	"os"
	"time"

	formatters "github.com/fabienm/go-logrus-formatters"
	"github.com/juju/errors"
	"github.com/ovh/configstore"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ovh/mysqlerr"
	"github.com/ovh/mysqlerr/api"
	"github.com/ovh/mysqlerr/db/dberrors"
)

const (
	defaultPort       = 8081
	defaultLogsFormat = "text"

	envHTTPPort   = "SERVER_PORT"
	envDebug      = "DEBUG"
	envLogsFormat = "LOGS_FORMAT"
)

var (
	store  *configstore.Store
	server *api.Server
)

//nolint:errcheck
func init() {
	viper.BindEnv(envHTTPPort)
	viper.BindEnv(envDebug)
	viper.BindEnv(envLogsFormat)

	persistentFlags := rootCmd.PersistentFlags()
	persistentFlags.BoolVar(&mysqlerr.FDebug, "debug", false, "Enable debug logs")
	persistentFlags.StringVar(&mysqlerr.FLogsFormat, "logs-format", defaultLogsFormat, "Format of the logs (text or gelf)")

	rootCmd.Flags().UintVar(&mysqlerr.FPort, "http-port", defaultPort, "HTTP port to expose")

	viper.BindPFlag(envHTTPPort, rootCmd.Flags().Lookup("http-port"))
	viper.BindPFlag(envDebug, persistentFlags.Lookup("debug"))
	viper.BindPFlag(envLogsFormat, persistentFlags.Lookup("logs-format"))
}

var rootCmd = &cobra.Command{
	Use:   "mysqlerr",
	Short: "mysqlerr, classification of MySQL server errors\n\n",
	Long: "mysqlerr maps the error numbers reported by MySQL servers\n" +
		"onto the DB-API error categories (IntegrityError, DataError, ...).\n" +
		"Run without subcommand, it exposes an HTTP API to list the categories\n" +
		"and classify server errors.\n",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		mysqlerr.FPort = viper.GetUint(envHTTPPort)
		mysqlerr.FDebug = viper.GetBool(envDebug)
		mysqlerr.FLogsFormat = viper.GetString(envLogsFormat)

		formatter, err := logsFormatter(mysqlerr.FLogsFormat)
		if err != nil {
			return err
		}
		log.SetOutput(os.Stdout)
		log.SetFormatter(formatter)
		if mysqlerr.FDebug {
			log.SetLevel(log.DebugLevel)
		}

		store = configstore.DefaultStore
		store.InitFromEnvironment()

		return initClassification(store)
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if mysqlerr.FPort > 65535 || mysqlerr.FPort == 0 {
			return errors.New("Incorrect HTTP port range")
		}

		server = api.NewServer()
		if cfg, err := mysqlerr.Config(store); err == nil {
			server.SetMaxBodyBytes(cfg.ServerOptions.MaxBodyBytes)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer log.Info("Bye!")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
	SilenceErrors: true,
	SilenceUsage:  true,
}

func logsFormatter(format string) (log.Formatter, error) {
	switch format {
	case "text":
		textFormatter := new(log.TextFormatter)
		textFormatter.TimestampFormat = time.RFC3339
		textFormatter.FullTimestamp = true
		return textFormatter, nil
	case "gelf":
		hostname, _ := os.Hostname()
		return formatters.NewGelf(hostname), nil
	}
	return nil, errors.NotValidf("logs format %q", format)
}

// initClassification installs the classification table, with the overrides
// found in configuration if any
func initClassification(store *configstore.Store) error {
	var overrides []dberrors.Entry

	cfg, err := mysqlerr.Config(store)
	switch {
	case errors.IsNotFound(err):
		log.Warnf("No %q configuration item, using the builtin classification table", mysqlerr.CfgSecretAlias)
	case err != nil:
		return err
	default:
		if overrides, err = cfg.Overrides(); err != nil {
			return err
		}
	}

	return dberrors.Init(overrides...)
}
