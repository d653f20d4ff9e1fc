package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kailas-cloud/remedex/internal/config"
	"github.com/kailas-cloud/remedex/internal/version"
)

// Viper keys shared by flags, REMEDEX_* env vars and the config file.
const (
	keyDataset        = "dataset"
	keyDatasetFormat  = "dataset_format"
	keyDatasetCharset = "dataset_charset"
	keyAPIKey         = "api_key"
	keyBaseURL        = "base_url"
	keyModel          = "model"
	keyTimeout        = "timeout"
	keySeed           = "seed"
	keyOutput         = "output"
	keyLogLevel       = "log_level"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// app carries per-invocation state so commands stay testable.
type app struct {
	v         *viper.Viper
	cfgFile   string
	newClient clientFactory
	logger    *slog.Logger
}

func newApp(f clientFactory) *app {
	return &app{v: viper.New(), newClient: f, logger: slog.Default()}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "remedexctl",
		Short: "Symptom to home-remedy lookup",
		Long: `remedexctl classifies symptoms into a catalogued disease with an
OpenAI-compatible model, then picks a home remedy from the remedy table
that suits the user's age, allergy and diet.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.initConfig,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: ./remedexctl.yaml or $HOME/.config/remedex/remedexctl.yaml)")
	pf.String("dataset", "data/remedies.csv", "remedy table (CSV or Parquet)")
	pf.String("dataset-format", "", "dataset format: csv or parquet (default: by extension)")
	pf.String("dataset-charset", "", "CSV charset: utf-8, windows-1252, iso-8859-1")
	pf.String("api-key", "", "classifier API key (env REMEDEX_API_KEY or GROQ_API_KEY)")
	pf.String("base-url", "", "OpenAI-compatible base URL (default: Groq)")
	pf.String("model", "", "classifier model (default: llama3-70b-8192)")
	pf.Duration("timeout", 0, "classifier call timeout (default: 30s)")
	pf.Uint64("seed", 0, "seed for the remedy pick; 0 picks at random")
	pf.StringP("output", "o", outputText, "output format: text or json")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")

	for key, flag := range map[string]string{
		keyDataset:        "dataset",
		keyDatasetFormat:  "dataset-format",
		keyDatasetCharset: "dataset-charset",
		keyAPIKey:         "api-key",
		keyBaseURL:        "base-url",
		keyModel:          "model",
		keyTimeout:        "timeout",
		keySeed:           "seed",
		keyOutput:         "output",
		keyLogLevel:       "log-level",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		consultCmd(a),
		classifyCmd(a),
		matchCmd(a),
		remediesCmd(a),
		diseasesCmd(a),
		symptomsCmd(a),
		healthCmd(a),
		versionCmd(),
	)
	return root
}

func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	v := a.v
	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		v.SetConfigName("remedexctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.config/remedex")
		}
	}

	v.SetEnvPrefix("REMEDEX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(keyAPIKey, "REMEDEX_API_KEY", "GROQ_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	switch out := v.GetString(keyOutput); out {
	case outputText, outputJSON:
	default:
		return fmt.Errorf("invalid output format: %s", out)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString(keyLogLevel))); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "remedexctl %s\n", version.String())
		},
	}
}
