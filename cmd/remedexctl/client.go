package main

import (
	"context"

	"github.com/spf13/viper"

	remedyuc "github.com/kailas-cloud/remedex/internal/usecase/remedy"
	remedex "github.com/kailas-cloud/remedex/pkg/sdk"
)

// remedexClient is the subset of the SDK the commands use.
type remedexClient interface {
	Consult(ctx context.Context, req remedex.ConsultRequest) (remedex.Consultation, error)
	Classify(ctx context.Context, req remedex.ClassifyRequest) (remedex.Classification, error)
	Match(ctx context.Context, req remedex.MatchRequest) (remedex.Remedy, bool, error)
	Remedies(ctx context.Context, req remedex.MatchRequest) ([]remedex.Remedy, error)
	Diseases() []string
	Symptoms() []string
	Health(ctx context.Context) remedex.HealthStatus
	Close()
}

type clientFactory func(ctx context.Context, a *app) (remedexClient, error)

// openClient builds an SDK client from the resolved flags, env and config file.
func openClient(ctx context.Context, a *app) (remedexClient, error) {
	c, err := remedex.New(ctx, clientOptions(a.v, a)...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func clientOptions(v *viper.Viper, a *app) []remedex.Option {
	opts := []remedex.Option{
		remedex.WithDataset(v.GetString(keyDataset)),
		remedex.WithDatasetEncoding(v.GetString(keyDatasetFormat), v.GetString(keyDatasetCharset)),
		remedex.WithLogger(a.logger),
	}
	if key := v.GetString(keyAPIKey); key != "" {
		opts = append(opts, remedex.WithOpenAI(key, v.GetString(keyBaseURL), v.GetString(keyModel)))
	}
	if d := v.GetDuration(keyTimeout); d > 0 {
		opts = append(opts, remedex.WithTimeout(d))
	}
	if seed := v.GetUint64(keySeed); seed != 0 {
		opts = append(opts, remedex.WithPicker(remedyuc.NewSeededPicker(seed)))
	}
	return opts
}
