package gemini

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/datar-psa/goembed/api"
)

// FXModule wires the Gemini text embedding service into Fx.
//
// It provides:
//   - *Config                    (NewConfig)
//   - *TextEmbeddingService      (NewTextEmbeddingServiceFromConfig)
//   - api.TextEmbeddingGenerator (the same service, as interface)
//
// A *zap.Logger may be supplied by the application; it is optional.
var FXModule = fx.Module(
	"gemini-embedding",

	fx.Provide(
		NewConfig,
		NewTextEmbeddingServiceFromConfig,
		func(s *TextEmbeddingService) api.TextEmbeddingGenerator { return s },
	),
)

// ServiceParams are the Fx dependencies of NewTextEmbeddingServiceFromConfig
type ServiceParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *Config
	Logger    *zap.Logger `optional:"true"`
}

// NewTextEmbeddingServiceFromConfig validates the config and builds a service from it.
func NewTextEmbeddingServiceFromConfig(p ServiceParams) (*TextEmbeddingService, error) {
	if err := p.Config.Validate(); err != nil {
		return nil, fmt.Errorf("gemini: invalid config: %w", err)
	}

	opts := p.Config.Options()
	if p.Logger != nil {
		opts = append(opts, WithLogger(p.Logger))
	}

	svc, err := NewTextEmbeddingService(context.Background(), p.Config.ModelID, p.Config.APIKey, opts...)
	if err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if p.Logger != nil {
				p.Logger.Info("gemini embedding service ready", zap.String("model", svc.Attributes().ModelID()))
			}
			return nil
		},
	})

	return svc, nil
}
