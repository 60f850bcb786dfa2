package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/murker/internal/app"
	"github.com/zeusync/murker/internal/config"
	"github.com/zeusync/murker/internal/core/events/bus"
	"github.com/zeusync/murker/internal/core/npc"
	"github.com/zeusync/murker/internal/core/observability/log"
)

// ProviderSet builds an *app.App from a config.Config.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideBus,
	npc.NewDefaultRegistry,
	app.New,
)

// ProvideLogger builds the zap-backed logger; the cleanup flushes it.
func ProvideLogger(cfg config.Config) (log.Log, func(), error) {
	opts, err := cfg.LogOptions()
	if err != nil {
		return nil, nil, err
	}
	logger, err := log.New(opts)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func ProvideBus() bus.EventBus {
	return bus.New()
}
