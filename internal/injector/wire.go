//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/interact/internal/config"
)

func InitializeApp(cfg config.Config) (*App, func(), error) {
	wire.Build(LogSet, CoreSet, SceneSet, NewApp)
	return nil, nil, nil
}
