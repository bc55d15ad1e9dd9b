package bootstrap

import (
	"github.com/ecnlab/ecn/internal/config"
	"github.com/ecnlab/ecn/internal/domain/service"
	"github.com/ecnlab/ecn/internal/infrastructure/model"
	"github.com/ecnlab/ecn/pkg/logger"
)

// LoadPredictor reads the model artifact and composes it with the feature
// normalization.
func LoadPredictor(cfg *config.ModelConfig, log logger.Logger) (service.TsunamiPotentialPredictor, error) {
	n, err := model.Load(cfg.Path, log)
	if err != nil {
		return nil, err
	}
	return service.NewTsunamiPotentialPredictor(n), nil
}
