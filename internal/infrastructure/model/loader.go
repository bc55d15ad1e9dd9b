package model

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ecnlab/ecn/internal/domain/service"
	"github.com/ecnlab/ecn/pkg/logger"
)

var _ service.TsunamiModel = (*Network)(nil)

// Load reads and validates the artifact at path. Any failure here is a startup
// failure: callers are expected to abort rather than serve without a model.
func Load(path string, log logger.Logger) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model artifact: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	var n Network
	if err := dec.Decode(&n); err != nil {
		return nil, fmt.Errorf("decode model artifact %s: %w", path, err)
	}
	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model artifact %s: %w", path, err)
	}
	if n.InputSize != service.FeatureCount {
		return nil, fmt.Errorf("model %s takes %d inputs, feature vector has %d", path, n.InputSize, service.FeatureCount)
	}
	if n.OutputSize() < 2 {
		return nil, fmt.Errorf("model %s has %d outputs, need tsunami and no-tsunami scores", path, n.OutputSize())
	}

	log.Info(context.Background(), "Tsunami potential model loaded", logger.Fields{
		"path":    path,
		"name":    n.Name,
		"layers":  len(n.Layers),
		"inputs":  n.InputSize,
		"outputs": n.OutputSize(),
	})
	return &n, nil
}
