package service

import (
	"context"

	"github.com/ecnlab/ecn/pkg/errors"
	"github.com/ecnlab/ecn/pkg/logger"
)

// logFailure logs client errors at warn and everything else at error.
func logFailure(ctx context.Context, log logger.Logger, msg string, err error, fields logger.Fields) {
	if errors.Is(err, errors.ErrNotFound) || errors.Is(err, errors.ErrInvalidInput) {
		log.Warn(ctx, msg, logger.Merge(fields, logger.Fields{"error": err.Error()}))
		return
	}
	log.Error(ctx, msg, err, fields)
}
