package dto

import (
	"github.com/ecnlab/ecn/internal/domain/models"
	"github.com/ecnlab/ecn/pkg/utils"
)

// PredictRequest carries the unnormalized seismic parameters: rupture duration
// t0, P-wave dominant period td and moment magnitude mw. Pointers distinguish a
// missing field from zero.
type PredictRequest struct {
	T0 *float64 `json:"t0" validate:"required"`
	Td *float64 `json:"td" validate:"required"`
	Mw *float64 `json:"mw" validate:"required"`
}

// Validate reports every missing field in one invalid_input error.
func (r *PredictRequest) Validate() error {
	if appErr := utils.ValidateStruct(r); appErr != nil {
		return appErr
	}
	return nil
}

// PredictionResponse holds the raw output neurons of the model.
type PredictionResponse struct {
	TsunamiYes float64 `json:"tsunamiYes"`
	TsunamiNo  float64 `json:"tsunamiNo"`
}

func NewPredictionResponse(p models.TsunamiPotential) *PredictionResponse {
	return &PredictionResponse{TsunamiYes: p.Yes, TsunamiNo: p.No}
}
