package models

// TsunamiPotential holds the raw scores of the two output neurons of the
// tsunami-potential model. The scores are independent activations and do not
// necessarily sum to one.
type TsunamiPotential struct {
	Yes float64
	No  float64
}

// IsTsunami applies threshold to the tsunami-affinity score.
func (p TsunamiPotential) IsTsunami(threshold float64) bool {
	return p.Yes >= threshold
}

// IsNoTsunami applies threshold to the no-tsunami-affinity score.
func (p TsunamiPotential) IsNoTsunami(threshold float64) bool {
	return p.No >= threshold
}
