package types

// Outcome class values as coded in the input file.
const (
	ClassFailure = 0
	ClassSuccess = 1
)

// Record is one row of launch data.
type Record struct {
	Site            string  `json:"site"`
	PayloadKg       float64 `json:"payload_kg"`
	Class           int     `json:"class"`
	BoosterCategory string  `json:"booster_category"`
}

// Success reports whether the launch outcome is coded as a success.
func (r Record) Success() bool { return r.Class == ClassSuccess }
