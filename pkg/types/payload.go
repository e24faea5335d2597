package types

import (
	"encoding/json"
	"fmt"
)

// PayloadRange is an inclusive [Low, High] payload mass selection in kg.
// On the wire it is the two-element array produced by the range slider.
type PayloadRange struct {
	Low  float64
	High float64
}

// Contains reports whether Low <= kg <= High.
func (r PayloadRange) Contains(kg float64) bool {
	return kg >= r.Low && kg <= r.High
}

// Empty reports whether no payload value can satisfy the range.
func (r PayloadRange) Empty() bool { return r.Low > r.High }

func (r PayloadRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{r.Low, r.High})
}

func (r *PayloadRange) UnmarshalJSON(data []byte) error {
	var v []float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("payload range: want [low, high]: %w", err)
	}
	if len(v) != 2 {
		return fmt.Errorf("payload range: want 2 values, got %d", len(v))
	}
	r.Low, r.High = v[0], v[1]
	return nil
}
