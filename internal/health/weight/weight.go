package weight

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
)

var ErrValidationFailed = errors.New("validation failed")

const (
	maxWeightKg = float64(500)
	maxBodyFat  = float64(100)
)

// Log is one body-composition measurement. Weight is mandatory, the
// rest is optional.
type Log struct {
	ID                int       `json:"id"`
	UserID            int       `json:"userId"`
	Weight            float64   `json:"weight"`
	BodyFatPercentage *float64  `json:"bodyFatPercentage,omitempty"`
	VisceralFat       *float64  `json:"visceralFat,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	LoggedAt          time.Time `json:"loggedAt"`
}

// Validate checks all fields and reports every violation at once. A log
// with any invalid field is rejected as a whole.
func (l *Log) Validate() error {
	var err error
	if l.Weight <= 0 || l.Weight > maxWeightKg {
		err = multierr.Append(err, fmt.Errorf("weight %.2f not in (0, %.0f] kg", l.Weight, maxWeightKg))
	}
	if l.BodyFatPercentage != nil && (*l.BodyFatPercentage < 0 || *l.BodyFatPercentage > maxBodyFat) {
		err = multierr.Append(err, fmt.Errorf("body fat %.2f not in [0, 100] %%", *l.BodyFatPercentage))
	}
	if l.VisceralFat != nil && *l.VisceralFat < 0 {
		err = multierr.Append(err, fmt.Errorf("visceral fat %.2f negative", *l.VisceralFat))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	return nil
}

// ChartData is the read model for the weight tracker chart, one point
// per log, aligned by index.
type ChartData struct {
	Dates       []string   `json:"dates"`
	Weights     []float64  `json:"weights"`
	BodyFat     []*float64 `json:"bodyFat"`
	VisceralFat []*float64 `json:"visceralFat"`
}
