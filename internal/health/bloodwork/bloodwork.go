package bloodwork

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/multierr"
)

var ErrValidationFailed = errors.New("validation failed")

// Log is one bloodwork panel. All panel fields are optional, a log may
// carry any subset of them.
type Log struct {
	ID       int       `json:"id"`
	UserID   int       `json:"userId"`
	TestDate time.Time `json:"testDate"`

	TestosteroneTotal *float64 `json:"testosteroneTotal,omitempty"`
	TestosteroneFree  *float64 `json:"testosteroneFree,omitempty"`
	SHBG              *float64 `json:"shbg,omitempty"`
	Oestradiol        *float64 `json:"oestradiol,omitempty"`
	Prolactin         *float64 `json:"prolactin,omitempty"`

	HbA1c          *float64 `json:"hba1c,omitempty"`
	GlucoseFasting *float64 `json:"glucoseFasting,omitempty"`
	InsulinFasting *float64 `json:"insulinFasting,omitempty"`
	HomaIndex      *float64 `json:"homaIndex,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReferenceRange is a clinical [Min, Max] band for one panel field.
type ReferenceRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Unit string  `json:"unit"`
	Name string  `json:"name"`
}

// ReferenceRanges holds the static clinical bands per panel field, keyed
// by the field's snake_case name.
var ReferenceRanges = map[string]ReferenceRange{
	"testosterone_total": {Min: 10.0, Max: 35.0, Unit: "nmol/l", Name: "Testosterone Total"},
	"testosterone_free":  {Min: 225.0, Max: 725.0, Unit: "pmol/l", Name: "Testosterone Free"},
	"shbg":               {Min: 18.0, Max: 54.0, Unit: "nmol/l", Name: "SHBG"},
	"oestradiol":         {Min: 40.0, Max: 160.0, Unit: "pmol/l", Name: "Oestradiol"},
	"prolactin":          {Min: 86.0, Max: 324.0, Unit: "mIU/l", Name: "Prolactin"},
	"hba1c":              {Min: 4.0, Max: 5.6, Unit: "%", Name: "HbA1c"},
	"glucose_fasting":    {Min: 3.9, Max: 5.5, Unit: "mmol/l", Name: "Glucose (Fasting)"},
	"insulin_fasting":    {Min: 2.0, Max: 25.0, Unit: "mIU/l", Name: "Insulin (Fasting)"},
	"homa_index":         {Min: 0.0, Max: 2.0, Unit: "", Name: "HOMA-Index"},
}

type Status string

const (
	StatusLow    Status = "low"
	StatusNormal Status = "normal"
	StatusHigh   Status = "high"
)

// StatusOf classifies a value against a reference range. Boundary
// values count as normal.
func (rr ReferenceRange) StatusOf(v float64) Status {
	switch {
	case v < rr.Min:
		return StatusLow
	case v > rr.Max:
		return StatusHigh
	default:
		return StatusNormal
	}
}

// PercentOfRange maps a value to its position within the range on a
// 0-100 scale, rounded to one decimal. Values outside the range land
// outside [0, 100], that is intentional for chart scaling.
func (rr ReferenceRange) PercentOfRange(v float64) float64 {
	percentage := (v - rr.Min) / (rr.Max - rr.Min) * 100
	return math.Round(percentage*10) / 10
}

func (l *Log) panelFields() map[string]*float64 {
	return map[string]*float64{
		"testosterone_total": l.TestosteroneTotal,
		"testosterone_free":  l.TestosteroneFree,
		"shbg":               l.SHBG,
		"oestradiol":         l.Oestradiol,
		"prolactin":          l.Prolactin,
		"hba1c":              l.HbA1c,
		"glucose_fasting":    l.GlucoseFasting,
		"insulin_fasting":    l.InsulinFasting,
		"homa_index":         l.HomaIndex,
	}
}

// Validate rejects negative panel values, reporting all violations at
// once. A log with any invalid field is rejected as a whole.
func (l *Log) Validate() error {
	var err error
	for field, value := range l.panelFields() {
		if value != nil && *value < 0 {
			err = multierr.Append(err, fmt.Errorf("%s %.2f negative", field, *value))
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	return nil
}

// DeriveHomaIndex fills in the HOMA index from fasting glucose and
// insulin when it was not supplied directly.
func (l *Log) DeriveHomaIndex() {
	if l.HomaIndex != nil || l.GlucoseFasting == nil || l.InsulinFasting == nil {
		return
	}
	homa := *l.GlucoseFasting * *l.InsulinFasting / 22.5
	homa = math.Round(homa*100) / 100
	l.HomaIndex = &homa
}

// Insight is the read model for one measured panel field, value plus
// its classification against the reference range.
type Insight struct {
	Field      string  `json:"field"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	Value      float64 `json:"value"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Status     Status  `json:"status"`
	Percentage float64 `json:"percentage"`
}

// Insights computes one Insight per measured field of the log.
func (l *Log) Insights() map[string]Insight {
	insights := make(map[string]Insight)
	for field, value := range l.panelFields() {
		if value == nil {
			continue
		}
		rr := ReferenceRanges[field]
		insights[field] = Insight{
			Field:      field,
			Name:       rr.Name,
			Unit:       rr.Unit,
			Value:      *value,
			Min:        rr.Min,
			Max:        rr.Max,
			Status:     rr.StatusOf(*value),
			Percentage: rr.PercentOfRange(*value),
		}
	}
	return insights
}
