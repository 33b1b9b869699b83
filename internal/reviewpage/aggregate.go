package reviewpage

import (
	"math"
	"strconv"

	"github.com/javajoker/review-page/internal/models"
)

// MaxStars is the number of stars in the rating widget.
const MaxStars = 5

const (
	// AveragePrecision is the step used to draw the aggregate rating.
	AveragePrecision = 0.5
	// RatingPrecision is the step used for single reviews and the rating input.
	RatingPrecision = 1.0
)

// Average is the arithmetic mean of all ratings, or 0 when there are none.
func Average(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum float64
	for _, r := range reviews {
		sum += r.Rating
	}
	return sum / float64(len(reviews))
}

// FormatAverage renders an average with one decimal place, rounding halves
// away from zero.
func FormatAverage(avg float64) string {
	return strconv.FormatFloat(math.Round(avg*10)/10, 'f', 1, 64)
}

// StarDisplay is how a rating is drawn: Full + Half + Empty == MaxStars.
type StarDisplay struct {
	Value float64
	Full  int
	Half  int
	Empty int
}

// Stars rounds value to the nearest precision step and splits it into
// full, half and empty stars. Values outside [0, MaxStars] are clamped for
// drawing only.
func Stars(value, precision float64) StarDisplay {
	if precision <= 0 {
		precision = RatingPrecision
	}
	v := math.Round(value/precision) * precision
	v = math.Max(0, math.Min(MaxStars, v))

	full := int(math.Floor(v))
	half := 0
	if v-float64(full) >= 0.5 {
		half = 1
	}
	return StarDisplay{
		Value: v,
		Full:  full,
		Half:  half,
		Empty: MaxStars - full - half,
	}
}

// Glyphs renders the display as a star string, e.g. "★★★⯪☆".
func (s StarDisplay) Glyphs() string {
	out := make([]rune, 0, MaxStars)
	for i := 0; i < s.Full; i++ {
		out = append(out, '★')
	}
	for i := 0; i < s.Half; i++ {
		out = append(out, '⯪')
	}
	for i := 0; i < s.Empty; i++ {
		out = append(out, '☆')
	}
	return string(out)
}
