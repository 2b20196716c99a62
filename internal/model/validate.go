package model

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// RawInput is a scenario as typed by a user: every numeric field is still
// text and may use either '.' or ',' as the decimal separator.
type RawInput struct {
	LeaderName   string
	ChaserName   string
	PointsLeader string
	PointsChaser string
	Remaining    string
	PpgLeader    string
	PpgChaser    string
}

// ErrorCode names the single field check that failed.
type ErrorCode string

const (
	ErrInvalidLeaderPoints ErrorCode = "invalid-leader-points"
	ErrInvalidChaserPoints ErrorCode = "invalid-chaser-points"
	ErrInvalidRemaining    ErrorCode = "invalid-remaining"
	ErrInvalidLeaderRate   ErrorCode = "invalid-leader-rate"
	ErrInvalidChaserRate   ErrorCode = "invalid-chaser-rate"
)

// ValidationError reports the first failing field of a RawInput.
type ValidationError struct {
	Code    ErrorCode
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// maxRemaining keeps the contest count representable on every platform.
const maxRemaining = math.MaxInt32

var errEmptyNumber = errors.New("empty number")

// decimalPattern is plain decimal notation with an optional exponent. It
// keeps out what strconv also accepts: hex floats, "Inf", "NaN" and
// underscores.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// ParseLocale parses a real number after removing all whitespace and
// turning a comma decimal separator into a period.
func ParseLocale(raw string) (float64, error) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	if s == "" {
		return 0, errEmptyNumber
	}
	s = strings.ReplaceAll(s, ",", ".")
	if !decimalPattern.MatchString(s) {
		return 0, fmt.Errorf("not a decimal number: %q", raw)
	}
	return strconv.ParseFloat(s, 64)
}

// Validate normalizes in and checks its fields in a fixed order: leader
// points, chaser points, remaining, leader rate, chaser rate. Only the first
// failure is reported, as a *ValidationError.
func Validate(in RawInput) (Scenario, error) {
	s := Scenario{
		LeaderName:   strings.TrimSpace(in.LeaderName),
		ChaserName:   strings.TrimSpace(in.ChaserName),
		PointsPerWin: PointsPerWin,
	}
	if s.LeaderName == "" {
		s.LeaderName = DefaultLeaderName
	}
	if s.ChaserName == "" {
		s.ChaserName = DefaultChaserName
	}

	var ok bool
	if s.PointsLeader, ok = parsePoints(in.PointsLeader); !ok {
		return Scenario{}, &ValidationError{
			Code:    ErrInvalidLeaderPoints,
			Field:   "points_leader",
			Message: "leader points are not valid",
		}
	}
	if s.PointsChaser, ok = parsePoints(in.PointsChaser); !ok {
		return Scenario{}, &ValidationError{
			Code:    ErrInvalidChaserPoints,
			Field:   "points_chaser",
			Message: "chaser points are not valid",
		}
	}
	if s.Remaining, ok = parseRemaining(in.Remaining); !ok {
		return Scenario{}, &ValidationError{
			Code:    ErrInvalidRemaining,
			Field:   "remaining",
			Message: "remaining contests are not valid",
		}
	}
	if s.PpgLeader, ok = parseRate(in.PpgLeader); !ok {
		return Scenario{}, &ValidationError{
			Code:    ErrInvalidLeaderRate,
			Field:   "ppg_leader",
			Message: "leader average points are not valid (0-3)",
		}
	}
	if s.PpgChaser, ok = parseRate(in.PpgChaser); !ok {
		return Scenario{}, &ValidationError{
			Code:    ErrInvalidChaserRate,
			Field:   "ppg_chaser",
			Message: "chaser average points are not valid (0-3)",
		}
	}
	return s, nil
}

// Raw formats s back into text fields using the shortest representation
// that parses to the same values.
func (s Scenario) Raw() RawInput {
	return RawInput{
		LeaderName:   s.LeaderName,
		ChaserName:   s.ChaserName,
		PointsLeader: FormatNumber(s.PointsLeader),
		PointsChaser: FormatNumber(s.PointsChaser),
		Remaining:    strconv.Itoa(s.Remaining),
		PpgLeader:    FormatNumber(s.PpgLeader),
		PpgChaser:    FormatNumber(s.PpgChaser),
	}
}

// FormatNumber renders x with the fewest digits that round-trip exactly.
func FormatNumber(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func parsePoints(raw string) (float64, bool) {
	x, err := ParseLocale(raw)
	if err != nil || !isFinite(x) || x < 0 {
		return 0, false
	}
	return x, true
}

func parseRemaining(raw string) (int, bool) {
	x, err := ParseLocale(raw)
	if err != nil || !isFinite(x) || x < 0 || x != math.Trunc(x) || x > maxRemaining {
		return 0, false
	}
	return int(x), true
}

func parseRate(raw string) (float64, bool) {
	x, err := ParseLocale(raw)
	if err != nil || !isFinite(x) || x < 0 || x > MaxRate {
		return 0, false
	}
	return x, true
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
