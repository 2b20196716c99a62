package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() RawInput {
	return RawInput{
		LeaderName:   "Inter",
		ChaserName:   "Milan",
		PointsLeader: "60",
		PointsChaser: "55",
		Remaining:    "5",
		PpgLeader:    "2.0",
		PpgChaser:    "1,0",
	}
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{"plain integer", "60", 60, false},
		{"period decimal", "1.85", 1.85, false},
		{"comma decimal", "1,85", 1.85, false},
		{"internal whitespace", " 1 , 8 5 ", 1.85, false},
		{"tabs and newlines", "\t2\n", 2, false},
		{"empty", "", 0, true},
		{"only spaces", "   ", 0, true},
		{"letters", "abc", 0, true},
		{"two separators", "1,2,3", 0, true},
		{"signed", "-2", -2, false},
		{"leading separator", ",5", 0.5, false},
		{"exponent", "1e2", 100, false},
		{"hex float", "0x1p4", 0, true},
		{"infinity", "Inf", 0, true},
		{"spelled infinity", "+infinity", 0, true},
		{"nan", "NaN", 0, true},
		{"underscores", "1_000", 0, true},
		{"bare sign", "-", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocale(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestValidateRejectsHexPoints(t *testing.T) {
	in := validInput()
	in.PointsLeader = "0x1p4"

	_, err := Validate(in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ErrInvalidLeaderPoints, verr.Code)
}

func TestValidateAcceptsWellFormedInput(t *testing.T) {
	s, err := Validate(validInput())
	require.NoError(t, err)

	assert.Equal(t, "Inter", s.LeaderName)
	assert.Equal(t, "Milan", s.ChaserName)
	assert.Equal(t, 60.0, s.PointsLeader)
	assert.Equal(t, 55.0, s.PointsChaser)
	assert.Equal(t, 5, s.Remaining)
	assert.Equal(t, 2.0, s.PpgLeader)
	assert.Equal(t, 1.0, s.PpgChaser)
	assert.Equal(t, PointsPerWin, s.PointsPerWin)
}

func TestValidateDefaultsBlankNames(t *testing.T) {
	in := validInput()
	in.LeaderName = "   "
	in.ChaserName = ""

	s, err := Validate(in)
	require.NoError(t, err)
	assert.Equal(t, DefaultLeaderName, s.LeaderName)
	assert.Equal(t, DefaultChaserName, s.ChaserName)
}

func TestValidateReportsFirstFailure(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawInput)
		code   ErrorCode
		field  string
	}{
		{"negative leader points", func(in *RawInput) { in.PointsLeader = "-1" }, ErrInvalidLeaderPoints, "points_leader"},
		{"non-numeric leader points", func(in *RawInput) { in.PointsLeader = "sixty" }, ErrInvalidLeaderPoints, "points_leader"},
		{"infinite leader points", func(in *RawInput) { in.PointsLeader = "Inf" }, ErrInvalidLeaderPoints, "points_leader"},
		{"NaN chaser points", func(in *RawInput) { in.PointsChaser = "NaN" }, ErrInvalidChaserPoints, "points_chaser"},
		{"fractional remaining", func(in *RawInput) { in.Remaining = "5.5" }, ErrInvalidRemaining, "remaining"},
		{"negative remaining", func(in *RawInput) { in.Remaining = "-2" }, ErrInvalidRemaining, "remaining"},
		{"empty remaining", func(in *RawInput) { in.Remaining = "" }, ErrInvalidRemaining, "remaining"},
		{"leader rate above max", func(in *RawInput) { in.PpgLeader = "3.5" }, ErrInvalidLeaderRate, "ppg_leader"},
		{"leader rate negative", func(in *RawInput) { in.PpgLeader = "-0,1" }, ErrInvalidLeaderRate, "ppg_leader"},
		{"chaser rate above max", func(in *RawInput) { in.PpgChaser = "3,01" }, ErrInvalidChaserRate, "ppg_chaser"},
		{
			"leader points checked before rate",
			func(in *RawInput) {
				in.PointsLeader = "x"
				in.PpgLeader = "9"
			},
			ErrInvalidLeaderPoints, "points_leader",
		},
		{
			"leader rate checked before chaser rate",
			func(in *RawInput) {
				in.PpgLeader = "3.5"
				in.PpgChaser = "nope"
			},
			ErrInvalidLeaderRate, "ppg_leader",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := Validate(in)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
			assert.Equal(t, tt.code, verr.Code)
			assert.Equal(t, tt.field, verr.Field)
			assert.NotEmpty(t, verr.Error())
		})
	}
}

func TestValidateAcceptsRateBounds(t *testing.T) {
	in := validInput()
	in.PpgLeader = "3"
	in.PpgChaser = "0"

	s, err := Validate(in)
	require.NoError(t, err)
	assert.Equal(t, 3.0, s.PpgLeader)
	assert.Equal(t, 0.0, s.PpgChaser)
}

func TestScenarioRawRoundTrip(t *testing.T) {
	orig := Scenario{
		LeaderName:   "Napoli",
		ChaserName:   "Lazio",
		PointsLeader: 71.5,
		PointsChaser: 0.1 + 0.2,
		Remaining:    12,
		PpgLeader:    2.0 / 3.0,
		PpgChaser:    1.85,
		PointsPerWin: PointsPerWin,
	}

	got, err := Validate(orig.Raw())
	require.NoError(t, err)
	assert.Equal(t, orig, got)
}

func TestClampRate(t *testing.T) {
	assert.Equal(t, 0.0, ClampRate(-0.4))
	assert.Equal(t, 1.5, ClampRate(1.5))
	assert.Equal(t, MaxRate, ClampRate(3.4))
}
