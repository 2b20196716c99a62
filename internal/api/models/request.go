package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"clinch-calc/internal/model"
)

// FlexString accepts either a JSON string or a JSON number and keeps its
// text, so "1,85" and 1.85 both reach model.Validate unchanged.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected a number or a string, got %s", b)
	}
	*f = FlexString(n.String())
	return nil
}

// ScenarioRequest is the body shared by every scenario endpoint
type ScenarioRequest struct {
	LeaderName   string     `json:"leader_name,omitempty"`
	ChaserName   string     `json:"chaser_name,omitempty"`
	PointsLeader FlexString `json:"points_leader"`
	PointsChaser FlexString `json:"points_chaser"`
	Remaining    FlexString `json:"remaining"`
	PpgLeader    FlexString `json:"ppg_leader"`
	PpgChaser    FlexString `json:"ppg_chaser"`
}

// Raw converts the request into unvalidated engine input
func (r ScenarioRequest) Raw() model.RawInput {
	return model.RawInput{
		LeaderName:   r.LeaderName,
		ChaserName:   r.ChaserName,
		PointsLeader: string(r.PointsLeader),
		PointsChaser: string(r.PointsChaser),
		Remaining:    string(r.Remaining),
		PpgLeader:    string(r.PpgLeader),
		PpgChaser:    string(r.PpgChaser),
	}
}

// MonteCarloRequest is the body of POST /api/v1/montecarlo
type MonteCarloRequest struct {
	ScenarioRequest

	Volatility float64 `json:"volatility"`
	Trials     int     `json:"trials,omitempty"` // 0 = server default
	Seed       *uint64 `json:"seed,omitempty"`   // nil = random
}
