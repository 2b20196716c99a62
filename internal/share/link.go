// Package share encodes scenarios as URL query parameters so a calculation
// can be passed around as a link.
package share

import (
	"net/url"
	"strconv"

	"clinch-calc/internal/model"
)

// Query parameter names.
const (
	KeyLeaderName   = "h"
	KeyChaserName   = "a"
	KeyPointsLeader = "ph"
	KeyPointsChaser = "pa"
	KeyRemaining    = "r"
	KeyPpgLeader    = "mh"
	KeyPpgChaser    = "ma"
)

// Encode maps the seven scenario fields to query values. Numbers use the
// shortest representation that parses back to the same float64.
func Encode(s model.Scenario) url.Values {
	v := url.Values{}
	v.Set(KeyLeaderName, s.LeaderName)
	v.Set(KeyChaserName, s.ChaserName)
	v.Set(KeyPointsLeader, model.FormatNumber(s.PointsLeader))
	v.Set(KeyPointsChaser, model.FormatNumber(s.PointsChaser))
	v.Set(KeyRemaining, strconv.Itoa(s.Remaining))
	v.Set(KeyPpgLeader, model.FormatNumber(s.PpgLeader))
	v.Set(KeyPpgChaser, model.FormatNumber(s.PpgChaser))
	return v
}

// EncodeQuery is Encode rendered as a query string.
func EncodeQuery(s model.Scenario) string {
	return Encode(s).Encode()
}

// Link appends the encoded scenario to base, replacing any existing query.
func Link(base string, s model.Scenario) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	u.RawQuery = EncodeQuery(s)
	return u.String(), nil
}

// Decode reads a shared scenario back into raw text fields. The result
// still has to go through model.Validate.
func Decode(v url.Values) model.RawInput {
	return model.RawInput{
		LeaderName:   v.Get(KeyLeaderName),
		ChaserName:   v.Get(KeyChaserName),
		PointsLeader: v.Get(KeyPointsLeader),
		PointsChaser: v.Get(KeyPointsChaser),
		Remaining:    v.Get(KeyRemaining),
		PpgLeader:    v.Get(KeyPpgLeader),
		PpgChaser:    v.Get(KeyPpgChaser),
	}
}

// DecodeQuery parses a raw query string and decodes it.
func DecodeQuery(rawQuery string) (model.RawInput, error) {
	v, err := url.ParseQuery(rawQuery)
	if err != nil {
		return model.RawInput{}, err
	}
	return Decode(v), nil
}
