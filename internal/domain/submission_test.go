package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSubmissionUnmarshalYAML(t *testing.T) {
	src := `
title: renewals
submissions:
  - name: Warehouse
    total_insured_value: 1500000
    hazard_level: Low Hazard
    treaty_type: Standard
  - name: Pier
    total_insured_value: "$2,400,000"
    hazard_level: high
    treaty_type: surplus
    notes: waterfront
`
	var cfg Configuration
	require.NoError(t, yaml.Unmarshal([]byte(src), &cfg))
	require.Len(t, cfg.Submissions, 2)

	w := cfg.Submissions[0]
	assert.Equal(t, "Warehouse", w.Name)
	assert.Equal(t, "1500000", w.TotalInsuredValue)
	assert.Equal(t, LowHazard, w.HazardLevel)
	assert.Equal(t, Standard, w.TreatyType)

	p := cfg.Submissions[1]
	assert.Equal(t, HighHazard, p.HazardLevel)
	assert.Equal(t, Surplus, p.TreatyType)
	assert.Equal(t, "waterfront", p.Notes)
	assert.Equal(t, int64(2_400_000), p.Input().TotalInsuredValue.Units())
}

func TestSubmissionUnmarshalYAML_Errors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"missing hazard", "name: a\ntotal_insured_value: 1\ntreaty_type: Standard\n", ErrMissingHazardLevel},
		{"missing treaty", "name: a\ntotal_insured_value: 1\nhazard_level: low\n", ErrMissingTreatyType},
		{"unknown hazard", "name: a\nhazard_level: extreme\ntreaty_type: Standard\n", ErrUnknownHazardLevel},
		{"unknown treaty", "name: a\nhazard_level: low\ntreaty_type: quota\n", ErrUnknownTreatyType},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var s Submission
			err := yaml.Unmarshal([]byte(c.src), &s)
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestSubmissionInputMalformedTIV(t *testing.T) {
	for _, tiv := range []string{"lots", "1e30", "99999999999999999999999"} {
		s := Submission{Name: "x", TotalInsuredValue: tiv, HazardLevel: AverageHazard, TreatyType: Standard}
		in := s.Input()
		assert.True(t, in.TotalInsuredValue.IsZero(), tiv)
		assert.Equal(t, AverageHazard, in.HazardLevel)
	}
}
