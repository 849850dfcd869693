package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDate_RoundTrip(t *testing.T) {
	d, err := ParseDate("1997-06-26")
	require.NoError(t, err)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"1997-06-26"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	require.Equal(t, d.String(), back.String())
}

func TestDate_RejectsMalformed(t *testing.T) {
	for _, raw := range []string{`"26-06-1997"`, `"1997/06/26"`, `"not a date"`, `""`, `null`, `"1997-13-40"`} {
		var d Date
		require.Error(t, json.Unmarshal([]byte(raw), &d), "input %s", raw)
	}
}

func TestDateTime_Format(t *testing.T) {
	var dt DateTime
	require.NoError(t, json.Unmarshal([]byte(`"2024-11-03 18:22:05"`), &dt))

	b, err := json.Marshal(dt)
	require.NoError(t, err)
	require.Equal(t, `"2024-11-03 18:22:05"`, string(b))
}
