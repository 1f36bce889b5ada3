package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBudgetUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Budget
	}{
		{"integer", `5000`, 5000},
		{"float", `5000.9`, 5000},
		{"object", `{"total_amount": 7500}`, 7500},
		{"object with extras", `{"total_amount": 100, "currency": "USD"}`, 100},
		{"null", `null`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var b Budget
			require.NoError(t, json.Unmarshal([]byte(tc.in), &b))
			require.Equal(t, tc.want, b)
		})
	}
}

func TestBudgetUnmarshalMalformed(t *testing.T) {
	for _, in := range []string{`"a lot"`, `{"total_amount": "many"}`, `[1]`} {
		var b Budget
		require.Error(t, json.Unmarshal([]byte(in), &b), "input %s", in)
	}
}

func TestBudgetMarshal(t *testing.T) {
	out, err := json.Marshal(Budget(1234))
	require.NoError(t, err)
	require.JSONEq(t, `1234`, string(out))
}
