package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Budget normalises the two wire shapes clients send for a campaign
// budget: a bare number or an object {"total_amount": n}. The union is
// collapsed here at the boundary; the rest of the core only sees the
// int64 amount.
type Budget int64

func (b *Budget) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*b = 0
		return nil
	}
	if data[0] == '{' {
		var obj struct {
			TotalAmount float64 `json:"total_amount"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("malformed budget object: %w", err)
		}
		*b = Budget(obj.TotalAmount)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("malformed budget: %w", err)
	}
	*b = Budget(n)
	return nil
}

func (b Budget) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(b))
}

// Int64 returns the normalised amount.
func (b Budget) Int64() int64 { return int64(b) }
