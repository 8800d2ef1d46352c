package links

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Clicks is a click counter that tolerates loosely typed API payloads.
// Numbers, numeric strings and null all decode; anything that is not a finite,
// non-negative number counts as zero.
type Clicks int64

func (c *Clicks) UnmarshalJSON(data []byte) error {
	*c = 0

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	switch v := raw.(type) {
	case float64:
		*c = fromFloat(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			*c = fromFloat(f)
		}
	}
	return nil
}

func (c Clicks) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(c), 10)), nil
}

func (c Clicks) Int64() int64 {
	if c < 0 {
		return 0
	}
	return int64(c)
}

func fromFloat(f float64) Clicks {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f >= math.MaxInt64 {
		return Clicks(math.MaxInt64)
	}
	return Clicks(int64(f))
}
