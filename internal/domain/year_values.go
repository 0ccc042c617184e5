package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type HarvestYearID = uuid.UUID

// YearValues holds one value per harvest year. A missing key reads as zero.
type YearValues map[HarvestYearID]decimal.Decimal

func (v YearValues) Get(id HarvestYearID) decimal.Decimal {
	if val, ok := v[id]; ok {
		return val
	}
	return decimal.Zero
}

func (v YearValues) Lookup(id HarvestYearID) (decimal.Decimal, bool) {
	val, ok := v[id]
	return val, ok
}

func (v YearValues) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, val := range v {
		total = total.Add(val)
	}
	return total
}

// FirstNegative reports a harvest year holding a negative value, picking the
// smallest id so the reported year is stable across runs.
func (v YearValues) FirstNegative() (HarvestYearID, bool) {
	ids := make([]HarvestYearID, 0, len(v))
	for id, val := range v {
		if val.IsNegative() {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return uuid.Nil, false
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids[0], true
}

func (v YearValues) MarshalJSON() ([]byte, error) {
	raw := make(map[string]json.RawMessage, len(v))
	for id, val := range v {
		raw[id.String()] = json.RawMessage(val.String())
	}
	return json.Marshal(raw)
}

func (v *YearValues) UnmarshalJSON(data []byte) error {
	var raw map[string]decimal.NullDecimal
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal year values: %w", err)
	}

	parsed := make(YearValues, len(raw))
	for key, val := range raw {
		id, err := uuid.Parse(key)
		if err != nil {
			return fmt.Errorf("invalid harvest year key %q: %w", key, err)
		}
		// null entries are treated as missing
		if !val.Valid {
			continue
		}
		parsed[id] = val.Decimal
	}

	*v = parsed
	return nil
}

func (v *YearValues) Scan(src any) error {
	switch data := src.(type) {
	case nil:
		*v = YearValues{}
		return nil
	case []byte:
		return v.UnmarshalJSON(data)
	case string:
		return v.UnmarshalJSON([]byte(data))
	default:
		return fmt.Errorf("unsupported year values source %T", src)
	}
}

func (v YearValues) Value() (driver.Value, error) {
	if v == nil {
		return []byte("{}"), nil
	}
	return v.MarshalJSON()
}
