package statesync

import (
	"encoding/json"
	"fmt"
	"math"
)

// absent is the type of the Absent sentinel.
type absent struct{}

// Absent marks a value that is missing from the upstream payload, as
// distinct from an explicit null. Both fingerprint to fixed tokens that can
// never collide with a real value.
var Absent = absent{}

// Fingerprint encodes a value into an opaque string such that two values
// are "unchanged" if and only if their fingerprints are equal.
//
// Encoding rules, in priority order:
//
//   - nil → "null"
//   - Absent → "absent"
//   - NaN floats → "num:NaN" (every NaN equals every other NaN; the
//     encoding is literal-tagged, not IEEE comparison)
//   - scalars (bool, string, integers, floats) → type-tagged literal
//   - structured values → "json:" plus canonical JSON (encoding/json sorts
//     map keys, so key order is stable; array order is preserved)
//   - values that cannot be marshalled (cycles, channels, funcs, NaN inside
//     a structure) → type-tag-only fallback. Distinct unserialisable values
//     of the same type collide; that imprecision is accepted, the write
//     then always proceeds.
//
// Fingerprints are never parsed, only compared for equality.
func Fingerprint(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case absent:
		return "absent"
	case bool:
		return fmt.Sprintf("bool:%t", val)
	case string:
		return fmt.Sprintf("string:%q", val)
	case float64:
		if math.IsNaN(val) {
			return "num:NaN"
		}
		return fmt.Sprintf("float64:%v", val)
	case float32:
		if math.IsNaN(float64(val)) {
			return "num:NaN"
		}
		return fmt.Sprintf("float32:%v", val)
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%T:%v", val, val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			// Fallback: tag by Go type only. Collisions between distinct
			// unserialisable values of the same type are documented and
			// accepted; the caller still attempts the write.
			return fmt.Sprintf("opaque:%T", val)
		}
		return "json:" + string(data)
	}
}
