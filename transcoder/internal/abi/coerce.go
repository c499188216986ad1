package abi

import "math"

// signed widens any Go integer, or an integral float, to int64.
func signed(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if uint64(v) <= math.MaxInt64 {
			return int64(v), true
		}
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case float64:
		if v >= math.MinInt64 && v < math.MaxInt64 && v == math.Trunc(v) {
			return int64(v), true
		}
	case float32:
		f := float64(v)
		if f >= math.MinInt64 && f < math.MaxInt64 && f == math.Trunc(f) {
			return int64(f), true
		}
	}
	return 0, false
}

// unsigned widens any non-negative Go integer, or an integral float, to uint64.
func unsigned(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uintptr:
		return uint64(v), true
	case float64:
		if v >= 0 && v < math.MaxUint64 && v == math.Trunc(v) {
			return uint64(v), true
		}
	case float32:
		f := float64(v)
		if f >= 0 && f < math.MaxUint64 && f == math.Trunc(f) {
			return uint64(f), true
		}
	default:
		if s, ok := signed(value); ok && s >= 0 {
			return uint64(s), true
		}
	}
	return 0, false
}

func CoerceToInt8(value any) (int8, bool) {
	if v, ok := signed(value); ok && v >= math.MinInt8 && v <= math.MaxInt8 {
		return int8(v), true
	}
	return 0, false
}

// CoerceToUint8 also accepts bool, stored as 0 or 1.
func CoerceToUint8(value any) (uint8, bool) {
	if b, ok := value.(bool); ok {
		if b {
			return 1, true
		}
		return 0, true
	}
	if v, ok := unsigned(value); ok && v <= math.MaxUint8 {
		return uint8(v), true
	}
	return 0, false
}

func CoerceToInt16(value any) (int16, bool) {
	if v, ok := signed(value); ok && v >= math.MinInt16 && v <= math.MaxInt16 {
		return int16(v), true
	}
	return 0, false
}

func CoerceToUint16(value any) (uint16, bool) {
	if v, ok := unsigned(value); ok && v <= math.MaxUint16 {
		return uint16(v), true
	}
	return 0, false
}

func CoerceToInt32(value any) (int32, bool) {
	if v, ok := signed(value); ok && v >= math.MinInt32 && v <= math.MaxInt32 {
		return int32(v), true
	}
	return 0, false
}

func CoerceToUint32(value any) (uint32, bool) {
	if v, ok := unsigned(value); ok && v <= math.MaxUint32 {
		return uint32(v), true
	}
	return 0, false
}

func CoerceToInt64(value any) (int64, bool) {
	return signed(value)
}

func CoerceToUint64(value any) (uint64, bool) {
	return unsigned(value)
}

// CoerceToFloat64 accepts floats and integers.
func CoerceToFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	}
	if s, ok := signed(value); ok {
		return float64(s), true
	}
	if u, ok := unsigned(value); ok {
		return float64(u), true
	}
	return 0, false
}

// CoerceToFloat32 rounds to the nearest float32. Finite values beyond the
// float32 range are rejected; infinities and NaN pass through.
func CoerceToFloat32(value any) (float32, bool) {
	if v, ok := value.(float32); ok {
		return v, true
	}
	f, ok := CoerceToFloat64(value)
	if !ok {
		return 0, false
	}
	if !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
		return 0, false
	}
	return float32(f), true
}
