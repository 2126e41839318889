package calldata

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/tessellated-io/foresight/coding"
	"github.com/tessellated-io/foresight/util"
)

var bigIntType = reflect.TypeOf(&big.Int{})

// coerce converts a loosely typed value (as decoded from JSON, or given on a command line) into the Go
// representation go-ethereum packs for the ABI type.
func coerce(typ abi.Type, value any) (reflect.Value, error) {
	if value == nil {
		return reflect.Value{}, fmt.Errorf("missing value for %s", typ.String())
	}

	// Integers always go through the range check below.
	goType := typ.GetType()
	if typ.T != abi.IntTy && typ.T != abi.UintTy && reflect.TypeOf(value) == goType {
		return reflect.ValueOf(value), nil
	}

	switch typ.T {
	case abi.IntTy, abi.UintTy:
		n, err := toBigInt(value)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("expected %s: %w", typ.String(), err)
		}
		return integerValue(typ, n)

	case abi.BoolTy:
		switch v := value.(type) {
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true":
				return reflect.ValueOf(true), nil
			case "false":
				return reflect.ValueOf(false), nil
			}
		}
		return reflect.Value{}, unexpected(typ, value)

	case abi.StringTy:
		if v, ok := value.(string); ok {
			return reflect.ValueOf(v), nil
		}
		return reflect.Value{}, unexpected(typ, value)

	case abi.AddressTy:
		v, ok := value.(string)
		if !ok || !common.IsHexAddress(v) {
			return reflect.Value{}, unexpected(typ, value)
		}
		return reflect.ValueOf(common.HexToAddress(v)), nil

	case abi.BytesTy:
		b, err := toBytes(value)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("expected %s: %w", typ.String(), err)
		}
		return reflect.ValueOf(b), nil

	case abi.FixedBytesTy:
		b, err := toBytes(value)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("expected %s: %w", typ.String(), err)
		}
		if len(b) != typ.Size {
			return reflect.Value{}, fmt.Errorf("expected %s: got %d bytes", typ.String(), len(b))
		}
		fixed := reflect.New(goType).Elem()
		reflect.Copy(fixed, reflect.ValueOf(b))
		return fixed, nil

	case abi.SliceTy, abi.ArrayTy:
		elements, err := toList(value)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("expected %s: %w", typ.String(), err)
		}

		var list reflect.Value
		if typ.T == abi.SliceTy {
			list = reflect.MakeSlice(goType, len(elements), len(elements))
		} else {
			if len(elements) != typ.Size {
				return reflect.Value{}, fmt.Errorf("expected %s: got %d elements", typ.String(), len(elements))
			}
			list = reflect.New(goType).Elem()
		}

		for i, element := range elements {
			coerced, err := coerce(*typ.Elem, element)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			list.Index(i).Set(coerced)
		}
		return list, nil

	case abi.TupleTy:
		fields, err := toList(value)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("expected %s: %w", typ.String(), err)
		}
		if len(fields) != len(typ.TupleElems) {
			return reflect.Value{}, fmt.Errorf("expected %s: got %d fields", typ.String(), len(fields))
		}

		tuple := reflect.New(goType).Elem()
		for i, field := range fields {
			coerced, err := coerce(*typ.TupleElems[i], field)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("field %d: %w", i, err)
			}
			tuple.Field(i).Set(coerced)
		}
		return tuple, nil
	}

	return reflect.Value{}, fmt.Errorf("unsupported parameter type %s", typ.String())
}

func unexpected(typ abi.Type, value any) error {
	return fmt.Errorf("expected %s, got %T (%v)", typ.String(), value, value)
}

func toBigInt(value any) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			return nil, fmt.Errorf("nil integer")
		}
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case json.Number:
		return util.NumberToBigInt(v)
	case float64:
		return util.FloatToBigInt(v)
	case float32:
		return util.FloatToBigInt(float64(v))
	case string:
		return parseIntegerString(v)
	case int:
		return big.NewInt(int64(v)), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	}
	return nil, fmt.Errorf("got %T (%v)", value, value)
}

// parseIntegerString accepts decimal (optionally negative) and 0x-prefixed hex integers of at most 256 bits.
func parseIntegerString(s string) (*big.Int, error) {
	trimmed := strings.TrimSpace(s)

	negative := strings.HasPrefix(trimmed, "-")
	digits := strings.TrimPrefix(trimmed, "-")

	// ParseBig256 reads "" as zero and tolerates a sign
	magnitude := coding.StripHexPrefix(digits)
	if magnitude == "" || strings.HasPrefix(magnitude, "+") || strings.HasPrefix(magnitude, "-") {
		return nil, fmt.Errorf("invalid integer %q", s)
	}

	n, ok := math.ParseBig256(digits)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	if negative {
		n.Neg(n)
	}
	return n, nil
}

// integerValue range checks n against the declared width and converts it into the packed Go type.
func integerValue(typ abi.Type, n *big.Int) (reflect.Value, error) {
	if typ.T == abi.UintTy {
		if n.Sign() < 0 || n.BitLen() > typ.Size {
			return reflect.Value{}, fmt.Errorf("value %s out of range for %s", n, typ.String())
		}
	} else {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(typ.Size-1))
		minimum := new(big.Int).Neg(limit)
		if n.Cmp(minimum) < 0 || n.Cmp(limit) >= 0 {
			return reflect.Value{}, fmt.Errorf("value %s out of range for %s", n, typ.String())
		}
	}

	goType := typ.GetType()
	if goType == bigIntType {
		return reflect.ValueOf(n), nil
	}

	v := reflect.New(goType).Elem()
	if typ.T == abi.UintTy {
		v.SetUint(n.Uint64())
	} else {
		v.SetInt(n.Int64())
	}
	return v, nil
}

func toBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		if !coding.Has0xPrefix(v) {
			return nil, fmt.Errorf("bytes must be 0x-prefixed hex, got %q", v)
		}
		return coding.DecodeHex(v)
	}
	return nil, fmt.Errorf("got %T (%v)", value, value)
}

func toList(value any) ([]any, error) {
	switch v := value.(type) {
	case []any:
		return v, nil
	case string:
		// Lists given as a single string, ex. on a command line, are read as JSON.
		var decoded []any
		decoder := json.NewDecoder(strings.NewReader(v))
		decoder.UseNumber()
		if err := decoder.Decode(&decoded); err != nil {
			return nil, fmt.Errorf("invalid list %q: %w", v, err)
		}
		return decoded, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("got %T (%v)", value, value)
	}
	list := make([]any, rv.Len())
	for i := range list {
		list[i] = rv.Index(i).Interface()
	}
	return list, nil
}
