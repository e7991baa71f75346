// Package approval проверяет подписанное курьером разрешение до отправки в леджер.
// Здесь проверяется только форма, саму подпись проверяет контракт.
package approval

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"

	"ecopickup/internal/apperr"
	"ecopickup/internal/domain"
)

// Parse проверяет нетипизированный payload разрешения, обычно разобранный JSON объект.
// nil означает что разрешение не передано, возвращается (nil, nil).
func Parse(v any) (*domain.CourierApproval, error) {
	if v == nil {
		return nil, nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, invalid("courier approval must be an object, got %T", v)
	}

	// подпись обязательна и не пустая
	sig, err := parseSignature(obj["signature"])
	if err != nil {
		return nil, err
	}
	// дедлайн: число, числовая строка (10 или 0x16) или big.Int
	rawDeadline, ok := obj["deadline"]
	if !ok {
		return nil, invalid("courier approval deadline is required")
	}
	deadline, err := parseDeadline(rawDeadline)
	if err != nil {
		return nil, err
	}
	return &domain.CourierApproval{Signature: sig, Deadline: deadline}, nil
}

// ParseJSON разбирает сырой JSON и проверяет его через Parse.
// Пустой ввод и литерал null считаются отсутствующим разрешением.
func ParseJSON(raw json.RawMessage) (*domain.CourierApproval, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	// UseNumber чтобы большие дедлайны не терялись во float64
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, invalid("courier approval is not valid json: %v", err)
	}
	return Parse(v)
}

func parseSignature(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", invalid("courier approval signature must be a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid("courier approval signature is empty")
	}
	return s, nil
}

func parseDeadline(v any) (*big.Int, error) {
	switch d := v.(type) {
	case nil:
		return nil, invalid("courier approval deadline is required")
	case string:
		return parseNumericString(d)
	case json.Number:
		return parseNumericString(d.String())
	case float64:
		if math.IsNaN(d) || math.IsInf(d, 0) || d != math.Trunc(d) {
			return nil, invalid("courier approval deadline %v is not an integer", d)
		}
		n, _ := big.NewFloat(d).Int(nil)
		return nonNegative(n)
	case int:
		return nonNegative(big.NewInt(int64(d)))
	case int64:
		return nonNegative(big.NewInt(d))
	case uint64:
		return new(big.Int).SetUint64(d), nil
	case *big.Int:
		if d == nil {
			return nil, invalid("courier approval deadline is required")
		}
		return nonNegative(new(big.Int).Set(d))
	case big.Int:
		return nonNegative(new(big.Int).Set(&d))
	default:
		return nil, invalid("courier approval deadline has unsupported type %T", v)
	}
}

func parseNumericString(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, invalid("courier approval deadline is empty")
	}
	base, digits := 10, s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base, digits = 16, s[2:]
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, invalid("courier approval deadline %q is not numeric", s)
	}
	return nonNegative(n)
}

func nonNegative(n *big.Int) (*big.Int, error) {
	if n.Sign() < 0 {
		return nil, invalid("courier approval deadline must not be negative")
	}
	return n, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperr.ErrInvalid, fmt.Sprintf(format, args...))
}
