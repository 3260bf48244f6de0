package usecase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/officialforloop/summary-report/internal/summary/entity"
)

var (
	errInvalidJSON  = errors.New("invalid json")
	errNotAnArray   = errors.New("top-level value is not an array")
	errNoValidUsers = errors.New("array holds no valid user")
)

// decodeUsers parses one file's content and keeps the elements that satisfy
// the user shape. Malformed elements are dropped without an error; an error is
// returned only when the file as a whole yields nothing.
func decodeUsers(content []byte) ([]entity.User, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidJSON, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after top-level value", errInvalidJSON)
	}

	items, ok := doc.([]any)
	if !ok {
		return nil, errNotAnArray
	}

	users := make([]entity.User, 0, len(items))
	for _, item := range items {
		user, ok := toUser(item)
		if !ok {
			continue
		}
		users = append(users, user)
	}

	if len(users) == 0 {
		return nil, errNoValidUsers
	}

	return users, nil
}

func toUser(item any) (entity.User, bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		return entity.User{}, false
	}

	id, ok := wholeNumber(obj["id"])
	if !ok {
		return entity.User{}, false
	}
	age, ok := wholeNumber(obj["age"])
	if !ok || !age.IsInt64() {
		return entity.User{}, false
	}
	name, ok := obj["name"].(string)
	if !ok {
		return entity.User{}, false
	}
	email, ok := obj["email"].(string)
	if !ok {
		return entity.User{}, false
	}
	country, ok := obj["country"].(string)
	if !ok {
		return entity.User{}, false
	}

	return entity.User{
		ID:      id.String(),
		Name:    name,
		Email:   email,
		Age:     age.Int64(),
		Country: country,
	}, true
}

// maxExponent bounds the exponent of a number before it is expanded.
const maxExponent = 1000

// wholeNumber reports whether v is a JSON number with an integral value and
// returns it in canonical decimal form, so 30, 30.0 and 3e1 all give "30".
// The value is not range limited.
func wholeNumber(v any) (*big.Int, bool) {
	num, ok := v.(json.Number)
	if !ok {
		return nil, false
	}

	text := num.String()
	if i := strings.IndexAny(text, "eE"); i != -1 {
		exp, err := strconv.Atoi(text[i+1:])
		if err != nil || exp > maxExponent || exp < -maxExponent {
			return nil, false
		}
	}

	r, ok := new(big.Rat).SetString(text)
	if !ok || !r.IsInt() {
		return nil, false
	}

	return r.Num(), true
}

func diagnosticKind(err error) entity.DiagnosticKind {
	switch {
	case errors.Is(err, errInvalidJSON):
		return entity.DiagnosticInvalidJSON
	case errors.Is(err, errNotAnArray):
		return entity.DiagnosticNotAnArray
	case errors.Is(err, errNoValidUsers):
		return entity.DiagnosticNoValidUsers
	default:
		return entity.DiagnosticReadFailed
	}
}
