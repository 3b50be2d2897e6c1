package api

import (
	"errors"
	"fmt"
)

// ErrInvalidChoice is returned when a code or token has no entry in the
// choice table. It aborts serialization of the entity it occurred in.
var ErrInvalidChoice = errors.New("invalid choice")

// ChoiceField is a bidirectional mapping between internal integer codes and
// their public API tokens. One instance per table (addon types, statuses,
// platforms); instances are immutable after construction.
type ChoiceField struct {
	toPublic   map[int]string
	toInternal map[string]int
}

func NewChoiceField(choices map[int]string) ChoiceField {
	f := ChoiceField{
		toPublic:   make(map[int]string, len(choices)),
		toInternal: make(map[string]int, len(choices)),
	}
	for code, token := range choices {
		f.toPublic[code] = token
		f.toInternal[token] = code
	}
	return f
}

// Public converts an internal code to its API token.
func (f ChoiceField) Public(code int) (string, error) {
	token, ok := f.toPublic[code]
	if !ok {
		return "", fmt.Errorf("%w: no token for code %d", ErrInvalidChoice, code)
	}
	return token, nil
}

// Internal converts an API token back to its internal code.
func (f ChoiceField) Internal(token string) (int, error) {
	code, ok := f.toInternal[token]
	if !ok {
		return 0, fmt.Errorf("%w: no code for token %q", ErrInvalidChoice, token)
	}
	return code, nil
}
