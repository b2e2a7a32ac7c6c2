package ingredients

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	// MaxItems is the largest number of ingredients a list holds.
	MaxItems = 100
	// MaxLength is the longest ingredient accepted, in runes.
	MaxLength = 30
)

var (
	ErrEmptyInput       = errors.New("empty input")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrDuplicateEntry   = errors.New("duplicate entry")
	ErrTooLong          = errors.New("ingredient too long")
)

// Ingredient is a trimmed, lower-cased search term.
type Ingredient string

// Normalize trims whitespace and lower-cases a raw ingredient.
func Normalize(raw string) Ingredient {
	return Ingredient(strings.ToLower(strings.TrimSpace(raw)))
}

// List is an ordered, duplicate-free set of ingredients in insertion order.
// The zero value is an empty list ready to use.
type List struct {
	items []Ingredient
}

// NewList returns an empty list.
func NewList() *List {
	return &List{}
}

// Add normalizes raw and appends it. The list is unchanged when an error is returned.
func (l *List) Add(raw string) (Ingredient, error) {
	ing := Normalize(raw)
	if ing == "" {
		return "", ErrEmptyInput
	}
	if len(l.items) >= MaxItems {
		return "", ErrCapacityExceeded
	}
	if utf8.RuneCountInString(string(ing)) > MaxLength {
		return "", ErrTooLong
	}
	if l.Contains(string(ing)) {
		return "", ErrDuplicateEntry
	}
	l.items = append(l.items, ing)
	return ing, nil
}

// Remove deletes the matching ingredient and reports whether it was present.
func (l *List) Remove(ingredient string) bool {
	target := Normalize(ingredient)
	for i, it := range l.items {
		if it == target {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether the normalized ingredient is in the list.
func (l *List) Contains(ingredient string) bool {
	target := Normalize(ingredient)
	for _, it := range l.items {
		if it == target {
			return true
		}
	}
	return false
}

// Len returns the number of ingredients.
func (l *List) Len() int {
	return len(l.items)
}

// Items returns a copy of the ingredients in insertion order.
func (l *List) Items() []Ingredient {
	out := make([]Ingredient, len(l.items))
	copy(out, l.items)
	return out
}

// Strings returns the ingredients as plain strings.
func (l *List) Strings() []string {
	out := make([]string, len(l.items))
	for i, it := range l.items {
		out[i] = string(it)
	}
	return out
}

// Joined returns the ingredients separated by ", ".
func (l *List) Joined() string {
	return strings.Join(l.Strings(), ", ")
}

// Clone returns an independent copy of the list.
func (l *List) Clone() *List {
	return &List{items: l.Items()}
}

// Reset empties the list.
func (l *List) Reset() {
	l.items = nil
}
