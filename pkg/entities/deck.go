package entities

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fadedpez/suitdeck/internal/types"
)

// Variant is a named deck size preset
type Variant string

const (
	Thousand           Variant = "thousand"
	Small              Variant = "small"
	Short              Variant = "short"
	Standard           Variant = "standard"
	StandardWithJokers Variant = "standard_with_jokers"
)

// JokerCount is the number of joker cards in a jokers variant
const JokerCount = 2

var variantSizes = map[Variant]int{
	Thousand:           24,
	Small:              32,
	Short:              36,
	Standard:           52,
	StandardWithJokers: 54,
}

// Variants returns all known variants ordered by size
func Variants() []Variant {
	return []Variant{Thousand, Small, Short, Standard, StandardWithJokers}
}

// Size returns the total number of cards in the variant, or 0 if unknown
func (v Variant) Size() int {
	return variantSizes[v]
}

// Valid reports whether the variant is known
func (v Variant) Valid() bool {
	_, ok := variantSizes[v]
	return ok
}

// HasJokers reports whether the variant includes joker cards
func (v Variant) HasJokers() bool {
	return v == StandardWithJokers
}

func (v Variant) String() string {
	return string(v)
}

// ParseVariant accepts a variant name or its card count
func ParseVariant(s string) (Variant, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if v := Variant(name); v.Valid() {
		return v, nil
	}
	if n, err := strconv.Atoi(name); err == nil {
		for v, size := range variantSizes {
			if size == n {
				return v, nil
			}
		}
	}
	return "", types.NewDeckError(types.ErrInvalidVariant, fmt.Sprintf("unknown deck variant %q", s))
}
