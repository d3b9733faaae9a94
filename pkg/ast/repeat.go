package ast

import (
	"encoding/json"
	"strconv"

	"github.com/matzehuels/regexrail/pkg/errors"
)

// Unbounded is the Max of a quantifier without an upper limit.
const Unbounded = -1

// Repeat is a quantifier {Min,Max}. Max is [Unbounded] for *, + and {n,}.
type Repeat struct {
	Min int
	Max int
}

// NewRepeat builds a quantifier, rejecting negative bounds and a finite
// maximum below the minimum.
func NewRepeat(min, max int) (*Repeat, error) {
	r := &Repeat{Min: min, Max: max}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate reports whether r is well formed.
func (r Repeat) Validate() error {
	if r.Min < 0 {
		return errors.New(errors.ErrCodeInvalidQuantifier, "negative quantifier minimum %d", r.Min)
	}
	if r.Max < Unbounded {
		return errors.New(errors.ErrCodeInvalidQuantifier, "invalid quantifier maximum %d", r.Max)
	}
	if r.Bounded() && r.Max < r.Min {
		return errors.New(errors.ErrCodeInvalidQuantifier, "quantifier maximum %d below minimum %d", r.Max, r.Min)
	}
	return nil
}

// Bounded reports whether r has a finite maximum.
func (r Repeat) Bounded() bool { return r.Max != Unbounded }

// String renders r in brace notation, e.g. {2,} or {0,3}.
func (r Repeat) String() string {
	switch {
	case !r.Bounded():
		return "{" + strconv.Itoa(r.Min) + ",}"
	case r.Min == r.Max:
		return "{" + strconv.Itoa(r.Min) + "}"
	default:
		return "{" + strconv.Itoa(r.Min) + "," + strconv.Itoa(r.Max) + "}"
	}
}

type repeatJSON struct {
	Min int  `json:"min"`
	Max *int `json:"max"`
}

// MarshalJSON encodes an unbounded maximum as null.
func (r Repeat) MarshalJSON() ([]byte, error) {
	v := repeatJSON{Min: r.Min}
	if r.Bounded() {
		max := r.Max
		v.Max = &max
	}
	return json.Marshal(v)
}

// UnmarshalJSON decodes {min,max}; a null or missing max is unbounded.
func (r *Repeat) UnmarshalJSON(data []byte) error {
	var v repeatJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	r.Min = v.Min
	r.Max = Unbounded
	if v.Max != nil {
		r.Max = *v.Max
	}
	return r.Validate()
}
