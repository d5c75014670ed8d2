package model

import "encoding/json"

// Nullable is a JSON field that tells an absent value apart from an explicit
// null. Set is true whenever the key was present in the input.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Some returns a set Nullable holding v.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null returns a set Nullable holding null.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// Or returns the new value when set, otherwise current.
func (n Nullable[T]) Or(current *T) *T {
	if !n.Set {
		return current
	}
	return n.Value
}
