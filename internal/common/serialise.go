package common

import (
	"bytes"
	"encoding/gob"
	"reflect"
)

// Serialiser is the narrow interface every stateful component implements
// against: Serialise/DeSerialise walk a fixed, ordered field list so that
// save states stay stable across refactors as long as the field order does.
type Serialiser interface {
	Serialise(elem ...interface{}) error
	DeSerialise(elem ...interface{}) error
}

// Serialisable is implemented by any component with nested state that needs
// its own Serialise/DeSerialise rather than a direct gob encode.
type Serialisable interface {
	Serialise(e Serialiser) error
	DeSerialise(e Serialiser) error
}

// NewSerialiser wraps a byte buffer with a gob encoder/decoder pair. Save
// states are built by serialising into a buffer and handing the bytes to
// the host; loaded the same way in reverse.
func NewSerialiser(buf *bytes.Buffer) Serialiser {
	return &gobSerialiser{
		encoder: gob.NewEncoder(buf),
		decoder: gob.NewDecoder(buf),
	}
}

type gobSerialiser struct {
	encoder *gob.Encoder
	decoder *gob.Decoder
}

func (g *gobSerialiser) Serialise(elems ...interface{}) error {
	for _, e := range elems {
		if err := g.encode(e); err != nil {
			return err
		}
	}
	return nil
}
func (g *gobSerialiser) encode(elem interface{}) error {
	if s, ok := asSerialisable(elem); ok {
		return s.Serialise(g)
	}
	v := reflect.ValueOf(elem)
	if v.Kind() == reflect.Array && arrayOfSerialisable(v) {
		for i := 0; i < v.Len(); i++ {
			if err := v.Index(i).Interface().(Serialisable).Serialise(g); err != nil {
				return err
			}
		}
		return nil
	}
	return g.encoder.Encode(elem)
}

func (g *gobSerialiser) DeSerialise(elems ...interface{}) error {
	for _, e := range elems {
		if err := g.decode(e); err != nil {
			return err
		}
	}
	return nil
}
func (g *gobSerialiser) decode(elem interface{}) error {
	if s, ok := asSerialisable(elem); ok {
		return s.DeSerialise(g)
	}
	v := reflect.ValueOf(elem)
	if v.Kind() == reflect.Ptr && v.Elem().Kind() == reflect.Array && arrayOfSerialisable(v.Elem()) {
		arr := v.Elem()
		for i := 0; i < arr.Len(); i++ {
			if err := arr.Index(i).Addr().Interface().(Serialisable).DeSerialise(g); err != nil {
				return err
			}
		}
		return nil
	}
	return g.decoder.Decode(elem)
}

func asSerialisable(elem interface{}) (Serialisable, bool) {
	s, ok := elem.(Serialisable)
	return s, ok
}

// arrayOfSerialisable reports whether every element of array v implements
// Serialisable, the only case that needs element-by-element dispatch
// rather than a single gob.Encode/Decode of the whole array value.
func arrayOfSerialisable(v reflect.Value) bool {
	if v.Len() == 0 {
		return false
	}
	_, ok := asSerialisable(v.Index(0).Interface())
	return ok
}
