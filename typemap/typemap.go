// Package typemap maps engine field type identifiers to semantic value types
// and converts raw engine values into native Go values.
package typemap

import (
	"github.com/pkg/errors"

	"github.com/go-data-exporter/adomd/engine"
)

var (
	// ErrUnmappedFieldType is returned when a registry has no descriptor for a
	// field type identifier.
	ErrUnmappedFieldType = errors.New("typemap: unmapped field type")

	// ErrConversion is returned when a raw value cannot be converted to the
	// descriptor's semantic type.
	ErrConversion = errors.New("typemap: conversion failed")
)

// Semantic type labels reported in column descriptions.
const (
	TypeBool     = "bool"
	TypeInt      = "int"
	TypeUint     = "uint"
	TypeFloat    = "float"
	TypeDecimal  = "decimal"
	TypeString   = "string"
	TypeUUID     = "uuid"
	TypeDateTime = "datetime"
	TypeDuration = "duration"
	TypeBytes    = "bytes"
	TypeNull     = "null"
	TypeObject   = "object"
)

// ConvertFunc converts a non-null raw value.
type ConvertFunc func(engine.Value) (any, error)

// Descriptor pairs a semantic label with its conversion.
type Descriptor struct {
	TypeName string
	Convert  ConvertFunc
}

// Registry is an immutable mapping from field type identifier to Descriptor.
// The zero Registry has no mappings.
type Registry struct {
	m map[string]Descriptor
}

// NewRegistry copies m into a new Registry.
func NewRegistry(m map[string]Descriptor) Registry {
	cp := make(map[string]Descriptor, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Registry{m: cp}
}

// Lookup returns the descriptor registered for id.
func (r Registry) Lookup(id string) (Descriptor, error) {
	d, ok := r.m[id]
	if !ok {
		return Descriptor{}, errors.Wrapf(ErrUnmappedFieldType, "%q", id)
	}
	return d, nil
}

// Len returns the number of mapped identifiers.
func (r Registry) Len() int { return len(r.m) }

// IDs returns the mapped identifiers in no particular order.
func (r Registry) IDs() []string {
	ids := make([]string, 0, len(r.m))
	for id := range r.m {
		ids = append(ids, id)
	}
	return ids
}

// Convert resolves id in r and applies its conversion to raw. A null raw
// value converts to nil for every type.
func Convert(r Registry, id string, raw engine.Value) (any, error) {
	d, err := r.Lookup(id)
	if err != nil {
		return nil, err
	}
	if raw.IsNull() || d.Convert == nil {
		return nil, nil
	}
	v, err := d.Convert(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "field type %q", id)
	}
	return v, nil
}
