package properties

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/quiverdb/quiver-go/v1/schema"
)

// Sentinel errors for the conversion layer. The typed errors below unwrap
// to these anchors, so callers can classify failures with errors.Is
// without depending on the concrete error types.
var (
	// ErrUnsupportedType indicates that no converter could be resolved
	// for a native type or data type tag.
	ErrUnsupportedType = errors.New("properties: unsupported type")

	// ErrConversion indicates that a resolved converter rejected a value.
	ErrConversion = errors.New("properties: conversion failed")

	// ErrInvalidTarget indicates that an unmarshal target is not a usable
	// pointer (nil, non-pointer, or pointing at an unsupported kind).
	ErrInvalidTarget = errors.New("properties: invalid unmarshal target")
)

// UnsupportedTypeError is returned when the registry cannot resolve a
// converter: the native type is one nothing can represent (interfaces
// without a value, channels, funcs) or the data type tag is unknown.
type UnsupportedTypeError struct {
	// Type is the native Go type that failed to resolve. Nil when the
	// failure was a data type lookup.
	Type reflect.Type

	// DataType is the tag that failed to resolve. Empty when the failure
	// was a native type lookup.
	DataType schema.DataType
}

func (e *UnsupportedTypeError) Error() string {
	if e.Type != nil {
		return fmt.Sprintf("properties: unsupported type %s", e.Type)
	}
	return fmt.Sprintf("properties: unsupported data type %q", e.DataType)
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }

// ConversionError is returned when a value cannot be converted between
// its native and wire representations. When raised while processing an
// object it names the offending property.
type ConversionError struct {
	// Property is the wire name of the property being converted. Empty
	// for bare value conversions outside an object walk.
	Property string

	// DataType is the logical type the conversion was dispatched on.
	DataType schema.DataType

	// Native is the Go type on the native side of the conversion.
	Native reflect.Type

	// Encoding is the wire encoding in effect.
	Encoding Encoding

	// Reason describes the mismatch.
	Reason string

	// Err is the underlying cause, when one exists.
	Err error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("properties: cannot convert %q", e.Property)
	if e.Property == "" {
		msg = "properties: cannot convert value"
	}
	if e.Native != nil {
		msg += fmt.Sprintf(" (%s)", e.Native)
	}
	if e.DataType != "" {
		msg += fmt.Sprintf(" as %s", e.DataType)
	}
	msg += fmt.Sprintf(" via %s", e.Encoding)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrConversion, e.Err}
	}
	return []error{ErrConversion}
}

// IsUnsupportedTypeError reports whether err is, or wraps, an
// unsupported-type failure.
//
// Example:
//
//	_, err := registry.ForDataType("decimal")
//	if properties.IsUnsupportedTypeError(err) {
//	    // unknown tag
//	}
func IsUnsupportedTypeError(err error) bool {
	return errors.Is(err, ErrUnsupportedType)
}

// IsConversionError reports whether err is, or wraps, a conversion
// failure.
func IsConversionError(err error) bool {
	return errors.Is(err, ErrConversion)
}

// convErr builds a ConversionError for a failed conversion.
func convErr(property string, dt schema.DataType, native reflect.Type, enc Encoding, reason string) error {
	return &ConversionError{
		Property: property,
		DataType: dt,
		Native:   native,
		Encoding: enc,
		Reason:   reason,
	}
}
