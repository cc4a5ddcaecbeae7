// Package schema decodes loosely typed JSON values into closed wire structs
// and runs field rules over the result.
//
// A wire struct lists every key a shape may carry. Decode rejects any key
// that does not match a field's json name exactly (case included), then
// applies the struct's `validate` tags. DecodeOpen tolerates extra keys but
// still ignores case-folded look-alikes of declared ones.
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
)

// Sentinel errors
var (
	ErrNotObject    = errors.New("schema: value is not a JSON object")
	ErrUnknownField = errors.New("schema: unknown field")
	ErrNotEncodable = errors.New("schema: value cannot be encoded as JSON")
	ErrFieldPresent = errors.New("schema: field already present")
)

// Decode checks value against the closed struct dst points to and fills it.
// value may be a decoded JSON value, raw JSON bytes, or any Go value that
// marshals to a JSON object.
func Decode(value any, dst any) error {
	return decode(value, dst, false)
}

// DecodeOpen is Decode for shapes that allow keys beyond the declared ones.
func DecodeOpen(value any, dst any) error {
	return decode(value, dst, true)
}

// DecodeStringMap decodes a JSON object whose values must all be strings.
// null values are rejected rather than read as "".
func DecodeStringMap(value any) (map[string]string, error) {
	obj, err := object(value)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(obj))
	for key, raw := range obj {
		var s *string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("schema: field %q: %w", key, err)
		}
		if s == nil {
			return nil, fmt.Errorf("schema: field %q: must be a string", key)
		}
		out[key] = *s
	}
	return out, nil
}

// ToJSON returns the JSON encoding of value. Byte slices are taken to be
// JSON already. An encoder panic on an exotic Go value is reported as
// ErrNotEncodable.
func ToJSON(value any) (raw []byte, err error) {
	if value == nil {
		return []byte("null"), nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return rv.Bytes(), nil
	}
	defer func() {
		if r := recover(); r != nil {
			raw, err = nil, fmt.Errorf("%w: %v", ErrNotEncodable, r)
		}
	}()
	raw, err = json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotEncodable, err)
	}
	return raw, nil
}

// Extend adds key to the JSON object value and returns the encoded result.
// It fails if value already carries key.
func Extend(value any, key string, v any) ([]byte, error) {
	obj, err := object(value)
	if err != nil {
		return nil, err
	}
	if _, ok := obj[key]; ok {
		return nil, fmt.Errorf("%w %q", ErrFieldPresent, key)
	}
	raw, err := ToJSON(v)
	if err != nil {
		return nil, err
	}
	obj[key] = raw
	return json.Marshal(obj)
}

func decode(value any, dst any, open bool) error {
	t := reflect.TypeOf(dst)
	if t == nil || t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("schema: destination must be a pointer to a struct, got %T", dst)
	}
	t = t.Elem()

	obj, err := object(value)
	if err != nil {
		return err
	}

	if open {
		obj = project(obj, t)
	} else if err := checkObject(obj, t, ""); err != nil {
		return err
	}

	raw, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotEncodable, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if !open {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("schema: decode: %w", err)
	}

	return validate.Struct(dst)
}

func object(value any) (map[string]json.RawMessage, error) {
	raw, err := ToJSON(value)
	if err != nil {
		return nil, err
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, ErrNotObject
	}
	return obj, nil
}

// project keeps only keys that name a field of t exactly.
func project(obj map[string]json.RawMessage, t reflect.Type) map[string]json.RawMessage {
	fields := jsonFields(t)
	out := make(map[string]json.RawMessage, len(fields))
	for key, raw := range obj {
		if _, ok := fields[key]; ok {
			out[key] = raw
		}
	}
	return out
}

func checkObject(obj map[string]json.RawMessage, t reflect.Type, path string) error {
	fields := jsonFields(t)
	for key, raw := range obj {
		ft, ok := fields[key]
		if !ok {
			return fmt.Errorf("%w %q", ErrUnknownField, path+key)
		}
		if err := checkKeys(raw, ft, path+key+"."); err != nil {
			return err
		}
	}
	return nil
}

var unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()

// checkKeys walks raw alongside t and rejects object keys t does not declare.
// Type mismatches are left for the decoder to report.
func checkKeys(raw json.RawMessage, t reflect.Type, path string) error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if reflect.PointerTo(t).Implements(unmarshalerType) {
		return nil
	}

	switch t.Kind() {
	case reflect.Struct:
		var obj map[string]json.RawMessage
		if json.Unmarshal(raw, &obj) != nil || obj == nil {
			return nil
		}
		return checkObject(obj, t, path)
	case reflect.Map:
		var obj map[string]json.RawMessage
		if json.Unmarshal(raw, &obj) != nil {
			return nil
		}
		for key, item := range obj {
			if err := checkKeys(item, t.Elem(), path+key+"."); err != nil {
				return err
			}
		}
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return nil
		}
		var items []json.RawMessage
		if json.Unmarshal(raw, &items) != nil {
			return nil
		}
		for i, item := range items {
			if err := checkKeys(item, t.Elem(), fmt.Sprintf("%s%d.", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// jsonFields maps the json names of t's exported fields to their types,
// flattening untagged embedded structs the way encoding/json does.
func jsonFields(t reflect.Type) map[string]reflect.Type {
	fields := make(map[string]reflect.Type, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := jsonName(f)
		if name == "-" {
			continue
		}
		if name == "" {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if f.Anonymous && ft.Kind() == reflect.Struct {
				for k, v := range jsonFields(ft) {
					fields[k] = v
				}
				continue
			}
			if !f.IsExported() {
				continue
			}
			name = f.Name
		}
		fields[name] = f.Type
	}
	return fields
}

func jsonName(f reflect.StructField) string {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

// FieldErrors flattens validator failures into field -> rule pairs, keyed by
// the field's json name. Errors that are not validation failures map to "_".
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
