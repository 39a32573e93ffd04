package social

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONObject is a read-only view of a JSON object with typed getters. Getters on a missing key,
// a null value or a value of the wrong type return the zero value of their result; a nil
// *JSONObject behaves like an empty object.
type JSONObject struct {
	value jsoniter.Any
}

// JSONArray is a read-only view of a JSON array. A nil *JSONArray behaves like an empty array.
type JSONArray struct {
	value jsoniter.Any
}

// ParseJSONObject parses data into a JSONObject. The JSON literal null yields a nil object.
func ParseJSONObject(data []byte) (*JSONObject, error) {
	if !jsonAPI.Valid(data) {
		return nil, unmarshalError{
			Reason: "invalid JSON",
		}
	}

	value := jsonAPI.Get(data)

	switch value.ValueType() {
	case jsoniter.NilValue:
		return nil, nil
	case jsoniter.ObjectValue:
		return &JSONObject{value: value}, nil
	}

	return nil, unmarshalError{
		Reason: fmt.Sprintf("expected a JSON object, got %s", valueTypeName(value.ValueType())),
	}
}

func (o *JSONObject) field(key string) jsoniter.Any {
	return o.value.Get(key)
}

// HasValue returns whether key is present and not null.
func (o *JSONObject) HasValue(key string) bool {
	if o == nil {
		return false
	}

	switch o.field(key).ValueType() {
	case jsoniter.InvalidValue, jsoniter.NilValue:
		return false
	}

	return true
}

// GetObject returns the object under key, or nil.
func (o *JSONObject) GetObject(key string) *JSONObject {
	if o == nil {
		return nil
	}

	value := o.field(key)
	if value.ValueType() != jsoniter.ObjectValue {
		return nil
	}

	return &JSONObject{value: value}
}

// GetArray returns the array under key, or nil.
func (o *JSONObject) GetArray(key string) *JSONArray {
	if o == nil {
		return nil
	}

	value := o.field(key)
	if value.ValueType() != jsoniter.ArrayValue {
		return nil
	}

	return &JSONArray{value: value}
}

// GetInt returns the integer under key. Numeric strings are converted. Numbers with a fractional
// part, or outside the range of int, yield 0.
func (o *JSONObject) GetInt(key string) int {
	if o == nil {
		return 0
	}

	value := o.field(key)

	switch value.ValueType() {
	case jsoniter.NumberValue, jsoniter.StringValue:
		return integralValue(strings.TrimSpace(value.ToString()))
	}

	return 0
}

// GetString returns the string under key. Numbers and booleans are rendered as their JSON text.
func (o *JSONObject) GetString(key string) string {
	if o == nil {
		return ""
	}

	return scalarString(o.field(key))
}

// GetBool returns the boolean under key.
func (o *JSONObject) GetBool(key string) bool {
	if o == nil {
		return false
	}

	value := o.field(key)
	if value.ValueType() != jsoniter.BoolValue {
		return false
	}

	return value.ToBool()
}

// Keys returns the keys of the object in document order.
func (o *JSONObject) Keys() []string {
	if o == nil {
		return nil
	}

	return o.value.Keys()
}

// Len returns the number of elements.
func (a *JSONArray) Len() int {
	if a == nil {
		return 0
	}

	return a.value.Size()
}

// GetArray returns the array at index, or nil.
func (a *JSONArray) GetArray(index int) *JSONArray {
	if a == nil {
		return nil
	}

	value := a.value.Get(index)
	if value.ValueType() != jsoniter.ArrayValue {
		return nil
	}

	return &JSONArray{value: value}
}

// GetObject returns the object at index, or nil.
func (a *JSONArray) GetObject(index int) *JSONObject {
	if a == nil {
		return nil
	}

	value := a.value.Get(index)
	if value.ValueType() != jsoniter.ObjectValue {
		return nil
	}

	return &JSONObject{value: value}
}

// GetString returns the element at index as a string.
func (a *JSONArray) GetString(index int) string {
	if a == nil {
		return ""
	}

	return scalarString(a.value.Get(index))
}

// Strings returns every element as a string, in order. Null elements become empty strings.
func (a *JSONArray) Strings() []string {
	n := a.Len()

	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = a.GetString(i)
	}

	return out
}

func integralValue(text string) int {
	if i, err := strconv.ParseInt(text, 10, strconv.IntSize); err == nil {
		return int(i)
	}

	// Exponent forms such as 1e3 are integral but need float parsing.
	if checkDecimalSyntax(text) != nil {
		return 0
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt || f >= math.MaxInt {
		return 0
	}

	return int(f)
}

func scalarString(value jsoniter.Any) string {
	switch value.ValueType() {
	case jsoniter.StringValue, jsoniter.NumberValue, jsoniter.BoolValue:
		return value.ToString()
	}

	return ""
}

func valueTypeName(vt jsoniter.ValueType) string {
	switch vt {
	case jsoniter.StringValue:
		return "string"
	case jsoniter.NumberValue:
		return "number"
	case jsoniter.NilValue:
		return "null"
	case jsoniter.BoolValue:
		return "bool"
	case jsoniter.ArrayValue:
		return "array"
	case jsoniter.ObjectValue:
		return "object"
	}

	return "invalid"
}
