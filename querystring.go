package social

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/couchbaselabs/gosocial/internal/kv"
)

// QueryStringItem is a single key/value pair of a QueryString. Value is nil for a key that is
// present without a value.
type QueryStringItem struct {
	Key   string
	Value *string
}

// QueryString is an ordered collection of query string parameters with typed accessors.
//
// Each key holds a single value: adding to an existing key appends the new value to the
// current one, separated by a comma, and setting a key replaces its value. Keys are compared
// case-insensitively. A QueryString is not safe for concurrent mutation.
type QueryString struct {
	store *kv.Storage
}

// NewQueryString creates an empty QueryString.
func NewQueryString() *QueryString {
	return &QueryString{
		store: kv.New(),
	}
}

// NewQueryStringFromValues creates a QueryString holding a copy of values. A nil values yields an
// empty QueryString. As url.Values is unordered, keys are added in sorted order; keys with
// multiple values are joined by a comma, and keys without any value are kept as null entries.
func NewQueryStringFromValues(values url.Values) *QueryString {
	q := &QueryString{
		store: kv.NewPrealloc(len(values)),
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		if isBlank(key) {
			continue
		}

		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		vs := values[key]
		if len(vs) == 0 {
			q.store.AddNull(key)

			continue
		}

		for _, v := range vs {
			q.store.Add(key, v)
		}
	}

	return q
}

// AsQueryString converts values into a QueryString. Unlike NewQueryStringFromValues, a nil values
// yields a nil QueryString.
func AsQueryString(values url.Values) *QueryString {
	if values == nil {
		return nil
	}

	return NewQueryStringFromValues(values)
}

// Add adds value under key. If key already exists the value is appended to the existing value.
func (q *QueryString) Add(key string, value interface{}) error {
	if err := validateKey(key); err != nil {
		return err
	}

	q.store.Add(key, formatValue(value))

	return nil
}

// Set sets value under key, replacing any existing value.
func (q *QueryString) Set(key string, value interface{}) error {
	if err := validateKey(key); err != nil {
		return err
	}

	q.store.Set(key, formatValue(value))

	return nil
}

// ContainsKey returns whether the query string contains an entry for key, including entries
// that have no value.
func (q *QueryString) ContainsKey(key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	return q.store.Has(key), nil
}

// GetString returns the value of key, or nil if key is not present or has no value.
func (q *QueryString) GetString(key string) (*string, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	pair, found := q.store.Get(key)
	if !found || pair.Null {
		return nil, nil
	}

	value := pair.Value

	return &value, nil
}

// GetInt32 returns the value of key as an int32, or 0 if key is missing or blank.
func (q *QueryString) GetInt32(key string) (int32, error) {
	value, err := q.valueForConversion(key)
	if err != nil || value == "" {
		return 0, err
	}

	v, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, newConversionError(key, value, "int32", err)
	}

	return int32(v), nil
}

// GetInt64 returns the value of key as an int64, or 0 if key is missing or blank.
func (q *QueryString) GetInt64(key string) (int64, error) {
	value, err := q.valueForConversion(key)
	if err != nil || value == "" {
		return 0, err
	}

	v, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, newConversionError(key, value, "int64", err)
	}

	return v, nil
}

// GetBoolean returns the value of key as a bool, or false if key is missing or blank. Only "true"
// and "false" are accepted, in any case.
func (q *QueryString) GetBoolean(key string) (bool, error) {
	value, err := q.valueForConversion(key)
	if err != nil || value == "" {
		return false, err
	}

	switch {
	case strings.EqualFold(value, "true"):
		return true, nil
	case strings.EqualFold(value, "false"):
		return false, nil
	}

	return false, newConversionError(key, value, "bool", strconv.ErrSyntax)
}

// GetDouble returns the value of key as a float64, or 0 if key is missing or blank.
func (q *QueryString) GetDouble(key string) (float64, error) {
	value, err := q.valueForConversion(key)
	if err != nil || value == "" {
		return 0, err
	}

	if err := checkDecimalSyntax(value); err != nil {
		return 0, newConversionError(key, value, "float64", err)
	}

	v, err := cast.ToFloat64E(value)
	if err != nil {
		return 0, newConversionError(key, value, "float64", err)
	}

	return v, nil
}

// GetFloat returns the value of key as a float32, or 0 if key is missing or blank.
func (q *QueryString) GetFloat(key string) (float32, error) {
	value, err := q.valueForConversion(key)
	if err != nil || value == "" {
		return 0, err
	}

	if err := checkDecimalSyntax(value); err != nil {
		return 0, newConversionError(key, value, "float32", err)
	}

	v, err := cast.ToFloat32E(value)
	if err != nil {
		return 0, newConversionError(key, value, "float32", err)
	}

	return v, nil
}

// Keys returns the keys in the order they were added.
func (q *QueryString) Keys() []string {
	return q.store.Keys()
}

// Items returns the key/value pairs in the order they were added.
func (q *QueryString) Items() []QueryStringItem {
	pairs := q.store.Pairs()

	items := make([]QueryStringItem, len(pairs))
	for i, pair := range pairs {
		items[i].Key = pair.Key

		if !pair.Null {
			value := pair.Value
			items[i].Value = &value
		}
	}

	return items
}

// Count returns the number of keys.
func (q *QueryString) Count() int {
	return q.store.Len()
}

// IsEmpty returns whether the query string has no entries.
func (q *QueryString) IsEmpty() bool {
	return q.store.Empty()
}

// SupportsDuplicateKeys reports whether a key may hold more than one value. It is always false.
func (q *QueryString) SupportsDuplicateKeys() bool {
	return false
}

// Values returns a copy of the entries as url.Values. Keys without a value map to an empty slice.
func (q *QueryString) Values() url.Values {
	values := make(url.Values, q.store.Len())

	for _, pair := range q.store.Pairs() {
		if pair.Null {
			values[pair.Key] = []string{}

			continue
		}

		values[pair.Key] = []string{pair.Value}
	}

	return values
}

// String returns the URL encoded query string, without a leading question mark. Spaces are
// encoded as '+', and keys without a value are rendered as "key=".
func (q *QueryString) String() string {
	var sb strings.Builder

	for i, pair := range q.store.Pairs() {
		if i > 0 {
			sb.WriteByte('&')
		}

		sb.WriteString(url.QueryEscape(pair.Key))
		sb.WriteByte('=')

		if !pair.Null {
			sb.WriteString(url.QueryEscape(pair.Value))
		}
	}

	return sb.String()
}

func (q *QueryString) valueForConversion(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	pair, found := q.store.Get(key)
	if !found || pair.Null {
		return "", nil
	}

	return strings.TrimSpace(pair.Value), nil
}

// checkDecimalSyntax rejects the digit separators and hexadecimal forms that Go's float parsing
// allows but plain decimal notation does not.
func checkDecimalSyntax(value string) error {
	if strings.ContainsRune(value, '_') {
		return strconv.ErrSyntax
	}

	digits := strings.TrimLeft(value, "+-")
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return strconv.ErrSyntax
	}

	return nil
}

func validateKey(key string) error {
	if isBlank(key) {
		return invalidArgumentError{
			ArgumentName: "key",
			Reason:       "cannot be empty or whitespace",
		}
	}

	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// formatValue renders value independently of the host locale.
func formatValue(value interface{}) string {
	switch v := value.(type) {
	case time.Time:
		return v.Format(time.RFC3339)
	case *time.Time:
		if v == nil {
			return ""
		}

		return v.Format(time.RFC3339)
	}

	s, err := cast.ToStringE(value)
	if err != nil {
		return fmt.Sprint(value)
	}

	return s
}

func newConversionError(key, value, targetType string, err error) conversionError {
	reason := err.Error()

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		reason = numErr.Err.Error()
	}

	return conversionError{
		Key:        key,
		Value:      value,
		TargetType: targetType,
		Reason:     reason,
	}
}
