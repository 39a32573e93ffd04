package social_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	social "github.com/couchbaselabs/gosocial"
)

func TestQueryStringSetThenGetString(t *testing.T) {
	type test struct {
		name     string
		value    interface{}
		expected string
	}

	tests := []test{
		{name: "string", value: "hello", expected: "hello"},
		{name: "int", value: 42, expected: "42"},
		{name: "int64", value: int64(-9000000000), expected: "-9000000000"},
		{name: "float64", value: 1.5, expected: "1.5"},
		{name: "float32", value: float32(0.25), expected: "0.25"},
		{name: "bool", value: true, expected: "true"},
		{name: "bytes", value: []byte("raw"), expected: "raw"},
		{name: "nil", value: nil, expected: ""},
		{name: "time", value: time.Date(2024, 2, 29, 13, 4, 5, 0, time.UTC), expected: "2024-02-29T13:04:05Z"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := social.NewQueryString()

			require.NoError(t, q.Set("key", tc.value))

			value, err := q.GetString("key")
			require.NoError(t, err)
			require.NotNil(t, value)
			assert.Equal(t, tc.expected, *value)
		})
	}
}

func TestQueryStringBlankKey(t *testing.T) {
	q := social.NewQueryString()

	for _, key := range []string{"", " ", "\t\n"} {
		assert.ErrorIs(t, q.Add(key, "v"), social.ErrInvalidArgument)
		assert.ErrorIs(t, q.Set(key, "v"), social.ErrInvalidArgument)

		_, err := q.ContainsKey(key)
		assert.ErrorIs(t, err, social.ErrInvalidArgument)

		_, err = q.GetString(key)
		assert.ErrorIs(t, err, social.ErrInvalidArgument)

		_, err = q.GetInt32(key)
		assert.ErrorIs(t, err, social.ErrInvalidArgument)

		_, err = q.GetInt64(key)
		assert.ErrorIs(t, err, social.ErrInvalidArgument)

		_, err = q.GetBoolean(key)
		assert.ErrorIs(t, err, social.ErrInvalidArgument)

		_, err = q.GetDouble(key)
		assert.ErrorIs(t, err, social.ErrInvalidArgument)

		_, err = q.GetFloat(key)
		assert.ErrorIs(t, err, social.ErrInvalidArgument)
	}

	assert.True(t, q.IsEmpty())
}

func TestQueryStringMissingKeyReturnsZeroValues(t *testing.T) {
	q := social.NewQueryString()
	require.NoError(t, q.Set("blank", "   "))

	for _, key := range []string{"missing", "blank"} {
		i32, err := q.GetInt32(key)
		require.NoError(t, err)
		assert.Zero(t, i32)

		i64, err := q.GetInt64(key)
		require.NoError(t, err)
		assert.Zero(t, i64)

		b, err := q.GetBoolean(key)
		require.NoError(t, err)
		assert.False(t, b)

		d, err := q.GetDouble(key)
		require.NoError(t, err)
		assert.Zero(t, d)

		f, err := q.GetFloat(key)
		require.NoError(t, err)
		assert.Zero(t, f)
	}

	s, err := q.GetString("missing")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestQueryStringTypedGetters(t *testing.T) {
	q := social.NewQueryString()
	require.NoError(t, q.Set("i32", " 123 "))
	require.NoError(t, q.Set("i64", int64(1)<<40))
	require.NoError(t, q.Set("bool", "True"))
	require.NoError(t, q.Set("double", 2.75))
	require.NoError(t, q.Set("float", "0.5"))

	i32, err := q.GetInt32("i32")
	require.NoError(t, err)
	assert.Equal(t, int32(123), i32)

	i64, err := q.GetInt64("i64")
	require.NoError(t, err)
	assert.Equal(t, int64(1)<<40, i64)

	b, err := q.GetBoolean("bool")
	require.NoError(t, err)
	assert.True(t, b)

	d, err := q.GetDouble("double")
	require.NoError(t, err)
	assert.Equal(t, 2.75, d)

	f, err := q.GetFloat("float")
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), f)
}

func TestQueryStringConversionErrors(t *testing.T) {
	q := social.NewQueryString()
	require.NoError(t, q.Set("word", "abc"))
	require.NoError(t, q.Set("big", "4294967296"))

	_, err := q.GetInt32("word")
	assert.ErrorIs(t, err, social.ErrConversion)

	_, err = q.GetInt32("big")
	assert.ErrorIs(t, err, social.ErrConversion)

	_, err = q.GetInt64("word")
	assert.ErrorIs(t, err, social.ErrConversion)

	_, err = q.GetBoolean("word")
	assert.ErrorIs(t, err, social.ErrConversion)

	_, err = q.GetDouble("word")
	assert.ErrorIs(t, err, social.ErrConversion)

	_, err = q.GetFloat("word")
	assert.ErrorIs(t, err, social.ErrConversion)
}

func TestQueryStringRejectsNonDecimalSyntax(t *testing.T) {
	q := social.NewQueryString()
	require.NoError(t, q.Set("separated", "1_000"))
	require.NoError(t, q.Set("hexFloat", "0x1p-2"))
	require.NoError(t, q.Set("negHex", "-0X10"))
	require.NoError(t, q.Set("intSeparated", "1_0"))
	require.NoError(t, q.Set("hexInt", "0x10"))

	for _, key := range []string{"separated", "hexFloat", "negHex"} {
		_, err := q.GetDouble(key)
		assert.ErrorIs(t, err, social.ErrConversion, key)

		_, err = q.GetFloat(key)
		assert.ErrorIs(t, err, social.ErrConversion, key)
	}

	for _, key := range []string{"intSeparated", "hexInt"} {
		_, err := q.GetInt32(key)
		assert.ErrorIs(t, err, social.ErrConversion, key)

		_, err = q.GetInt64(key)
		assert.ErrorIs(t, err, social.ErrConversion, key)
	}

	_, err := q.GetDouble("separated")
	assert.EqualError(t, err, `conversion error "1_000" (key separated) to float64 - invalid syntax`)

	require.NoError(t, q.Set("exp", "-1.5e3"))

	d, err := q.GetDouble("exp")
	require.NoError(t, err)
	assert.Equal(t, -1500.0, d)
}

func TestQueryStringBooleanAcceptsOnlyTrueAndFalse(t *testing.T) {
	q := social.NewQueryString()

	for _, value := range []string{"1", "0", "t", "F", "yes", "TRUE1"} {
		require.NoError(t, q.Set("flag", value))

		_, err := q.GetBoolean("flag")
		assert.ErrorIs(t, err, social.ErrConversion, value)
	}

	for value, expected := range map[string]bool{"true": true, "TRUE": true, " False ": false, "false": false} {
		require.NoError(t, q.Set("flag", value))

		b, err := q.GetBoolean("flag")
		require.NoError(t, err, value)
		assert.Equal(t, expected, b, value)
	}
}

func TestQueryStringAddJoinsExistingKey(t *testing.T) {
	q := social.NewQueryString()
	require.NoError(t, q.Add("metrics", "ga:sessions"))
	require.NoError(t, q.Add("METRICS", "ga:users"))

	assert.False(t, q.SupportsDuplicateKeys())
	assert.Equal(t, 1, q.Count())
	assert.Equal(t, []string{"metrics"}, q.Keys())

	value, err := q.GetString("metrics")
	require.NoError(t, err)
	assert.Equal(t, "ga:sessions,ga:users", *value)

	require.NoError(t, q.Set("Metrics", "ga:pageviews"))

	value, err = q.GetString("metrics")
	require.NoError(t, err)
	assert.Equal(t, "ga:pageviews", *value)
}

func TestQueryStringContainsKey(t *testing.T) {
	q := social.NewQueryStringFromValues(url.Values{"empty": {}})
	require.NoError(t, q.Add("a", 1))

	found, err := q.ContainsKey("A")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = q.ContainsKey("empty")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = q.ContainsKey("b")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestQueryStringString(t *testing.T) {
	q := social.NewQueryString()
	require.NoError(t, q.Add("a", "1"))
	require.NoError(t, q.Add("b", "hello world"))
	require.NoError(t, q.Add("filters", "ga:country==United Kingdom;ga:city=~^L"))

	assert.Equal(t, "a=1&b=hello+world&filters=ga%3Acountry%3D%3DUnited+Kingdom%3Bga%3Acity%3D~%5EL", q.String())
}

func TestQueryStringRoundTrip(t *testing.T) {
	q := social.NewQueryString()
	require.NoError(t, q.Add("a", "1"))
	require.NoError(t, q.Add("b", "hello world"))

	parsed, err := url.ParseQuery(q.String())
	require.NoError(t, err)

	assert.Equal(t, url.Values{"a": {"1"}, "b": {"hello world"}}, parsed)
	assert.Equal(t, parsed, q.Values())
}

func TestQueryStringNullValueRendersEmpty(t *testing.T) {
	q := social.NewQueryStringFromValues(url.Values{"flag": {}, "a": {"x"}})

	assert.Equal(t, "a=x&flag=", q.String())

	value, err := q.GetString("flag")
	require.NoError(t, err)
	assert.Nil(t, value)

	items := q.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "flag", items[1].Key)
	assert.Nil(t, items[1].Value)
	assert.Equal(t, url.Values{"flag": {}, "a": {"x"}}, q.Values())
}

func TestQueryStringFromValues(t *testing.T) {
	source := url.Values{"z": {"1"}, "a": {"2", "3"}, " ": {"ignored"}}

	q := social.NewQueryStringFromValues(source)

	assert.Equal(t, []string{"a", "z"}, q.Keys())
	assert.Equal(t, 2, q.Count())

	value, err := q.GetString("a")
	require.NoError(t, err)
	assert.Equal(t, "2,3", *value)

	require.NoError(t, q.Set("z", "changed"))
	assert.Equal(t, []string{"1"}, source["z"])
}

func TestQueryStringFromNilValues(t *testing.T) {
	q := social.NewQueryStringFromValues(nil)
	require.NotNil(t, q)
	assert.True(t, q.IsEmpty())
	assert.Equal(t, "", q.String())

	assert.Nil(t, social.AsQueryString(nil))

	converted := social.AsQueryString(url.Values{"k": {"v"}})
	require.NotNil(t, converted)
	assert.Equal(t, "k=v", converted.String())
}

func TestQueryStringViewsAreFresh(t *testing.T) {
	q := social.NewQueryString()
	keys := q.Keys()
	require.NoError(t, q.Add("a", 1))

	assert.Empty(t, keys)
	assert.Equal(t, []string{"a"}, q.Keys())
	assert.False(t, q.IsEmpty())

	value := "1"
	assert.Equal(t, []social.QueryStringItem{{Key: "a", Value: &value}}, q.Items())
}
