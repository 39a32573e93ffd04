package social

import "strings"

// AnalyticsDataQuery is the echo of the request parameters returned with a data response.
type AnalyticsDataQuery struct {
	ProfileID     string
	StartDate     string
	EndDate       string
	Metrics       []string
	Dimensions    []string
	Sort          []string
	Filters       string
	Segment       string
	SamplingLevel string
	StartIndex    int
	MaxResults    int
}

// AnalyticsDataColumnHeader describes a single column of the rows in a data response.
type AnalyticsDataColumnHeader struct {
	// Name is the dimension or metric name, for example ga:sessions.
	Name string
	// ColumnType is either DIMENSION or METRIC.
	ColumnType string
	// DataType is the type of the cell values, for example STRING, INTEGER or PERCENT.
	DataType string
}

func parseAnalyticsDataQuery(obj *JSONObject) *AnalyticsDataQuery {
	if obj == nil {
		return nil
	}

	return &AnalyticsDataQuery{
		ProfileID:     obj.GetString("ids"),
		StartDate:     obj.GetString("start-date"),
		EndDate:       obj.GetString("end-date"),
		Metrics:       stringList(obj, "metrics"),
		Dimensions:    stringList(obj, "dimensions"),
		Sort:          stringList(obj, "sort"),
		Filters:       obj.GetString("filters"),
		Segment:       obj.GetString("segment"),
		SamplingLevel: obj.GetString("samplingLevel"),
		StartIndex:    obj.GetInt("start-index"),
		MaxResults:    obj.GetInt("max-results"),
	}
}

func parseAnalyticsDataColumnHeaders(arr *JSONArray) []AnalyticsDataColumnHeader {
	headers := make([]AnalyticsDataColumnHeader, 0, arr.Len())

	for i := 0; i < arr.Len(); i++ {
		obj := arr.GetObject(i)
		if obj == nil {
			continue
		}

		headers = append(headers, AnalyticsDataColumnHeader{
			Name:       obj.GetString("name"),
			ColumnType: obj.GetString("columnType"),
			DataType:   obj.GetString("dataType"),
		})
	}

	return headers
}

// stringList reads key as either an array of strings or a comma separated string.
func stringList(obj *JSONObject, key string) []string {
	if arr := obj.GetArray(key); arr != nil {
		return arr.Strings()
	}

	s := obj.GetString(key)
	if s == "" {
		return nil
	}

	return strings.Split(s, ",")
}
