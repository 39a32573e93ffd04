package social

import (
	"sort"
	"strings"
)

// SamplingLevel specifies the sampling level requested for a data query.
type SamplingLevel uint

const (
	// SamplingLevelDefault balances speed and accuracy.
	SamplingLevelDefault SamplingLevel = iota + 1

	// SamplingLevelFaster uses a smaller sampling size for a faster response.
	SamplingLevelFaster

	// SamplingLevelHigherPrecision uses a larger sampling size, which may be slower.
	SamplingLevelHigherPrecision
)

// AnalyticsDataOptions is the set of parameters of a Core Reporting data query.
type AnalyticsDataOptions struct {
	// ProfileID is the view (profile) to query. The "ga:" prefix is added when missing.
	ProfileID string

	// StartDate and EndDate bound the query, as YYYY-MM-DD or relative values such as "7daysAgo".
	StartDate string
	EndDate   string

	// Metrics is the list of metrics to query. At least one is required.
	Metrics []string

	Dimensions []string
	Sort       []string
	Filters    string
	Segment    string

	SamplingLevel    *SamplingLevel
	StartIndex       *int
	MaxResults       *int
	IncludeEmptyRows *bool

	// Fields restricts the response to a subset of fields.
	Fields string

	// Raw provides a way to provide extra parameters in the request, set after all other
	// parameters.
	Raw map[string]interface{}
}

// NewAnalyticsDataOptions creates a new instance of AnalyticsDataOptions for the given view and
// date range.
func NewAnalyticsDataOptions(profileID, startDate, endDate string, metrics ...string) *AnalyticsDataOptions {
	return &AnalyticsDataOptions{
		ProfileID:        profileID,
		StartDate:        startDate,
		EndDate:          endDate,
		Metrics:          metrics,
		Dimensions:       nil,
		Sort:             nil,
		Filters:          "",
		Segment:          "",
		SamplingLevel:    nil,
		StartIndex:       nil,
		MaxResults:       nil,
		IncludeEmptyRows: nil,
		Fields:           "",
		Raw:              nil,
	}
}

// SetDimensions sets the Dimensions field to the value provided.
func (opts *AnalyticsDataOptions) SetDimensions(dimensions ...string) *AnalyticsDataOptions {
	opts.Dimensions = dimensions

	return opts
}

// SetSort sets the Sort field to the value provided. Prefix a field with '-' to sort descending.
func (opts *AnalyticsDataOptions) SetSort(sortBy ...string) *AnalyticsDataOptions {
	opts.Sort = sortBy

	return opts
}

// SetFilters sets the Filters field to the value provided.
func (opts *AnalyticsDataOptions) SetFilters(filters string) *AnalyticsDataOptions {
	opts.Filters = filters

	return opts
}

// SetSegment sets the Segment field to the value provided.
func (opts *AnalyticsDataOptions) SetSegment(segment string) *AnalyticsDataOptions {
	opts.Segment = segment

	return opts
}

// SetSamplingLevel sets the SamplingLevel field to the value provided.
func (opts *AnalyticsDataOptions) SetSamplingLevel(level SamplingLevel) *AnalyticsDataOptions {
	opts.SamplingLevel = &level

	return opts
}

// SetStartIndex sets the StartIndex field to the value provided. Indexes start at 1.
func (opts *AnalyticsDataOptions) SetStartIndex(index int) *AnalyticsDataOptions {
	opts.StartIndex = &index

	return opts
}

// SetMaxResults sets the MaxResults field to the value provided.
func (opts *AnalyticsDataOptions) SetMaxResults(maxResults int) *AnalyticsDataOptions {
	opts.MaxResults = &maxResults

	return opts
}

// SetIncludeEmptyRows sets the IncludeEmptyRows field to the value provided.
func (opts *AnalyticsDataOptions) SetIncludeEmptyRows(include bool) *AnalyticsDataOptions {
	opts.IncludeEmptyRows = &include

	return opts
}

// SetFields sets the Fields field to the value provided.
func (opts *AnalyticsDataOptions) SetFields(fields string) *AnalyticsDataOptions {
	opts.Fields = fields

	return opts
}

// SetRaw sets the Raw field to the value provided.
func (opts *AnalyticsDataOptions) SetRaw(raw map[string]interface{}) *AnalyticsDataOptions {
	opts.Raw = raw

	return opts
}

func mergeAnalyticsDataOptions(opts ...*AnalyticsDataOptions) *AnalyticsDataOptions {
	dataOpts := &AnalyticsDataOptions{
		ProfileID:        "",
		StartDate:        "",
		EndDate:          "",
		Metrics:          nil,
		Dimensions:       nil,
		Sort:             nil,
		Filters:          "",
		Segment:          "",
		SamplingLevel:    nil,
		StartIndex:       nil,
		MaxResults:       nil,
		IncludeEmptyRows: nil,
		Fields:           "",
		Raw:              nil,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if opt.ProfileID != "" {
			dataOpts.ProfileID = opt.ProfileID
		}

		if opt.StartDate != "" {
			dataOpts.StartDate = opt.StartDate
		}

		if opt.EndDate != "" {
			dataOpts.EndDate = opt.EndDate
		}

		if len(opt.Metrics) > 0 {
			dataOpts.Metrics = opt.Metrics
		}

		if len(opt.Dimensions) > 0 {
			dataOpts.Dimensions = opt.Dimensions
		}

		if len(opt.Sort) > 0 {
			dataOpts.Sort = opt.Sort
		}

		if opt.Filters != "" {
			dataOpts.Filters = opt.Filters
		}

		if opt.Segment != "" {
			dataOpts.Segment = opt.Segment
		}

		if opt.SamplingLevel != nil {
			dataOpts.SamplingLevel = opt.SamplingLevel
		}

		if opt.StartIndex != nil {
			dataOpts.StartIndex = opt.StartIndex
		}

		if opt.MaxResults != nil {
			dataOpts.MaxResults = opt.MaxResults
		}

		if opt.IncludeEmptyRows != nil {
			dataOpts.IncludeEmptyRows = opt.IncludeEmptyRows
		}

		if opt.Fields != "" {
			dataOpts.Fields = opt.Fields
		}

		if len(opt.Raw) > 0 {
			dataOpts.Raw = opt.Raw
		}
	}

	return dataOpts
}

type queryParam struct {
	key   string
	value interface{}
}

// toQueryString renders the options in wire order. Raw parameters come last, sorted by key, and
// replace any parameter of the same name in place.
func (opts *AnalyticsDataOptions) toQueryString() (*QueryString, error) {
	switch {
	case isBlank(opts.ProfileID):
		return nil, invalidArgumentError{ArgumentName: "ProfileID", Reason: "cannot be empty"}
	case isBlank(opts.StartDate):
		return nil, invalidArgumentError{ArgumentName: "StartDate", Reason: "cannot be empty"}
	case isBlank(opts.EndDate):
		return nil, invalidArgumentError{ArgumentName: "EndDate", Reason: "cannot be empty"}
	case len(opts.Metrics) == 0:
		return nil, invalidArgumentError{ArgumentName: "Metrics", Reason: "at least one metric is required"}
	}

	profileID := opts.ProfileID
	if !strings.HasPrefix(profileID, "ga:") {
		profileID = "ga:" + profileID
	}

	params := []queryParam{
		{"ids", profileID},
		{"start-date", opts.StartDate},
		{"end-date", opts.EndDate},
		{"metrics", strings.Join(opts.Metrics, ",")},
	}

	if len(opts.Dimensions) > 0 {
		params = append(params, queryParam{"dimensions", strings.Join(opts.Dimensions, ",")})
	}

	if len(opts.Sort) > 0 {
		params = append(params, queryParam{"sort", strings.Join(opts.Sort, ",")})
	}

	if opts.Filters != "" {
		params = append(params, queryParam{"filters", opts.Filters})
	}

	if opts.Segment != "" {
		params = append(params, queryParam{"segment", opts.Segment})
	}

	if opts.SamplingLevel != nil {
		var level string

		switch *opts.SamplingLevel {
		case SamplingLevelDefault:
			level = "DEFAULT"
		case SamplingLevelFaster:
			level = "FASTER"
		case SamplingLevelHigherPrecision:
			level = "HIGHER_PRECISION"
		default:
			return nil, invalidArgumentError{
				ArgumentName: "SamplingLevel",
				Reason:       "unknown value",
			}
		}

		params = append(params, queryParam{"samplingLevel", level})
	}

	if opts.StartIndex != nil {
		if *opts.StartIndex < 1 {
			return nil, invalidArgumentError{ArgumentName: "StartIndex", Reason: "must be at least 1"}
		}

		params = append(params, queryParam{"start-index", *opts.StartIndex})
	}

	if opts.MaxResults != nil {
		if *opts.MaxResults < 1 {
			return nil, invalidArgumentError{ArgumentName: "MaxResults", Reason: "must be at least 1"}
		}

		params = append(params, queryParam{"max-results", *opts.MaxResults})
	}

	if opts.IncludeEmptyRows != nil {
		params = append(params, queryParam{"include-empty-rows", *opts.IncludeEmptyRows})
	}

	if opts.Fields != "" {
		params = append(params, queryParam{"fields", opts.Fields})
	}

	if len(opts.Raw) > 0 {
		keys := make([]string, 0, len(opts.Raw))
		for k := range opts.Raw {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		for _, k := range keys {
			params = append(params, queryParam{k, opts.Raw[k]})
		}
	}

	q := NewQueryString()

	for _, param := range params {
		if err := q.Set(param.key, param.value); err != nil {
			return nil, err
		}
	}

	return q, nil
}
