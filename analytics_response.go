package social

// AnalyticsDataRow is a single row of a data response.
type AnalyticsDataRow struct {
	// Index is the zero-based position of the row in the response.
	Index int
	// Cells holds the cell values in the order of the column headers.
	Cells []string
}

// AnalyticsDataResponse is the result of a Core Reporting data query.
type AnalyticsDataResponse struct {
	Kind                string
	ID                  string
	SelfLink            string
	ContainsSampledData bool
	TotalResults        int
	ItemsPerPage        int
	Query               *AnalyticsDataQuery
	ColumnHeaders       []AnalyticsDataColumnHeader
	TotalsForAllResults map[string]string
	// Rows is never nil; a response without rows has an empty slice.
	Rows []AnalyticsDataRow
}

// ColumnIndex returns the index of the column with the given header name, or -1.
func (r *AnalyticsDataResponse) ColumnIndex(name string) int {
	for i, header := range r.ColumnHeaders {
		if header.Name == name {
			return i
		}
	}

	return -1
}

// ParseAnalyticsDataResponseJSON parses a raw JSON data response.
func ParseAnalyticsDataResponseJSON(data []byte) (*AnalyticsDataResponse, error) {
	obj, err := ParseJSONObject(data)
	if err != nil {
		return nil, err
	}

	return ParseAnalyticsDataResponse(obj)
}

// ParseAnalyticsDataResponse converts obj into an AnalyticsDataResponse. A nil obj yields a nil
// response and no error. If obj carries an error object, an *APIError is returned and no
// response is built.
func ParseAnalyticsDataResponse(obj *JSONObject) (*AnalyticsDataResponse, error) {
	if obj == nil {
		return nil, nil
	}

	if obj.HasValue("error") {
		return nil, parseAPIError(obj.GetObject("error"))
	}

	return &AnalyticsDataResponse{
		Kind:                obj.GetString("kind"),
		ID:                  obj.GetString("id"),
		SelfLink:            obj.GetString("selfLink"),
		ContainsSampledData: obj.GetBool("containsSampledData"),
		TotalResults:        obj.GetInt("totalResults"),
		ItemsPerPage:        obj.GetInt("itemsPerPage"),
		Query:               parseAnalyticsDataQuery(obj.GetObject("query")),
		ColumnHeaders:       parseAnalyticsDataColumnHeaders(obj.GetArray("columnHeaders")),
		TotalsForAllResults: parseStringMap(obj.GetObject("totalsForAllResults")),
		Rows:                parseAnalyticsDataRows(obj.GetArray("rows")),
	}, nil
}

// parseAnalyticsDataRows never returns nil.
func parseAnalyticsDataRows(arr *JSONArray) []AnalyticsDataRow {
	rows := make([]AnalyticsDataRow, arr.Len())
	for i := range rows {
		rows[i] = AnalyticsDataRow{
			Index: i,
			Cells: arr.GetArray(i).Strings(),
		}
	}

	return rows
}

func parseAPIError(obj *JSONObject) *APIError {
	apiErr := newAPIError(obj.GetInt("code"), obj.GetString("message"))

	details := obj.GetArray("errors")
	if details.Len() == 0 {
		return apiErr
	}

	descs := make([]apiErrorDesc, 0, details.Len())
	for i := 0; i < details.Len(); i++ {
		detail := details.GetObject(i)
		if detail == nil {
			continue
		}

		descs = append(descs, apiErrorDesc{
			Domain:  detail.GetString("domain"),
			Reason:  detail.GetString("reason"),
			Message: detail.GetString("message"),
		})
	}

	return apiErr.withErrors(descs)
}

func parseStringMap(obj *JSONObject) map[string]string {
	keys := obj.Keys()
	if len(keys) == 0 {
		return nil
	}

	out := make(map[string]string, len(keys))
	for _, key := range keys {
		out[key] = obj.GetString(key)
	}

	return out
}
