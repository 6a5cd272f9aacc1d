package models

// UpstreamResponse is a provider response relayed to the caller without decoding.
type UpstreamResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Report is the subset of the provider payload that clients display.
// Pointer fields are nil when the provider omitted them.
type Report struct {
	Name    string `json:"name"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
}

// Condition returns weather[0].main, or "" when the provider sent no conditions.
func (r Report) Condition() string {
	if len(r.Weather) == 0 {
		return ""
	}
	return r.Weather[0].Main
}
