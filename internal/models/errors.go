package models

// APIError is the error envelope both Cinescope services answer with.
type APIError struct {
	Message    any    `json:"message"`
	Error      string `json:"error"`
	StatusCode int    `json:"statusCode"`
}

// MessageText flattens Message, which the services send either as a string
// or as a list of strings.
func (e APIError) MessageText() string {
	switch m := e.Message.(type) {
	case string:
		return m
	case []any:
		out := ""
		for i, v := range m {
			if i > 0 {
				out += "; "
			}
			if s, ok := v.(string); ok {
				out += s
			}
		}
		return out
	default:
		return ""
	}
}
