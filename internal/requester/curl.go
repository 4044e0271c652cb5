package requester

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// curlCommand renders the request as a copy-pasteable curl invocation. The
// bearer token is shortened so logs can be shared.
func curlCommand(method, url string, header http.Header, body []byte) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "curl -X %s '%s'", method, url)

	keys := make([]string, 0, len(header))
	for k := range header {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		for _, v := range header[k] {
			if k == "Authorization" {
				v = maskToken(v)
			}
			fmt.Fprintf(&sb, " \\\n  -H '%s: %s'", k, v)
		}
	}

	if len(body) > 0 && string(body) != "{}" {
		fmt.Fprintf(&sb, " \\\n  -d '%s'", body)
	}

	return sb.String()
}

func maskToken(v string) string {
	scheme, token, ok := strings.Cut(v, " ")
	if !ok || len(token) <= 12 {
		return v
	}

	return scheme + " " + token[:6] + "..." + token[len(token)-6:]
}

// prettyBody indents JSON bodies and returns anything else unchanged.
func prettyBody(body []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return string(body)
	}

	return buf.String()
}
