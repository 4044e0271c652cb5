package e2e_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/metinatakli/cinescope-autotests/internal/models"
	"github.com/metinatakli/cinescope-autotests/internal/requester"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"createdAt": {},
	"updatedAt": {},
}

// compareResponse checks body against the expected JSON, ignoring
// server-generated timestamps.
func compareResponse(t *testing.T, body []byte, expectedResponse string) {
	t.Helper()

	var actual map[string]any
	require.NoError(t, json.Unmarshal(body, &actual))

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func apiError(t *testing.T, err error) models.APIError {
	t.Helper()

	var se *requester.StatusError
	require.ErrorAs(t, err, &se)

	var apiErr models.APIError
	require.NoError(t, se.JSON(&apiErr))

	return apiErr
}
