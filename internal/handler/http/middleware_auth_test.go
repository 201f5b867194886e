package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Exercises the auth middleware's "Authorization" header handling
// through a protected route: malformed headers are rejected with 401
// before the token itself is ever parsed.
func TestAuthMiddleware_HeaderHandling(t *testing.T) {
	srv := newTestServer(t, &stubRemote{})
	token := registerAndLogin(t, srv)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid bearer", header: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "scheme only", header: "Bearer", wantStatus: http.StatusUnauthorized},
		{name: "no scheme", header: "garbage", wantStatus: http.StatusUnauthorized},
		{name: "token is not a jwt", header: "Bearer not.a.token", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/homework", nil)
			require.NoError(t, err)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
