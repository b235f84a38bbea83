package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/skillsearch/pkg/config"
	"github.com/ajxudir/skillsearch/pkg/server"
	"github.com/ajxudir/skillsearch/pkg/testutil"
)

// stubServer replaces runServerFunc for one test and returns the address
// and server it was called with.
func stubServer(t *testing.T) (*string, **server.Server) {
	t.Helper()
	var (
		addr string
		srv  *server.Server
	)
	old := runServerFunc
	t.Cleanup(func() { runServerFunc = old })
	runServerFunc = func(ctx context.Context, s *server.Server, a string) error {
		addr, srv = a, s
		return nil
	}
	return &addr, &srv
}

// TestServe tests the serve command.
//
// It verifies:
//   - The configured address is used by default
//   - The startup line names the address
//   - The server answers health checks
func TestServe(t *testing.T) {
	chdir(t, t.TempDir())
	addr, srv := stubServer(t)

	out, err := runCLI(t, "serve")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultAddr, *addr)
	assert.Contains(t, out, "Serving on http://"+config.DefaultAddr)
	require.NotNil(t, *srv)

	rec := httptest.NewRecorder()
	(*srv).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestServeAddr tests address selection.
//
// It verifies:
//   - --addr overrides the configuration
//   - server.addr from a config file is used without --addr
func TestServeAddr(t *testing.T) {
	addr, _ := stubServer(t)

	_, err := runCLI(t, "serve", "--addr", ":9999")
	require.NoError(t, err)
	assert.Equal(t, ":9999", *addr)

	path := testutil.WriteFile(t, t.TempDir(), "server.yml", []byte("server:\n  addr: \"0.0.0.0:7070\"\n"))
	_, err = runCLI(t, "serve", "-c", path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:7070", *addr)
}

// TestServeRejectsArgs tests that serve takes no positional arguments.
func TestServeRejectsArgs(t *testing.T) {
	stubServer(t)
	_, err := runCLI(t, "serve", "extra")
	require.Error(t, err)
}
