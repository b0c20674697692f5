package license

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pranto48/lifeos-backend/internal/repository"
	appErr "github.com/pranto48/lifeos-backend/pkg/errors"
)

func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *repository.Memory) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	mem := repository.NewMemory()
	svc := NewService(mem, zap.NewNop())
	svc.url = srv.URL
	return svc, mem
}

func TestVerifyDecryptsPortalResponse(t *testing.T) {
	payload := `{"success":true,"license":{"status":"active"}}`
	var seen verifyRequest

	svc, mem := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &seen))
		w.Write(encryptPortalPayload(t, payload, portalPassphrase))
	})

	require.NoError(t, mem.Create(context.Background(), &repository.User{Email: "a@x.com", PasswordHash: "h"}))

	out, err := svc.Verify(context.Background(), "LIC-123", "user-9")
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(out))

	assert.Equal(t, "LIC-123", seen.AppLicenseKey)
	assert.Equal(t, "user-9", seen.UserID)
	assert.Equal(t, 1, seen.CurrentDeviceCount)
	assert.True(t, strings.HasPrefix(seen.InstallationID, repository.InstallationIDPrefix))
}

func TestVerifyInstallationIDIsDurable(t *testing.T) {
	var ids []string
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		var seen verifyRequest
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &seen))
		ids = append(ids, seen.InstallationID)
		w.Write([]byte(`{"success":true}`))
	})

	for i := 0; i < 2; i++ {
		_, err := svc.Verify(context.Background(), "LIC-123", "")
		require.NoError(t, err)
	}
	require.Len(t, ids, 2)
	assert.Equal(t, ids[0], ids[1])
}

func TestVerifyPlaintextFallback(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"invalid license key"}`))
	})

	out, err := svc.Verify(context.Background(), "LIC-BAD", "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"invalid license key"}`, string(out))
}

func TestVerifyUnreadableResponse(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>definitely not json</html>"))
	})

	_, err := svc.Verify(context.Background(), "LIC-123", "")
	require.Error(t, err)
	assert.True(t, appErr.IsCode(err, appErr.CodeExternal))
}

func TestVerifyPortalError(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := svc.Verify(context.Background(), "LIC-123", "")
	require.Error(t, err)
	assert.True(t, appErr.IsCode(err, appErr.CodeExternal))
}

func TestVerifyWithoutDatabase(t *testing.T) {
	svc, mem := newTestService(t, func(w http.ResponseWriter, r *http.Request) {})
	mem.Unconfigured = true

	_, err := svc.Verify(context.Background(), "LIC-123", "")
	require.Error(t, err)
	assert.True(t, appErr.IsCode(err, appErr.CodeUnavailable))
}
