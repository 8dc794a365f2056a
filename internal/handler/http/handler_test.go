package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Mixik7/moltis/internal/config"
	"github.com/Mixik7/moltis/internal/logger"
	"github.com/Mixik7/moltis/internal/mock"
	"github.com/Mixik7/moltis/internal/service"
	"github.com/Mixik7/moltis/internal/store"
	"github.com/Mixik7/moltis/internal/vault"
	"github.com/Mixik7/moltis/models"
)

// fakeVault is a hand-rolled VaultManager covering the guard's state
// checks without running real KDF work.
type fakeVault struct {
	mu          sync.Mutex
	initialized bool
	unsealed    bool
	password    string
	phrase      string
}

func (f *fakeVault) Status(ctx context.Context) (models.VaultStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch {
	case !f.initialized:
		return models.VaultStatusUninitialized, nil
	case !f.unsealed:
		return models.VaultStatusSealed, nil
	default:
		return models.VaultStatusUnsealed, nil
	}
}

func (f *fakeVault) Initialize(ctx context.Context, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.initialized {
		return "", vault.ErrAlreadyInitialized
	}
	f.initialized = true
	f.unsealed = true
	f.password = password
	f.phrase = "AAAA-BBBB-CCCC-DDDD-EEEE-FFFF-0000-1111"
	return f.phrase, nil
}

func (f *fakeVault) Unseal(ctx context.Context, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.initialized {
		return vault.ErrNotInitialized
	}
	if password != f.password {
		return vault.ErrBadPassword
	}
	f.unsealed = true
	return nil
}

func (f *fakeVault) UnsealWithRecovery(ctx context.Context, phrase string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.initialized {
		return vault.ErrNotInitialized
	}
	if phrase != f.phrase {
		return vault.ErrInvalidRecoveryPhrase
	}
	f.unsealed = true
	return nil
}

func (f *fakeVault) Seal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unsealed = false
}

func (f *fakeVault) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.unsealed {
		return vault.ErrSealed
	}
	if oldPassword != f.password {
		return vault.ErrBadPassword
	}
	f.password = newPassword
	return nil
}

func (f *fakeVault) IsUnsealed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unsealed
}

func testAuthConfig() config.Auth {
	return config.Auth{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "moltis-vault",
		TokenDuration: time.Hour,
	}
}

func newTestHandler(t *testing.T) (*Handler, *fakeVault, *mock.MockSecretsService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	secretsService := mock.NewMockSecretsService(ctrl)

	fv := &fakeVault{}
	h := NewHandler(fv, &service.Services{SecretsService: secretsService}, testAuthConfig(), logger.Nop())
	return h, fv, secretsService
}

func doRequest(t *testing.T, h *Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func unsealAndGetToken(t *testing.T, h *Handler, fv *fakeVault) string {
	t.Helper()
	_, err := fv.Initialize(context.Background(), "pw")
	if err != nil {
		// already initialized by the test
		require.ErrorIs(t, err, vault.ErrAlreadyInitialized)
	}

	rec := doRequest(t, h, http.MethodPost, "/api/vault/unseal", "", unsealRequest{Password: "pw"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp unlockResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestStatusRoute(t *testing.T) {
	h, fv, _ := newTestHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/api/vault/status", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "uninitialized", resp.Status)

	_, err := fv.Initialize(context.Background(), "pw")
	require.NoError(t, err)
	fv.Seal()

	rec = doRequest(t, h, http.MethodGet, "/api/vault/status", "", nil)
	var sealed statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sealed))
	assert.Equal(t, "sealed", sealed.Status)
}

func TestStatusRoute_SetsTraceID(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := doRequest(t, h, http.MethodGet, "/api/vault/status", "", nil)
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestInitializeRoute(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := doRequest(t, h, http.MethodPost, "/api/vault/init", "", initializeRequest{Password: "pw"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp initializeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RecoveryPhrase)
	assert.NotEmpty(t, resp.Token)

	// Second initialization conflicts.
	rec = doRequest(t, h, http.MethodPost, "/api/vault/init", "", initializeRequest{Password: "pw"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUnsealRoute_WrongPassword(t *testing.T) {
	h, fv, _ := newTestHandler(t)
	_, err := fv.Initialize(context.Background(), "pw")
	require.NoError(t, err)
	fv.Seal()

	rec := doRequest(t, h, http.MethodPost, "/api/vault/unseal", "", unsealRequest{Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUnsealRoute_NotInitialized(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := doRequest(t, h, http.MethodPost, "/api/vault/unseal", "", unsealRequest{Password: "pw"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRecoverRoute(t *testing.T) {
	h, fv, _ := newTestHandler(t)
	phrase, err := fv.Initialize(context.Background(), "pw")
	require.NoError(t, err)
	fv.Seal()

	rec := doRequest(t, h, http.MethodPost, "/api/vault/recover", "", recoverRequest{Phrase: "WRNG-WRNG-WRNG-WRNG-WRNG-WRNG-WRNG-WRNG"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, h, http.MethodPost, "/api/vault/recover", "", recoverRequest{Phrase: phrase})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSecretsRoute_LockedWhileSealed(t *testing.T) {
	h, fv, _ := newTestHandler(t)
	_, err := fv.Initialize(context.Background(), "pw")
	require.NoError(t, err)
	fv.Seal()

	rec := doRequest(t, h, http.MethodGet, "/api/secrets/env:TOKEN", "", nil)
	require.Equal(t, http.StatusLocked, rec.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "locked", resp.Status)
}

func TestSecretsRoute_RequiresSessionToken(t *testing.T) {
	h, fv, _ := newTestHandler(t)
	_, err := fv.Initialize(context.Background(), "pw")
	require.NoError(t, err)

	// Unsealed but no token: the locked guard passes, auth rejects.
	rec := doRequest(t, h, http.MethodGet, "/api/secrets/env:TOKEN", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/secrets/env:TOKEN", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSecretsRoute_RoundTrip(t *testing.T) {
	h, fv, secretsService := newTestHandler(t)
	token := unsealAndGetToken(t, h, fv)

	secretsService.EXPECT().
		StoreSecret(gomock.Any(), "env:TOKEN", "hunter2").
		Return(models.SecretRecord{ID: "id-1", Name: "env:TOKEN", Encrypted: true}, nil)
	secretsService.EXPECT().
		RevealSecret(gomock.Any(), "env:TOKEN").
		Return("hunter2", nil)

	rec := doRequest(t, h, http.MethodPut, "/api/secrets/env:TOKEN", token, storeSecretRequest{Value: "hunter2"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/secrets/env:TOKEN", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp secretResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "hunter2", resp.Value)
}

func TestSecretsRoute_NotFound(t *testing.T) {
	h, fv, secretsService := newTestHandler(t)
	token := unsealAndGetToken(t, h, fv)

	secretsService.EXPECT().
		RevealSecret(gomock.Any(), "missing").
		Return("", store.ErrSecretNotFound)

	rec := doRequest(t, h, http.MethodGet, "/api/secrets/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSealRoute(t *testing.T) {
	h, fv, _ := newTestHandler(t)
	token := unsealAndGetToken(t, h, fv)

	rec := doRequest(t, h, http.MethodPost, "/api/vault/seal", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, fv.IsUnsealed())

	// Guarded route without a token stays rejected even for seal.
	rec = doRequest(t, h, http.MethodPost, "/api/vault/seal", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePasswordRoute(t *testing.T) {
	h, fv, _ := newTestHandler(t)
	token := unsealAndGetToken(t, h, fv)

	rec := doRequest(t, h, http.MethodPost, "/api/vault/password", token,
		changePasswordRequest{OldPassword: "wrong", NewPassword: "next"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, h, http.MethodPost, "/api/vault/password", token,
		changePasswordRequest{OldPassword: "pw", NewPassword: "next"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "next", fv.password)
}

func TestMalformedBody(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/vault/unseal", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTPStatusForError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{vault.ErrSealed, http.StatusLocked},
		{vault.ErrBadPassword, http.StatusUnauthorized},
		{vault.ErrInvalidRecoveryPhrase, http.StatusUnauthorized},
		{vault.ErrNotInitialized, http.StatusConflict},
		{vault.ErrAlreadyInitialized, http.StatusConflict},
		{vault.ErrRecoveryNotConfigured, http.StatusConflict},
		{vault.ErrMalformedEnvelope, http.StatusUnprocessableEntity},
		{vault.ErrCryptoFailure, http.StatusUnprocessableEntity},
		{store.ErrSecretNotFound, http.StatusNotFound},
		{service.ErrEmptySecretName, http.StatusBadRequest},
		{context.Canceled, http.StatusRequestTimeout},
		{vault.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, httpStatusForError(tc.err), "error %v", tc.err)
	}
}
