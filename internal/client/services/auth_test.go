package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/lembretes/internal/client/client"
	"github.com/dmitrijs2005/lembretes/internal/client/session"
	"github.com/dmitrijs2005/lembretes/internal/common"
	"github.com/dmitrijs2005/lembretes/internal/logging"
	"github.com/dmitrijs2005/lembretes/internal/validation"
)

func newAuth(c client.Client, timeout time.Duration) (AuthService, *session.Store, *recordingNavigator) {
	store := session.NewStore(nil)
	nav := &recordingNavigator{}
	return NewAuthService(c, store, nav, logging.Nop{}, timeout), store, nav
}

func TestLogin_InvalidFormMakesNoCall(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		field    string
		msg      string
	}{
		{"empty email", "", "abc12345", validation.FieldEmail, validation.MsgEmailRequired},
		{"no at sign", "ab.com", "abc12345", validation.FieldEmail, validation.MsgEmailInvalid},
		{"no dot after at", "a@bcom", "abc12345", validation.FieldEmail, validation.MsgEmailInvalid},
		{"empty password", "a@b.com", "", validation.FieldPassword, validation.MsgPasswordRequired},
		{"short password", "a@b.com", "abc1234", validation.FieldPassword, validation.MsgPasswordInvalid},
		{"digits only", "a@b.com", "12345678", validation.FieldPassword, validation.MsgPasswordInvalid},
		{"letters only", "a@b.com", "abcdefgh", validation.FieldPassword, validation.MsgPasswordInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{}
			svc, store, nav := newAuth(fc, 0)

			res, err := svc.Login(context.Background(), tt.email, tt.password)
			require.Error(t, err)
			assert.Nil(t, res)

			var verrs validation.Errors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.msg, verrs[tt.field])
			assert.ErrorIs(t, err, common.ErrorValidation)

			assert.Zero(t, fc.LoginCalls)
			_, ok := store.User()
			assert.False(t, ok)
			assert.Empty(t, nav.routes)
		})
	}
}

func TestLogin_ValidFormCallsServerOnce(t *testing.T) {
	fc := &fakeClient{LoginRet: []byte(`{"id":1}`)}
	svc, store, nav := newAuth(fc, 0)

	res, err := svc.Login(context.Background(), "a@b.com", "abc12345")
	require.NoError(t, err)

	assert.Equal(t, 1, fc.LoginCalls)
	assert.Equal(t, "a@b.com", fc.LastEmail)
	assert.Equal(t, "abc12345", fc.LastPassword)
	assert.False(t, fc.HadDeadline)

	u, ok := store.User()
	require.True(t, ok)
	assert.JSONEq(t, `{"id":1}`, string(u))
	assert.Equal(t, []string{"/HomePaciente"}, nav.routes)
	assert.Equal(t, common.LandingRoute, res.Route)
}

func TestLogin_MissingUserStoredAsNull(t *testing.T) {
	fc := &fakeClient{}
	svc, store, nav := newAuth(fc, 0)

	_, err := svc.Login(context.Background(), "a@b.com", "abc12345")
	require.NoError(t, err)

	u, ok := store.User()
	require.True(t, ok)
	assert.Equal(t, "null", string(u))
	assert.Len(t, nav.routes, 1)
}

func TestLogin_RejectedLeavesStoreUnchanged(t *testing.T) {
	fc := &fakeClient{LoginErr: &client.RejectedError{Status: 401, Message: "bad credentials"}}
	svc, store, nav := newAuth(fc, 0)

	_, err := svc.Login(context.Background(), "a@b.com", "abc12345")
	require.Error(t, err)
	assert.Equal(t, "bad credentials", UserMessage(err, client.MsgLoginFailed))

	_, ok := store.User()
	assert.False(t, ok)
	assert.Empty(t, nav.routes)
}

func TestLogin_UnavailableShowsGenericMessage(t *testing.T) {
	fc := &fakeClient{LoginErr: fmt.Errorf("%w: dial tcp: connection refused", client.ErrUnavailable)}
	svc, store, _ := newAuth(fc, 0)

	_, err := svc.Login(context.Background(), "a@b.com", "abc12345")
	require.ErrorIs(t, err, client.ErrUnavailable)

	msg := UserMessage(err, client.MsgLoginFailed)
	assert.Equal(t, client.MsgLoginFailed, msg)
	assert.NotContains(t, msg, "connection refused")

	_, ok := store.User()
	assert.False(t, ok)
}

func TestLogin_TimeoutApplied(t *testing.T) {
	fc := &fakeClient{LoginRet: []byte(`{"id":1}`)}
	svc, _, _ := newAuth(fc, time.Second)

	_, err := svc.Login(context.Background(), "a@b.com", "abc12345")
	require.NoError(t, err)
	assert.True(t, fc.HadDeadline)
}

// Exercises the whole flow against a stub endpoint.
func TestLogin_AgainstHTTPEndpoint(t *testing.T) {
	t.Run("200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"user":{"id":1}}`)
		}))
		defer srv.Close()

		svc, store, nav := newAuth(client.NewHTTPClient(srv.URL, logging.Nop{}), 0)
		_, err := svc.Login(context.Background(), "a@b.com", "abc12345")
		require.NoError(t, err)

		u, ok := store.User()
		require.True(t, ok)
		assert.JSONEq(t, `{"id":1}`, string(u))
		assert.Equal(t, []string{"/HomePaciente"}, nav.routes)
	})

	t.Run("401", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"message":"bad credentials"}`)
		}))
		defer srv.Close()

		svc, store, nav := newAuth(client.NewHTTPClient(srv.URL, logging.Nop{}), 0)
		_, err := svc.Login(context.Background(), "a@b.com", "abc12345")
		require.Error(t, err)
		assert.Equal(t, "bad credentials", UserMessage(err, client.MsgLoginFailed))

		_, ok := store.User()
		assert.False(t, ok)
		assert.Empty(t, nav.routes)
	})
}

func TestRegister(t *testing.T) {
	fc := &fakeClient{RegisterRet: 5}
	svc, _, _ := newAuth(fc, 0)

	_, err := svc.Register(context.Background(), " ", "a@b.com", "abc12345")
	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, validation.MsgNameRequired, verrs[validation.FieldName])
	assert.Empty(t, fc.LastEmail)

	id, err := svc.Register(context.Background(), "Ana", "a@b.com", "abc12345")
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
	assert.Equal(t, "Ana", fc.LastName)

	fc.RegisterErr = &client.RejectedError{Status: 409, Message: "E-mail já cadastrado"}
	_, err = svc.Register(context.Background(), "Ana", "a@b.com", "abc12345")
	assert.Equal(t, "E-mail já cadastrado", UserMessage(err, client.MsgRegisterFailed))
}

func TestLogoutPingClose(t *testing.T) {
	fc := &fakeClient{LoginRet: []byte(`{"id":1}`), PingErr: client.ErrUnavailable}
	svc, store, _ := newAuth(fc, 0)
	ctx := context.Background()

	_, err := svc.Login(ctx, "a@b.com", "abc12345")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))
	_, ok := store.User()
	assert.False(t, ok)

	assert.ErrorIs(t, svc.Ping(ctx), client.ErrUnavailable)
	assert.NoError(t, svc.Close(ctx))
}

func TestUserMessage_Fallbacks(t *testing.T) {
	assert.Equal(t, "x", UserMessage(errors.New("boom"), "x"))
	assert.Equal(t, "x", UserMessage(&client.RejectedError{Status: 500}, "x"))
	assert.Equal(t, MsgNotLoggedIn, UserMessage(ErrNotLoggedIn, "x"))
}
