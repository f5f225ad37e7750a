package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitplan/internal/domain"
	"fitplan/pkg/logger"
)

// stubUserService her operasyon için sabit sonuç döner; handler testleri
// yalnızca HTTP eşlemesini doğrular.
type stubUserService struct {
	user *domain.User
	err  error
}

func (s *stubUserService) Register(name, email, password string, age int, gender, experienceLevel string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) Login(email, password string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) GetUserByID(id int64) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) UpdateProfile(id int64, name string, age int, gender, experienceLevel string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) ChangePassword(id int64, oldPassword, newPassword string) error {
	return s.err
}

func (s *stubUserService) DeleteUser(id int64) error {
	return s.err
}

func (s *stubUserService) ListUsers() ([]*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user == nil {
		return nil, nil
	}
	return []*domain.User{s.user}, nil
}

func newTestServer(svc domain.UserService) *httptest.Server {
	mux := http.NewServeMux()
	handler := NewUserHandler(svc, logger.New(logger.ErrorLevel, io.Discard))
	handler.RegisterRoutes(mux)
	return httptest.NewServer(mux)
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, map[string]interface{}) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestRegisterEndpoint(t *testing.T) {
	t.Run("başarılı kayıt 201 döner", func(t *testing.T) {
		svc := &stubUserService{user: &domain.User{ID: 1, Name: "Ayşe", Email: "ayse@example.com"}}
		server := newTestServer(svc)
		defer server.Close()

		resp, body := doJSON(t, http.MethodPost, server.URL+"/auth/register",
			`{"name":"Ayşe","email":"ayse@example.com","password":"gizli123","age":28}`)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "kayıt başarılı", body["message"])

		user, ok := body["user"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "ayse@example.com", user["email"])
		assert.NotContains(t, user, "password_hash")
	})

	t.Run("kayıtlı e-posta 409 döner", func(t *testing.T) {
		svc := &stubUserService{err: domain.ErrEmailTaken}
		server := newTestServer(svc)
		defer server.Close()

		resp, _ := doJSON(t, http.MethodPost, server.URL+"/auth/register",
			`{"name":"Ayşe","email":"ayse@example.com","password":"gizli123"}`)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("eksik alanlar 400 döner", func(t *testing.T) {
		server := newTestServer(&stubUserService{})
		defer server.Close()

		resp, _ := doJSON(t, http.MethodPost, server.URL+"/auth/register",
			`{"email":"ayse@example.com"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("bozuk gövde 400 döner", func(t *testing.T) {
		server := newTestServer(&stubUserService{})
		defer server.Close()

		resp, _ := doJSON(t, http.MethodPost, server.URL+"/auth/register", `{bozuk`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("geçerli kimlik bilgileri 200 döner", func(t *testing.T) {
		svc := &stubUserService{user: &domain.User{ID: 2, Email: "mehmet@example.com"}}
		server := newTestServer(svc)
		defer server.Close()

		resp, body := doJSON(t, http.MethodPost, server.URL+"/auth/login",
			`{"email":"mehmet@example.com","password":"parola42"}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "mehmet@example.com", body["email"])
		assert.NotContains(t, body, "password_hash")
	})

	t.Run("geçersiz kimlik bilgileri 401 döner", func(t *testing.T) {
		svc := &stubUserService{err: domain.ErrInvalidCredentials}
		server := newTestServer(svc)
		defer server.Close()

		resp, _ := doJSON(t, http.MethodPost, server.URL+"/auth/login",
			`{"email":"mehmet@example.com","password":"yanlis"}`)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestChangePasswordEndpoint(t *testing.T) {
	t.Run("yanlış mevcut şifre 400 döner", func(t *testing.T) {
		svc := &stubUserService{err: domain.ErrCurrentPassword}
		server := newTestServer(svc)
		defer server.Close()

		resp, _ := doJSON(t, http.MethodPost, server.URL+"/auth/password",
			`{"id":1,"old_password":"yanlis","new_password":"yeni"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("başarılı değişiklik 200 döner", func(t *testing.T) {
		server := newTestServer(&stubUserService{})
		defer server.Close()

		resp, body := doJSON(t, http.MethodPost, server.URL+"/auth/password",
			`{"id":1,"old_password":"eski","new_password":"yeni"}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "şifre güncellendi", body["message"])
	})
}

func TestGetUserEndpoint(t *testing.T) {
	t.Run("var olan kullanıcı 200 döner", func(t *testing.T) {
		svc := &stubUserService{user: &domain.User{ID: 3, Name: "Zeynep", Email: "zeynep@example.com"}}
		server := newTestServer(svc)
		defer server.Close()

		resp, body := doJSON(t, http.MethodGet, server.URL+"/api/users?id=3", "")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Zeynep", body["name"])
	})

	t.Run("bilinmeyen kullanıcı 404 döner", func(t *testing.T) {
		svc := &stubUserService{err: domain.ErrUserNotFound}
		server := newTestServer(svc)
		defer server.Close()

		resp, _ := doJSON(t, http.MethodGet, server.URL+"/api/users?id=9999", "")

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("geçersiz id 400 döner", func(t *testing.T) {
		server := newTestServer(&stubUserService{})
		defer server.Close()

		resp, _ := doJSON(t, http.MethodGet, server.URL+"/api/users?id=abc", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/users", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteUserEndpoint(t *testing.T) {
	server := newTestServer(&stubUserService{})
	defer server.Close()

	resp, body := doJSON(t, http.MethodDelete, server.URL+"/api/users?id=5", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "kullanıcı silindi", body["message"])
}

func TestListUsersEndpoint(t *testing.T) {
	t.Run("boş liste boş JSON dizisi döner", func(t *testing.T) {
		server := newTestServer(&stubUserService{})
		defer server.Close()

		req, err := http.NewRequest(http.MethodGet, server.URL+"/api/users/all", nil)
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var users []map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, users)
	})
}

func TestPersistenceErrorsHideDetails(t *testing.T) {
	svc := &stubUserService{err: domain.NewPersistenceError("kullanıcı okunamadı", errors.New("disk doldu"))}
	server := newTestServer(svc)
	defer server.Close()

	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/users?id=1", "")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "beklenmeyen bir hata oluştu", body["error"])
	assert.NotContains(t, body["error"], "disk")
}
