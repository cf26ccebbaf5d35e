package userdirectory_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pizzeria/internal/adapters/out/userdirectory"
	"pizzeria/internal/core/ports"

	"github.com/stretchr/testify/require"
)

func TestClient_GetUser_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {"id": 7, "username": "mario", "email": "mario@example.com", "firstName": "Mario", "lastName": "Rossi", "phone": "555-0101"},
			"message": "ok"
		}`))
	}))
	defer server.Close()

	client := userdirectory.NewClient(server.URL, nil)
	user, err := client.GetUser(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, int64(7), user.ID)
	require.Equal(t, "mario", user.Username)
	require.Equal(t, "Mario", user.FirstName)
}

func TestClient_GetUser_NotFoundStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := userdirectory.NewClient(server.URL, nil)
	_, err := client.GetUser(context.Background(), 999)
	require.ErrorIs(t, err, ports.ErrUserNotFound)
}

func TestClient_GetUser_UnsuccessfulEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "data": null, "message": "no such user"}`))
	}))
	defer server.Close()

	client := userdirectory.NewClient(server.URL, nil)
	_, err := client.GetUser(context.Background(), 999)
	require.ErrorIs(t, err, ports.ErrUserNotFound)
	require.ErrorContains(t, err, "no such user")
}

func TestClient_GetUser_MismatchedID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {"id": 99, "username": "impostor"},
			"message": "ok"
		}`))
	}))
	defer server.Close()

	client := userdirectory.NewClient(server.URL, nil)
	_, err := client.GetUser(context.Background(), 7)
	require.ErrorIs(t, err, ports.ErrUserNotFound)
	require.ErrorContains(t, err, "answered for user 99")
}

func TestClient_GetUser_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := userdirectory.NewClient(server.URL, nil)
	_, err := client.GetUser(context.Background(), 7)
	require.ErrorIs(t, err, ports.ErrUserNotFound)
}

func TestClient_GetUser_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer server.Close()

	client := userdirectory.NewClient(server.URL, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.GetUser(ctx, 7)
	require.ErrorIs(t, err, ports.ErrUserNotFound)
}

func TestClient_GetUser_ConnectionRefused(t *testing.T) {
	client := userdirectory.NewClient("http://127.0.0.1:1", nil)
	_, err := client.GetUser(context.Background(), 7)
	require.ErrorIs(t, err, ports.ErrUserNotFound)
}
