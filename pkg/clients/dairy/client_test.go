package dairy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/login":
			_, _ = w.Write([]byte(`{"token":"abc","user":{"_id":"64b7f0c2e4b0a1a2b3c4d5e6","email":"a@b.io","role":"admin"}}`))
		case "/api/admin/dashboard":
			if r.Header.Get("Authorization") != "Bearer abc" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"Not authorized, no token"}`))
				return
			}
			_, _ = w.Write([]byte(`{"totalFarmers":2,"totalMilk":5.5,"totalBreeds":1,"totalFeeds":0,"totalHealth":0}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/")
	ctx := context.Background()

	_, err := client.Dashboard(ctx)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Not authorized, no token", apiErr.Message)

	session, err := client.Login(ctx, "a@b.io", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc", session.Token)
	assert.Equal(t, "64b7f0c2e4b0a1a2b3c4d5e6", session.User.ID.Hex())

	dash, err := client.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), dash.TotalFarmers)
	assert.Equal(t, 5.5, dash.TotalMilk)
}

func TestAPIErrorWithoutJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ListFarmers(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream down", apiErr.Message)
}
