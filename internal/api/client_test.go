package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "maya@syncro.app", body["email"])

		json.NewEncoder(w).Encode(AuthResponse{
			AccessToken: "tok-1",
			TokenType:   "bearer",
			UserID:      7,
			Role:        "seller",
			FirstName:   "Maya",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Login(context.Background(), "maya@syncro.app", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", resp.AccessToken)
	assert.Equal(t, 7, resp.UserID)
	assert.Equal(t, "seller", resp.Role)
}

func TestErrorDetailVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Login(context.Background(), "x@y.z", "wrong")
	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid credentials", apiErr.Error())
	assert.True(t, IsAuthError(err))
}

func TestErrorWithoutDetailUsesStatusLine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Listings(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Request failed: 502", err.Error())
}

func TestToggleRoleSendsBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/toggle-role", r.URL.Path)
		require.Equal(t, "Bearer old-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(AuthResponse{
			AccessToken: "new-token",
			TokenType:   "bearer",
			UserID:      7,
			Role:        "seller",
			ActiveRole:  "seller",
			FirstName:   "Maya",
		})
	}))
	defer srv.Close()

	resp, err := New(srv.URL).ToggleRole(context.Background(), "old-token")
	require.NoError(t, err)
	assert.Equal(t, "new-token", resp.AccessToken)
	assert.Equal(t, "seller", resp.ActiveRole)
}

func TestCreateListingMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/listings/create", r.URL.Path)
		require.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Logo design", r.FormValue("title"))
		assert.Equal(t, "450", r.FormValue("price"))
		_, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		assert.Equal(t, "logo.png", hdr.Filename)

		json.NewEncoder(w).Encode(CreateListingResponse{Message: "Listing created", URL: "https://cdn/logo.png"})
	}))
	defer srv.Close()

	resp, err := New(srv.URL).CreateListing(context.Background(), "tok", CreateListingRequest{
		Title:       "Logo design",
		Description: "Minimal marks",
		Price:       450,
		Image:       strings.NewReader("png-bytes"),
		ImageName:   "logo.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/logo.png", resp.URL)
}

func TestUpdateOrderStatusQueryParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/orders/42/status", r.URL.Path)
		require.Equal(t, "completed", r.URL.Query().Get("status"))
		json.NewEncoder(w).Encode(Order{ID: 42, Status: "completed"})
	}))
	defer srv.Close()

	order, err := New(srv.URL).UpdateOrderStatus(context.Background(), "tok", 42, "completed")
	require.NoError(t, err)
	assert.Equal(t, "completed", order.Status)
}

func TestOrdersForUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders/user/7", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]Order{{ID: 1, ServiceName: "Logo design", BuyerID: 7}})
	}))
	defer srv.Close()

	orders, err := New(srv.URL).OrdersForUser(context.Background(), "tok", 7)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Logo design", orders[0].ServiceName)
}
