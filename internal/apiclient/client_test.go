package apiclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymhub/internal/apiclient"
	"gymhub/internal/domain/cart"
	"gymhub/internal/domain/catalog"
)

// TestClient_EnvelopeUnwrap verifies the data field of the response
// envelope is unwrapped into the output value.
func TestClient_EnvelopeUnwrap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"u1","email":"a@b.nz","role":"customer"},"message":"ok"}`))
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	acct, err := c.Me(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", acct.ID)
	assert.Equal(t, "a@b.nz", acct.Email)
	assert.Equal(t, "customer", acct.Role)
}

// TestClient_BarePayload decodes responses that skip the envelope.
func TestClient_BarePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"m1","status":"ACTIVE"},{"id":"m2","status":"expired"}]`))
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	got, err := c.MembershipsForProfile(context.Background(), "tok", "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "m1", got[0].ID)
	assert.True(t, got[0].IsActive())
}

// TestClient_ErrorMessage surfaces the backend's message on non-2xx.
func TestClient_ErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid credentials"}`))
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	_, err := c.Login(context.Background(), "a@b.nz", "wrong")
	require.Error(t, err)
	assert.EqualError(t, err, "invalid credentials")

	var apiErr *apiclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

// TestClient_ErrorFallback uses a generic message when the body is not an
// envelope.
func TestClient_ErrorFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream exploded`))
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	_, err := c.Me(context.Background(), "tok")
	require.Error(t, err)
	assert.EqualError(t, err, "request failed with status 502")
}

// TestClient_GymsQuery maps the filter onto query parameters, omitting
// default values.
func TestClient_GymsQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"data":[{"id":"g1","name":"Ironworks"}]}`))
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)

	// Defaults produce no query string at all
	_, err := c.Gyms(context.Background(), "tok", catalog.DefaultFilter())
	require.NoError(t, err)
	assert.Empty(t, gotQuery)

	gyms, err := c.Gyms(context.Background(), "tok", catalog.Filter{
		Search:    "iron",
		MaxPrice:  500,
		Amenities: []string{"pool", "sauna"},
		Rating:    4,
	})
	require.NoError(t, err)
	require.Len(t, gyms, 1)
	assert.Contains(t, gotQuery, "search=iron")
	assert.Contains(t, gotQuery, "max_price=500")
	assert.Contains(t, gotQuery, "amenities=pool%2Csauna")
	assert.Contains(t, gotQuery, "rating=4")
	assert.NotContains(t, gotQuery, "min_price")
}

// TestClient_PlaceOrder posts the cart lines and decodes the confirmation.
func TestClient_PlaceOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"data":{"order_id":"o1","total":2000,"status":"pending"}}`))
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	res, err := c.PlaceOrder(context.Background(), "tok", []cart.Item{
		{ProductID: "p1", UnitPrice: 1000, Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "o1", res.OrderID)
	assert.Equal(t, 2000, res.Total)
}

// TestClient_Upload sends multipart form data under the file field.
func TestClient_Upload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "avatar.png", header.Filename)
		w.Write([]byte(`{"data":{"url":"https://cdn.example/avatar.png"}}`))
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	res, err := c.Upload(context.Background(), "tok", "avatar.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/avatar.png", res.URL)
}

// TestClient_NoTokenOmitsHeader leaves Authorization unset for anonymous
// calls.
func TestClient_NoTokenOmitsHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":{"token":"t","user":{"id":"u1"}}}`))
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL)
	res, err := c.Login(context.Background(), "a@b.nz", "longenoughpassword")
	require.NoError(t, err)
	assert.Equal(t, "t", res.Token)
	assert.Equal(t, "u1", res.Account.ID)
}
