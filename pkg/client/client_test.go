package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_InjectsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok-abc")

	if _, err := c.Properties(context.Background()); err != nil {
		t.Fatalf("properties: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":1},"token":"t"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.Login(context.Background(), "a@b.com", "pass"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if hasAuth {
		t.Fatalf("unauthenticated request carried Authorization %q", gotAuth)
	}
}

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["email"] != "alice@example.com" || body["password"] != "secret" {
			t.Fatalf("unexpected credentials %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":1,"name":"Alice","email":"alice@example.com"},"token":"tok-1"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	result, err := c.Login(context.Background(), "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token != "tok-1" || result.User == nil || result.User.ID != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if c.Token() != "" {
		t.Fatalf("login must not install the token on the transport")
	}
}

func TestClient_DecodesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Los datos proporcionados no son válidos","errors":{"title":"title is required"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CreateProperty(context.Background(), PropertyInput{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", apiErr.Status)
	}
	if apiErr.Fields["title"] != "title is required" {
		t.Fatalf("field map not decoded: %v", apiErr.Fields)
	}
	if apiErr.IsUnauthorized() {
		t.Fatalf("422 is not unauthorized")
	}
}

func TestClient_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Credenciales incorrectas"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Me(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || !apiErr.IsUnauthorized() {
		t.Fatalf("expected unauthorized APIError, got %v", err)
	}
	if apiErr.Message != "Credenciales incorrectas" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}
}

func TestClient_PatchMarshalsExplicitNull(t *testing.T) {
	var raw []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"status":"disponible"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	patch := PropertyPatch{"title": "Nuevo", "description": nil}
	if _, err := c.UpdateProperty(context.Background(), 7, patch); err != nil {
		t.Fatalf("update: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if string(decoded["description"]) != "null" {
		t.Fatalf("nil patch value must serialize as null, got %s", decoded["description"])
	}
	if _, present := decoded["status"]; present {
		t.Fatalf("untouched field must be absent from the wire: %s", raw)
	}
}

func TestClient_PropertyStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/properties/stats" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total":3,"disponibles":2,"arrendadas":1,"ingresos_mensuales":950}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	stats, err := c.PropertyStats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 3 || stats.Arrendadas != 1 || stats.IngresosMensuales != 950 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestClient_DeleteProperty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/properties/5" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Propiedad eliminada"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.DeleteProperty(context.Background(), 5); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
