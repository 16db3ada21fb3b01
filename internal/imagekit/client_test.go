package imagekit

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadRequiresPrivateKey(t *testing.T) {
	c := &Client{}
	_, err := c.Upload("aGVsbG8=", "hello.png")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestUploadRequiresFileAndName(t *testing.T) {
	c := NewClient("private_key")
	_, err := c.Upload("", "hello.png")
	assert.Error(t, err)
	_, err = c.Upload("aGVsbG8=", "")
	assert.Error(t, err)
}

func TestUploadSuccess(t *testing.T) {
	var gotAuth, gotFileName string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, r.ParseMultipartForm(32<<20))
		gotFileName = r.FormValue("fileName")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"https://ik.example.com/catalog/tank.png","fileId":"f123","name":"tank.png"}`))
	}))
	defer srv.Close()

	c := &Client{UploadURL: srv.URL, PrivateKey: "private_key"}
	result, err := c.Upload("aGVsbG8=", "tank.png")
	require.NoError(t, err)

	assert.Equal(t, "https://ik.example.com/catalog/tank.png", result.Url)
	assert.Equal(t, "f123", result.FileId)
	assert.Equal(t, "tank.png", result.Name)
	assert.Equal(t, "tank.png", gotFileName)

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("private_key:"))
	assert.Equal(t, wantAuth, gotAuth)
}

func TestUploadApiErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"Your account cannot be authenticated"}`))
	}))
	defer srv.Close()

	c := &Client{UploadURL: srv.URL, PrivateKey: "bad_key"}
	_, err := c.Upload("aGVsbG8=", "tank.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Your account cannot be authenticated")
}

func TestUploadRejectsResponseWithoutUrl(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := &Client{UploadURL: srv.URL, PrivateKey: "private_key"}
	_, err := c.Upload("aGVsbG8=", "tank.png")
	assert.Error(t, err)
}
