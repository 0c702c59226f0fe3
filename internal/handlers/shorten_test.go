package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func postShorten(r http.Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/shorten", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Host = "localhost:3000"
	r.ServeHTTP(w, req)
	return w
}

func TestShortenURL(t *testing.T) {
	h, _ := setupTestHandler(t)
	r := setupTestRouter(h)

	t.Run("Success", func(t *testing.T) {
		w := postShorten(r, `{"originalUrl": "https://example.com/page"}`)
		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "https://example.com/page", resp["originalUrl"])

		code := resp["shortCode"].(string)
		assert.Len(t, code, 6)
		shortURL := resp["shortUrl"].(string)
		assert.Equal(t, "http://localhost:3000/"+code, shortURL)
		assert.True(t, strings.HasSuffix(shortURL, code))
		assert.NotEmpty(t, resp["createdAt"])
	})

	t.Run("Missing URL", func(t *testing.T) {
		w := postShorten(r, `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "URL is required")
	})

	t.Run("Malformed Body", func(t *testing.T) {
		w := postShorten(r, `{not json`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid URL", func(t *testing.T) {
		w := postShorten(r, `{"originalUrl": "not-a-url"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid URL format")
	})

	t.Run("Forwarded Proto", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/shorten", bytes.NewBufferString(`{"originalUrl": "https://example.com/tls"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-Proto", "https")
		req.Host = "short.example"
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, strings.HasPrefix(resp["shortUrl"].(string), "https://short.example/"))
	})
}
