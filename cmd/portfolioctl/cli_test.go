package main

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func relay(t *testing.T, status int, body string) (*httptest.Server, *[]map[string]string) {
	t.Helper()
	var got []map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/send", r.URL.Path)
		var p map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		got = append(got, p)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestContactSend(t *testing.T) {
	t.Run("Should send the draft and clear it", func(t *testing.T) {
		srv, got := relay(t, http.StatusOK, `{"id":"msg_1"}`)
		storage := filepath.Join(t.TempDir(), "state.json")

		out, err := run(t, "contact", "send", "--storage", storage, "--base-url", srv.URL,
			"--name", "Jane", "--email", "jane@example.com", "--message", "Hello there, nice work!")
		require.NoError(t, err)

		assert.Contains(t, out, "[success] Thank you! Your message has been sent.")
		assert.Contains(t, out, "id: msg_1")
		require.Len(t, *got, 1)
		assert.Equal(t, "Jane", (*got)[0]["name"])

		out, err = run(t, "contact", "draft", "show", "--storage", storage)
		require.NoError(t, err)
		assert.Contains(t, out, "name:    \n")
	})

	t.Run("Should print localized field errors and not call the relay", func(t *testing.T) {
		srv, got := relay(t, http.StatusOK, `{"id":"unused"}`)
		storage := filepath.Join(t.TempDir(), "state.json")

		out, err := run(t, "contact", "send", "--storage", storage, "--base-url", srv.URL,
			"--locale", "en", "--name", "J", "--email", "nope", "--message", "short")
		require.Error(t, err)
		assert.Contains(t, out, "email: Please enter a valid email address")
		assert.Contains(t, out, "name: Name must be at least 2 characters")
		assert.Empty(t, *got)
	})

	t.Run("Should keep the draft when the relay fails", func(t *testing.T) {
		srv, _ := relay(t, http.StatusInternalServerError, `{"success":false,"error":"Failed to send email"}`)
		storage := filepath.Join(t.TempDir(), "state.json")

		out, err := run(t, "contact", "send", "--storage", storage, "--base-url", srv.URL,
			"--name", "Jane", "--email", "jane@example.com", "--message", "Hello there, nice work!")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "provider")
		assert.Contains(t, out, "[error]")

		out, err = run(t, "contact", "draft", "show", "--storage", storage)
		require.NoError(t, err)
		assert.Contains(t, out, "email:   jane@example.com")
	})

	t.Run("Should reject an unknown locale", func(t *testing.T) {
		_, err := run(t, "contact", "send", "--storage", filepath.Join(t.TempDir(), "s.json"), "--locale", "de")
		assert.Error(t, err)
	})
}

func TestContactDraftClear(t *testing.T) {
	storage := filepath.Join(t.TempDir(), "state.json")
	srv, _ := relay(t, http.StatusInternalServerError, `{}`)
	_, _ = run(t, "contact", "send", "--storage", storage, "--base-url", srv.URL,
		"--name", "Jane", "--email", "jane@example.com", "--message", "Hello there, nice work!")

	out, err := run(t, "contact", "draft", "clear", "--storage", storage)
	require.NoError(t, err)
	assert.Contains(t, out, "draft cleared")

	out, err = run(t, "contact", "draft", "show", "--storage", storage)
	require.NoError(t, err)
	assert.Contains(t, out, "email:   \n")
}

func TestMessagesCheck(t *testing.T) {
	t.Run("Should pass on the shipped messages", func(t *testing.T) {
		out, err := run(t, "messages", "check")
		require.NoError(t, err)
		assert.Contains(t, out, "all message files are complete")
	})

	t.Run("Should fail when a namespace is missing", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"en.json", "cs.json", "sk.json"} {
			data, err := os.ReadFile(filepath.Join("..", "..", "messages", name))
			require.NoError(t, err)
			if name == "sk.json" {
				var doc map[string]json.RawMessage
				require.NoError(t, json.Unmarshal(data, &doc))
				delete(doc, "Footer")
				data, err = json.Marshal(doc)
				require.NoError(t, err)
			}
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
		}

		out, err := run(t, "messages", "check", "--dir", dir)
		require.Error(t, err)
		assert.Contains(t, out, "sk: missing namespace Footer")
	})
}

func TestImagesOptimize(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 20))))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hero.png"), buf.Bytes(), 0o644))

	out, err := run(t, "images", "optimize", "--dir", dir, "--max-dimension", "10", "--workers", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "1 image(s)")
	assert.FileExists(t, filepath.Join(dir, "optimized", "hero.jpg"))
}

func TestPageRender(t *testing.T) {
	t.Run("Should animate only the first page of the session and prefill the draft", func(t *testing.T) {
		storage := filepath.Join(t.TempDir(), "state.json")
		srv, _ := relay(t, http.StatusInternalServerError, `{}`)
		_, _ = run(t, "contact", "send", "--storage", storage, "--base-url", srv.URL,
			"--name", "Jane", "--email", "jane@example.com", "--message", "Hello there, nice work!")

		dir := t.TempDir()
		out, err := run(t, "page", "render", "--storage", storage, "--out", dir, "--locale", "cs,en")
		require.NoError(t, err)
		assert.Contains(t, out, "cs.html (hero animated: true)")
		assert.Contains(t, out, "en.html (hero animated: false)")

		cs, err := os.ReadFile(filepath.Join(dir, "cs.html"))
		require.NoError(t, err)
		assert.Contains(t, string(cs), "hero--animate")
		assert.Contains(t, string(cs), `value="jane@example.com"`)

		en, err := os.ReadFile(filepath.Join(dir, "en.html"))
		require.NoError(t, err)
		assert.NotContains(t, string(en), "hero--animate")
		assert.Contains(t, string(en), `value="Jane"`)
	})

	t.Run("Should reject an unknown locale", func(t *testing.T) {
		_, err := run(t, "page", "render", "--storage", filepath.Join(t.TempDir(), "s.json"),
			"--out", t.TempDir(), "--locale", "de")
		assert.Error(t, err)
	})
}
