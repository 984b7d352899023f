package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"docchat/internal/session"
)

func newTestStore(t *testing.T, sess *session.Session) *session.Store {
	t.Helper()
	store := session.NewStore(session.NewMemoryBackend())
	if sess != nil {
		if err := store.Save(*sess); err != nil {
			t.Fatalf("seed session: %v", err)
		}
	}
	return store
}

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("login must not send a bearer token")
		}
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode login request: %v", err)
		}
		if req.Username != "admin" || req.Password != "admin" {
			t.Errorf("unexpected credentials: %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1", "role": "admin"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, newTestStore(t, nil))
	sess, err := c.Login(context.Background(), "admin", "admin")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.Token != "tok-1" || sess.Role != session.RoleAdmin {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestLoginFailureSurfacesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, newTestStore(t, nil))
	_, err := c.Login(context.Background(), "nope", "nope")
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Error() != "Invalid credentials" {
		t.Fatalf("expected backend detail verbatim, got %q", err.Error())
	}
}

func TestLoginFailureWithoutDetailFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, newTestStore(t, nil))
	_, err := c.Login(context.Background(), "a", "b")
	if err == nil || err.Error() != "Login failed" {
		t.Fatalf("expected generic fallback, got %v", err)
	}
}

func TestAskAttachesBearerAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-9" {
			t.Errorf("bearer header = %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode chat request: %v", err)
		}
		if req.Question != "What is the vacation policy?" {
			t.Errorf("question = %q", req.Question)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"answer": "You get 15 days.",
			"citations": []map[string]any{
				{"source": "hr.docx", "chunk": 2, "preview": "...vacation..."},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, newTestStore(t, &session.Session{Token: "tok-9", Role: session.RoleUser}))
	resp, err := c.Ask(context.Background(), "What is the vacation policy?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if resp.Answer != "You get 15 days." {
		t.Fatalf("answer = %q", resp.Answer)
	}
	if len(resp.Citations) != 1 {
		t.Fatalf("expected exactly one citation, got %d", len(resp.Citations))
	}
	cit := resp.Citations[0]
	if cit.Source != "hr.docx" || cit.Chunk == nil || *cit.Chunk != 2 {
		t.Fatalf("unexpected citation: %+v", cit)
	}
	if !cit.Previewable() {
		t.Fatalf("citation with source and chunk should be previewable")
	}
}

func TestAskWithoutSessionIssuesNoRequest(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, newTestStore(t, nil))
	_, err := c.Ask(context.Background(), "anything")
	if !IsAuthRequired(err) {
		t.Fatalf("expected auth-required error, got %v", err)
	}
	if n := calls.Load(); n != 0 {
		t.Fatalf("expected zero network calls, got %d", n)
	}
}

func TestAskRejectedSurfacesDetailExactly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"detail":"rate limited"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, newTestStore(t, &session.Session{Token: "tok", Role: session.RoleUser}))
	_, err := c.Ask(context.Background(), "q")
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Error() != "rate limited" {
		t.Fatalf("expected exact detail string, got %q", err.Error())
	}
	var clientErr *ClientError
	if !errors.As(err, &clientErr) || clientErr.Kind != KindRejected {
		t.Fatalf("expected KindRejected, got %v", err)
	}
}

func TestAskUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL, newTestStore(t, &session.Session{Token: "tok", Role: session.RoleUser}))
	_, err := c.Ask(context.Background(), "q")
	var clientErr *ClientError
	if !errors.As(err, &clientErr) || clientErr.Kind != KindUnreachable {
		t.Fatalf("expected KindUnreachable, got %v", err)
	}
}

func TestPreviewChunkQueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/view" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("source"); got != "hr file.docx" {
			t.Errorf("source = %q", got)
		}
		if got := r.URL.Query().Get("chunk"); got != "2" {
			t.Errorf("chunk = %q", got)
		}
		w.Write([]byte("<html><body><mark>vacation</mark></body></html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, newTestStore(t, &session.Session{Token: "tok", Role: session.RoleUser}))
	html, err := c.PreviewChunk(context.Background(), "hr file.docx", 2)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if html != "<html><body><mark>vacation</mark></body></html>" {
		t.Fatalf("fragment altered: %q", html)
	}
}

func TestUploadDocumentsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ingest/upload" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		files := r.MultipartForm.File["files"]
		if len(files) != 2 {
			t.Errorf("expected 2 files under field 'files', got %d", len(files))
		}
		json.NewEncoder(w).Encode(map[string][]string{"saved": {"a.docx", "b.csv"}})
	}))
	defer srv.Close()

	dir := t.TempDir()
	paths := []string{filepath.Join(dir, "a.docx"), filepath.Join(dir, "b.csv")}
	for _, p := range paths {
		if err := os.WriteFile(p, []byte("content"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	c := NewClient(srv.URL, newTestStore(t, &session.Session{Token: "tok", Role: session.RoleAdmin}))
	saved, err := c.UploadDocuments(context.Background(), paths)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if len(saved) != 2 || saved[0] != "a.docx" || saved[1] != "b.csv" {
		t.Fatalf("unexpected saved list: %v", saved)
	}
}

func TestUploadDocumentsZeroFilesIssuesNoRequest(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, newTestStore(t, &session.Session{Token: "tok", Role: session.RoleAdmin}))
	saved, err := c.UploadDocuments(context.Background(), nil)
	if err != nil || saved != nil {
		t.Fatalf("zero-file upload should be a silent no-op, got saved=%v err=%v", saved, err)
	}
	if n := calls.Load(); n != 0 {
		t.Fatalf("expected zero network calls, got %d", n)
	}
}

func TestUploadFailureIsGeneric(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Admin only"})
	}))
	defer srv.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.docx")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	c := NewClient(srv.URL, newTestStore(t, &session.Session{Token: "tok", Role: session.RoleUser}))
	_, err := c.UploadDocuments(context.Background(), []string{path})
	if err == nil || err.Error() != "Upload failed" {
		t.Fatalf("expected generic upload failure, got %v", err)
	}
}

func TestBuildIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/ingest/build" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("bearer header = %q", got)
		}
		w.Write([]byte(`{"indexed": true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, newTestStore(t, &session.Session{Token: "tok", Role: session.RoleAdmin}))
	if err := c.BuildIndex(context.Background()); err != nil {
		t.Fatalf("build index: %v", err)
	}
}

func TestBuildIndexFailureIsGeneric(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, newTestStore(t, &session.Session{Token: "tok", Role: session.RoleAdmin}))
	err := c.BuildIndex(context.Background())
	if err == nil || err.Error() != "Index build failed" {
		t.Fatalf("expected generic build failure, got %v", err)
	}
}

func TestExportSummaryReturnsBytes(t *testing.T) {
	blob := []byte{0x50, 0x4b, 0x03, 0x04, 0x00} // docx files are zip containers
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/export/summary.docx" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write(blob)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, newTestStore(t, &session.Session{Token: "tok", Role: session.RoleUser}))
	got, err := c.ExportSummary(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if string(got) != string(blob) {
		t.Fatalf("blob altered in transit")
	}
}

func TestCitationDisplayPageFallsBackToChunk(t *testing.T) {
	chunk := 3
	c := Citation{Source: "a.docx", Chunk: &chunk}
	page, ok := c.DisplayPage()
	if !ok || page != 3 {
		t.Fatalf("expected fallback to chunk index, got %d ok=%v", page, ok)
	}

	p := 7
	c.Page = &p
	page, ok = c.DisplayPage()
	if !ok || page != 7 {
		t.Fatalf("expected explicit page, got %d ok=%v", page, ok)
	}
}

func TestCitationWithoutChunkNotPreviewable(t *testing.T) {
	c := Citation{Source: "a.docx"}
	if c.Previewable() {
		t.Fatalf("citation without chunk must not be previewable")
	}
}
