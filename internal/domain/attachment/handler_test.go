package attachment

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func multipartUpload(t *testing.T, fields map[string]string, files map[string]string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	for name, body := range files {
		fw, err := w.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := io.Copy(fw, strings.NewReader(body)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/attachments", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req, httptest.NewRecorder()
}

func TestHandlerUpload(t *testing.T) {
	store := NewFSStore(t.TempDir())
	h := NewHandler(store)
	e := echo.New()

	req, rec := multipartUpload(t,
		map[string]string{"full_name": "Ana Gomez", "visit_date": "2024-03-10"},
		map[string]string{"estudio.pdf": "pdf bytes"},
	)
	if err := h.Upload(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		Folder string   `json:"folder"`
		Files  []string `json:"files"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Folder != "2024-03-11Ana Gomez" {
		t.Errorf("unexpected folder %q", resp.Folder)
	}

	names, err := store.List("2024-03-11Ana Gomez")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 1 || names[0] != "estudio.pdf" {
		t.Errorf("unexpected stored files %v", names)
	}
}

func TestHandlerUpload_MissingFields(t *testing.T) {
	h := NewHandler(NewFSStore(t.TempDir()))
	e := echo.New()

	req, rec := multipartUpload(t,
		map[string]string{"full_name": "Ana Gomez"},
		map[string]string{"estudio.pdf": "x"},
	)
	err := h.Upload(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandlerUpload_NoFiles(t *testing.T) {
	h := NewHandler(NewFSStore(t.TempDir()))
	e := echo.New()

	req, rec := multipartUpload(t,
		map[string]string{"full_name": "Ana Gomez", "visit_date": "2024-03-10"},
		nil,
	)
	err := h.Upload(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandlerList_NotFound(t *testing.T) {
	h := NewHandler(NewFSStore(t.TempDir()))
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet,
		"/attachments?full_name=Nadie&visit_date=2024-03-10", nil)
	rec := httptest.NewRecorder()
	err := h.List(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandlerDownload(t *testing.T) {
	store := NewFSStore(t.TempDir())
	h := NewHandler(store)
	e := echo.New()

	key := FolderKey("Ana Gomez", day("2024-03-10"))
	if err := store.Save(key, asFiles(map[string]string{"estudio.pdf": "pdf bytes"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet,
		"/?full_name=Ana+Gomez&visit_date=2024-03-10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/attachments/:name")
	c.SetParamNames("name")
	c.SetParamValues("estudio.pdf")

	if err := h.Download(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "pdf bytes" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "estudio.pdf") {
		t.Errorf("expected content disposition with the file name, got %q", cd)
	}
}

func TestHandlerDownload_Missing(t *testing.T) {
	store := NewFSStore(t.TempDir())
	h := NewHandler(store)
	e := echo.New()

	key := FolderKey("Ana Gomez", day("2024-03-10"))
	if err := store.Save(key, asFiles(map[string]string{"estudio.pdf": "x"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet,
		"/?full_name=Ana+Gomez&visit_date=2024-03-10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/attachments/:name")
	c.SetParamNames("name")
	c.SetParamValues("otro.pdf")

	err := h.Download(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}
