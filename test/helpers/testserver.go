package helpers

import (
	"bytes"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"os"
	"strings"
	"testing"

	"guestbook_backend/database"
	"guestbook_backend/internal/app"
	"guestbook_backend/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestServer boots the full router against a real postgres database.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
}

// NewTestServer connects to the database named by DATABASE_URL, migrates the
// schema and starts an httptest server over the production router. Tests that
// need it call t.Skip when DATABASE_URL is unset, so the suite stays runnable
// without postgres.
func NewTestServer(t *testing.T) *TestServer {
	config.LoadConfig()
	cfg := config.GetConfig()
	dsn := cfg.Database.DSN

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("could not connect to test database (%s): %v", dsn, err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("could not migrate the test database: %v", err)
	}

	router := app.SetupRouter(cfg, db)
	server := httptest.NewServer(router)

	log.Printf("test server up, database %s ready", dsn)

	return &TestServer{
		Server: server,
		DB:     db,
	}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
}

// ClearTables resets both tables and their id sequences between tests.
func (ts *TestServer) ClearTables(t *testing.T) {
	err := ts.DB.Exec("TRUNCATE TABLE messages, images RESTART IDENTITY CASCADE").Error
	if err != nil {
		t.Fatalf("could not clear tables: %v", err)
	}
}

// ClearUploads empties the configured uploads directory.
func (ts *TestServer) ClearUploads(t *testing.T) {
	dir := config.GetConfig().Storage.BasePath
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		t.Fatalf("could not read uploads dir: %v", err)
	}
	for _, entry := range entries {
		if err := os.Remove(dir + "/" + entry.Name()); err != nil {
			t.Fatalf("could not remove %s: %v", entry.Name(), err)
		}
	}
}

// SendForm posts url-encoded form data, the wire format of the public board.
func (ts *TestServer) SendForm(t *testing.T, method, path string, form url.Values) (*http.Response, string) {
	req, err := http.NewRequest(method, ts.Server.URL+path, strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("could not build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ts.do(t, req)
}

// SendRequest issues a bodyless request (GET, DELETE).
func (ts *TestServer) SendRequest(t *testing.T, method, path string) (*http.Response, string) {
	req, err := http.NewRequest(method, ts.Server.URL+path, nil)
	if err != nil {
		t.Fatalf("could not build request: %v", err)
	}
	return ts.do(t, req)
}

// SendUpload posts a multipart body whose "file" part carries the given
// declared content type and payload.
func (ts *TestServer) SendUpload(t *testing.T, path, contentType string, payload []byte) (*http.Response, string) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="upload.bin"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("could not create multipart part: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("could not write multipart payload: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("could not finish multipart body: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+path, body)
	if err != nil {
		t.Fatalf("could not build upload request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return ts.do(t, req)
}

func (ts *TestServer) do(t *testing.T, req *http.Request) (*http.Response, string) {
	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("could not read response body: %v", err)
	}
	return res, string(resBody)
}
