package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/skillwave-academy/content-service/auth"
	"github.com/skillwave-academy/content-service/indexes"
	"github.com/skillwave-academy/content-service/kv"
	"github.com/skillwave-academy/content-service/storage"
)

const (
	instructorToken = "instructor-token"
	studentToken    = "student-token"
)

var (
	instructorIdentity = auth.Identity{
		ID:     "user-instructor",
		Email:  "coach@skillwave.test",
		Name:   "Coach Amina",
		Avatar: "https://cdn.skillwave.test/avatars/amina.png",
	}
	studentIdentity = auth.Identity{
		ID:    "user-student",
		Email: "runner@skillwave.test",
	}
)

type testEnv struct {
	router  *chi.Mux
	store   *kv.MemoryStore
	gateway *storage.MemoryGateway
	buckets storage.Buckets
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := kv.NewMemoryStore()
	buckets := storage.DeclareBuckets("test")
	gateway := storage.NewMemoryGateway(buckets)

	verifier := auth.NewStaticVerifier()
	verifier.Register(instructorToken, instructorIdentity)
	verifier.Register(studentToken, studentIdentity)

	deps := Dependencies{
		Store:    store,
		Indexes:  indexes.NewManager(store),
		Gateway:  gateway,
		Buckets:  storage.BucketsFor("test"),
		Verifier: verifier,
	}

	return &testEnv{
		router:  newRouter(deps),
		store:   store,
		gateway: gateway,
		buckets: storage.BucketsFor("test"),
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// upload posts a multipart material upload. Empty field values are omitted
// so missing-field handling can be exercised.
func (e *testEnv) upload(t *testing.T, token string, fields map[string]string, fileName, contentType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if fileName != "" {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}

	for key, value := range fields {
		if value != "" {
			require.NoError(t, writer.WriteField(key, value))
		}
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload-material", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}
