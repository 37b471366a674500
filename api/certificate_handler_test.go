package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/skillwave-academy/content-service/models"
)

func generateCertificate(t *testing.T, env *testEnv, token string, req models.GenerateCertificateRequest) models.Certificate {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/generate-certificate", token, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[certificateResponse](t, rec)
	require.True(t, resp.Success)
	require.NotNil(t, resp.Certificate)
	return *resp.Certificate
}

func TestGenerateCertificate(t *testing.T) {
	env := newTestEnv(t)

	certificate := generateCertificate(t, env, studentToken, models.GenerateCertificateRequest{
		CourseID:       "course-marathon",
		CourseName:     "Marathon Prep",
		CompletionDate: "2026-08-01T00:00:00Z",
	})

	assert.Equal(t, studentIdentity.ID, certificate.UserID)
	// no profile name on the student identity, so the email local part is used
	assert.Equal(t, "runner", certificate.StudentName)
	assert.Equal(t, "2026-08-01T00:00:00Z", certificate.CompletionDate)
	assert.True(t, strings.HasPrefix(certificate.CertificateNumber, "SW-course-marathon-"))
}

func TestGenerateCertificateDefaultsCompletionDate(t *testing.T) {
	env := newTestEnv(t)

	certificate := generateCertificate(t, env, studentToken, models.GenerateCertificateRequest{
		CourseID:   "course-5k",
		CourseName: "Couch to 5K",
	})
	assert.NotEmpty(t, certificate.CompletionDate)
}

func TestGenerateCertificateMissingFields(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/generate-certificate", studentToken, models.GenerateCertificateRequest{
		CourseID: "course-5k",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateCertificateRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/generate-certificate", "", models.GenerateCertificateRequest{
		CourseID:   "course-5k",
		CourseName: "Couch to 5K",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Issuing twice for the same course yields two distinct certificates; there
// is deliberately no dedup on (user, course).
func TestGenerateCertificateTwiceYieldsTwo(t *testing.T) {
	env := newTestEnv(t)

	req := models.GenerateCertificateRequest{
		CourseID:   "course-relay",
		CourseName: "Relay Tactics",
	}
	first := generateCertificate(t, env, studentToken, req)
	second := generateCertificate(t, env, studentToken, req)
	assert.NotEqual(t, first.ID, second.ID)

	rec := env.do(t, http.MethodGet, "/certificates", studentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	listed := decodeBody[certificateListResponse](t, rec)
	require.Equal(t, 2, listed.Total)

	ids := []string{listed.Certificates[0].ID, listed.Certificates[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
}

func TestGetCertificatesOnlyReturnsCallers(t *testing.T) {
	env := newTestEnv(t)

	mine := generateCertificate(t, env, studentToken, models.GenerateCertificateRequest{
		CourseID:   "course-5k",
		CourseName: "Couch to 5K",
	})
	generateCertificate(t, env, instructorToken, models.GenerateCertificateRequest{
		CourseID:   "course-coaching",
		CourseName: "Coaching Basics",
	})

	rec := env.do(t, http.MethodGet, "/certificates", studentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	listed := decodeBody[certificateListResponse](t, rec)
	require.Equal(t, 1, listed.Total)
	assert.Equal(t, mine.ID, listed.Certificates[0].ID)
}

func TestGetCertificatesNewestFirst(t *testing.T) {
	env := newTestEnv(t)

	first := generateCertificate(t, env, studentToken, models.GenerateCertificateRequest{
		CourseID:   "course-a",
		CourseName: "A",
	})
	second := generateCertificate(t, env, studentToken, models.GenerateCertificateRequest{
		CourseID:   "course-b",
		CourseName: "B",
	})

	rec := env.do(t, http.MethodGet, "/certificates", studentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	listed := decodeBody[certificateListResponse](t, rec)
	require.Equal(t, 2, listed.Total)
	assert.Equal(t, second.ID, listed.Certificates[0].ID)
	assert.Equal(t, first.ID, listed.Certificates[1].ID)
}
