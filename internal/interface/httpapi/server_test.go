package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jinford/cv-matcher/internal/core/matching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockMatcher はテスト用のMatcherです
type mockMatcher struct {
	MatchFunc func(ctx context.Context, doc matching.Document, category string) (*matching.MatchResult, error)
}

func (m *mockMatcher) Match(ctx context.Context, doc matching.Document, category string) (*matching.MatchResult, error) {
	if m.MatchFunc != nil {
		return m.MatchFunc(ctx, doc, category)
	}
	return &matching.MatchResult{}, nil
}

// mockArchiver はテスト用のArchiverです
type mockArchiver struct {
	ArchiveFunc func(ctx context.Context, doc matching.Document) (string, error)
	calls       int
}

func (m *mockArchiver) Archive(ctx context.Context, doc matching.Document) (string, error) {
	m.calls++
	if m.ArchiveFunc != nil {
		return m.ArchiveFunc(ctx, doc)
	}
	return "/uploads/archived.pdf", nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// multipartBody は file と category を持つmultipartリクエストボディを組み立てる
func multipartBody(t *testing.T, filename, category string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	if category != "" {
		require.NoError(t, writer.WriteField("category", category))
	}
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestHandleUpload_Success(t *testing.T) {
	recordID := int64(7)
	matcher := &mockMatcher{
		MatchFunc: func(ctx context.Context, doc matching.Document, category string) (*matching.MatchResult, error) {
			assert.Equal(t, "resume.pdf", doc.Name)
			assert.Equal(t, "data_scientist", category)
			return &matching.MatchResult{
				Score:          0.73,
				SubjectTerms:   []string{"python", "sql"},
				ReferenceTerms: []string{"statistics"},
				RecordID:       &recordID,
			}, nil
		},
	}
	archiver := &mockArchiver{}
	server := NewServer(matcher, archiver, testLogger(), 0)

	body, contentType := multipartBody(t, "resume.pdf", "data_scientist", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp uploadResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.InDelta(t, 0.73, resp.SimilarityScore, 1e-9)
	assert.Equal(t, []string{"python", "sql"}, resp.ResumeTerms)
	assert.Equal(t, []string{"statistics"}, resp.JobDescTerms)
	require.NotNil(t, resp.RecordID)
	assert.Equal(t, int64(7), *resp.RecordID)
	assert.Equal(t, 1, archiver.calls)
}

func TestHandleUpload_DegradedPersistence(t *testing.T) {
	matcher := &mockMatcher{
		MatchFunc: func(ctx context.Context, doc matching.Document, category string) (*matching.MatchResult, error) {
			return &matching.MatchResult{
				Score:          0.4,
				SubjectTerms:   []string{"go"},
				ReferenceTerms: []string{"go"},
				Degraded:       true,
			}, nil
		},
	}
	server := NewServer(matcher, &mockArchiver{}, testLogger(), 0)

	body, contentType := multipartBody(t, "resume.pdf", "data_scientist", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, req)

	// 劣化応答: スコアは返るが record_id は null
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"record_id":null`)
	assert.Contains(t, rec.Body.String(), `"similarity_score":0.4`)
}

func TestHandleUpload_InvalidFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{name: "wrong extension", filename: "resume.docx"},
		{name: "path traversal", filename: "../etc/passwd.pdf"},
		{name: "no extension", filename: "resume"},
		{name: "leading dot", filename: ".hidden.pdf"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			matched := false
			matcher := &mockMatcher{
				MatchFunc: func(ctx context.Context, doc matching.Document, category string) (*matching.MatchResult, error) {
					matched = true
					return &matching.MatchResult{}, nil
				},
			}
			server := NewServer(matcher, nil, testLogger(), 0)

			body, contentType := multipartBody(t, tc.filename, "data_scientist", []byte("%PDF-1.4"))
			req := httptest.NewRequest(http.MethodPost, "/upload", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			server.Handler().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), matching.CodeValidation)
			assert.False(t, matched, "pipeline must not run for invalid filenames")
		})
	}
}

func TestHandleUpload_MissingParts(t *testing.T) {
	server := NewServer(&mockMatcher{}, nil, testLogger(), 0)

	t.Run("missing category", func(t *testing.T) {
		body, contentType := multipartBody(t, "resume.pdf", "", []byte("%PDF-1.4"))
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		server.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		body, contentType := multipartBody(t, "", "data_scientist", nil)
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		server.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleUpload_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "unknown category",
			err:        fmt.Errorf("%w: astronaut", matching.ErrCategoryNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   matching.CodeNotFound,
		},
		{
			name:       "unparseable document",
			err:        fmt.Errorf("subject document: %w", matching.ErrUnreadableDocument),
			wantStatus: http.StatusBadRequest,
			wantCode:   matching.CodeValidation,
		},
		{
			name:       "embedding backend down",
			err:        fmt.Errorf("%w: timeout", matching.ErrEmbeddingUnavailable),
			wantStatus: http.StatusBadGateway,
			wantCode:   matching.CodeExternalCapability,
		},
		{
			name:       "category store unreachable",
			err:        fmt.Errorf("%w: dial tcp", matching.ErrStoreUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   matching.CodeStore,
		},
		{
			name:       "unexpected",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   matching.CodeInternal,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			matcher := &mockMatcher{
				MatchFunc: func(ctx context.Context, doc matching.Document, category string) (*matching.MatchResult, error) {
					return nil, tc.err
				},
			}
			server := NewServer(matcher, nil, testLogger(), 0)

			body, contentType := multipartBody(t, "resume.pdf", "data_scientist", []byte("%PDF-1.4"))
			req := httptest.NewRequest(http.MethodPost, "/upload", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			server.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.wantCode)
		})
	}
}

func TestHandleHealth(t *testing.T) {
	server := NewServer(&mockMatcher{}, nil, testLogger(), 0)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
