// Package httpapi はマッチングパイプラインを呼び出す薄いHTTP層です
// 入力のフォーマット検証とエラーコードからHTTPステータスへの対応付け
// だけを担い、マッチングのロジックは持たない
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/jinford/cv-matcher/internal/core/matching"
)

const (
	// DefaultMaxUploadBytes はアップロードサイズのデフォルト上限（10MiB）
	DefaultMaxUploadBytes = 10 << 20

	shutdownTimeout = 10 * time.Second
)

// safeFilename はアップロードファイル名として許可するパターン
// 拡張子はpdfのみ
var safeFilename = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ._-]*\.[Pp][Dd][Ff]$`)

// Matcher はマッチングパイプラインの呼び出し口
type Matcher interface {
	Match(ctx context.Context, doc matching.Document, category string) (*matching.MatchResult, error)
}

// Archiver はアップロード文書の保存口
type Archiver interface {
	Archive(ctx context.Context, doc matching.Document) (string, error)
}

// Server はHTTP APIサーバ
type Server struct {
	matcher        Matcher
	archiver       Archiver
	log            *slog.Logger
	maxUploadBytes int64
}

// NewServer は新しい Server を作成します
func NewServer(matcher Matcher, archiver Archiver, log *slog.Logger, maxUploadBytes int64) *Server {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Server{
		matcher:        matcher,
		archiver:       archiver,
		log:            log,
		maxUploadBytes: maxUploadBytes,
	}
}

// Handler はルーティング済みのハンドラを返します
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// Run はHTTPサーバを起動し、ctxのキャンセルでグレースフルに停止します
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.log.Info("HTTP server started", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// uploadResponse は /upload の成功レスポンス
// record_id はスコア算出に成功して書き込みだけが失敗した場合にのみ null
type uploadResponse struct {
	SimilarityScore float64  `json:"similarity_score"`
	ResumeTerms     []string `json:"resume_terms"`
	JobDescTerms    []string `json:"job_desc_terms"`
	RecordID        *int64   `json:"record_id"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, matching.CodeValidation, "invalid multipart request")
		return
	}

	category := r.FormValue("category")
	if category == "" {
		s.writeError(w, http.StatusBadRequest, matching.CodeValidation, "category is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, matching.CodeValidation, "file is required")
		return
	}
	defer file.Close()

	if !safeFilename.MatchString(header.Filename) {
		s.writeError(w, http.StatusBadRequest, matching.CodeValidation,
			fmt.Sprintf("filename must be a safe pdf name: %s", header.Filename))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, matching.CodeValidation, "failed to read uploaded file")
		return
	}

	doc := matching.Document{
		Name:      header.Filename,
		MediaType: "application/pdf",
		Data:      data,
	}

	// アーカイブ失敗はマッチング自体を妨げない
	if s.archiver != nil {
		if _, err := s.archiver.Archive(r.Context(), doc); err != nil {
			s.log.Warn("failed to archive uploaded document", "filename", doc.Name, "error", err)
		}
	}

	result, err := s.matcher.Match(r.Context(), doc, category)
	if err != nil {
		s.writeMatchError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, uploadResponse{
		SimilarityScore: result.Score,
		ResumeTerms:     result.SubjectTerms,
		JobDescTerms:    result.ReferenceTerms,
		RecordID:        result.RecordID,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeMatchError はパイプラインのエラーコードをHTTPステータスに対応付けます
func (s *Server) writeMatchError(w http.ResponseWriter, err error) {
	code := matching.ErrorCode(err)

	status := http.StatusInternalServerError
	switch code {
	case matching.CodeValidation:
		status = http.StatusBadRequest
	case matching.CodeNotFound:
		status = http.StatusNotFound
	case matching.CodeExternalCapability:
		status = http.StatusBadGateway
	case matching.CodeStore:
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		s.log.Error("match request failed", "code", code, "error", err)
	}

	s.writeError(w, status, code, err.Error())
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("failed to encode response", "error", err)
	}
}
