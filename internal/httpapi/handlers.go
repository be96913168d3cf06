package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/anomalydash/internal/backend"
	"github.com/hamed0406/anomalydash/internal/domain"
	"github.com/hamed0406/anomalydash/internal/export"
	"github.com/hamed0406/anomalydash/internal/view"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	backendStatus := "ok"
	if err := s.Backend.Ping(ctx); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
		backendStatus = err.Error()
	}
	writeJSON(w, code, map[string]string{"status": status, "backend": backendStatus})
}

var sortKeys = map[string]bool{
	view.KeyID:         true,
	view.KeyTimestamp:  true,
	view.KeyValue:      true,
	view.KeyIsAnomaly:  true,
	view.KeyConfidence: true,
}

type recordsResponse struct {
	Data        []domain.Record `json:"data"`
	Page        int             `json:"page"`
	PageSize    int             `json:"pageSize"`
	TotalPages  int             `json:"totalPages"`
	Total       int             `json:"total"`
	Anomalies   int             `json:"anomalies"`
	Normals     int             `json:"normals"`
	Sort        view.SortState  `json:"sort"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	key := q.Get("sort")
	if key != "" && !sortKeys[key] {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown sort key: %s", key))
		return
	}
	dir := view.Asc
	if d := q.Get("dir"); d == string(view.Desc) {
		dir = view.Desc
	} else if d != "" && d != string(view.Asc) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown sort direction: %s", d))
		return
	}
	page := 1
	if p := q.Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			writeError(w, http.StatusBadRequest, "page must be a number")
			return
		}
		page = n
	}

	records := s.Store.Records()
	sorted := view.Sort(records, key, dir)
	pageData := view.Paginate(sorted, view.PageSize, page)
	if pageData == nil {
		pageData = []domain.Record{}
	}
	anomalies, normals := view.Counts(records)

	totalPages := view.TotalPages(len(records), view.PageSize)
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	writeJSON(w, http.StatusOK, recordsResponse{
		Data:        pageData,
		Page:        page,
		PageSize:    view.PageSize,
		TotalPages:  totalPages,
		Total:       len(records),
		Anomalies:   anomalies,
		Normals:     normals,
		Sort:        view.SortState{Key: key, Direction: dir},
		LastUpdated: s.Store.LastUpdated(),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	stats := s.Store.Statistics()
	if stats == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"error":   "statistics not fetched yet",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": stats})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = export.FormatCSV
	}

	f, err := export.Export(s.Store.Records(), format, s.ExportBase, s.Now())
	switch {
	case errors.Is(err, export.ErrNoData):
		writeError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, export.ErrUnsupportedFormat):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.Logger.Error("export_failed", zap.String("format", format), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.Logger.Info("export",
		zap.String("format", format),
		zap.String("filename", f.Name),
		zap.Int("bytes", len(f.Data)),
	)

	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(f.Data)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.Refresher.RunOnce(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "refreshed",
		"total":       len(s.Store.Records()),
		"lastUpdated": s.Store.LastUpdated(),
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.MaxUploadBytes)

	file, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file part in the request")
		return
	}
	defer file.Close()

	msg, err := s.Backend.Upload(r.Context(), hdr.Filename, file)
	if errors.Is(err, backend.ErrUnsupportedFile) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.Logger.Warn("upload_failed", zap.String("filename", hdr.Filename), zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.Logger.Info("uploaded", zap.String("filename", hdr.Filename), zap.Int64("size", hdr.Size))

	// the upload kicks off a new detection run; pick up its results
	s.Refresher.RunOnce(r.Context())

	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func (s *Server) handleAutomation(w http.ResponseWriter, r *http.Request) {
	if err := s.Backend.TriggerAutomation(r.Context()); err != nil {
		s.Logger.Warn("automation_failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.Logger.Info("automation_triggered")
	s.Refresher.RunOnce(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"message": "automation run completed"})
}
