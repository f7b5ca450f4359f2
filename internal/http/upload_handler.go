package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Nikolino98/RioSegundoPizzeria/internal/media"
)

const maxUploadSize = 5 << 20 // 5MB

type UploadHandler struct {
	media *media.Service
	log   *slog.Logger
}

func NewUploadHandler(m *media.Service, log *slog.Logger) *UploadHandler {
	return &UploadHandler{media: m, log: log}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "no_file", "no file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		respondError(w, http.StatusBadRequest, "read_error", "failed to read file")
		return
	}

	url, err := h.media.Upload(r.Context(), header.Filename, data, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, media.ErrEmptyFile) {
			respondError(w, http.StatusBadRequest, "no_file", "no file provided")
			return
		}
		h.log.Error("image upload failed", "error", err)
		respondError(w, http.StatusBadGateway, "upload_failed", "failed to store image")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"url":     url,
	})
}
