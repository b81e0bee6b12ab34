package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/shopkart/commerce-api/internal/files"
)

// UploadsHandler serves stored product images back to clients.
type UploadsHandler struct {
	store  files.Storage
	logger hclog.Logger
}

func NewUploadsHandler(store files.Storage, logger hclog.Logger) *UploadsHandler {
	return &UploadsHandler{store: store, logger: logger}
}

// Get handles GET /uploads/{path}
func (h *UploadsHandler) Get(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/uploads/")
	if path == "" || strings.Contains(path, "..") {
		http.Error(w, "invalid file path", http.StatusBadRequest)
		return
	}

	file, err := h.store.Get(path)
	if err != nil {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		h.logger.Error("Unable to read file", "path", path, "error", err)
		http.Error(w, "unable to serve the file", http.StatusInternalServerError)
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		http.Error(w, "unable to serve the file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(buf[:n]))
	if _, err := io.Copy(w, file); err != nil {
		h.logger.Error("Unable to write file to response", "path", path, "error", err)
	}
}
