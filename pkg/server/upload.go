package server

import (
	"io"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ContentRef is one prepared content item: either a stored object reference
// or inline extracted text.
type ContentRef struct {
	Mode    string `json:"mode"`
	Content string `json:"content"`
	MIME    string `json:"mime,omitempty"`
	Title   string `json:"title,omitempty"`
}

const maxUploadMemory = 32 << 20

// handleUpload stores uploaded files and raw texts in the object store and
// returns references to them. With extract=true the parsed text of each file
// is returned inline as well.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured", nil)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request: "+err.Error(), nil)
		return
	}
	extract := r.FormValue("extract") == "true"

	var (
		mu       sync.Mutex
		contents []ContentRef
	)
	add := func(refs ...ContentRef) {
		mu.Lock()
		defer mu.Unlock()
		contents = append(contents, refs...)
	}

	g, ctx := errgroup.WithContext(r.Context())

	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["files"] {
			g.Go(func() error {
				f, err := fh.Open()
				if err != nil {
					return err
				}
				defer f.Close()
				data, err := io.ReadAll(f)
				if err != nil {
					return err
				}

				uploaded, err := s.storage.UploadFile(ctx, fh.Filename, data, fh.Header.Get("Content-Type"))
				if err != nil {
					return err
				}
				refs := []ContentRef{{Mode: "url", Content: uploaded.URL, MIME: uploaded.MIME, Title: uploaded.Title}}

				if extract {
					if res, err := s.parsers.Extract(ctx, fh.Filename, data); err == nil {
						refs = append(refs, ContentRef{Mode: "text", Content: res.Content, MIME: "text/plain", Title: res.Title})
					}
				}
				add(refs...)
				return nil
			})
		}
	}

	for _, text := range r.MultipartForm.Value["texts"] {
		if strings.TrimSpace(text) == "" {
			continue
		}
		g.Go(func() error {
			uploaded, err := s.storage.UploadText(ctx, text)
			if err != nil {
				return err
			}
			add(ContentRef{Mode: "url", Content: uploaded.URL, MIME: uploaded.MIME, Title: uploaded.Title})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		writeError(w, http.StatusInternalServerError, "upload failed: "+err.Error(), nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contents": contents})
}
