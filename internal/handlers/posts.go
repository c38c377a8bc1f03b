package handlers

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jeremyjsx/dashboard/internal/posts"
	"github.com/jeremyjsx/dashboard/internal/storage"
)

type PostsHandler struct {
	svc            *posts.Service
	workflow       *posts.Workflow
	files          storage.Storage
	maxUploadBytes int64
	logger         *slog.Logger
}

func NewPostsHandler(svc *posts.Service, workflow *posts.Workflow, files storage.Storage, maxUploadBytes int64, logger *slog.Logger) *PostsHandler {
	return &PostsHandler{
		svc:            svc,
		workflow:       workflow,
		files:          files,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func (h *PostsHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
		if err := parseForm(r); err != nil {
			if isTooLarge(err) {
				writeError(w, r, http.StatusRequestEntityTooLarge, "Upload error: File is too large.")
				return
			}
			writeError(w, r, http.StatusBadRequest, "invalid form body")
			return
		}
		if r.MultipartForm != nil {
			defer func() { _ = r.MultipartForm.RemoveAll() }()
		}

		sub := posts.Submission{
			Values: presentValues(r,
				posts.FieldTitle,
				posts.FieldSlug,
				posts.FieldMetaTitle,
				posts.FieldMetaDescription,
				posts.FieldUserID,
			),
		}
		file, header, err := r.FormFile(posts.FieldFile)
		switch {
		case err == nil:
			defer file.Close()
			sub.File = &posts.Upload{
				Name:        header.Filename,
				Body:        file,
				Size:        header.Size,
				ContentType: header.Header.Get("Content-Type"),
			}
		case errors.Is(err, http.ErrMissingFile):
		default:
			writeError(w, r, http.StatusBadRequest, "invalid form body")
			return
		}

		out, err := h.workflow.CreatePost(r.Context(), sub)
		if err != nil {
			h.writeFailure(w, r, err)
			return
		}
		http.Redirect(w, r, out.Redirect, http.StatusSeeOther)
	}
}

func (h *PostsHandler) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var f *posts.Failure
	if !errors.As(err, &f) {
		h.logger.Error("unexpected post error", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	status := http.StatusInternalServerError
	switch {
	case errors.Is(f, posts.ErrValidation):
		status = http.StatusUnprocessableEntity
	case errors.Is(f, posts.ErrNoFile):
		status = http.StatusBadRequest
	case errors.Is(f, posts.ErrSlugExists):
		status = http.StatusConflict
	}
	writeJSON(w, r, status, FormError{Errors: f.Fields, Message: f.Message})
}

func (h *PostsHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

		res, err := h.svc.ListPosts(r.Context(), page, perPage)
		if err != nil {
			h.logger.Error("list posts failed", "error", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, r, http.StatusOK, res)
	}
}

func (h *PostsHandler) GetBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		entry, err := h.svc.GetPost(r.Context(), slug)
		if err != nil {
			if errors.Is(err, posts.ErrNotFound) {
				writeError(w, r, http.StatusNotFound, "post not found")
				return
			}
			h.logger.Error("get post failed", "slug", slug, "error", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, r, http.StatusOK, entry)
	}
}

func (h *PostsHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid post id")
			return
		}

		if err := h.svc.DeletePost(r.Context(), id); err != nil {
			if errors.Is(err, posts.ErrNotFound) {
				writeError(w, r, http.StatusNotFound, "post not found")
				return
			}
			h.writeFailure(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Upload streams a header image from storage.
func (h *PostsHandler) Upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if storage.ValidateKey(name) != nil {
			writeError(w, r, http.StatusNotFound, "file not found")
			return
		}

		body, err := h.files.Download(r.Context(), name)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(w, r, http.StatusNotFound, "file not found")
				return
			}
			h.logger.Error("download failed", "file", name, "error", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		defer body.Close()

		if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
			w.Header().Set("Content-Type", ct)
		} else {
			w.Header().Set("Content-Type", "application/octet-stream")
		}
		if _, err := io.Copy(w, body); err != nil {
			h.logger.Warn("stream upload interrupted", "file", name, "error", err)
		}
	}
}
