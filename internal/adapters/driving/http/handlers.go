package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ragfront/ragfront-core/internal/adapters/driven/blob"
	"github.com/ragfront/ragfront-core/internal/core/domain"
)

const (
	modeLocal  = domain.SearchModeLocal
	modeGlobal = domain.SearchModeGlobal
	modeDrift  = domain.SearchModeDrift
)

// handleHealth returns liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion returns the build version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// handleSearch serves the legacy simple-search endpoints. For compatibility
// with existing clients every failure, including auth, is reported as HTTP
// 200 with an error body. This shim lives only here at the transport
// boundary.
func (s *Server) handleSearch(mode domain.SearchMode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeLegacyError(w, "invalid request body")
			return
		}
		req.Mode = mode

		if err := s.queryService.CheckAPIKey(req.ProjectName, r.Header.Get("api-key")); err != nil {
			writeLegacyError(w, err.Error())
			return
		}

		env, err := s.queryService.Search(r.Context(), &req)
		if err != nil {
			writeLegacyError(w, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, env)
	}
}

// handleListProjects lists project names
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	names, err := s.projectService.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"projects": names})
}

// handleCreateProject creates a project scaffold
func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := s.projectService.Create(req.Name)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// handleDeleteProject removes a project and all its data
func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.projectService.Delete(r.PathValue("name")); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleProjectStatus reports whether the project's index is built
func (s *Server) handleProjectStatus(w http.ResponseWriter, r *http.Request) {
	built, err := s.projectService.IsBuilt(r.PathValue("name"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"built": built})
}

// handleDownload serves a blob referenced by a signed URL. The token binds
// the request to one container and blob name.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	container, name, err := s.blobs.Verify(r.URL.Query().Get("token"))
	if err != nil {
		writeError(w, http.StatusForbidden, "invalid or expired token")
		return
	}
	if container != r.PathValue("container") || name != r.PathValue("blob") {
		writeError(w, http.StatusForbidden, "token does not match the requested blob")
		return
	}

	p, ok := s.projectForContainer(container)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown container")
		return
	}
	for _, dir := range []string{p.PDFCacheDir(), p.OriginalDir()} {
		path := filepath.Join(dir, filepath.Base(name))
		if _, err := os.Stat(path); err == nil {
			http.ServeFile(w, r, path)
			return
		}
	}
	writeError(w, http.StatusNotFound, "blob not found")
}

func (s *Server) projectForContainer(container string) (domain.Project, bool) {
	names, err := s.projects.List()
	if err != nil {
		return domain.Project{}, false
	}
	for _, name := range names {
		if blob.ContainerName(name) == container {
			if p, err := s.projects.Resolve(name); err == nil {
				return p, true
			}
		}
	}
	return domain.Project{}, false
}

// statusFor maps domain errors to HTTP statuses
func statusFor(err error) int {
	var missing *domain.MissingArtifactError
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrProjectExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidProjectName), errors.Is(err, domain.ErrEmptyQuery):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidAPIKey):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotBuilt), errors.As(err, &missing):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeLegacyError reports a failure the way the legacy endpoints always
// have: HTTP 200 with an error body.
func writeLegacyError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]string{"error": message})
}
