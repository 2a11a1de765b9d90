package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ragfront/ragfront-core/internal/core/domain"
)

// handleChatCompletions serves the OpenAI-compatible completion endpoint,
// dispatching on the stream flag.
func (s *Server) handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	var req domain.CompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.queryService.CheckAPIKey(req.ProjectName, r.Header.Get("api-key")); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	if req.Stream {
		s.streamCompletion(w, r, &req)
		return
	}

	completion, err := s.queryService.Completion(r.Context(), &req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, completion)
}

// handleModels lists the search modes as pseudo-models
func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.queryService.Models())
}

// streamCompletion writes the chunk sequence as server-sent events and ends
// with the literal [DONE] terminator.
func (s *Server) streamCompletion(w http.ResponseWriter, r *http.Request, req *domain.CompletionRequest) {
	chunks, errc, err := s.queryService.CompletionStream(r.Context(), req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	for chunk := range chunks {
		data, err := json.Marshal(chunk)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}

	// A mid-stream failure still ends the stream cleanly for the client;
	// the error itself is reported as a final event.
	select {
	case err, ok := <-errc:
		if ok && err != nil {
			payload, _ := json.Marshal(map[string]string{"error": err.Error()})
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	default:
	}

	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}
