package delivery

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"medvoice/internal/config"
	"medvoice/internal/ports"
	"medvoice/internal/session"
)

const maxRecordingBytes = 20 << 20

type SessionHandler struct {
	sessions   ports.SessionService
	log        *logger.ZapLogger
	configured bool
}

func NewSessionHandler(sessions ports.SessionService, log *logger.ZapLogger, configured bool) *SessionHandler {
	return &SessionHandler{
		sessions:   sessions,
		log:        log,
		configured: configured,
	}
}

// GetConfig tells the page up front whether advice generation is available,
// so the credential error is surfaced once on load.
func (h *SessionHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{"configured": h.configured}
	if !h.configured {
		body["error"] = config.MissingKeyMessage
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	snap := h.sessions.Create()
	writeJSON(w, http.StatusCreated, map[string]any{"session": snap})
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sessions.Get(chi.URLParam(r, "session_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session": snap})
}

// UploadRecording accepts the captured audio either as a multipart "file"
// field or as a raw audio body, then reports the state after the controller
// has run (including the transcript when transcription fired).
func (h *SessionHandler) UploadRecording(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "session_id")

	audio, err := readAudio(w, r)
	if err != nil {
		http.Error(w, "failed to read audio: "+err.Error(), http.StatusBadRequest)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "recording received: session=" + id + " size=" + humanize.Bytes(uint64(len(audio))),
		Service: "medvoice",
	})

	snap, err := h.sessions.SubmitRecording(r.Context(), id, audio)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"session": snap})
	case errors.Is(err, session.ErrNotConfigured):
		// recording is kept, transcription is blocked
		writeJSON(w, http.StatusOK, map[string]any{
			"session": snap,
			"warning": config.MissingKeyMessage,
		})
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, session.ErrEmptyRecording):
		writeError(w, err)
	default:
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"session": snap,
			"error":   "Transcription error: " + err.Error(),
		})
	}
}

func (h *SessionHandler) GetAdvice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "session_id")

	text, err := h.sessions.Advise(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "advice generated: session=" + id,
		Service: "medvoice",
	})
	writeJSON(w, http.StatusOK, map[string]any{"advice": text})
}

func (h *SessionHandler) ClearSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sessions.Clear(chi.URLParam(r, "session_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session": snap})
}

func readAudio(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxRecordingBytes); err != nil {
			return nil, err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return io.ReadAll(file)
	}
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxRecordingBytes))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "session not found"})
	case errors.Is(err, session.ErrEmptyRecording):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "empty recording payload"})
	case errors.Is(err, session.ErrNoTranscript):
		writeJSON(w, http.StatusConflict, map[string]any{"warning": "No transcript available."})
	case errors.Is(err, session.ErrNotConfigured):
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": config.MissingKeyMessage})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}
}
