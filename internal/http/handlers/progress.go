package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// ProgressList returns the caller's completion history, newest first.
func (a *App) ProgressList(w http.ResponseWriter, r *http.Request) {
	identity, ok := a.currentIdentity(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	events, err := a.Progress.ListByUser(r.Context(), identity.ID)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": events})
}

// ProgressStream pushes the completion history over server-sent events. The
// first frame is the current snapshot; afterwards every feed notification
// triggers a fresh read so a late notification can never ship a stale view.
// The subscription is released when the request context ends.
func (a *App) ProgressStream(w http.ResponseWriter, r *http.Request) {
	identity, ok := a.currentIdentity(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		a.error(w, http.StatusInternalServerError, "internal", "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// The server-wide write timeout would cut the stream off; lift it for
	// this response only.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	updates, release := a.Feed.Subscribe(r.Context(), identity.ID)
	defer release()

	if err := a.writeHistoryFrame(w, r, identity.ID); err != nil {
		return
	}
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepalive.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()
		case _, open := <-updates:
			if !open {
				return
			}
			if err := a.writeHistoryFrame(w, r, identity.ID); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (a *App) writeHistoryFrame(w http.ResponseWriter, r *http.Request, userID string) error {
	events, err := a.Progress.ListByUser(r.Context(), userID)
	if err != nil {
		a.Logger.Error().Err(err).Str("user_id", userID).Msg("history read for stream failed")
		return err
	}
	payload, err := json.Marshal(map[string]any{"items": events})
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte("event: progress\ndata: ")); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n\n"))
	return err
}
