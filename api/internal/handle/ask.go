package handle

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"tutor-proxy/api/internal/llm"
	"tutor-proxy/api/internal/util"
)

type AskRequest struct {
	Query   string `json:"query"`
	LLMName string `json:"llm_name,omitempty"`
}

type AskResponse struct {
	Answer  string `json:"answer"`
	Subject string `json:"subject,omitempty"`
}

func (h *Handle) Ask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeDetail(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	id := requestID(r)
	w.Header().Set("X-Request-Id", id)
	log := h.log.With(zap.String("request_id", id))

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeDetail(w, http.StatusBadRequest, "query is required")
		return
	}

	t, err := h.tutors.Get(req.LLMName)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, llm.ErrUnknownEngine) {
			status = http.StatusBadRequest
		}
		writeDetail(w, status, err.Error())
		return
	}

	ctx, cancel := h.withDeadline(r)
	defer cancel()

	start := time.Now()
	ans, err := t.Ask(ctx, req.Query)
	if err != nil {
		log.Error("ask failed",
			zap.String("engine", t.Engine().Name()),
			zap.String("query", util.Truncate(req.Query, 200)),
			zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Info("ask",
		zap.String("engine", t.Engine().Name()),
		zap.String("subject", ans.Subject),
		zap.Duration("took", time.Since(start)))
	writeJSON(w, http.StatusOK, AskResponse{Answer: ans.Text, Subject: ans.Subject})
}
