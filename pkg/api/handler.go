// CLAUDE:SUMMARY HTTP routes for clean, preprocess, vegan, decompose and lexicon, dispatching to the shared endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hazyhaar/vegantree/pkg/hierarchy"
	"github.com/hazyhaar/vegantree/pkg/kit"
)

const maxBodyBytes = 1 << 20

// NewRouter returns an http.Handler with all vegantree API routes.
func NewRouter(svc *Service) http.Handler {
	mux := http.NewServeMux()
	h := &handler{ep: newEndpoints(svc), svc: svc}

	mux.HandleFunc("POST /v1/clean", h.handleClean)
	mux.HandleFunc("POST /v1/preprocess", h.handlePreprocess)
	mux.HandleFunc("POST /v1/vegan", h.handleVegan)
	mux.HandleFunc("GET /v1/vegan/{item}", h.handleVeganItem)
	mux.HandleFunc("POST /v1/decompose", h.handleDecompose)
	mux.HandleFunc("GET /v1/lexicon", h.handleLexicon)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(mux)
}

type handler struct {
	ep  *endpoints
	svc *Service
}

func (h *handler) handleClean(w http.ResponseWriter, r *http.Request) {
	var req cleanReq
	if !decodeBody(w, r, &req) {
		return
	}
	h.serve(w, r, h.ep.clean, &req)
}

func (h *handler) handlePreprocess(w http.ResponseWriter, r *http.Request) {
	var req preprocessReq
	if !decodeBody(w, r, &req) {
		return
	}
	h.serve(w, r, h.ep.preprocess, &req)
}

func (h *handler) handleVegan(w http.ResponseWriter, r *http.Request) {
	var req veganReq
	if !decodeBody(w, r, &req) {
		return
	}
	h.serve(w, r, h.ep.vegan, &req)
}

// handleVeganItem classifies a single-item basket and returns its verdict.
func (h *handler) handleVeganItem(w http.ResponseWriter, r *http.Request) {
	item := r.PathValue("item")
	if item == "" {
		writeError(w, http.StatusBadRequest, "missing item")
		return
	}
	resp, err := h.ep.vegan(requestContext(r), &veganReq{Baskets: [][]string{{item}}})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp.(veganResponse).Results[0])
}

func (h *handler) handleDecompose(w http.ResponseWriter, r *http.Request) {
	var req decomposeReq
	if !decodeBody(w, r, &req) {
		return
	}
	h.serve(w, r, h.ep.decompose, &req)
}

func (h *handler) handleLexicon(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.ep.lexicon, nil)
}

type healthResponse struct {
	Status  string `json:"status"`
	Lexicon string `json:"lexicon"`
	Version string `json:"version"`
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	info := h.svc.Lexicon().Info()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Lexicon: info.ID,
		Version: info.Version,
	})
}

// --- helpers ---

func (h *handler) serve(w http.ResponseWriter, r *http.Request, ep kit.Endpoint, req any) {
	resp, err := ep(requestContext(r), req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// requestContext carries a caller-supplied X-Request-ID into the endpoint.
func requestContext(r *http.Request) context.Context {
	ctx := kit.WithTransport(r.Context(), "http")
	if id := r.Header.Get("X-Request-ID"); id != "" {
		ctx = kit.WithRequestID(ctx, id)
	}
	return ctx
}

// decodeBody decodes a JSON body of at most 1 MiB. Elements of the wrong
// JSON type are rejected here.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, hierarchy.ErrMalformedHierarchy):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
