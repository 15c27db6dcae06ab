package backupsrv

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// DefaultMaxBody bounds a PUT body; photos are the largest entries.
const DefaultMaxBody = 8 << 20

type handler struct {
	backend  Backend
	maxBody  int64
	validate *validator.Validate
}

type recoveryData struct {
	Data string `json:"data" validate:"required"`
}

// NewRouter returns the recovery-store HTTP routes over backend.
func NewRouter(backend Backend, maxBody int64) *mux.Router {
	if maxBody <= 0 {
		maxBody = DefaultMaxBody
	}
	h := &handler{backend: backend, maxBody: maxBody, validate: validator.New()}

	r := mux.NewRouter()
	r.HandleFunc("/backups/{hashedId}/{key}", h.put).Methods(http.MethodPut)
	r.HandleFunc("/backups/{hashedId}/{key}", h.get).Methods(http.MethodGet)
	return r
}

func (h *handler) put(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var body recoveryData
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(body); err != nil {
		writeError(w, http.StatusBadRequest, "data is required")
		return
	}
	if err := h.backend.Put(r.Context(), vars["hashedId"], vars["key"], body.Data); err != nil {
		log.WithField("key", vars["key"]).Errorf("store backup: %v", err)
		writeError(w, http.StatusInternalServerError, "store failed")
		return
	}
	log.WithField("key", vars["key"]).Debug("stored backup")
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	data, err := h.backend.Get(r.Context(), vars["hashedId"], vars["key"])
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		log.WithField("key", vars["key"]).Errorf("load backup: %v", err)
		writeError(w, http.StatusInternalServerError, "load failed")
		return
	}
	writeJSON(w, http.StatusOK, recoveryData{Data: data})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
