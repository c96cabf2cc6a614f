// Package server lets a VR runtime drive chord sessions over HTTP: one
// update request per device per tick.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/vivechord/chord"
	"github.com/jsphweid/vivechord/model"
	"github.com/rs/cors"
)

// A Factory builds the engine for the session with the given id and names
// the chord layout it uses.
type Factory func(id string) (engine *chord.Engine, layout string, err error)

type Server struct {
	newEngine Factory
	logger    *slog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

type session struct {
	mu     sync.Mutex
	engine *chord.Engine
	layout string
}

func New(f Factory, logger *slog.Logger) *Server {
	return &Server{
		newEngine: f,
		logger:    logger,
		sessions:  make(map[uuid.UUID]*session),
	}
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/sessions", s.HandleCreate).Methods("POST")
	router.HandleFunc("/sessions/{id}", s.HandleSnapshot).Methods("GET")
	router.HandleFunc("/sessions/{id}", s.HandleDelete).Methods("DELETE")
	router.HandleFunc("/sessions/{id}/chord", s.HandleReset).Methods("DELETE")
	router.HandleFunc("/sessions/{id}/devices/{index}/update", s.HandleUpdate).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	})
	return c.Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (uuid.UUID, *session, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return id, nil, false
	}

	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("no such session"))
		return id, nil, false
	}
	return id, sess, true
}

func (s *Server) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id := uuid.New()
	engine, layout, err := s.newEngine(id.String())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.mu.Lock()
	s.sessions[id] = &session{engine: engine, layout: layout}
	s.mu.Unlock()
	s.logger.Info("session created", "session", id.String(), "layout", layout)

	var devices []int
	for _, h := range engine.Handles() {
		devices = append(devices, int(h))
	}
	writeJSON(w, http.StatusCreated, model.SessionResponse{ID: id.String(), Devices: devices, Layout: layout})
}

func (s *Server) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var body model.UpdateRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sess.mu.Lock()
	res, err := sess.engine.Update(model.Handle(index), body.Touches, body.Pressed)
	sess.mu.Unlock()
	if errors.Is(err, chord.ErrUnknownDevice) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, model.UpdateResponse{
		Evaluated: res.Evaluated,
		State:     res.State.String(),
		Word:      res.Word,
		Output:    res.Output,
	})
}

func (s *Server) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	sess.mu.Lock()
	snap := sess.engine.Snapshot()
	sess.mu.Unlock()

	writeJSON(w, http.StatusOK, model.SnapshotResponse{
		ID:        id.String(),
		State:     snap.State.String(),
		Word:      snap.Word,
		Previous:  snap.Previous,
		Pending:   snap.Pending,
		Described: snap.Described,
	})
}

func (s *Server) HandleReset(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	sess.engine.Reset()
	sess.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, _, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	s.logger.Info("session closed", "session", id.String())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
