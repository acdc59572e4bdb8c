package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gagyebu/internal/amqp"
	"gagyebu/internal/core"
	"gagyebu/internal/log"
	"gagyebu/internal/storage"
)

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := s.repo.ListTransactions(r.Context())
	if err != nil {
		s.log.Error("list transactions failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}
	if records == nil {
		records = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	tx, err := s.repo.CreateTransaction(r.Context(), draft)
	if err != nil {
		s.log.Error("create transaction failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to create expense")
		return
	}
	s.publish(r.Context(), amqp.ActionCreated, tx)
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	tx, err := s.repo.UpdateTransaction(r.Context(), id, draft)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	if err != nil {
		s.log.Error("update transaction failed", log.FieldID, id, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to update expense")
		return
	}
	s.publish(r.Context(), amqp.ActionUpdated, tx)
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.repo.DeleteTransaction(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	if err != nil {
		s.log.Error("delete transaction failed", log.FieldID, id, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to delete expense")
		return
	}
	s.publish(r.Context(), amqp.ActionDeleted, core.Transaction{ID: id})
	w.WriteHeader(http.StatusNoContent)
}

// decodeDraft parses and validates the request body, writing the failure
// response itself when the draft is unusable.
func decodeDraft(w http.ResponseWriter, r *http.Request) (core.Draft, bool) {
	var draft core.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return core.Draft{}, false
	}
	if err := draft.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return core.Draft{}, false
	}
	return draft, true
}

// publish sends a ledger event when a publisher is configured. Publish
// failures are logged, never surfaced: the write already committed.
func (s *Server) publish(ctx context.Context, action string, tx core.Transaction) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishLedgerEvent(ctx, amqp.NewLedgerEvent(action, tx)); err != nil {
		s.log.Error("publish ledger event failed", log.FieldAction, action, log.FieldID, tx.ID, log.FieldError, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
