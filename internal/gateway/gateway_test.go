package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gagyebu/internal/core"
)

func newTestClient(h http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(h)
	return New(srv.URL, 2*time.Second), srv
}

func TestListNormalizesLegacyRecords(t *testing.T) {
	cli, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/expenses" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		// One canonical record, one legacy sign-encoded record without type.
		w.Write([]byte(`[
			{"id":"1","date":"2023. 08. 17","amount":50000,"description":"급여","paymentMethod":"현금","category":"월급","type":"income","createdAt":"t1"},
			{"id":"2","date":"2023. 08. 17","amount":-7000,"description":"점심","paymentMethod":"현금","category":"식비","createdAt":"t2"}
		]`))
	})
	defer srv.Close()

	got, err := cli.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[1].Type != core.TypeExpense || got[1].Amount != 7000 {
		t.Fatalf("legacy record not normalized: %+v", got[1])
	}
}

func TestCreateSendsDraftAndReturnsRecord(t *testing.T) {
	draft := core.Draft{
		Date:          "2023. 08. 17",
		Amount:        7000,
		Description:   "점심",
		PaymentMethod: "현금",
		Category:      "식비",
		Type:          core.TypeExpense,
	}
	cli, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/expenses" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var got core.Draft
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if got != draft {
			t.Errorf("body = %+v, want %+v", got, draft)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(core.Transaction{
			ID: "abc", Date: got.Date, Amount: got.Amount, Description: got.Description,
			PaymentMethod: got.PaymentMethod, Category: got.Category, Type: got.Type,
			CreatedAt: "2023-08-17T12:00:00",
		})
	})
	defer srv.Close()

	rec, err := cli.Create(context.Background(), draft)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID != "abc" || rec.CreatedAt == "" {
		t.Fatalf("missing server-assigned fields: %+v", rec)
	}
}

func TestUpdateTargetsRecordPath(t *testing.T) {
	cli, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/expenses/abc" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(core.Transaction{ID: "abc", Type: core.TypeExpense, Amount: 1})
	})
	defer srv.Close()

	if _, err := cli.Update(context.Background(), "abc", core.Draft{}); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func TestDeleteAcceptsNoContent(t *testing.T) {
	cli, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/expenses/abc" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	defer srv.Close()

	if err := cli.Delete(context.Background(), "abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestServerRejection(t *testing.T) {
	cli, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	})
	defer srv.Close()

	_, err := cli.List(context.Background())
	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if gerr.Kind != KindServerRejected || gerr.Status != http.StatusInternalServerError {
		t.Fatalf("unexpected error: %+v", gerr)
	}
	if gerr.Message != "boom" {
		t.Fatalf("message = %q, want %q", gerr.Message, "boom")
	}
}

func TestNetworkFailure(t *testing.T) {
	cli, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
	srv.Close() // nothing listening anymore

	_, err := cli.List(context.Background())
	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if gerr.Kind != KindNetwork {
		t.Fatalf("kind = %v, want network", gerr.Kind)
	}
}
