package http

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	noteuc "auto-loan-contracts/internal/usecase/note"
)

func scheduleBody(appID int64) map[string]any {
	return map[string]any{
		"application_id": appID,
		"principal":      "10000",
		"annual_rate":    12,
		"term_months":    3,
	}
}

func TestNotes_GenerateAndRead(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/notes/schedule", scheduleBody(42))
	if rec.Code != http.StatusCreated {
		t.Fatalf("generate status=%d body=%s", rec.Code, rec.Body.String())
	}
	var notes []noteuc.NoteDTO
	decode(t, rec, &notes)
	if len(notes) != 3 || notes[0].InstallmentNumber != 1 || !notes[2].Active {
		t.Fatalf("notes = %+v", notes)
	}

	rec = do(e, http.MethodPost, "/api/notes/schedule", scheduleBody(42))
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate status=%d", rec.Code)
	}

	rec = do(e, http.MethodGet, "/api/notes/application/42/installments/2", nil)
	var one noteuc.NoteDTO
	decode(t, rec, &one)
	if rec.Code != http.StatusOK || one.ID != notes[1].ID {
		t.Fatalf("installment 2 status=%d note=%+v", rec.Code, one)
	}

	rec = do(e, http.MethodGet, "/api/notes/application/42/exists", nil)
	if !strings.Contains(rec.Body.String(), `"exists":true`) {
		t.Fatalf("exists body = %s", rec.Body.String())
	}

	rec = do(e, http.MethodGet, "/api/notes/application/43", nil)
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("empty list status=%d body=%s", rec.Code, rec.Body.String())
	}

	if rec := do(e, http.MethodGet, fmt.Sprintf("/api/notes/%d", notes[0].ID), nil); rec.Code != http.StatusOK {
		t.Fatalf("get status=%d", rec.Code)
	}
}

func TestNotes_GenerateValidation(t *testing.T) {
	e := newTestServer(t)

	body := scheduleBody(1)
	body["principal"] = "100.123"
	body["term_months"] = 0
	rec := do(e, http.MethodPost, "/api/notes/schedule", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var resp ErrorResponse
	decode(t, rec, &resp)
	if !containsFieldMsg(resp.Details, "principal", "2 decimal places") || !containsFieldMsg(resp.Details, "term_months", "is required") {
		t.Fatalf("details = %+v", resp.Details)
	}
}

func TestNotes_Preview(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/notes/schedule/preview", map[string]any{
		"principal":   10000,
		"annual_rate": 12,
		"term_months": 3,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"payment":"3400.22"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
	if rec := do(e, http.MethodGet, "/api/notes/application/0/exists", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad application id status=%d", rec.Code)
	}
}

func TestNotes_UpdateIDMismatch(t *testing.T) {
	e := newTestServer(t)
	rec := do(e, http.MethodPost, "/api/notes/schedule", scheduleBody(5))
	var notes []noteuc.NoteDTO
	decode(t, rec, &notes)
	id := notes[0].ID

	rec = do(e, http.MethodPut, fmt.Sprintf("/api/notes/%d", id), map[string]any{
		"id":                 id + 100,
		"installment_number": 9,
		"document_path":      "/elsewhere.pdf",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("mismatch status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodGet, fmt.Sprintf("/api/notes/%d", id), nil)
	var got noteuc.NoteDTO
	decode(t, rec, &got)
	if got.InstallmentNumber != 1 || got.Version != 1 {
		t.Fatalf("note changed: %+v", got)
	}

	rec = do(e, http.MethodPut, fmt.Sprintf("/api/notes/%d", id), map[string]any{
		"id":                 id,
		"installment_number": 9,
		"document_path":      "/elsewhere.pdf",
	})
	decode(t, rec, &got)
	if rec.Code != http.StatusOK || got.InstallmentNumber != 9 || got.Version != 2 {
		t.Fatalf("update status=%d note=%+v", rec.Code, got)
	}
}

func TestNotes_Deletes(t *testing.T) {
	e := newTestServer(t)
	rec := do(e, http.MethodPost, "/api/notes/schedule", scheduleBody(6))
	var notes []noteuc.NoteDTO
	decode(t, rec, &notes)

	if rec := do(e, http.MethodDelete, fmt.Sprintf("/api/notes/%d", notes[0].ID), nil); rec.Code != http.StatusOK {
		t.Fatalf("deactivate status=%d", rec.Code)
	}
	if rec := do(e, http.MethodDelete, fmt.Sprintf("/api/notes/%d", notes[0].ID), nil); rec.Code != http.StatusConflict {
		t.Fatalf("second deactivate status=%d", rec.Code)
	}

	rec = do(e, http.MethodDelete, "/api/notes/application/6", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"removed":3`) {
		t.Fatalf("bulk delete status=%d body=%s", rec.Code, rec.Body.String())
	}
}
