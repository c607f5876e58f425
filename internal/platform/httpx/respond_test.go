package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondErrorMapsSentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("bill 9: %w", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("number FW-1: %w", ErrDuplicate), http.StatusConflict},
		{fmt.Errorf("bad payload: %w", ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		RespondError(rec, tc.err)
		if rec.Code != tc.status {
			t.Errorf("RespondError(%v) status = %d, want %d", tc.err, rec.Code, tc.status)
		}

		var problem ProblemDetail
		if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
			t.Fatalf("problem body not JSON: %v", err)
		}
		if problem.Status != tc.status {
			t.Errorf("problem.Status = %d, want %d", problem.Status, tc.status)
		}
		if !strings.HasPrefix(problem.Instance, "urn:uuid:") {
			t.Errorf("problem.Instance = %q, want urn:uuid prefix", problem.Instance)
		}
	}
}

func TestInternalErrorsHideDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, fmt.Errorf("pq: password authentication failed"))

	var problem ProblemDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("problem body not JSON: %v", err)
	}
	if problem.Detail != "" {
		t.Errorf("internal error detail leaked: %q", problem.Detail)
	}
}
