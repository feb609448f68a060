// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRecoverer(t *testing.T) {
	panics := []struct {
		name  string
		value any
	}{
		{"string", "something went wrong"},
		{"integer", 42},
		{"error", errors.New("boom")},
	}

	for _, tt := range panics {
		t.Run("catches "+tt.name+" panic", func(t *testing.T) {
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(tt.value)
			})

			req := httptest.NewRequest(http.MethodGet, "/blogs", nil)
			rr := httptest.NewRecorder()
			Recoverer(inner).ServeHTTP(rr, req)

			if rr.Code != http.StatusInternalServerError {
				t.Errorf("status: got %d, want 500", rr.Code)
			}
			if !strings.Contains(rr.Body.String(), `"error":"internal server error"`) {
				t.Errorf("body: got %q", rr.Body.String())
			}
		})
	}

	t.Run("passes through without panic", func(t *testing.T) {
		next, called := okHandler()
		rr := httptest.NewRecorder()
		Recoverer(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		if !*called || rr.Code != http.StatusOK {
			t.Errorf("called=%v status=%d, want true 200", *called, rr.Code)
		}
	})
}
