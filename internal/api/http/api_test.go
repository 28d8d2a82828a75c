package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/quizdesk/quizdesk/internal/bank"
	"github.com/quizdesk/quizdesk/internal/registry"
	"github.com/quizdesk/quizdesk/internal/report"
	"github.com/quizdesk/quizdesk/internal/store"
)

func testRouter(t *testing.T) (*chi.Mux, *registry.Registry) {
	t.Helper()
	b, err := bank.Load([]bank.Row{
		{Kind: "single", Prompt: "q1", Options: [5]string{"a", "b", "c", "d"}, Answer: "1"},
		{Kind: "multi", Prompt: "q2", Options: [5]string{"a", "b", "c"}, Answer: "1|3"},
		{Kind: "single", Prompt: "q3", Options: [5]string{"a", "b", "c", "d"}, Answer: "1"},
	})
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	reg := registry.New(b, -1, store.NewMemory())

	r := chi.NewRouter()
	r.Post("/sessions", CreateSessionHandler(reg))
	r.Get("/sessions/{sessionID}", GetSessionHandler(reg))
	r.Post("/sessions/{sessionID}/select", SelectSingleHandler(reg))
	r.Post("/sessions/{sessionID}/toggle", ToggleOptionHandler(reg))
	r.Post("/sessions/{sessionID}/confirm", ConfirmMultiHandler(reg))
	r.Post("/sessions/{sessionID}/next", NextHandler(reg))
	r.Post("/sessions/{sessionID}/prev", PrevHandler(reg))
	r.Post("/sessions/{sessionID}/jump", JumpHandler(reg))
	r.Get("/sessions/{sessionID}/report", GetReportHandler(reg))
	return r, reg
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) viewResponse {
	t.Helper()
	var v viewResponse
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decode view: %v (body %q)", err, w.Body.String())
	}
	return v
}

func TestSessionFlow(t *testing.T) {
	r, _ := testRouter(t)

	w := do(t, r, "POST", "/sessions", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}
	v := decodeView(t, w)
	if v.SessionID == "" || v.Number != 1 || v.Total != 3 {
		t.Fatalf("create view = %+v", v)
	}
	base := "/sessions/" + v.SessionID

	// answer q1 correctly
	v = decodeView(t, do(t, r, "POST", base+"/select", `{"option":1}`))
	if v.Correct == nil || !*v.Correct {
		t.Fatalf("select view = %+v", v)
	}

	// q2: toggle twice, confirm, exact set match
	do(t, r, "POST", base+"/next", "")
	do(t, r, "POST", base+"/toggle", `{"option":3}`)
	do(t, r, "POST", base+"/toggle", `{"option":1}`)
	v = decodeView(t, do(t, r, "POST", base+"/confirm", ""))
	if v.Correct == nil || !*v.Correct {
		t.Fatalf("confirm view = %+v", v)
	}

	// navigate back: recall without leaking the answer key
	prev := do(t, r, "POST", base+"/prev", "")
	if strings.Contains(strings.ToLower(prev.Body.String()), "answer_key") {
		t.Fatal("view leaks the answer key")
	}
	v = decodeView(t, prev)
	if !v.Answered || len(v.Selection) != 1 || v.Selection[0] != 1 {
		t.Fatalf("recall view = %+v", v)
	}

	// q3 wrong, then advance past the end
	do(t, r, "POST", base+"/jump", `{"target":"3"}`)
	v = decodeView(t, do(t, r, "POST", base+"/select", `{"option":4}`))
	if v.Correct == nil || *v.Correct {
		t.Fatalf("wrong answer view = %+v", v)
	}
	v = decodeView(t, do(t, r, "POST", base+"/next", ""))
	if !v.Ended {
		t.Fatalf("expected ended view, got %+v", v)
	}

	w = do(t, r, "GET", base+"/report", "")
	if w.Code != http.StatusOK {
		t.Fatalf("report status = %d (%s)", w.Code, w.Body.String())
	}
	var rep report.Report
	if err := json.NewDecoder(w.Body).Decode(&rep); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if rep.TotalQuestions != 3 || rep.CorrectCount != 2 || len(rep.Rows) != 3 {
		t.Fatalf("report = %+v", rep)
	}
}

func TestActionErrors(t *testing.T) {
	r, _ := testRouter(t)
	v := decodeView(t, do(t, r, "POST", "/sessions", ""))
	base := "/sessions/" + v.SessionID

	for _, target := range []string{"0", "-1", "9999", "abc"} {
		w := do(t, r, "POST", base+"/jump", fmt.Sprintf(`{"target":%q}`, target))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("jump %q status = %d", target, w.Code)
		}
		got := decodeView(t, do(t, r, "GET", base, ""))
		if got.Index != 0 {
			t.Fatalf("cursor moved to %d after invalid jump %q", got.Index, target)
		}
	}

	if w := do(t, r, "POST", base+"/select", `{"option":9}`); w.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range select status = %d", w.Code)
	}
	if w := do(t, r, "POST", base+"/confirm", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("confirm on single question status = %d", w.Code)
	}
	if w := do(t, r, "GET", base+"/report", ""); w.Code != http.StatusConflict {
		t.Fatalf("early report status = %d", w.Code)
	}
	if w := do(t, r, "GET", "/sessions/nope", ""); w.Code != http.StatusNotFound {
		t.Fatalf("unknown session status = %d", w.Code)
	}
}

func TestEndedSessionRejectsActions(t *testing.T) {
	r, reg := testRouter(t)
	s := reg.Create()
	base := "/sessions/" + s.ID

	for i := 0; i < 3; i++ {
		do(t, r, "POST", base+"/next", "")
	}
	if !s.Ctrl.Ended() {
		t.Fatal("session should have ended")
	}
	if w := do(t, r, "POST", base+"/next", ""); w.Code != http.StatusConflict {
		t.Fatalf("next after end status = %d", w.Code)
	}
	if w := do(t, r, "POST", base+"/select", `{"option":1}`); w.Code != http.StatusConflict {
		t.Fatalf("select after end status = %d", w.Code)
	}
}
