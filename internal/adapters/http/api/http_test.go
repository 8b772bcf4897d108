package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DeLaParraL/CareShift/internal/adapters/http/api"
	app "github.com/DeLaParraL/CareShift/internal/app"
	"github.com/DeLaParraL/CareShift/internal/demo"
	"github.com/DeLaParraL/CareShift/internal/domain/model"
	"github.com/DeLaParraL/CareShift/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

var now = time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)

func newTestServer() *httptest.Server {
	_ = logger.Init()
	svc := app.New(app.WithClock(func() time.Time { return now }))
	return httptest.NewServer(api.NewServer(svc).Router())
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	var out bytes.Buffer
	if _, err := out.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp, out.Bytes()
}

func TestHealthAndStats(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	Convey("Given a running server", t, func() {
		Convey("Then /healthz reports ok", func() {
			resp, body := doJSON(t, http.MethodGet, ts.URL+"/healthz", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(string(body), ShouldContainSubstring, `"status":"ok"`)
		})

		Convey("Then /stats returns the context counters", func() {
			resp, body := doJSON(t, http.MethodGet, ts.URL+"/stats", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			var stats map[string]any
			So(json.Unmarshal(body, &stats), ShouldBeNil)
			So(stats, ShouldContainKey, "patients")
			So(stats, ShouldContainKey, "orders")
			So(stats, ShouldContainKey, "shift_set")
		})

		Convey("Then /metrics serves the Prometheus registry", func() {
			resp, body := doJSON(t, http.MethodGet, ts.URL+"/metrics", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(string(body), ShouldContainSubstring, "careshift")
		})
	})
}

func TestGenerateEndpoint(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	Convey("Given the demo payload from the server itself", t, func() {
		resp, body := doJSON(t, http.MethodGet, ts.URL+"/demo/payload", nil)
		So(resp.StatusCode, ShouldEqual, http.StatusOK)

		var req demo.Request
		So(json.Unmarshal(body, &req), ShouldBeNil)

		Convey("When posting it to /schedule/generate", func() {
			resp, body := doJSON(t, http.MethodPost, ts.URL+"/schedule/generate", req)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var sched model.Schedule
			So(json.Unmarshal(body, &sched), ShouldBeNil)

			Convey("Then every order is placed and no notes are emitted", func() {
				So(sched.Tasks, ShouldHaveLength, len(req.Orders))
				So(sched.Notes, ShouldBeEmpty)
				So(sched.GeneratedAt, ShouldEqual, now)
			})
		})
	})

	Convey("Given malformed and invalid request bodies", t, func() {
		Convey("Then junk JSON is a 400", func() {
			req, _ := http.NewRequest(http.MethodPost, ts.URL+"/schedule/generate", bytes.NewReader([]byte("{nope")))
			resp, err := http.DefaultClient.Do(req)
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Then a bad acuity is a 422", func() {
			body := map[string]any{
				"shift":    model.Shift{StartAt: now, EndAt: now.Add(8 * time.Hour)},
				"patients": []map[string]any{{"id": "p1", "display_name": "Patient A", "acuity": "severe"}},
				"orders":   []any{},
			}
			resp, _ := doJSON(t, http.MethodPost, ts.URL+"/schedule/generate", body)
			So(resp.StatusCode, ShouldEqual, http.StatusUnprocessableEntity)
		})

		Convey("Then an out-of-range duration is a 422", func() {
			body := map[string]any{
				"shift":    model.Shift{StartAt: now, EndAt: now.Add(8 * time.Hour)},
				"patients": []model.Patient{{ID: "p1", DisplayName: "Patient A", Acuity: model.AcuityLow}},
				"orders": []map[string]any{{
					"id": "o1", "patient_id": "p1", "type": "lab",
					"due_at": now.Format(time.RFC3339), "duration_minutes": 500,
				}},
			}
			resp, _ := doJSON(t, http.MethodPost, ts.URL+"/schedule/generate", body)
			So(resp.StatusCode, ShouldEqual, http.StatusUnprocessableEntity)
		})

		Convey("Then an inverted window is NOT an HTTP error, just notes", func() {
			body := map[string]any{
				"shift":    model.Shift{StartAt: now.Add(time.Hour), EndAt: now},
				"patients": []model.Patient{},
				"orders":   []model.Order{},
			}
			resp, raw := doJSON(t, http.MethodPost, ts.URL+"/schedule/generate", body)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var sched model.Schedule
			So(json.Unmarshal(raw, &sched), ShouldBeNil)
			So(sched.Tasks, ShouldBeEmpty)
			So(sched.Notes, ShouldHaveLength, 1)
		})
	})
}

func TestStateFlow(t *testing.T) {
	Convey("Given an empty shift context", t, func() {
		// Fresh server per leaf: state mutations must not leak between runs.
		ts := newTestServer()
		Reset(ts.Close)
		Convey("Then replan without a shift is a 422", func() {
			resp, _ := doJSON(t, http.MethodPost, ts.URL+"/state/replan", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusUnprocessableEntity)
		})

		Convey("When walking the full state lifecycle", func() {
			shift := model.Shift{StartAt: now, EndAt: now.Add(12 * time.Hour)}
			resp, _ := doJSON(t, http.MethodPost, ts.URL+"/state/shift", shift)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			patients := []model.Patient{
				{ID: "p1", DisplayName: "Patient A", Acuity: model.AcuityCritical},
				{ID: "p2", DisplayName: "Patient B", Acuity: model.AcuityLow},
			}
			resp, _ = doJSON(t, http.MethodPost, ts.URL+"/state/patients", patients)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			order := model.Order{
				ID: "o1", PatientID: "p1", Type: model.OrderProcedure,
				DueAt: now.Add(time.Hour), DurationMinutes: 20, IsSTAT: true,
			}
			resp, _ = doJSON(t, http.MethodPost, ts.URL+"/state/orders", order)
			So(resp.StatusCode, ShouldEqual, http.StatusCreated)

			Convey("Then adding the same order again conflicts", func() {
				resp, _ := doJSON(t, http.MethodPost, ts.URL+"/state/orders", order)
				So(resp.StatusCode, ShouldEqual, http.StatusConflict)
			})

			Convey("Then an order for an unknown patient is a 422", func() {
				bad := order
				bad.ID = "o2"
				bad.PatientID = "px"
				resp, _ := doJSON(t, http.MethodPost, ts.URL+"/state/orders", bad)
				So(resp.StatusCode, ShouldEqual, http.StatusUnprocessableEntity)
			})

			Convey("Then GET /state reflects the context", func() {
				resp, body := doJSON(t, http.MethodGet, ts.URL+"/state", nil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(string(body), ShouldContainSubstring, `"o1"`)
				So(string(body), ShouldContainSubstring, `"updated_at"`)
			})

			Convey("Then replan places the order", func() {
				resp, body := doJSON(t, http.MethodPost, ts.URL+"/state/replan", nil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var sched model.Schedule
				So(json.Unmarshal(body, &sched), ShouldBeNil)
				So(sched.Tasks, ShouldHaveLength, 1)
				So(sched.Tasks[0].OrderID, ShouldEqual, "o1")
				So(sched.Tasks[0].PatientDisplayName, ShouldEqual, "Patient A")
			})

			Convey("Then replacing patients prunes orphaned orders", func() {
				resp, _ := doJSON(t, http.MethodPost, ts.URL+"/state/patients", patients[1:])
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				_, body := doJSON(t, http.MethodGet, ts.URL+"/state", nil)
				So(string(body), ShouldNotContainSubstring, `"o1"`)
			})

			Convey("Then deleting the order works exactly once", func() {
				resp, _ := doJSON(t, http.MethodDelete, ts.URL+"/state/orders/o1", nil)
				So(resp.StatusCode, ShouldEqual, http.StatusNoContent)

				resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/state/orders/o1", nil)
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})

			Convey("Then reset returns the context to empty", func() {
				resp, _ := doJSON(t, http.MethodPost, ts.URL+"/state/reset", nil)
				So(resp.StatusCode, ShouldEqual, http.StatusNoContent)

				resp, body := doJSON(t, http.MethodGet, ts.URL+"/state", nil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(string(body), ShouldContainSubstring, `"shift":null`)
			})
		})

		Convey("When posting an inverted shift window", func() {
			bad := model.Shift{StartAt: now.Add(time.Hour), EndAt: now}
			resp, body := doJSON(t, http.MethodPost, ts.URL+"/state/shift", bad)

			Convey("Then the write is rejected with a 422", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusUnprocessableEntity)
				So(string(body), ShouldContainSubstring, "end_at must be after start_at")
			})
		})
	})
}

func TestDurationDefault(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	Convey("Given an order posted without a duration", t, func() {
		shift := model.Shift{StartAt: now, EndAt: now.Add(12 * time.Hour)}
		body := map[string]any{
			"shift":    shift,
			"patients": []model.Patient{{ID: "p1", DisplayName: "Patient A", Acuity: model.AcuityLow}},
			"orders": []map[string]any{{
				"id": "o1", "patient_id": "p1", "type": "medication",
				"due_at": now.Add(time.Hour).Format(time.RFC3339),
			}},
		}

		Convey("Then the default duration applies", func() {
			resp, raw := doJSON(t, http.MethodPost, ts.URL+"/schedule/generate", body)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var sched model.Schedule
			So(json.Unmarshal(raw, &sched), ShouldBeNil)
			So(sched.Tasks, ShouldHaveLength, 1)
			So(sched.Tasks[0].EndsAt.Sub(sched.Tasks[0].StartsAt), ShouldEqual,
				time.Duration(model.DefaultDurationMinutes)*time.Minute)
		})
	})
}
