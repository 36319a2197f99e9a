package api_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/shatranj-dev/shatranj/internal/adapters/http/api"
	"github.com/shatranj-dev/shatranj/internal/adapters/lichess"
	"github.com/shatranj-dev/shatranj/internal/app"
	"github.com/shatranj-dev/shatranj/internal/domain/model"
)

// stubService cans the recommendation result or failure per test case.
type stubService struct {
	result model.RecommendResult
	err    error

	gotUsername    string
	gotTimeControl string
}

func (s *stubService) Recommend(_ context.Context, username, timeControl string) (model.RecommendResult, error) {
	s.gotUsername = username
	s.gotTimeControl = timeControl
	return s.result, s.err
}

func (s *stubService) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true, "reference_games": 3}
}

func newTestMux(svc *stubService) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return mux
}

func TestRecommendEndpoint(t *testing.T) {
	Convey("Given a service that recommends successfully", t, func() {
		svc := &stubService{
			result: model.RecommendResult{
				TopPeers: []string{"p1", "p2"},
				White: []model.Recommendation{
					{ECO: "B20", Opening: "Sicilian Defence", GamesPlayed: 10, ScorePct: 0.7},
				},
				Black: []model.Recommendation{},
			},
		}
		mux := newTestMux(svc)

		Convey("When POST /recommend/{username} is called", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/recommend/anna?time_control=300", nil))

			Convey("Then the result is returned as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldStartWith, "application/json")

				var body model.RecommendResult
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body.TopPeers, ShouldResemble, []string{"p1", "p2"})
				So(body.White, ShouldHaveLength, 1)
				So(body.White[0].ECO, ShouldEqual, "B20")
			})

			Convey("And path and query parameters reach the service", func() {
				So(svc.gotUsername, ShouldEqual, "anna")
				So(svc.gotTimeControl, ShouldEqual, "300")
			})

			Convey("And a correlation id is echoed back", func() {
				So(rec.Header().Get("X-Request-Id"), ShouldNotBeEmpty)
			})

			Convey("And the JSON field names follow the response contract", func() {
				body := rec.Body.String()
				So(body, ShouldContainSubstring, `"top_peers"`)
				So(body, ShouldContainSubstring, `"white_recommendations"`)
				So(body, ShouldContainSubstring, `"black_recommendations"`)
			})
		})

		Convey("When the client sends its own correlation id", func() {
			req := httptest.NewRequest(http.MethodPost, "/recommend/anna", nil)
			req.Header.Set("X-Request-Id", "req-42")
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it is preserved", func() {
				So(rec.Header().Get("X-Request-Id"), ShouldEqual, "req-42")
			})
		})

		Convey("When the method is not POST", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recommend/anna", nil))

			Convey("Then the route does not exist", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the username is missing from the path", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/recommend/", nil))

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "invalid_input")
			})
		})
	})

	Convey("Given failing services", t, func() {
		cases := []struct {
			name       string
			err        error
			wantStatus int
			wantCode   string
		}{
			{"invalid player", app.ErrInvalidPlayer, http.StatusBadRequest, "invalid_input"},
			{"upstream failure", fmt.Errorf("fetch: %w", lichess.ErrUpstream), http.StatusBadGateway, "upstream_fetch_failed"},
			{"no games", fmt.Errorf("x: %w", app.ErrNoGames), http.StatusNotFound, "no_games"},
			{"not started", app.ErrNotStarted, http.StatusServiceUnavailable, "not_ready"},
			{"unknown failure", fmt.Errorf("boom"), http.StatusInternalServerError, "internal_error"},
		}

		for _, tc := range cases {
			tc := tc
			Convey("When the service fails with "+tc.name, func() {
				mux := newTestMux(&stubService{err: tc.err})
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/recommend/anna", nil))

				Convey("Then the error is classified", func() {
					So(rec.Code, ShouldEqual, tc.wantStatus)
					So(rec.Body.String(), ShouldContainSubstring, tc.wantCode)
				})
			})
		}
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(&stubService{})

		Convey("When GET /stats is called", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

			Convey("Then the service statistics come back as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var body map[string]interface{}
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["started"], ShouldBeTrue)
				So(body["reference_games"], ShouldEqual, 3)
			})
		})

		Convey("When /stats is called with POST", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/stats", nil))
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestHealthEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(&stubService{})

		Convey("When GET /healthz is called", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			Convey("Then metrics are served in exposition format", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(strings.Contains(rec.Body.String(), "shatranj_recommender"), ShouldBeTrue)
			})
		})
	})
}
