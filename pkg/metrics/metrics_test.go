package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func counterValue(reg *prometheus.Registry, name string) float64 {
	families, err := reg.Gather()
	if err != nil {
		return -1
	}
	var total float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestManagerCreation(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with custom options", func() {
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 10, 100}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should register its collectors", func() {
				So(manager, ShouldNotBeNil)
				manager.RecordRPC("/skillswap.v1.SkillSwapService/Login", "OK", 3)
				So(counterValue(registry, "test_unit_rpc_requests_total"), ShouldEqual, 1)
			})
		})
	})
}

func TestManagerRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When recording session activity", func() {
			m.RecordSessionProposed()
			m.RecordSessionTransition("pending", "confirmed")
			m.RecordSessionTransition("confirmed", "completed")
			m.RecordTransitionConflict()
			m.RecordThreadFailure()

			Convey("Then the counters reflect it", func() {
				So(counterValue(registry, "skillswap_sessions_proposed_total"), ShouldEqual, 1)
				So(counterValue(registry, "skillswap_sessions_transitions_total"), ShouldEqual, 2)
				So(counterValue(registry, "skillswap_sessions_transition_conflicts_total"), ShouldEqual, 1)
				So(counterValue(registry, "skillswap_sessions_thread_ensure_failures_total"), ShouldEqual, 1)
			})
		})

		Convey("When recording ratings, matches and chat", func() {
			m.RecordRatingSubmitted()
			m.RecordRatingSubmitted()
			m.RecordAggregateFailure()
			m.RecordMessageSent()
			m.RecordRateLimited("/skillswap.v1.SkillSwapService/Register")

			Convey("Then the counters reflect it", func() {
				So(counterValue(registry, "skillswap_ratings_submitted_total"), ShouldEqual, 2)
				So(counterValue(registry, "skillswap_ratings_aggregate_failures_total"), ShouldEqual, 1)
				So(counterValue(registry, "skillswap_chat_messages_sent_total"), ShouldEqual, 1)
				So(counterValue(registry, "skillswap_api_rate_limited_total"), ShouldEqual, 1)
				So(func() { m.RecordMatchResults(3) }, ShouldNotPanic)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then package-level recorders should not panic", func() {
			So(func() {
				RecordRPC("/skillswap.v1.SkillSwapService/GetProfile", "OK", 1.5)
				RecordRateLimited("/skillswap.v1.SkillSwapService/Login")
				RecordSessionProposed()
				RecordSessionTransition("pending", "rejected")
				RecordTransitionConflict()
				RecordThreadFailure()
				RecordRatingSubmitted()
				RecordAggregateFailure()
				RecordMatchResults(0)
				RecordMessageSent()
			}, ShouldNotPanic)
		})

		Convey("Then the handler exposes them", func() {
			RecordSessionProposed()
			rec := httptest.NewRecorder()
			Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

			So(rec.Code, ShouldEqual, 200)
			So(strings.Contains(rec.Body.String(), "skillswap_sessions_proposed_total"), ShouldBeTrue)
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
