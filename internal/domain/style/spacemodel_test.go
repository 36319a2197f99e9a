package style_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/shatranj-dev/shatranj/internal/domain/model"
	"github.com/shatranj-dev/shatranj/internal/domain/style"
)

// refVector builds a reference vector that differs only on the average
// move count, so style distance reduces to one axis.
func refVector(player string, avgMoves float64) model.StyleVector {
	return model.StyleVector{
		Player:   player,
		AvgMoves: avgMoves,
	}
}

func TestModelFit(t *testing.T) {
	Convey("Given a small reference population", t, func() {
		vectors := []model.StyleVector{
			refVector("anna", 40),
			refVector("boris", 60),
			refVector("carla", 80),
		}

		Convey("When the model is fitted", func() {
			m, err := style.Fit(vectors, 2, 42)

			Convey("Then size and cluster count reflect the population", func() {
				So(err, ShouldBeNil)
				So(m.Size(), ShouldEqual, 3)
				So(m.Clusters(), ShouldEqual, 2)
				So(m.Labels(), ShouldHaveLength, 3)
				So(m.Scaler(), ShouldNotBeNil)
			})
		})

		Convey("When more clusters than players are requested", func() {
			m, err := style.Fit(vectors, 50, 42)

			Convey("Then the cluster count is clamped", func() {
				So(err, ShouldBeNil)
				So(m.Clusters(), ShouldEqual, 3)
			})
		})

		Convey("When fitted twice with the same seed", func() {
			a, errA := style.Fit(vectors, 2, 42)
			b, errB := style.Fit(vectors, 2, 42)

			Convey("Then cluster labels are identical", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(b.Labels(), ShouldResemble, a.Labels())
			})
		})
	})

	Convey("Given an empty population", t, func() {
		Convey("When the model is fitted", func() {
			_, err := style.Fit(nil, 2, 42)
			So(err, ShouldEqual, style.ErrEmptyPopulation)
		})
	})
}

func TestModelNeighbors(t *testing.T) {
	Convey("Given a fitted model over three players", t, func() {
		vectors := []model.StyleVector{
			refVector("anna", 40),
			refVector("boris", 60),
			refVector("carla", 80),
		}
		m, err := style.Fit(vectors, 2, 42)
		So(err, ShouldBeNil)

		Convey("When querying with a vector equal to one player", func() {
			neighbors := m.Neighbors(refVector("query", 60), 2)

			Convey("Then that player is the closest match at distance zero", func() {
				So(neighbors, ShouldHaveLength, 2)
				So(neighbors[0].Player, ShouldEqual, "boris")
				So(neighbors[0].Distance, ShouldAlmostEqual, 0.0, 1e-9)
				So(neighbors[1].Distance, ShouldBeGreaterThan, neighbors[0].Distance)
			})
		})

		Convey("When querying off to one side", func() {
			neighbors := m.Neighbors(refVector("query", 35), 3)

			Convey("Then distances come back ascending", func() {
				So(neighbors, ShouldHaveLength, 3)
				So(neighbors[0].Player, ShouldEqual, "anna")
				So(neighbors[1].Player, ShouldEqual, "boris")
				So(neighbors[2].Player, ShouldEqual, "carla")
				So(neighbors[0].Distance, ShouldBeLessThanOrEqualTo, neighbors[1].Distance)
				So(neighbors[1].Distance, ShouldBeLessThanOrEqualTo, neighbors[2].Distance)
			})
		})

		Convey("When more neighbors are requested than players exist", func() {
			neighbors := m.Neighbors(refVector("query", 60), 5)

			Convey("Then the whole population comes back", func() {
				So(neighbors, ShouldHaveLength, 3)
			})
		})

		Convey("When zero neighbors are requested", func() {
			So(m.Neighbors(refVector("query", 60), 0), ShouldBeNil)
		})

		Convey("When equidistant candidates tie", func() {
			// 50 sits exactly between anna (40) and boris (60).
			neighbors := m.Neighbors(refVector("query", 50), 2)

			Convey("Then the original reference order breaks the tie", func() {
				So(neighbors, ShouldHaveLength, 2)
				So(neighbors[0].Player, ShouldEqual, "anna")
				So(neighbors[1].Player, ShouldEqual, "boris")
			})
		})
	})
}
