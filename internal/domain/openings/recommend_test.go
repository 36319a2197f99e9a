package openings_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/shatranj-dev/shatranj/internal/domain/model"
	"github.com/shatranj-dev/shatranj/internal/domain/openings"
)

func TestRecommend(t *testing.T) {
	whiteStats := []model.OpeningStat{
		{ECO: "B20", Opening: "Sicilian Defence", GamesPlayed: 10, ScorePct: 0.7, Weight: 0.73},
		{ECO: "C50", Opening: "Italian Game", GamesPlayed: 8, ScorePct: 0.6, Weight: 0.57},
		{ECO: "D02", Opening: "Queen's Pawn Game", GamesPlayed: 4, ScorePct: 0.5, Weight: 0.35},
		{ECO: "A04", Opening: "Zukertort Opening", GamesPlayed: 3, ScorePct: 0.5, Weight: 0.30},
	}

	Convey("Given ranked stat tables for both sides", t, func() {
		blackStats := []model.OpeningStat{
			{ECO: "B10", Opening: "Caro-Kann Defence", GamesPlayed: 5, ScorePct: 0.6, Weight: 0.47},
		}

		Convey("When the top three are selected", func() {
			white, black := openings.Recommend(whiteStats, blackStats, 3)

			Convey("Then each side is truncated independently", func() {
				So(white, ShouldHaveLength, 3)
				So(black, ShouldHaveLength, 1) // shorter than n, returned whole
			})

			Convey("And rank order is preserved in caller-facing form", func() {
				So(white[0].ECO, ShouldEqual, "B20")
				So(white[0].Opening, ShouldEqual, "Sicilian Defence")
				So(white[0].GamesPlayed, ShouldEqual, 10)
				So(white[0].ScorePct, ShouldEqual, 0.7)
				So(white[2].ECO, ShouldEqual, "D02")
			})
		})
	})

	Convey("Given empty stat tables", t, func() {
		Convey("When recommendations are selected", func() {
			white, black := openings.Recommend(nil, nil, 3)

			Convey("Then both sides come back empty without error", func() {
				So(white, ShouldBeEmpty)
				So(black, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a non-positive selection size", t, func() {
		Convey("When zero rows are requested", func() {
			white, black := openings.Recommend(whiteStats, nil, 0)
			So(white, ShouldBeEmpty)
			So(black, ShouldBeEmpty)
		})
	})
}
