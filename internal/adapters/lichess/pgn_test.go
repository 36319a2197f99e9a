package lichess_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/shatranj-dev/shatranj/internal/adapters/lichess"
)

const singleGamePGN = `[Event "Rated Blitz game"]
[White "anna"]
[Black "boris"]
[Result "1-0"]
[ECO "B20"]
[Opening "Sicilian Defence"]
[TimeControl "300+3"]

1. e4 c5 2. Nf3 1-0
`

const twoGamePGN = singleGamePGN + `
[Event "Rated Rapid game"]
[White "boris"]
[Black "carla"]
[Result "1/2-1/2"]
[ECO "C50"]
[Opening "Italian Game"]
[TimeControl "600+5"]

1. e4 e5 2. Nf3 Nc6 3. Bc4 1/2-1/2
`

func TestParsePGN(t *testing.T) {
	Convey("Given a single-game transcript", t, func() {
		Convey("When it is parsed", func() {
			games, err := lichess.ParsePGN(singleGamePGN)

			Convey("Then the headers map onto the record", func() {
				So(err, ShouldBeNil)
				So(games, ShouldHaveLength, 1)
				So(games[0].White, ShouldEqual, "anna")
				So(games[0].Black, ShouldEqual, "boris")
				So(games[0].Result, ShouldEqual, "1-0")
				So(games[0].ECO, ShouldEqual, "B20")
				So(games[0].Opening, ShouldEqual, "Sicilian Defence")
				So(games[0].TimeControl, ShouldEqual, "300+3")
			})

			Convey("And moves are re-encoded in coordinate notation", func() {
				So(err, ShouldBeNil)
				So(games[0].Moves, ShouldResemble, []string{"e2e4", "c7c5", "g1f3"})
			})
		})
	})

	Convey("Given a transcript holding two games", t, func() {
		Convey("When it is parsed", func() {
			games, err := lichess.ParsePGN(twoGamePGN)

			Convey("Then both games come back in order", func() {
				So(err, ShouldBeNil)
				So(games, ShouldHaveLength, 2)
				So(games[0].White, ShouldEqual, "anna")
				So(games[1].White, ShouldEqual, "boris")
				So(games[1].Result, ShouldEqual, "1/2-1/2")
				So(games[1].Moves, ShouldResemble, []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1c4"})
			})
		})
	})

	Convey("Given an empty transcript", t, func() {
		Convey("When it is parsed", func() {
			games, err := lichess.ParsePGN("   \n\n ")

			Convey("Then no games and no error come back", func() {
				So(err, ShouldBeNil)
				So(games, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a transcript that is not PGN at all", t, func() {
		Convey("When it is parsed", func() {
			games, _ := lichess.ParsePGN("this is not a chess transcript")

			Convey("Then no games come back", func() {
				So(games, ShouldBeEmpty)
			})
		})
	})
}
