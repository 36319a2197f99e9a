package lichess_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/shatranj-dev/shatranj/internal/adapters/lichess"
)

func TestClientFetchGames(t *testing.T) {
	ctx := context.Background()

	Convey("Given an upstream that serves a transcript", t, func() {
		var gotPath, gotAccept, gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAccept = r.Header.Get("Accept")
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(singleGamePGN))
		}))
		defer server.Close()

		Convey("When games are fetched with a token", func() {
			client := lichess.NewClient(
				lichess.WithBaseURL(server.URL),
				lichess.WithToken("secret"),
			)
			pgn, err := client.FetchGames(ctx, "anna")

			Convey("Then the transcript comes back verbatim", func() {
				So(err, ShouldBeNil)
				So(pgn, ShouldEqual, singleGamePGN)
			})

			Convey("And the export endpoint is addressed correctly", func() {
				So(err, ShouldBeNil)
				So(gotPath, ShouldEqual, "/api/games/user/anna")
				So(gotAccept, ShouldEqual, "application/x-chess-pgn")
				So(gotAuth, ShouldEqual, "Bearer secret")
			})
		})

		Convey("When fetching without a token", func() {
			client := lichess.NewClient(lichess.WithBaseURL(server.URL))
			_, err := client.FetchGames(ctx, "anna")

			Convey("Then no authorization header is sent", func() {
				So(err, ShouldBeNil)
				So(gotAuth, ShouldBeEmpty)
			})
		})

		Convey("When a cache directory is configured", func() {
			cacheDir := t.TempDir()
			client := lichess.NewClient(
				lichess.WithBaseURL(server.URL),
				lichess.WithCacheDir(cacheDir),
			)
			_, err := client.FetchGames(ctx, "anna")

			Convey("Then the raw transcript is archived per username", func() {
				So(err, ShouldBeNil)
				archived, readErr := os.ReadFile(filepath.Join(cacheDir, "anna.pgn"))
				So(readErr, ShouldBeNil)
				So(string(archived), ShouldEqual, singleGamePGN)
			})
		})

		Convey("When the username is blank", func() {
			client := lichess.NewClient(lichess.WithBaseURL(server.URL))
			_, err := client.FetchGames(ctx, "   ")

			Convey("Then the fetch is rejected before going upstream", func() {
				So(err, ShouldWrap, lichess.ErrInvalidUsername)
			})
		})
	})

	Convey("Given an upstream that rejects the request", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "not found", http.StatusNotFound)
		}))
		defer server.Close()

		Convey("When games are fetched", func() {
			client := lichess.NewClient(lichess.WithBaseURL(server.URL))
			_, err := client.FetchGames(ctx, "ghost")

			Convey("Then the failure surfaces as an upstream error", func() {
				So(err, ShouldWrap, lichess.ErrUpstream)
			})
		})
	})

	Convey("Given an unreachable upstream", t, func() {
		client := lichess.NewClient(lichess.WithBaseURL("http://127.0.0.1:1"))

		Convey("When games are fetched", func() {
			_, err := client.FetchGames(ctx, "anna")

			Convey("Then the transport failure surfaces as an upstream error", func() {
				So(err, ShouldWrap, lichess.ErrUpstream)
			})
		})
	})
}
