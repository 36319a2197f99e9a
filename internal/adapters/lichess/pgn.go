package lichess

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"

	"github.com/shatranj-dev/shatranj/internal/domain/model"
)

// ParsePGN parses a multi-game movetext transcript into GameRecords.
// Header metadata is lifted from the PGN tag pairs and moves are
// re-encoded in coordinate notation for the move scanner. Games that
// the parser cannot read are dropped; the transcript only fails as a
// whole when nothing at all could be parsed from a non-empty input.
func ParsePGN(pgn string) ([]model.GameRecord, error) {
	trimmed := strings.TrimSpace(pgn)
	if trimmed == "" {
		return nil, nil
	}

	scanner := chess.NewScanner(strings.NewReader(pgn))
	var games []model.GameRecord

	for scanner.Scan() {
		game := scanner.Next()
		if game == nil {
			continue
		}

		moves := game.Moves()
		tokens := make([]string, 0, len(moves))
		for _, m := range moves {
			tokens = append(tokens, m.String())
		}

		result := tagValue(game, "Result")
		if result == "" || result == "*" {
			result = game.Outcome().String()
		}

		games = append(games, model.GameRecord{
			White:       tagValue(game, "White"),
			Black:       tagValue(game, "Black"),
			Result:      result,
			ECO:         tagValue(game, "ECO"),
			Opening:     tagValue(game, "Opening"),
			TimeControl: tagValue(game, "TimeControl"),
			Moves:       tokens,
		})
	}

	if err := scanner.Err(); err != nil && len(games) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrParsePGN, err)
	}
	return games, nil
}

func tagValue(game *chess.Game, key string) string {
	if tp := game.GetTagPair(key); tp != nil {
		return tp.Value
	}
	return ""
}
