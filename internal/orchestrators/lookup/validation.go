package lookup

import (
	"regexp"
	"strings"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

var numericIdentifier = regexp.MustCompile(`^\d+$`)

// validateQuery trims the query and returns the identifier to fetch
func validateQuery(query string, nameOnly bool) (string, error) {
	identifier := strings.TrimSpace(query)
	if identifier == "" {
		return "", errors.InvalidArgument(msgEmptyQuery).WithMeta("field", "query")
	}
	if nameOnly && numericIdentifier.MatchString(identifier) {
		return "", errors.InvalidArgument(msgIDNotAllowed).
			WithMeta("field", "query").
			WithMeta("query", identifier)
	}
	return identifier, nil
}
