package hooks

import (
	"fmt"
	"regexp"
	"strconv"
)

// outdatedYearWindow is how many years back a year in a search query is
// considered stale rather than historical.
const outdatedYearWindow = 10

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

func evaluateOutdatedYearInSearch(rctx *RuleContext) *Violation {
	query, ok := rctx.Event.GetStringArg("query")
	if !ok {
		return nil
	}

	currentYear := rctx.Now().Year()
	for _, match := range yearPattern.FindAllString(query, -1) {
		year, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		if year >= currentYear || year < currentYear-outdatedYearWindow {
			continue
		}
		return &Violation{
			Message: fmt.Sprintf("The search query contains the outdated year %d. The current year is %d; drop the year or use the current one.", year, currentYear),
		}
	}

	return nil
}
