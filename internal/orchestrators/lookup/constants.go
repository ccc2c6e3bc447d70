package lookup

import "time"

// DefaultSessionTTL is how long an idle widget session is kept
const DefaultSessionTTL = 30 * time.Minute

// User-facing messages
const (
	msgEmptyQuery      = "Please enter a name or ID."
	msgIDNotAllowed    = "Search by ID is not allowed. Use the Pokémon's name."
	msgNotFound        = "Pokémon not found. Check the name or ID."
	msgDefaultFailed   = "Could not load the initial Pokémon."
	msgDefaultLoading  = "Loading initial Pokémon..."
	msgFoundFormat     = "%s found!"
	titleFound         = "Pokémon Found!"
	titleDefaultFormat = "Initial Pokémon (%s)"
	titleSearching     = "Searching..."
	titleNotFound      = "Pokémon Not Found"
	titleLoadError     = "Load Error"
)
