// Package trophy defines the achievement catalog and evaluates it against
// a user's activity.
package trophy

// RequirementType names a machine-checkable condition.
type RequirementType string

const (
	ReqTotalSpins           RequirementType = "total_spins"
	ReqListenedSpins        RequirementType = "listened_spins"
	ReqCurrentStreak        RequirementType = "current_streak"
	ReqLongestStreak        RequirementType = "longest_streak"
	ReqUniqueGenres         RequirementType = "unique_genres"
	ReqDiscoveryMode        RequirementType = "discovery_mode"
	ReqPerfectWeek          RequirementType = "perfect_week"
	ReqPerfectMonth         RequirementType = "perfect_month"
	ReqEarlyMorningSpins    RequirementType = "early_morning_spins"
	ReqSameArtistCompletion RequirementType = "same_artist_completion"
)

// Requirement is the condition a user must satisfy to earn a trophy.
// Mode is only set for ReqDiscoveryMode requirements.
type Requirement struct {
	Type   RequirementType `json:"type"`
	Target int             `json:"target"`
	Mode   string          `json:"mode,omitempty"`
}

// Trophy is a static achievement definition. The catalog is code, not rows;
// only earned instances are persisted.
type Trophy struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Tier        string      `json:"tier"`
	Requirement Requirement `json:"requirement"`
}

// Catalog returns the full trophy catalog.
func Catalog() []Trophy {
	return []Trophy{
		{ID: "first-spin", Name: "First Spin", Category: "spins", Tier: "bronze",
			Requirement: Requirement{Type: ReqTotalSpins, Target: 1}},
		{ID: "ten-spins", Name: "Getting Warmed Up", Category: "spins", Tier: "bronze",
			Requirement: Requirement{Type: ReqTotalSpins, Target: 10}},
		{ID: "fifty-spins", Name: "Regular Spinner", Category: "spins", Tier: "silver",
			Requirement: Requirement{Type: ReqTotalSpins, Target: 50}},
		{ID: "two-fifty-spins", Name: "Turntable Obsessive", Category: "spins", Tier: "gold",
			Requirement: Requirement{Type: ReqTotalSpins, Target: 250}},

		{ID: "first-listen", Name: "Full Side A and B", Category: "listens", Tier: "bronze",
			Requirement: Requirement{Type: ReqListenedSpins, Target: 1}},
		{ID: "twenty-five-listens", Name: "Deep Listener", Category: "listens", Tier: "silver",
			Requirement: Requirement{Type: ReqListenedSpins, Target: 25}},
		{ID: "hundred-listens", Name: "Album Devotee", Category: "listens", Tier: "gold",
			Requirement: Requirement{Type: ReqListenedSpins, Target: 100}},

		{ID: "streak-three", Name: "Three in a Row", Category: "streaks", Tier: "bronze",
			Requirement: Requirement{Type: ReqCurrentStreak, Target: 3}},
		{ID: "streak-fourteen", Name: "Fortnight of Sound", Category: "streaks", Tier: "silver",
			Requirement: Requirement{Type: ReqCurrentStreak, Target: 14}},
		{ID: "longest-thirty", Name: "Marathon Ears", Category: "streaks", Tier: "gold",
			Requirement: Requirement{Type: ReqLongestStreak, Target: 30}},
		{ID: "longest-hundred", Name: "Century of Days", Category: "streaks", Tier: "platinum",
			Requirement: Requirement{Type: ReqLongestStreak, Target: 100}},

		{ID: "five-genres", Name: "Genre Curious", Category: "explorer", Tier: "bronze",
			Requirement: Requirement{Type: ReqUniqueGenres, Target: 5}},
		{ID: "fifteen-genres", Name: "Genre Hopper", Category: "explorer", Tier: "silver",
			Requirement: Requirement{Type: ReqUniqueGenres, Target: 15}},
		{ID: "thirty-genres", Name: "Omnivore", Category: "explorer", Tier: "gold",
			Requirement: Requirement{Type: ReqUniqueGenres, Target: 30}},

		{ID: "roulette-ten", Name: "High Roller", Category: "modes", Tier: "silver",
			Requirement: Requirement{Type: ReqDiscoveryMode, Target: 10, Mode: "roulette"}},
		{ID: "discovery-ten", Name: "Cartographer", Category: "modes", Tier: "silver",
			Requirement: Requirement{Type: ReqDiscoveryMode, Target: 10, Mode: "discovery"}},
		{ID: "saved-twenty-five", Name: "Crate Digger", Category: "modes", Tier: "silver",
			Requirement: Requirement{Type: ReqDiscoveryMode, Target: 25, Mode: "saved"}},

		{ID: "perfect-week", Name: "Perfect Week", Category: "dedication", Tier: "silver",
			Requirement: Requirement{Type: ReqPerfectWeek, Target: 7}},
		{ID: "perfect-month", Name: "Perfect Month", Category: "dedication", Tier: "gold",
			Requirement: Requirement{Type: ReqPerfectMonth, Target: 30}},
		{ID: "early-bird", Name: "Early Bird", Category: "dedication", Tier: "silver",
			Requirement: Requirement{Type: ReqEarlyMorningSpins, Target: 10}},
		{ID: "completionist-three", Name: "Completionist", Category: "dedication", Tier: "silver",
			Requirement: Requirement{Type: ReqSameArtistCompletion, Target: 3}},
		{ID: "completionist-five", Name: "Discographer", Category: "dedication", Tier: "gold",
			Requirement: Requirement{Type: ReqSameArtistCompletion, Target: 5}},
	}
}

// ByID returns the catalog entry with the given ID, if any.
func ByID(id string) (Trophy, bool) {
	for _, t := range Catalog() {
		if t.ID == id {
			return t, true
		}
	}
	return Trophy{}, false
}
