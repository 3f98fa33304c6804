package whoscored

import "strings"

// StagePolicy decides which tournament stages of a competition get walked.
type StagePolicy func(stageName string) bool

// stagePolicies holds the per-competition exceptions. Competitions not listed
// here walk every stage.
var stagePolicies = map[string]StagePolicy{
	// Continental cups: only the group phase and the knockout phase carry
	// full match centre data.
	"Champions League": groupOrFinalStage,
	"Europa League":    groupOrFinalStage,
	// MLS regional group tables duplicate the overall schedule.
	"Major League Soccer": excludeRegionalGroups,
}

// Stage option labels carry tournament prefixes ("UEFA Champions League:
// Group Stages"), so both tokens match by substring.
func groupOrFinalStage(stageName string) bool {
	return strings.Contains(stageName, "Group Stages") || strings.Contains(stageName, "Final Stage")
}

func excludeRegionalGroups(stageName string) bool {
	return !strings.Contains(stageName, "Grp. ")
}

// StageAllowed reports whether a stage of the given competition should be
// included in the walk.
func StageAllowed(competition, stageName string) bool {
	if policy, ok := stagePolicies[competition]; ok {
		return policy(stageName)
	}
	return true
}

// NameOverride renames a tournament entry whose on-page link text differs
// from the name people search by.
type NameOverride struct {
	HrefFragment string
	Name         string
}

var nameOverrides = []NameOverride{
	{HrefFragment: "Russia", Name: "Russian Premier League"},
}

// CompetitionName resolves the display name for a tournament link, applying
// the override table.
func CompetitionName(linkText, href string) string {
	for _, o := range nameOverrides {
		if strings.Contains(href, o.HrefFragment) {
			return o.Name
		}
	}
	return strings.TrimSpace(linkText)
}
