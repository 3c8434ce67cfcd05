package rules

// Rule categories.
const (
	CategoryDispatch = "dispatch"
	CategoryFallback = "fallback"
)

// DefaultRules is the per-robot chain. The dispatch rules partition robots by
// state, so at most one of them fires; the fallback catches any robot nothing
// claimed.
func DefaultRules() []*Rule {
	return []*Rule{
		{
			Name:         "request-item",
			Priority:     100,
			Category:     CategoryDispatch,
			Exclusive:    true,
			ConditionSrc: `AtHome() && Carrying("NONE") && (CanRequest("RADAR") || CanRequest("TRAP"))`,
			Action:       ActionRequestItem,
		},
		{
			Name:         "place-radar",
			Priority:     90,
			Category:     CategoryDispatch,
			Exclusive:    true,
			ConditionSrc: `InState("field-radar")`,
			Action:       ActionPlaceRadar,
		},
		{
			Name:         "mine-or-trap",
			Priority:     80,
			Category:     CategoryDispatch,
			Exclusive:    true,
			ConditionSrc: `InState("field-empty", "field-trap")`,
			Action:       ActionMineOrTrap,
		},
		{
			Name:         "deliver-ore",
			Priority:     70,
			Category:     CategoryDispatch,
			Exclusive:    true,
			ConditionSrc: `Carrying("ORE")`,
			Action:       ActionDeliverOre,
		},
		{
			Name:         "explore-if-idle",
			Priority:     10,
			Category:     CategoryFallback,
			Exclusive:    true,
			ConditionSrc: `Idle`,
			Action:       ActionExplore,
		},
	}
}
