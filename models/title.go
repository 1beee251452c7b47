package models

// TitleRarity orders title tiers: common < rare < epic < legendary < mythic.
type TitleRarity string

const (
	TitleCommon    TitleRarity = "common"
	TitleRare      TitleRarity = "rare"
	TitleEpic      TitleRarity = "epic"
	TitleLegendary TitleRarity = "legendary"
	TitleMythic    TitleRarity = "mythic"
)

// RequirementType tags what a title's unlock requirement is measured against.
// Special titles are never auto-unlocked; they require an explicit admin grant.
type RequirementType string

const (
	RequireLevel        RequirementType = "level"
	RequireXP           RequirementType = "xp"
	RequireAchievements RequirementType = "achievements"
	RequireStreak       RequirementType = "streak"
	RequireTasks        RequirementType = "tasks"
	RequireGoals        RequirementType = "goals"
	RequireSpecial      RequirementType = "special"
)

// TitleRequirement is met when the tagged stat reaches Value.
type TitleRequirement struct {
	Type  RequirementType `json:"type"`
	Value int64           `json:"value"`
}

// Title is a static cosmetic catalog entry. At most one title is active per user.
type Title struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Rarity      TitleRarity      `json:"rarity"`
	Requirement TitleRequirement `json:"requirement"`
	CoinPrice   int64            `json:"coin_price,omitempty"` // 0 = not purchasable in the shop
}

// StarterTitleID is unlocked and active on every freshly created progress record.
const StarterTitleID = "newcomer"

var TitleCatalog = []Title{
	{ID: StarterTitleID, Name: "Newcomer", Rarity: TitleCommon, Requirement: TitleRequirement{Type: RequireLevel, Value: 1}},
	{ID: "apprentice", Name: "Apprentice", Rarity: TitleCommon, Requirement: TitleRequirement{Type: RequireLevel, Value: 5}},
	{ID: "veteran", Name: "Veteran", Rarity: TitleRare, Requirement: TitleRequirement{Type: RequireLevel, Value: 15}},
	{ID: "taskmaster", Name: "Taskmaster", Rarity: TitleRare, Requirement: TitleRequirement{Type: RequireTasks, Value: 100}},
	{ID: "goal_hunter", Name: "Goal Hunter", Rarity: TitleRare, Requirement: TitleRequirement{Type: RequireGoals, Value: 25}},
	{ID: "flame_keeper", Name: "Flame Keeper", Rarity: TitleEpic, Requirement: TitleRequirement{Type: RequireStreak, Value: 30}},
	{ID: "trophy_hunter", Name: "Trophy Hunter", Rarity: TitleEpic, Requirement: TitleRequirement{Type: RequireAchievements, Value: 10}},
	{ID: "grinder", Name: "The Grinder", Rarity: TitleLegendary, Requirement: TitleRequirement{Type: RequireXP, Value: 50_000}},
	{ID: "high_roller", Name: "High Roller", Rarity: TitleEpic, Requirement: TitleRequirement{Type: RequireSpecial}, CoinPrice: 2500},
	{ID: "founder", Name: "Founder", Rarity: TitleMythic, Requirement: TitleRequirement{Type: RequireSpecial}},
	{ID: "champion", Name: "Weekly Champion", Rarity: TitleLegendary, Requirement: TitleRequirement{Type: RequireSpecial}},
}

// TitleByID returns the catalog entry with the given id, or ok=false.
func TitleByID(id string) (Title, bool) {
	for _, t := range TitleCatalog {
		if t.ID == id {
			return t, true
		}
	}
	return Title{}, false
}
