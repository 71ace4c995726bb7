package models

const (
	FactionDefaultPrimaryColor   = "#000000"
	FactionDefaultSecondaryColor = "#FFFFFF"
)

type FactionLeader struct {
	Name    string  `json:"name"`
	Title   *string `json:"title"`
	Elected *bool   `json:"elected"`
}

type FactionMembership struct {
	Open             *bool   `json:"open"`
	LimitedTime      *bool   `json:"limited_time"`
	JoinRequirements *string `json:"join_requirements"`
}

// Faction is the shape of one record in the canonical factions data file.
// Records loaded from the content database fallback are mapped into the
// same shape, so consumers never see where a faction came from.
type Faction struct {
	Slug             string             `json:"slug"`
	Name             string             `json:"name" validate:"required"`
	Description      string             `json:"description"`
	Ethos            string             `json:"ethos"`
	PrimaryMission   string             `json:"primary_mission"`
	Colors           []string           `json:"colors"`
	Alignment        string             `json:"alignment"`
	Leader           *FactionLeader     `json:"leader"`
	Membership       *FactionMembership `json:"membership"`
	AssociatedTokens []string           `json:"associated_tokens"`
	Perks            []string           `json:"perks"`
	Forbidden        bool               `json:"forbidden"`
}
