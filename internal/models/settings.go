package models

import "github.com/google/uuid"

// SettingsID identifies the single settings row.
var SettingsID = uuid.MustParse("6c7f1f2e-0000-4000-8000-676966746f6c")

// Settings is the global configuration document: external API keys and the
// recommendation pipeline parameters. Mutated only by admins.
type Settings struct {
	BaseModel
	BrevoKey       string `json:"BREVO_KEY"`
	RainforestKey  string `json:"RAINFOREST_API_KEY"`
	GPTKey         string `json:"GPT_API_KEY"`
	AffiliateTag   string `json:"AFFILIATE_TAG"`
	GiftCount      int    `json:"NO_OF_GIFTS"`
	PromptTemplate string `json:"PROMPT_TEMPLATE"`
}

// DefaultPromptTemplate is the recommendation prompt used until an admin
// overrides it. Placeholders are substituted by the recommendation service.
const DefaultPromptTemplate = `Generate a list of {noOfGifts} gift ideas with brand name and price in JSON format for a person with the following characteristics:Preferences:{preferences}, Preferred Cost: {preferredCost}, Date of Birth: {dob}, Interests: [{interests}]. Give answer in JSON format like this: [{"name": "Product 1", "brand": "Brand 1"}, {"name": "Product 2", "brand": "Brand 2"}]`

// DefaultSettings returns the settings row used on first boot and on reset.
func DefaultSettings() Settings {
	s := Settings{
		GiftCount:      5,
		PromptTemplate: DefaultPromptTemplate,
	}
	s.ID = SettingsID
	return s
}
