package models

// Influencer sind die Referenzdaten zu einem Account. Sie werden nur gelesen.
type Influencer struct {
	AccountName       string `json:"account_name"`
	FullName          string `json:"fullName"`
	InputURL          string `json:"inputUrl"`
	BusinessCategory  string `json:"businessCategoryName"`
	FollowersCount    int64  `json:"followersCount"`
	Biography         string `json:"biography"`
	AdditionalContent string `json:"additional_content"`
}

// InfluencerTable indiziert Influencer nach AccountName.
type InfluencerTable map[string]Influencer

// Lookup sucht einen Influencer per AccountName.
func (t InfluencerTable) Lookup(accountName string) (Influencer, bool) {
	inf, ok := t[accountName]
	return inf, ok
}
