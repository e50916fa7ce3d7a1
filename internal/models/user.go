package models

// User is the single in-process profile: display identity plus subscription
// and listening bookkeeping. Subscriptions hold podcast IDs, History holds
// episode or recording IDs in listen order.
type User struct {
	Name          string   `json:"name"`
	AvatarURL     string   `json:"avatar_url"`
	Subscriptions []string `json:"subscriptions"`
	History       []string `json:"history"`
}
