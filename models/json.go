package models

import "encoding/json"

// ref renders a reference field: the loaded summary when present, the bare
// id otherwise.
func ref[T any](id string, summary *T) any {
	if summary == nil {
		return id
	}
	return summary
}

// MarshalJSON writes user and restaurant in place, expanded when loaded.
func (o Order) MarshalJSON() ([]byte, error) {
	type plain Order
	return json.Marshal(struct {
		plain
		User       any `json:"user"`
		Restaurant any `json:"restaurant"`
	}{plain(o), ref(o.UserID, o.User), ref(o.RestaurantID, o.Restaurant)})
}

// MarshalJSON writes owner in place, expanded when loaded.
func (r Restaurant) MarshalJSON() ([]byte, error) {
	type plain Restaurant
	return json.Marshal(struct {
		plain
		Owner any `json:"owner"`
	}{plain(r), ref(r.OwnerID, r.Owner)})
}

// MarshalJSON writes restaurant in place, expanded when loaded.
func (f Food) MarshalJSON() ([]byte, error) {
	type plain Food
	return json.Marshal(struct {
		plain
		Restaurant any `json:"restaurant"`
	}{plain(f), ref(f.RestaurantID, f.Restaurant)})
}
