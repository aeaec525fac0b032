package storage

import "github.com/goccy/go-json"

// Notification is the wire form of a change broadcast by backends that
// publish over a channel (PostgreSQL NOTIFY, Redis PUBLISH). Value is only
// carried where the transport allows it.
type Notification struct {
	Account string `json:"account"`
	Key     Key    `json:"key"`
	Origin  string `json:"origin"`
	Deleted bool   `json:"deleted,omitempty"`
	Value   []byte `json:"value,omitempty"`
}

// Encode marshals n.
func (n Notification) Encode() (string, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// DecodeNotification parses a payload produced by Encode.
func DecodeNotification(payload string) (Notification, error) {
	var n Notification
	err := json.Unmarshal([]byte(payload), &n)

	return n, err
}

// Change converts n into the Change seen by a subscriber with origin self.
func (n Notification) Change(self string) Change {
	return Change{
		Account: n.Account,
		Key:     n.Key,
		Value:   n.Value,
		Origin:  n.Origin,
		Remote:  n.Origin != self,
	}
}
