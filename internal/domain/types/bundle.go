package types

// Photo references an image in the local image store.
type Photo struct {
	Filename string `json:"filename"`
}

// HasFile reports whether p points at a stored image.
func (p *Photo) HasFile() bool { return p != nil && p.Filename != "" }

// Profile is the user's own identity summary.
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Photo     *Photo `json:"photo,omitempty"`
	PublicKey string `json:"publicKey,omitempty"`
}

// Connection is a peer in the user's social graph.
type Connection struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Score           int    `json:"score"`
	Photo           *Photo `json:"photo,omitempty"`
	SigningKey      string `json:"signingKey,omitempty"`
	ConnectionDate  int64  `json:"connectionDate,omitempty"`
	FlaggedAs       string `json:"flaggedAs,omitempty"`
	Status          string `json:"status,omitempty"`
	TrustedRecovery bool   `json:"trusted,omitempty"`
}

// Group is a group the user belongs to.
type Group struct {
	ID       string   `json:"id"`
	Name     string   `json:"name,omitempty"`
	Type     string   `json:"type,omitempty"`
	Members  []string `json:"members,omitempty"`
	Founders []string `json:"founders,omitempty"`
	Score    int      `json:"score,omitempty"`
	Photo    *Photo   `json:"photo,omitempty"`
}

// Bundle is the backed-up snapshot of profile, connections and groups.
//
// It is rebuilt from state on every write and replaced as a whole on restore.
type Bundle struct {
	Profile     *Profile     `json:"userData"`
	Connections []Connection `json:"connections"`
	Groups      []Group      `json:"groups"`
}

// GroupPhotoCount returns how many groups reference a stored photo.
func (b Bundle) GroupPhotoCount() int {
	n := 0
	for _, g := range b.Groups {
		if g.Photo.HasFile() {
			n++
		}
	}
	return n
}
