package dashboard

// Session is the read side of the authentication provider the dashboard renders for.
// Implementations are owned by the host application; the dashboard never mutates them.
type Session interface {
	// User returns the signed-in user, or nil when nobody is signed in.
	User() *User
	// CanAccessModule reports whether the session may see actions gated by moduleKey.
	CanAccessModule(moduleKey string) bool
}

// User is the subset of the session user rendered by the dashboard.
type User struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Stat is a summary metric card.
type Stat struct {
	Name    string `json:"name" yaml:"name"`
	Value   string `json:"value" yaml:"value"`
	Icon    string `json:"icon" yaml:"icon"`
	Color   string `json:"color" yaml:"color"`
	BgColor string `json:"bg_color" yaml:"bg_color"`
}

// QuickAction is a shortcut link shown only to sessions that can access RequiresModule.
type QuickAction struct {
	Name           string `json:"name" yaml:"name"`
	Href           string `json:"href" yaml:"href"`
	Icon           string `json:"icon" yaml:"icon"`
	Color          string `json:"color" yaml:"color"`
	BgColor        string `json:"bg_color" yaml:"bg_color"`
	RequiresModule string `json:"requires_module" yaml:"requires_module"`
}

// ActivityType classifies an activity entry for its timeline marker.
type ActivityType string

const (
	ActivitySuccess ActivityType = "success"
	ActivityInfo    ActivityType = "info"
)

// ActivityEntry is one row of the recent activity timeline. Slices of entries are
// displayed in the order given.
type ActivityEntry struct {
	Action string       `json:"action" yaml:"action"`
	User   string       `json:"user" yaml:"user"`
	Time   string       `json:"time" yaml:"time"`
	Type   ActivityType `json:"type" yaml:"type"`
}

// StatusIndicator is a static row of the system status panel.
type StatusIndicator struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
	Color       string `json:"color" yaml:"color"`
	BgColor     string `json:"bg_color" yaml:"bg_color"`
}
