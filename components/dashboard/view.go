package dashboard

import (
	"github.com/ettle/strcase"
)

const (
	headingDashboard    = "Dashboard"
	headingQuickActions = "Acciones Rápidas"
	headingActivity     = "Actividad Reciente"
	headingStatus       = "Estado del Sistema"

	markerSuccessClass = "bg-green-500"
	markerInfoClass    = "bg-blue-500"
)

// ViewOptions carries render-time switches supplied by the host application.
type ViewOptions struct {
	// DebugBuild mounts the diagnostics panel. Hosts derive it from their build mode.
	DebugBuild bool
}

// View is the resolved dashboard, ready for a template or a JSON client.
type View struct {
	Title        string        `json:"title"`
	Greeting     string        `json:"greeting"`
	Stats        []StatCard    `json:"stats"`
	QuickActions ActionsPanel  `json:"quick_actions"`
	Activity     ActivityPanel `json:"activity"`
	Status       StatusPanel   `json:"status"`
	Diagnostics  *Diagnostics  `json:"diagnostics,omitempty"`
}

// StatCard is a rendered Stat.
type StatCard struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Value   string `json:"value"`
	Icon    string `json:"icon"`
	Color   string `json:"color"`
	BgColor string `json:"bg_color"`
}

// ActionsPanel lists the quick actions the session is allowed to see.
type ActionsPanel struct {
	Heading string       `json:"heading"`
	Links   []ActionLink `json:"links"`
}

// ActionLink is a rendered QuickAction.
type ActionLink struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Href    string `json:"href"`
	Icon    string `json:"icon"`
	Color   string `json:"color"`
	BgColor string `json:"bg_color"`
	Module  string `json:"module"`
}

// ActivityPanel is the recent activity timeline.
type ActivityPanel struct {
	Heading string        `json:"heading"`
	Entries []ActivityRow `json:"entries"`
}

// ActivityRow is a rendered ActivityEntry. Connector is false only for the last row.
type ActivityRow struct {
	Action      string       `json:"action"`
	User        string       `json:"user"`
	Time        string       `json:"time"`
	Type        ActivityType `json:"type"`
	MarkerClass string       `json:"marker_class"`
	Connector   bool         `json:"connector"`
}

// StatusPanel holds the static system indicators.
type StatusPanel struct {
	Heading string            `json:"heading"`
	Rows    []StatusIndicator `json:"rows"`
}

// BuildView maps the session and content tables to a View. It has no side effects and
// never fails: a nil session renders as signed out.
func BuildView(session Session, content Content, opts ViewOptions) View {
	session = normalizeSession(session)
	view := View{
		Title:    headingDashboard,
		Greeting: Greeting(session.User()),
		Stats:    buildStats(content.Stats),
		QuickActions: ActionsPanel{
			Heading: headingQuickActions,
			Links:   buildActions(session, content.QuickActions),
		},
		Activity: ActivityPanel{
			Heading: headingActivity,
			Entries: buildActivity(content.Activity),
		},
		Status: StatusPanel{
			Heading: headingStatus,
			Rows:    append([]StatusIndicator{}, content.Status...),
		},
	}
	if opts.DebugBuild {
		view.Diagnostics = buildDiagnostics(session, content.QuickActions)
	}
	return view
}

// Greeting renders the welcome line for user.
func Greeting(user *User) string {
	if user == nil || user.Name == "" {
		return greetingPrefix + DefaultUserName
	}
	return greetingPrefix + user.Name
}

// MarkerClass picks the timeline marker fill for an activity type.
func MarkerClass(t ActivityType) string {
	if t == ActivitySuccess {
		return markerSuccessClass
	}
	return markerInfoClass
}

func buildStats(stats []Stat) []StatCard {
	cards := make([]StatCard, 0, len(stats))
	for _, stat := range stats {
		cards = append(cards, StatCard{
			Key:     slug(stat.Name),
			Name:    stat.Name,
			Value:   stat.Value,
			Icon:    stat.Icon,
			Color:   stat.Color,
			BgColor: stat.BgColor,
		})
	}
	return cards
}

func buildActions(session Session, actions []QuickAction) []ActionLink {
	links := make([]ActionLink, 0, len(actions))
	for _, action := range actions {
		if !session.CanAccessModule(action.RequiresModule) {
			continue
		}
		links = append(links, ActionLink{
			Key:     slug(action.Name),
			Name:    action.Name,
			Href:    action.Href,
			Icon:    action.Icon,
			Color:   action.Color,
			BgColor: action.BgColor,
			Module:  action.RequiresModule,
		})
	}
	return links
}

func buildActivity(entries []ActivityEntry) []ActivityRow {
	rows := make([]ActivityRow, 0, len(entries))
	last := len(entries) - 1
	for idx, entry := range entries {
		rows = append(rows, ActivityRow{
			Action:      entry.Action,
			User:        entry.User,
			Time:        entry.Time,
			Type:        entry.Type,
			MarkerClass: MarkerClass(entry.Type),
			Connector:   idx != last,
		})
	}
	return rows
}

func slug(name string) string {
	return strcase.ToKebab(name)
}
