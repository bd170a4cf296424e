package dashboard

const signedOutLabel = "sin sesión"

// Diagnostics is the debug-build panel describing the session the page rendered for.
type Diagnostics struct {
	SignedIn bool           `json:"signed_in"`
	UserName string         `json:"user_name"`
	Modules  []ModuleAccess `json:"modules"`
}

// ModuleAccess reports the capability check result for one module key.
type ModuleAccess struct {
	Key     string `json:"key"`
	Allowed bool   `json:"allowed"`
}

func buildDiagnostics(session Session, actions []QuickAction) *Diagnostics {
	diag := &Diagnostics{UserName: signedOutLabel}
	if user := session.User(); user != nil {
		diag.SignedIn = true
		diag.UserName = user.Name
	}
	seen := make(map[string]struct{}, len(actions))
	for _, action := range actions {
		if _, ok := seen[action.RequiresModule]; ok {
			continue
		}
		seen[action.RequiresModule] = struct{}{}
		diag.Modules = append(diag.Modules, ModuleAccess{
			Key:     action.RequiresModule,
			Allowed: session.CanAccessModule(action.RequiresModule),
		})
	}
	return diag
}
