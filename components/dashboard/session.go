package dashboard

import "strings"

// AdminModule is the module key that gates content reloads and activity writes.
const AdminModule = "admin"

// CanAdminister reports whether session may run the admin commands for moduleKey. A
// blank moduleKey selects AdminModule.
func CanAdminister(session Session, moduleKey string) bool {
	if moduleKey == "" {
		moduleKey = AdminModule
	}
	return normalizeSession(session).CanAccessModule(moduleKey)
}

// StaticSession is a value Session useful for transports that resolve the user up front
// and for tests.
type StaticSession struct {
	CurrentUser *User
	Modules     ModuleSet
}

// User returns the configured user.
func (s StaticSession) User() *User {
	return s.CurrentUser
}

// CanAccessModule delegates to the module set.
func (s StaticSession) CanAccessModule(moduleKey string) bool {
	return s.Modules.Allows(moduleKey)
}

// ModuleSet grants access to a fixed list of module keys. The "*" key grants every module.
type ModuleSet map[string]struct{}

// NewModuleSet builds a set from the provided keys, ignoring blanks.
func NewModuleSet(keys ...string) ModuleSet {
	set := make(ModuleSet, len(keys))
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		set[key] = struct{}{}
	}
	return set
}

// ParseModuleList splits a comma separated header value into a ModuleSet.
func ParseModuleList(value string) ModuleSet {
	if strings.TrimSpace(value) == "" {
		return ModuleSet{}
	}
	return NewModuleSet(strings.Split(value, ",")...)
}

// Allows reports whether moduleKey is part of the set.
func (m ModuleSet) Allows(moduleKey string) bool {
	if len(m) == 0 {
		return false
	}
	if _, ok := m["*"]; ok {
		return true
	}
	_, ok := m[moduleKey]
	return ok
}

type anonymousSession struct{}

func (anonymousSession) User() *User                 { return nil }
func (anonymousSession) CanAccessModule(string) bool { return false }

func normalizeSession(s Session) Session {
	if s == nil {
		return anonymousSession{}
	}
	return s
}
