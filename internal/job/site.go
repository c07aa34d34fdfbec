package job

import "strings"

// UnassignedLocation is the placeholder the workload-management system
// records while a job is still centrally queued and has no execution site.
const UnassignedLocation = "Agent"

// Site is an execution site name with an explicit unassigned variant. The
// stored placeholder string is translated at the decode boundary and
// reintroduced only when formatting a key for emission; code in between
// checks Assigned instead of comparing against a magic string.
type Site struct {
	name string
}

// SiteAt builds a Site from a stored location value. The placeholder and the
// empty string both map to the unassigned variant.
func SiteAt(location string) Site {
	trimmed := strings.TrimSpace(location)
	if trimmed == "" || trimmed == UnassignedLocation {
		return Site{}
	}
	return Site{name: trimmed}
}

// UnassignedSite returns the explicit no-site-yet variant.
func UnassignedSite() Site {
	return Site{}
}

// Assigned reports whether the job has been dispatched to a concrete site.
func (s Site) Assigned() bool {
	return s.name != ""
}

// Name returns the site name and whether one is assigned.
func (s Site) Name() (string, bool) {
	return s.name, s.name != ""
}

// String renders the wire form used in emitted keys: the site name, or the
// placeholder when no site was ever assigned.
func (s Site) String() string {
	if s.name == "" {
		return UnassignedLocation
	}
	return s.name
}
