package types

import (
	"encoding/json"
	"fmt"
)

// AllSitesValue is the dropdown value that means "no site filter".
const AllSitesValue = "ALL"

// Site is a launch-site selection: either every site or one named site.
// The zero value selects all sites.
type Site struct {
	name  string
	named bool
}

// AllSites returns the selection that applies no site filter.
func AllSites() Site { return Site{} }

// NamedSite returns the selection of exactly one site.
func NamedSite(name string) Site { return Site{name: name, named: true} }

// ParseSite maps a raw dropdown value onto a Site. The sentinel "ALL"
// selects every site; any other string is taken as an exact site name.
func ParseSite(v string) Site {
	if v == AllSitesValue {
		return AllSites()
	}
	return NamedSite(v)
}

// IsAll reports whether s applies no site filter.
func (s Site) IsAll() bool { return !s.named }

// Name returns the selected site name and true, or "" and false for All.
func (s Site) Name() (string, bool) { return s.name, s.named }

// String returns the dropdown value for s.
func (s Site) String() string {
	if !s.named {
		return AllSitesValue
	}
	return s.name
}

func (s Site) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Site) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("site: want a string: %w", err)
	}
	*s = ParseSite(v)
	return nil
}
