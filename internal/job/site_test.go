package job_test

import (
	"testing"

	"jobindex/internal/job"
)

func TestSiteAt(t *testing.T) {
	cases := []struct {
		name     string
		location string
		assigned bool
		rendered string
	}{
		{"concrete site", "T2_US_Somewhere", true, "T2_US_Somewhere"},
		{"placeholder", "Agent", false, "Agent"},
		{"empty", "", false, "Agent"},
		{"whitespace", "  ", false, "Agent"},
		{"padded site", " siteA ", true, "siteA"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			site := job.SiteAt(tc.location)
			if site.Assigned() != tc.assigned {
				t.Fatalf("Assigned() = %v, want %v", site.Assigned(), tc.assigned)
			}
			if site.String() != tc.rendered {
				t.Fatalf("String() = %q, want %q", site.String(), tc.rendered)
			}
		})
	}
}

func TestSiteName(t *testing.T) {
	name, ok := job.SiteAt("siteB").Name()
	if !ok || name != "siteB" {
		t.Fatalf("unexpected name: %q %v", name, ok)
	}
	if _, ok := job.UnassignedSite().Name(); ok {
		t.Fatal("unassigned site should have no name")
	}
}
