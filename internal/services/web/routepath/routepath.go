// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root                = "/"
	Health              = "/up"
	AuthPrefix          = "/auth/"
	AuthLogin           = "/auth/login"
	StaticPrefix        = "/static/"
	Experiment          = "/experiment"
	ExperimentPrefix    = "/experiment/"
	ExperimentConsent   = "/experiment/consent"
	ExperimentGuide     = "/experiment/guide"
	ExperimentResponses = "/experiment/responses"
	Feedback            = "/feedback"
	FeedbackPrefix      = "/feedback/"
	Dashboard           = "/dashboard"
	DashboardPrefix     = "/dashboard/"
)

// Query parameters read by the experiment page.
const (
	ZoneParam   = "zone"
	EntityParam = "entity"
)

// ExperimentView builds the experiment page URL previewing zone and
// inspecting entity. Empty values are omitted.
func ExperimentView(zone string, entityID string) string {
	values := url.Values{}
	if zone = strings.TrimSpace(zone); zone != "" {
		values.Set(ZoneParam, zone)
	}
	if entityID = strings.TrimSpace(entityID); entityID != "" {
		values.Set(EntityParam, entityID)
	}
	if len(values) == 0 {
		return Experiment
	}
	return Experiment + "?" + values.Encode()
}

// Normalize trims a trailing slash from non-root paths.
func Normalize(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return Root
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return Root
		}
	}
	return path
}
