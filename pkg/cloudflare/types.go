package cloudflare

import "encoding/json"

// Zone is a DNS-managed domain under the account.
type Zone struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	SSL  *ZoneSSL `json:"ssl,omitempty"`
}

// ZoneSSL is the certificate state embedded in some zone payloads.
type ZoneSSL struct {
	Status string `json:"status"`
}

// ZoneSetting is a single zone setting such as cache_level or ssl.
type ZoneSetting struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// AnalyticsBreakdown splits a counter into its totals.
type AnalyticsBreakdown struct {
	All    int64 `json:"all"`
	Cached int64 `json:"cached"`
}

// AnalyticsTotals is one frame of the zone analytics dashboard.
type AnalyticsTotals struct {
	Requests  AnalyticsBreakdown `json:"requests"`
	Bandwidth AnalyticsBreakdown `json:"bandwidth"`
}

// ZoneAnalytics is the analytics dashboard payload.  Depending on the query
// the API answers with a timeseries or with totals at the top level.
type ZoneAnalytics struct {
	Timeseries []AnalyticsTotals  `json:"timeseries"`
	Requests   AnalyticsBreakdown `json:"requests"`
	Bandwidth  AnalyticsBreakdown `json:"bandwidth"`
}

// Latest picks the newest timeseries frame, falling back to the top-level
// totals when no timeseries came back.
func (a *ZoneAnalytics) Latest() AnalyticsTotals {
	if len(a.Timeseries) > 0 {
		return a.Timeseries[0]
	}
	return AnalyticsTotals{Requests: a.Requests, Bandwidth: a.Bandwidth}
}

// DNSRecord is one record of a zone.
type DNSRecord struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// FirewallEvent is one firewall/WAF event.
type FirewallEvent struct {
	Action string `json:"action"`
}

// SecurityEvents is the security events payload for a zone.
type SecurityEvents struct {
	Events []FirewallEvent `json:"events"`
}

// Account identifies a Cloudflare account.
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WorkerScript is one deployed Workers script.
type WorkerScript struct {
	ID         string `json:"id"`
	CreatedOn  string `json:"created_on"`
	ModifiedOn string `json:"modified_on"`
	UsageModel string `json:"usage_model"`
	Etag       string `json:"etag"`
}

// DeploymentStage is the most recent stage of a Pages deployment.
type DeploymentStage struct {
	Status string `json:"status"`
}

// PagesDeployment is a deployment of a Pages project.
type PagesDeployment struct {
	ID          string           `json:"id"`
	LatestStage *DeploymentStage `json:"latest_stage"`
}

// PagesBuildConfig is the build configuration of a Pages project.
type PagesBuildConfig struct {
	BuildCommand string `json:"build_command"`
}

// PagesProject is one Pages project.
type PagesProject struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	CreatedOn        string            `json:"created_on"`
	ProductionBranch string            `json:"production_branch"`
	LatestDeployment *PagesDeployment  `json:"latest_deployment"`
	Domains          []string          `json:"domains"`
	BuildConfig      *PagesBuildConfig `json:"build_config"`
}

// D1Database is one D1 database.
type D1Database struct {
	UUID      string `json:"uuid"`
	Name      string `json:"name"`
	Version   string `json:"version"`
	CreatedAt string `json:"created_at"`
	FileSize  int64  `json:"file_size"`
}

// SecretsStore is one secrets store.
type SecretsStore struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Secret is one entry inside a secrets store.  Only its presence is counted.
type Secret struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Device is one WARP physical device.
type Device struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DeviceType string `json:"device_type"`
	OSVersion  string `json:"os_version"`
	LastSeenAt string `json:"last_seen_at"`
	Deleted    bool   `json:"deleted"`
}

// AccessApp is one Access application.  The list-valued fields are kept raw
// since only their sizes are reported.
type AccessApp struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Domain       string            `json:"domain"`
	Type         string            `json:"type"`
	UpdatedAt    string            `json:"updated_at"`
	Policies     []json.RawMessage `json:"policies"`
	Destinations []json.RawMessage `json:"destinations"`
	AllowedIdps  []json.RawMessage `json:"allowed_idps"`
	Tags         []string          `json:"tags"`
}

// GatewayAccount is the Zero Trust gateway account configuration.
type GatewayAccount struct {
	ID           string `json:"id"`
	ProviderName string `json:"provider_name"`
}

// GatewayRule is one gateway rule.
type GatewayRule struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Action  string   `json:"action"`
	Enabled bool     `json:"enabled"`
	Filters []string `json:"filters"`
}

// TopApplication is an entry of the access analytics top list.
type TopApplication struct {
	Name   string `json:"name"`
	Logins int64  `json:"logins"`
}

// AccessAnalytics summarizes Access login activity.
type AccessAnalytics struct {
	TotalAttempts   int64            `json:"total_attempts"`
	Granted         int64            `json:"granted"`
	Denied          int64            `json:"denied"`
	ActiveLogins    int64            `json:"active_logins"`
	TopApplications []TopApplication `json:"top_applications"`
}

// BandwidthConsumer is an entry of a gateway analytics top-bandwidth list.
type BandwidthConsumer struct {
	Name        string  `json:"name"`
	BandwidthGB float64 `json:"bandwidth_gb"`
}

// DeniedUser is an entry of a gateway analytics top-denied list.
type DeniedUser struct {
	Name        string `json:"name"`
	DeniedCount int64  `json:"denied_count"`
}

// GatewayHTTPAnalytics summarizes gateway HTTP traffic.
type GatewayHTTPAnalytics struct {
	TotalRequests    int64               `json:"total_requests"`
	AllowedRequests  int64               `json:"allowed_requests"`
	BlockedRequests  int64               `json:"blocked_requests"`
	IsolatedRequests int64               `json:"isolated_requests"`
	DoNotInspect     int64               `json:"do_not_inspect"`
	TopBandwidth     []BandwidthConsumer `json:"top_bandwidth_consumers"`
	TopDenied        []DeniedUser        `json:"top_denied_users"`
}

// GatewayNetworkAnalytics summarizes gateway network sessions.
type GatewayNetworkAnalytics struct {
	TotalSessions         int64               `json:"total_sessions"`
	AuthenticatedSessions int64               `json:"authenticated_sessions"`
	BlockedSessions       int64               `json:"blocked_sessions"`
	AuditSSHSessions      int64               `json:"audit_ssh_sessions"`
	AllowedSessions       int64               `json:"allowed_sessions"`
	OverrideSessions      int64               `json:"override_sessions"`
	TopBandwidth          []BandwidthConsumer `json:"top_bandwidth_consumers"`
	TopDenied             []DeniedUser        `json:"top_denied_users"`
}

// GatewayDNSAnalytics summarizes gateway DNS queries.
type GatewayDNSAnalytics struct {
	TotalQueries      int64 `json:"total_queries"`
	AllowedQueries    int64 `json:"allowed_queries"`
	BlockedQueries    int64 `json:"blocked_queries"`
	OverrideQueries   int64 `json:"override_queries"`
	SafeSearchQueries int64 `json:"safe_search_queries"`
	RestrictedQueries int64 `json:"restricted_queries"`
	OtherQueries      int64 `json:"other_queries"`
}

// ZeroTrustSeats is the Zero Trust seat usage payload.
type ZeroTrustSeats struct {
	TotalSeats  int64 `json:"total_seats"`
	UsedSeats   int64 `json:"used_seats"`
	UnusedSeats int64 `json:"unused_seats"`
}
