// Package sections serializes a collected report into the line-oriented
// agent output format: `<<<section_name>>>` markers followed by
// `dotted.key=value` lines.  Entity keys are emitted in sorted order so
// runs over the same data produce identical output.
package sections

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lynxmind/cloudflare-agent/pkg/cloudflare"
	"github.com/lynxmind/cloudflare-agent/pkg/collector"
)

// Section names as they appear in the agent output.
const (
	SectionCDNCache         = "cloudflare_cdn_cache"
	SectionDNS              = "cloudflare_dns"
	SectionSSLTLS           = "cloudflare_ssl_tls"
	SectionFirewall         = "cloudflare_firewall"
	SectionWorkers          = "cloudflare_workers"
	SectionPages            = "cloudflare_pages"
	SectionD1               = "cloudflare_d1"
	SectionSecrets          = "cloudflare_secrets"
	SectionWARPDevices      = "cloudflare_warp_devices"
	SectionAccessApps       = "cloudflare_access_apps"
	SectionGateway          = "cloudflare_gateway"
	SectionAccessAnalytics  = "cloudflare_access_analytics"
	SectionGatewayHTTP      = "cloudflare_gateway_http_analytics"
	SectionGatewayNetwork   = "cloudflare_gateway_network_analytics"
	SectionGatewayDNS       = "cloudflare_gateway_dns_analytics"
	SectionZeroTrustSeats   = "cloudflare_zero_trust_seats"
	maxTopEntries           = 10
)

// sanitize makes a value safe for the single-line format; item names may
// contain spaces, which would break key=value parsing downstream.
func sanitize(s string) string {
	return strings.ReplaceAll(s, " ", "_")
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// Writer emits one section block at a time.
type Writer struct {
	out io.Writer
}

// NewWriter returns a Writer emitting to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) section(name string) {
	fmt.Fprintf(w.out, "\n<<<%s>>>\n\n", name)
}

func (w *Writer) kv(key string, value interface{}) {
	fmt.Fprintf(w.out, "%s=%v\n", key, value)
}

func (w *Writer) blank() {
	fmt.Fprintln(w.out)
}

// Render writes every non-empty section of the report in the canonical
// order.
func (w *Writer) Render(report *collector.Report) {
	w.renderCDNCache(report)
	w.renderDNS(report)
	w.renderSSLTLS(report)
	w.renderFirewall(report)
	w.renderWorkers(report)
	w.renderPages(report)
	w.renderD1(report)
	w.renderSecrets(report)
	w.renderWARPDevices(report)
	w.renderAccessApps(report)
	w.renderGateway(report)
	w.renderAccessAnalytics(report)
	w.renderGatewayHTTP(report)
	w.renderGatewayNetwork(report)
	w.renderGatewayDNS(report)
	w.renderSeats(report)
}

func sortedZoneNames(report *collector.Report) []string {
	names := make([]string, 0, len(report.Zones))
	for name := range report.Zones {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (w *Writer) renderCDNCache(report *collector.Report) {
	if len(report.Zones) == 0 {
		return
	}
	w.section(SectionCDNCache)
	for _, name := range sortedZoneNames(report) {
		zone := report.Zones[name]
		if zone.CacheLevel != "" {
			w.kv(fmt.Sprintf("zone.%s.cache_level", name), zone.CacheLevel)
		}

		var requestsTotal, bandwidthTotal, cachedRequests int64
		hitRate := 0.0
		if zone.Analytics != nil {
			latest := zone.Analytics.Latest()
			requestsTotal = latest.Requests.All
			cachedRequests = latest.Requests.Cached
			bandwidthTotal = latest.Bandwidth.All
			if requestsTotal > 0 {
				hitRate = float64(cachedRequests) / float64(requestsTotal) * 100
			}
		}

		// The cache counters are always emitted so graphs keep their
		// continuity even when analytics came back empty.
		w.kv(fmt.Sprintf("zone.%s.requests_total", name), requestsTotal)
		w.kv(fmt.Sprintf("zone.%s.bandwidth_total", name), bandwidthTotal)
		w.kv(fmt.Sprintf("zone.%s.cached_requests", name), cachedRequests)
		w.kv(fmt.Sprintf("zone.%s.cache_hit_rate", name), fmt.Sprintf("%.2f%%", hitRate))
		w.blank()
	}
}

func (w *Writer) renderDNS(report *collector.Report) {
	if len(report.Zones) == 0 {
		return
	}
	w.section(SectionDNS)
	for _, name := range sortedZoneNames(report) {
		zone := report.Zones[name]
		w.kv(fmt.Sprintf("zone.%s.dns_records_total", name), len(zone.DNSRecords))

		typeCounts := map[string]int{}
		for _, record := range zone.DNSRecords {
			typeCounts[orUnknown(record.Type)]++
		}
		types := make([]string, 0, len(typeCounts))
		for recordType := range typeCounts {
			types = append(types, recordType)
		}
		sort.Strings(types)
		for _, recordType := range types {
			w.kv(fmt.Sprintf("zone.%s.dns_records_type.%s", name, recordType), typeCounts[recordType])
		}
		w.blank()
	}
}

func (w *Writer) renderSSLTLS(report *collector.Report) {
	if len(report.Zones) == 0 {
		return
	}
	w.section(SectionSSLTLS)
	for _, name := range sortedZoneNames(report) {
		zone := report.Zones[name]
		if zone.SSLStatus != "" {
			w.kv(fmt.Sprintf("zone.%s.ssl_status", name), zone.SSLStatus)
		}
		if zone.SSLStatusAlt != "" && zone.SSLStatusAlt != "unknown" {
			w.kv(fmt.Sprintf("zone.%s.ssl_status_alt", name), zone.SSLStatusAlt)
		}
		w.blank()
	}
}

func (w *Writer) renderFirewall(report *collector.Report) {
	hasData := false
	for _, zone := range report.Zones {
		if zone.Firewall != nil {
			hasData = true
			break
		}
	}
	if !hasData {
		return
	}
	w.section(SectionFirewall)
	for _, name := range sortedZoneNames(report) {
		zone := report.Zones[name]
		if zone.Firewall == nil {
			continue
		}
		var blocked, challenged, allowed int
		for _, event := range zone.Firewall.Events {
			switch event.Action {
			case "block":
				blocked++
			case "challenge":
				challenged++
			case "allow":
				allowed++
			}
		}
		w.kv(fmt.Sprintf("zone.%s.firewall.blocked_total", name), blocked)
		w.kv(fmt.Sprintf("zone.%s.firewall.challenged_total", name), challenged)
		w.kv(fmt.Sprintf("zone.%s.firewall.allowed_total", name), allowed)
		w.kv(fmt.Sprintf("zone.%s.firewall.events_total", name), len(zone.Firewall.Events))
		w.blank()
	}
}

func (w *Writer) renderWorkers(report *collector.Report) {
	if len(report.Workers) == 0 {
		return
	}
	w.section(SectionWorkers)
	for _, worker := range report.Workers {
		id := orUnknown(worker.ID)
		w.kv(fmt.Sprintf("worker.%s.id", id), id)
		if worker.CreatedOn != "" {
			w.kv(fmt.Sprintf("worker.%s.created_on", id), worker.CreatedOn)
		}
		if worker.ModifiedOn != "" {
			w.kv(fmt.Sprintf("worker.%s.modified_on", id), worker.ModifiedOn)
		}
		if worker.UsageModel != "" {
			w.kv(fmt.Sprintf("worker.%s.usage_model", id), worker.UsageModel)
		}
		if worker.Etag != "" {
			w.kv(fmt.Sprintf("worker.%s.etag", id), worker.Etag)
		}
		w.blank()
	}
}

func (w *Writer) renderPages(report *collector.Report) {
	if len(report.Pages) == 0 {
		return
	}
	w.section(SectionPages)
	w.kv("pages.projects_total", len(report.Pages))
	w.blank()
	for _, project := range report.Pages {
		name := orUnknown(project.Name)
		w.kv(fmt.Sprintf("pages.project.%s.id", name), project.ID)
		w.kv(fmt.Sprintf("pages.project.%s.created_on", name), project.CreatedOn)
		w.kv(fmt.Sprintf("pages.project.%s.production_branch", name), orUnknown(project.ProductionBranch))
		if deployment := project.LatestDeployment; deployment != nil {
			if deployment.ID != "" {
				w.kv(fmt.Sprintf("pages.project.%s.latest_deployment_id", name), deployment.ID)
			}
			if deployment.LatestStage != nil && deployment.LatestStage.Status != "" {
				w.kv(fmt.Sprintf("pages.project.%s.latest_deployment_status", name), deployment.LatestStage.Status)
			}
		}
		if len(project.Domains) > 0 {
			w.kv(fmt.Sprintf("pages.project.%s.domains_count", name), len(project.Domains))
		}
		if project.BuildConfig != nil && project.BuildConfig.BuildCommand != "" {
			w.kv(fmt.Sprintf("pages.project.%s.build_command", name), project.BuildConfig.BuildCommand)
		}
		w.blank()
	}
}

func (w *Writer) renderD1(report *collector.Report) {
	if len(report.D1) == 0 {
		return
	}
	w.section(SectionD1)
	w.kv("d1.databases_total", len(report.D1))
	for _, db := range report.D1 {
		name := orUnknown(db.Name)
		w.kv(fmt.Sprintf("d1.db.%s.uuid", name), orUnknown(db.UUID))
		w.kv(fmt.Sprintf("d1.db.%s.size", name), db.FileSize)
		if db.CreatedAt != "" {
			w.kv(fmt.Sprintf("d1.db.%s.created_at", name), db.CreatedAt)
		}
		if db.Version != "" {
			w.kv(fmt.Sprintf("d1.db.%s.version", name), db.Version)
		}
	}
	w.blank()
}

func (w *Writer) renderSecrets(report *collector.Report) {
	if len(report.Secrets) == 0 {
		return
	}
	w.section(SectionSecrets)
	w.kv("secrets.stores_total", len(report.Secrets))
	names := make([]string, 0, len(report.Secrets))
	for name := range report.Secrets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		info := report.Secrets[name]
		w.kv(fmt.Sprintf("secrets.store.%s.id", name), info.ID)
		w.kv(fmt.Sprintf("secrets.store.%s.secrets_count", name), info.SecretsCount)
	}
	w.blank()
}

func (w *Writer) renderWARPDevices(report *collector.Report) {
	if len(report.Devices) == 0 {
		return
	}
	w.section(SectionWARPDevices)
	w.kv("warp.devices_total", len(report.Devices))
	for _, device := range report.Devices {
		if device.ID == "" {
			continue
		}
		status := "active"
		if device.Deleted {
			status = "revoked"
		}
		w.kv(fmt.Sprintf("warp.device.%s.name", device.ID), sanitize(orUnknown(device.Name)))
		w.kv(fmt.Sprintf("warp.device.%s.platform", device.ID), orUnknown(device.DeviceType))
		w.kv(fmt.Sprintf("warp.device.%s.version", device.ID), orUnknown(device.OSVersion))
		w.kv(fmt.Sprintf("warp.device.%s.status", device.ID), status)
		if device.LastSeenAt != "" {
			w.kv(fmt.Sprintf("warp.device.%s.last_seen", device.ID), device.LastSeenAt)
		}
	}
	w.blank()
}

func (w *Writer) renderAccessApps(report *collector.Report) {
	if len(report.Apps) == 0 {
		return
	}
	w.section(SectionAccessApps)
	w.kv("access.apps_total", len(report.Apps))
	for _, app := range report.Apps {
		if app.ID == "" {
			continue
		}
		w.kv(fmt.Sprintf("access.app.%s.name", app.ID), sanitize(orUnknown(app.Name)))
		w.kv(fmt.Sprintf("access.app.%s.domain", app.ID), orUnknown(app.Domain))
		w.kv(fmt.Sprintf("access.app.%s.type", app.ID), orUnknown(app.Type))
		w.kv(fmt.Sprintf("access.app.%s.updated_at", app.ID), app.UpdatedAt)
		w.kv(fmt.Sprintf("access.app.%s.policies_count", app.ID), len(app.Policies))
		w.kv(fmt.Sprintf("access.app.%s.destinations_count", app.ID), len(app.Destinations))
		w.kv(fmt.Sprintf("access.app.%s.idps_count", app.ID), len(app.AllowedIdps))
		if len(app.Tags) > 0 {
			w.kv(fmt.Sprintf("access.app.%s.tags", app.ID), strings.Join(app.Tags, ","))
		}
	}
	w.blank()
}

func (w *Writer) renderGateway(report *collector.Report) {
	if report.GatewayAccount == nil && len(report.GatewayRules) == 0 {
		return
	}
	w.section(SectionGateway)
	if report.GatewayAccount != nil {
		w.kv("gateway.account.provider", orUnknown(report.GatewayAccount.ProviderName))
		w.kv("gateway.account.tag", report.GatewayAccount.ID)
	}
	if len(report.GatewayRules) > 0 {
		w.kv("gateway.rules_total", len(report.GatewayRules))
		actionCounts := map[string]int{}
		for _, rule := range report.GatewayRules {
			actionCounts[orUnknown(rule.Action)]++
		}
		actions := make([]string, 0, len(actionCounts))
		for action := range actionCounts {
			actions = append(actions, action)
		}
		sort.Strings(actions)
		for _, action := range actions {
			w.kv(fmt.Sprintf("gateway.rules_action.%s", action), actionCounts[action])
		}
	}
	w.blank()
}

func (w *Writer) renderAccessAnalytics(report *collector.Report) {
	analytics := report.AccessAnalytics
	if analytics == nil {
		return
	}
	w.section(SectionAccessAnalytics)
	w.kv("access.analytics.total_attempts", analytics.TotalAttempts)
	w.kv("access.analytics.granted", analytics.Granted)
	w.kv("access.analytics.denied", analytics.Denied)
	w.kv("access.analytics.active_logins", analytics.ActiveLogins)
	for i, app := range analytics.TopApplications {
		if i >= maxTopEntries {
			break
		}
		w.kv(fmt.Sprintf("access.analytics.top_app.%d.name", i+1), sanitize(orUnknown(app.Name)))
		w.kv(fmt.Sprintf("access.analytics.top_app.%d.logins", i+1), app.Logins)
	}
	w.blank()
}

func (w *Writer) renderTopBandwidth(prefix string, consumers []cloudflare.BandwidthConsumer) {
	for i, consumer := range consumers {
		if i >= maxTopEntries {
			break
		}
		w.kv(fmt.Sprintf("%s.top_bandwidth.%d.name", prefix, i+1), sanitize(orUnknown(consumer.Name)))
		w.kv(fmt.Sprintf("%s.top_bandwidth.%d.gb", prefix, i+1), consumer.BandwidthGB)
	}
}

func (w *Writer) renderTopDenied(prefix string, users []cloudflare.DeniedUser) {
	for i, user := range users {
		if i >= maxTopEntries {
			break
		}
		w.kv(fmt.Sprintf("%s.top_denied.%d.name", prefix, i+1), sanitize(orUnknown(user.Name)))
		w.kv(fmt.Sprintf("%s.top_denied.%d.count", prefix, i+1), user.DeniedCount)
	}
}

func (w *Writer) renderGatewayHTTP(report *collector.Report) {
	analytics := report.GatewayHTTP
	if analytics == nil {
		return
	}
	w.section(SectionGatewayHTTP)
	w.kv("gateway.http.total_requests", analytics.TotalRequests)
	w.kv("gateway.http.allowed", analytics.AllowedRequests)
	w.kv("gateway.http.blocked", analytics.BlockedRequests)
	w.kv("gateway.http.isolated", analytics.IsolatedRequests)
	w.kv("gateway.http.do_not_inspect", analytics.DoNotInspect)
	w.renderTopBandwidth("gateway.http", analytics.TopBandwidth)
	w.renderTopDenied("gateway.http", analytics.TopDenied)
	w.blank()
}

func (w *Writer) renderGatewayNetwork(report *collector.Report) {
	analytics := report.GatewayNetwork
	if analytics == nil {
		return
	}
	w.section(SectionGatewayNetwork)
	w.kv("gateway.network.total_sessions", analytics.TotalSessions)
	w.kv("gateway.network.authenticated", analytics.AuthenticatedSessions)
	w.kv("gateway.network.blocked", analytics.BlockedSessions)
	w.kv("gateway.network.audit_ssh", analytics.AuditSSHSessions)
	w.kv("gateway.network.allowed", analytics.AllowedSessions)
	w.kv("gateway.network.override", analytics.OverrideSessions)
	w.renderTopBandwidth("gateway.network", analytics.TopBandwidth)
	w.renderTopDenied("gateway.network", analytics.TopDenied)
	w.blank()
}

func (w *Writer) renderGatewayDNS(report *collector.Report) {
	analytics := report.GatewayDNS
	if analytics == nil {
		return
	}
	w.section(SectionGatewayDNS)
	w.kv("gateway.dns.total_queries", analytics.TotalQueries)
	w.kv("gateway.dns.allowed", analytics.AllowedQueries)
	w.kv("gateway.dns.blocked", analytics.BlockedQueries)
	w.kv("gateway.dns.override", analytics.OverrideQueries)
	w.kv("gateway.dns.safe_search", analytics.SafeSearchQueries)
	w.kv("gateway.dns.restricted", analytics.RestrictedQueries)
	w.kv("gateway.dns.other", analytics.OtherQueries)
	w.blank()
}

func (w *Writer) renderSeats(report *collector.Report) {
	seats := report.Seats
	if seats == nil {
		return
	}
	w.section(SectionZeroTrustSeats)
	w.kv("zt.seats.total", seats.TotalSeats)
	w.kv("zt.seats.used", seats.UsedSeats)
	w.kv("zt.seats.unused", seats.UnusedSeats)
	if seats.TotalSeats > 0 {
		usage := float64(seats.UsedSeats) / float64(seats.TotalSeats) * 100
		w.kv("zt.seats.usage_percent", fmt.Sprintf("%.2f%%", usage))
	}
	w.blank()
}
