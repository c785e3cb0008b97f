// Package collector fetches the enabled Cloudflare resource kinds and
// assembles them into the in-memory report the agent serializes.  Failures
// are isolated: a kind or per-zone sub-resource that cannot be fetched is
// logged and left absent without aborting the rest of the run.
package collector

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/lynxmind/cloudflare-agent/pkg/cloudflare"
)

// analyticsWindow is how far back the analytics queries reach.
const analyticsWindow = 24 * time.Hour

// Kinds selects which resource kinds to collect.
type Kinds struct {
	CDNCache     bool
	DNS          bool
	SSLTLS       bool
	Firewall     bool
	WorkersPages bool
	D1           bool
	Secrets      bool
	Devices      bool
	Apps         bool
	Gateway      bool
	Analytics    bool
}

// AllKinds enables every resource kind.
func AllKinds() Kinds {
	return Kinds{
		CDNCache:     true,
		DNS:          true,
		SSLTLS:       true,
		Firewall:     true,
		WorkersPages: true,
		D1:           true,
		Secrets:      true,
		Devices:      true,
		Apps:         true,
		Gateway:      true,
		Analytics:    true,
	}
}

// Any reports whether at least one kind is selected.
func (k Kinds) Any() bool {
	return k.zoneLevel() || k.accountLevel() || k.Analytics
}

func (k Kinds) zoneLevel() bool {
	return k.CDNCache || k.DNS || k.SSLTLS || k.Firewall
}

func (k Kinds) accountLevel() bool {
	return k.WorkersPages || k.D1 || k.Secrets || k.Devices || k.Apps || k.Gateway
}

// Config for a collection run.
type Config struct {
	// AccountID for account-level resources; auto-detected when empty.
	AccountID string
	Kinds     Kinds
}

// ZoneData aggregates everything collected for one zone.
type ZoneData struct {
	ID         string
	CacheLevel string
	Analytics  *cloudflare.ZoneAnalytics
	DNSRecords []cloudflare.DNSRecord
	SSLStatus  string
	// SSLStatusAlt is the certificate state embedded in the zone payload,
	// reported separately from the ssl setting.
	SSLStatusAlt string
	Firewall     *cloudflare.SecurityEvents
}

// StoreInfo is the per-store aggregate of the secrets inventory.
type StoreInfo struct {
	ID           string
	SecretsCount int
}

// Report holds one collection run's worth of data, one field per section.
type Report struct {
	Zones          map[string]*ZoneData
	Workers        []cloudflare.WorkerScript
	Pages          []cloudflare.PagesProject
	D1             []cloudflare.D1Database
	Secrets        map[string]StoreInfo
	Devices        []cloudflare.Device
	Apps           []cloudflare.AccessApp
	GatewayAccount *cloudflare.GatewayAccount
	GatewayRules   []cloudflare.GatewayRule

	AccessAnalytics *cloudflare.AccessAnalytics
	GatewayHTTP     *cloudflare.GatewayHTTPAnalytics
	GatewayNetwork  *cloudflare.GatewayNetworkAnalytics
	GatewayDNS      *cloudflare.GatewayDNSAnalytics
	Seats           *cloudflare.ZeroTrustSeats
}

// TotalItems counts the discovered entities across all sections, used to
// warn when a run came back completely empty.
func (r *Report) TotalItems() int {
	return len(r.Zones) + len(r.Workers) + len(r.Pages) + len(r.D1) +
		len(r.Secrets) + len(r.Devices) + len(r.Apps)
}

// Collector drives one collection run against the API.
type Collector struct {
	client *cloudflare.Client
	conf   Config
	logger log.FieldLogger

	// Swapped out in tests.
	now func() time.Time
}

// New returns a collector for the given client and config.
func New(client *cloudflare.Client, conf Config) *Collector {
	if !conf.Kinds.Any() {
		conf.Kinds = AllKinds()
	}
	return &Collector{
		client: client,
		conf:   conf,
		logger: log.WithField("component", "collector"),
		now:    time.Now,
	}
}

// Run performs the collection.  It never fails as a whole; whatever could
// not be fetched is simply missing from the report.
func (c *Collector) Run(ctx context.Context) *Report {
	report := &Report{
		Zones:   map[string]*ZoneData{},
		Secrets: map[string]StoreInfo{},
	}
	since := c.now().UTC().Add(-analyticsWindow)

	if c.conf.Kinds.zoneLevel() {
		c.collectZones(ctx, report, since)
	}

	accountID := ""
	if c.conf.Kinds.accountLevel() || c.conf.Kinds.Analytics {
		accountID = c.resolveAccountID(ctx)
	}

	if accountID != "" {
		if c.conf.Kinds.accountLevel() {
			c.collectAccount(ctx, report, accountID)
		}
		if c.conf.Kinds.Analytics {
			c.collectAnalytics(ctx, report, accountID, since)
		}
	}

	if report.TotalItems() == 0 {
		c.logger.Warn("No data collected. Check if you have resources configured or verify API permissions.")
	}
	return report
}

func (c *Collector) resolveAccountID(ctx context.Context) string {
	if c.conf.AccountID != "" {
		return c.conf.AccountID
	}
	accountID, err := c.client.AccountID(ctx)
	if err != nil {
		c.logger.WithError(err).Debug("Could not auto-detect account ID")
		return ""
	}
	if accountID != "" {
		c.logger.WithField("accountID", accountID).Debug("Auto-detected account ID")
	}
	return accountID
}
