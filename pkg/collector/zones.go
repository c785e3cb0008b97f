package collector

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/lynxmind/cloudflare-agent/pkg/cloudflare"
)

// collectZones fetches the zone list and, per enabled kind, each zone's
// sub-resources.  Sub-fetch failures leave that attribute absent for the
// zone but never stop the iteration.
func (c *Collector) collectZones(ctx context.Context, report *Report, since time.Time) {
	zones, err := c.client.Zones(ctx)
	if err != nil {
		c.logger.WithError(err).Error("Failed to fetch zones")
		return
	}
	if len(zones) == 0 {
		c.logger.Debug("No zones found for the account")
		return
	}

	for i := range zones {
		zone := &zones[i]
		if zone.Name == "" || zone.ID == "" {
			continue
		}
		logger := c.logger.WithField("zone", zone.Name)
		data := &ZoneData{ID: zone.ID}
		report.Zones[zone.Name] = data

		if c.conf.Kinds.CDNCache {
			c.collectZoneCDNCache(ctx, logger, data, since)
		}
		if c.conf.Kinds.DNS {
			c.collectZoneDNS(ctx, logger, data)
		}
		if c.conf.Kinds.SSLTLS {
			c.collectZoneSSL(ctx, logger, zone.SSL, data)
		}
		if c.conf.Kinds.Firewall {
			c.collectZoneFirewall(ctx, logger, data, since)
		}
	}
}

func (c *Collector) collectZoneCDNCache(ctx context.Context, logger log.FieldLogger, data *ZoneData, since time.Time) {
	setting, err := c.client.ZoneCacheLevel(ctx, data.ID)
	if err != nil {
		logger.WithError(err).Debug("Could not fetch cache level")
	} else if setting != nil {
		data.CacheLevel = setting.Value
	}

	analytics, err := c.client.ZoneAnalytics(ctx, data.ID, since)
	if err != nil {
		logger.WithError(err).Debug("Could not fetch zone analytics")
	} else {
		data.Analytics = analytics
	}
}

func (c *Collector) collectZoneDNS(ctx context.Context, logger log.FieldLogger, data *ZoneData) {
	records, err := c.client.ZoneDNSRecords(ctx, data.ID)
	if err != nil {
		logger.WithError(err).Debug("Could not fetch DNS records")
		return
	}
	data.DNSRecords = records
}

func (c *Collector) collectZoneSSL(ctx context.Context, logger log.FieldLogger, zoneSSL *cloudflare.ZoneSSL, data *ZoneData) {
	setting, err := c.client.ZoneSSLSetting(ctx, data.ID)
	if err != nil {
		logger.WithError(err).Debug("Could not fetch SSL setting")
	} else if setting != nil {
		data.SSLStatus = setting.Value
	}
	if zoneSSL != nil {
		data.SSLStatusAlt = zoneSSL.Status
	}
}

func (c *Collector) collectZoneFirewall(ctx context.Context, logger log.FieldLogger, data *ZoneData, since time.Time) {
	events, err := c.client.ZoneSecurityEvents(ctx, data.ID, since)
	if err != nil {
		logger.WithError(err).Debug("Could not fetch security events")
		return
	}
	data.Firewall = events
}
