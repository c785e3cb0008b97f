package collector

import (
	"context"
	"time"
)

// collectAccount fetches the account-level inventories.  Each kind is
// independent; one kind failing leaves its section empty without touching
// the others.
func (c *Collector) collectAccount(ctx context.Context, report *Report, accountID string) {
	if c.conf.Kinds.WorkersPages {
		workers, err := c.client.WorkerScripts(ctx, accountID)
		if err != nil {
			c.logger.WithError(err).Debug("Could not fetch Workers scripts")
		} else {
			report.Workers = workers
		}

		projects, err := c.client.PagesProjects(ctx, accountID)
		if err != nil {
			c.logger.WithError(err).Debug("Could not fetch Pages projects")
		} else {
			report.Pages = projects
		}
	}

	if c.conf.Kinds.D1 {
		dbs, err := c.client.D1Databases(ctx, accountID)
		if err != nil {
			c.logger.WithError(err).Debug("Could not fetch D1 databases")
		} else {
			report.D1 = dbs
		}
	}

	if c.conf.Kinds.Secrets {
		c.collectSecrets(ctx, report, accountID)
	}

	if c.conf.Kinds.Devices {
		devices, err := c.client.PhysicalDevices(ctx, accountID)
		if err != nil {
			c.logger.WithError(err).Debug("Could not fetch WARP devices")
		} else {
			report.Devices = devices
		}
	}

	if c.conf.Kinds.Apps {
		apps, err := c.client.AccessApps(ctx, accountID)
		if err != nil {
			c.logger.WithError(err).Debug("Could not fetch Access applications")
		} else {
			report.Apps = apps
		}
	}

	if c.conf.Kinds.Gateway {
		account, err := c.client.GatewayAccount(ctx, accountID)
		if err != nil {
			c.logger.WithError(err).Debug("Could not fetch gateway account")
		} else {
			report.GatewayAccount = account
		}

		rules, err := c.client.GatewayRules(ctx, accountID)
		if err != nil {
			c.logger.WithError(err).Debug("Could not fetch gateway rules")
		} else {
			report.GatewayRules = rules
		}
	}
}

// collectSecrets lists the stores, then counts the secrets of each store.
// A store whose secrets cannot be listed is still reported, with a zero
// count.
func (c *Collector) collectSecrets(ctx context.Context, report *Report, accountID string) {
	stores, err := c.client.SecretsStores(ctx, accountID)
	if err != nil {
		c.logger.WithError(err).Debug("Could not fetch secrets stores")
		return
	}
	for _, store := range stores {
		if store.Name == "" {
			continue
		}
		info := StoreInfo{ID: store.ID}
		secrets, err := c.client.StoreSecrets(ctx, accountID, store.ID)
		if err != nil {
			c.logger.WithError(err).WithField("store", store.Name).Debug("Could not fetch store secrets")
		} else {
			info.SecretsCount = len(secrets)
		}
		report.Secrets[store.Name] = info
	}
}

// collectAnalytics fetches the Zero Trust analytics family.  These
// endpoints are not available on every plan, so absence is expected and
// handled inside the client.
func (c *Collector) collectAnalytics(ctx context.Context, report *Report, accountID string, since time.Time) {
	access, err := c.client.AccessAnalytics(ctx, accountID, since)
	if err != nil {
		c.logger.WithError(err).Debug("Could not fetch Access analytics")
	} else {
		report.AccessAnalytics = access
	}

	gatewayHTTP, err := c.client.GatewayHTTPAnalytics(ctx, accountID, since)
	if err != nil {
		c.logger.WithError(err).Debug("Could not fetch gateway HTTP analytics")
	} else {
		report.GatewayHTTP = gatewayHTTP
	}

	gatewayNetwork, err := c.client.GatewayNetworkAnalytics(ctx, accountID, since)
	if err != nil {
		c.logger.WithError(err).Debug("Could not fetch gateway network analytics")
	} else {
		report.GatewayNetwork = gatewayNetwork
	}

	gatewayDNS, err := c.client.GatewayDNSAnalytics(ctx, accountID, since)
	if err != nil {
		c.logger.WithError(err).Debug("Could not fetch gateway DNS analytics")
	} else {
		report.GatewayDNS = gatewayDNS
	}

	seats, err := c.client.ZeroTrustSeats(ctx, accountID)
	if err != nil {
		c.logger.WithError(err).Debug("Could not fetch Zero Trust seats")
	} else {
		report.Seats = seats
	}
}
