package cloudflare

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

const sinceFormat = "2006-01-02T15:04:05Z"

func sinceQuery(since time.Time) url.Values {
	q := url.Values{}
	q.Set("since", since.UTC().Format(sinceFormat))
	return q
}

// Zones lists all zones of the account.
func (c *Client) Zones(ctx context.Context) ([]Zone, error) {
	var zones []Zone
	err := c.forEachPage(ctx, "/zones", nil, func(result json.RawMessage) (int, error) {
		var page []Zone
		if err := json.Unmarshal(result, &page); err != nil {
			return 0, err
		}
		zones = append(zones, page...)
		return len(page), nil
	})
	return zones, err
}

// ZoneCacheLevel fetches the cache_level setting of a zone.  A nil result
// means the setting was not available.
func (c *Client) ZoneCacheLevel(ctx context.Context, zoneID string) (*ZoneSetting, error) {
	setting := &ZoneSetting{}
	ok, err := c.getResult(ctx, fmt.Sprintf("/zones/%s/settings/cache_level", zoneID), nil, false, setting)
	if err != nil || !ok {
		return nil, err
	}
	return setting, nil
}

// ZoneSSLSetting fetches the ssl setting of a zone.
func (c *Client) ZoneSSLSetting(ctx context.Context, zoneID string) (*ZoneSetting, error) {
	setting := &ZoneSetting{}
	ok, err := c.getResult(ctx, fmt.Sprintf("/zones/%s/settings/ssl", zoneID), nil, false, setting)
	if err != nil || !ok {
		return nil, err
	}
	return setting, nil
}

// ZoneAnalytics fetches the analytics dashboard of a zone since the given
// time.
func (c *Client) ZoneAnalytics(ctx context.Context, zoneID string, since time.Time) (*ZoneAnalytics, error) {
	analytics := &ZoneAnalytics{}
	ok, err := c.getResult(ctx, fmt.Sprintf("/zones/%s/analytics/dashboard", zoneID), sinceQuery(since), false, analytics)
	if err != nil || !ok {
		return nil, err
	}
	return analytics, nil
}

// ZoneDNSRecords lists the DNS records of a zone.
func (c *Client) ZoneDNSRecords(ctx context.Context, zoneID string) ([]DNSRecord, error) {
	var records []DNSRecord
	err := c.forEachPage(ctx, fmt.Sprintf("/zones/%s/dns_records", zoneID), nil, func(result json.RawMessage) (int, error) {
		var page []DNSRecord
		if err := json.Unmarshal(result, &page); err != nil {
			return 0, err
		}
		records = append(records, page...)
		return len(page), nil
	})
	return records, err
}

// ZoneSecurityEvents fetches firewall/WAF events of a zone since the given
// time.
func (c *Client) ZoneSecurityEvents(ctx context.Context, zoneID string, since time.Time) (*SecurityEvents, error) {
	events := &SecurityEvents{}
	ok, err := c.getResult(ctx, fmt.Sprintf("/zones/%s/security/events", zoneID), sinceQuery(since), false, events)
	if err != nil || !ok {
		return nil, err
	}
	return events, nil
}

// AccountID resolves the id of the first account visible to the credentials.
// Empty when the accounts endpoint had nothing for us.
func (c *Client) AccountID(ctx context.Context) (string, error) {
	var accounts []Account
	err := c.forEachPage(ctx, "/accounts", nil, func(result json.RawMessage) (int, error) {
		var page []Account
		if err := json.Unmarshal(result, &page); err != nil {
			return 0, err
		}
		accounts = append(accounts, page...)
		return len(page), nil
	})
	if err != nil || len(accounts) == 0 {
		return "", err
	}
	return accounts[0].ID, nil
}

// WorkerScripts lists the Workers scripts of an account.
func (c *Client) WorkerScripts(ctx context.Context, accountID string) ([]WorkerScript, error) {
	var workers []WorkerScript
	_, err := c.getResult(ctx, fmt.Sprintf("/accounts/%s/workers/scripts", accountID), nil, false, &workers)
	return workers, err
}

// PagesProjects lists the Pages projects of an account.
func (c *Client) PagesProjects(ctx context.Context, accountID string) ([]PagesProject, error) {
	var projects []PagesProject
	_, err := c.getResult(ctx, fmt.Sprintf("/accounts/%s/pages/projects", accountID), nil, false, &projects)
	return projects, err
}

// D1Databases lists the D1 databases of an account.
func (c *Client) D1Databases(ctx context.Context, accountID string) ([]D1Database, error) {
	var dbs []D1Database
	_, err := c.getResult(ctx, fmt.Sprintf("/accounts/%s/d1/database", accountID), nil, false, &dbs)
	return dbs, err
}

// SecretsStores lists the secrets stores of an account.
func (c *Client) SecretsStores(ctx context.Context, accountID string) ([]SecretsStore, error) {
	var stores []SecretsStore
	err := c.forEachPage(ctx, fmt.Sprintf("/accounts/%s/secrets_store/stores", accountID), nil, func(result json.RawMessage) (int, error) {
		var page []SecretsStore
		if err := json.Unmarshal(result, &page); err != nil {
			return 0, err
		}
		stores = append(stores, page...)
		return len(page), nil
	})
	return stores, err
}

// StoreSecrets lists the secrets inside one store.
func (c *Client) StoreSecrets(ctx context.Context, accountID, storeID string) ([]Secret, error) {
	var secrets []Secret
	err := c.forEachPage(ctx, fmt.Sprintf("/accounts/%s/secrets_store/stores/%s/secrets", accountID, storeID), nil, func(result json.RawMessage) (int, error) {
		var page []Secret
		if err := json.Unmarshal(result, &page); err != nil {
			return 0, err
		}
		secrets = append(secrets, page...)
		return len(page), nil
	})
	return secrets, err
}

// PhysicalDevices lists the WARP physical devices of an account using
// cursor pagination.
func (c *Client) PhysicalDevices(ctx context.Context, accountID string) ([]Device, error) {
	var devices []Device
	err := c.forEachCursor(ctx, fmt.Sprintf("/accounts/%s/devices/physical-devices", accountID), func(result json.RawMessage) (int, error) {
		var batch []Device
		if err := json.Unmarshal(result, &batch); err != nil {
			return 0, err
		}
		devices = append(devices, batch...)
		return len(batch), nil
	})
	return devices, err
}

// AccessApps lists the Access applications of an account.
func (c *Client) AccessApps(ctx context.Context, accountID string) ([]AccessApp, error) {
	var apps []AccessApp
	err := c.forEachPage(ctx, fmt.Sprintf("/accounts/%s/access/apps", accountID), nil, func(result json.RawMessage) (int, error) {
		var page []AccessApp
		if err := json.Unmarshal(result, &page); err != nil {
			return 0, err
		}
		apps = append(apps, page...)
		return len(page), nil
	})
	return apps, err
}

// GatewayAccount fetches the Zero Trust gateway account configuration.
func (c *Client) GatewayAccount(ctx context.Context, accountID string) (*GatewayAccount, error) {
	account := &GatewayAccount{}
	ok, err := c.getResult(ctx, fmt.Sprintf("/accounts/%s/gateway", accountID), nil, false, account)
	if err != nil || !ok {
		return nil, err
	}
	return account, nil
}

// GatewayRules lists the gateway rules of an account.
func (c *Client) GatewayRules(ctx context.Context, accountID string) ([]GatewayRule, error) {
	var rules []GatewayRule
	err := c.forEachPage(ctx, fmt.Sprintf("/accounts/%s/gateway/rules", accountID), nil, func(result json.RawMessage) (int, error) {
		var page []GatewayRule
		if err := json.Unmarshal(result, &page); err != nil {
			return 0, err
		}
		rules = append(rules, page...)
		return len(page), nil
	})
	return rules, err
}

// AccessAnalytics fetches Access analytics.  The endpoint is not available
// on every account, so errors are silenced into absence.
func (c *Client) AccessAnalytics(ctx context.Context, accountID string, since time.Time) (*AccessAnalytics, error) {
	analytics := &AccessAnalytics{}
	ok, err := c.getResult(ctx, fmt.Sprintf("/accounts/%s/access/analytics", accountID), sinceQuery(since), true, analytics)
	if err != nil || !ok {
		return nil, err
	}
	return analytics, nil
}

// GatewayHTTPAnalytics fetches gateway HTTP traffic analytics, silently.
func (c *Client) GatewayHTTPAnalytics(ctx context.Context, accountID string, since time.Time) (*GatewayHTTPAnalytics, error) {
	analytics := &GatewayHTTPAnalytics{}
	ok, err := c.getResult(ctx, fmt.Sprintf("/accounts/%s/gateway/analytics/http", accountID), sinceQuery(since), true, analytics)
	if err != nil || !ok {
		return nil, err
	}
	return analytics, nil
}

// GatewayNetworkAnalytics fetches gateway network traffic analytics,
// silently.
func (c *Client) GatewayNetworkAnalytics(ctx context.Context, accountID string, since time.Time) (*GatewayNetworkAnalytics, error) {
	analytics := &GatewayNetworkAnalytics{}
	ok, err := c.getResult(ctx, fmt.Sprintf("/accounts/%s/gateway/analytics/network", accountID), sinceQuery(since), true, analytics)
	if err != nil || !ok {
		return nil, err
	}
	return analytics, nil
}

// GatewayDNSAnalytics fetches gateway DNS traffic analytics, silently.
func (c *Client) GatewayDNSAnalytics(ctx context.Context, accountID string, since time.Time) (*GatewayDNSAnalytics, error) {
	analytics := &GatewayDNSAnalytics{}
	ok, err := c.getResult(ctx, fmt.Sprintf("/accounts/%s/gateway/analytics/dns", accountID), sinceQuery(since), true, analytics)
	if err != nil || !ok {
		return nil, err
	}
	return analytics, nil
}

// ZeroTrustSeats fetches Zero Trust seat usage, silently.
func (c *Client) ZeroTrustSeats(ctx context.Context, accountID string) (*ZeroTrustSeats, error) {
	seats := &ZeroTrustSeats{}
	ok, err := c.getResult(ctx, fmt.Sprintf("/accounts/%s/zt/seats", accountID), nil, true, seats)
	if err != nil || !ok {
		return nil, err
	}
	return seats, nil
}
