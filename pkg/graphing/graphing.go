// Package graphing declares metric presentation metadata and graph
// layouts for the cloudflare_* metric families.
package graphing

// MetricInfo describes how one metric is titled and rendered.
type MetricInfo struct {
	Title string
	// Unit is "" for plain counts, "bytes" or "%".
	Unit  string
	Color string
}

// GraphMetric places one metric on a graph.
type GraphMetric struct {
	Name  string
	// Draw is "line" or "area".
	Draw  string
	Title string
}

// GraphInfo is one graph definition.
type GraphInfo struct {
	Title   string
	Metrics []GraphMetric
}

// Metrics maps metric name to its presentation.
var Metrics = map[string]MetricInfo{
	"cloudflare_requests_total":       {Title: "Total Requests", Unit: "", Color: "#0066cc"},
	"cloudflare_bandwidth_total":      {Title: "Total Bandwidth", Unit: "bytes", Color: "#00cc66"},
	"cloudflare_cached_requests":      {Title: "Cached Requests", Unit: "", Color: "#cc0066"},
	"cloudflare_cache_hit_rate":       {Title: "Cache Hit Rate", Unit: "%", Color: "#cc6600"},
	"cloudflare_dns_records_total":    {Title: "DNS Records Total", Unit: "", Color: "#0066cc"},
	"cloudflare_d1_size":              {Title: "D1 Database Size", Unit: "bytes", Color: "#0066cc"},
	"cloudflare_d1_databases_total":   {Title: "D1 Databases Total", Unit: "", Color: "#00cc66"},
	"cloudflare_pages_projects_total": {Title: "Pages Projects Total", Unit: "", Color: "#0066cc"},
	"cloudflare_pages_domains_count":  {Title: "Pages Domains Count", Unit: "", Color: "#00cc66"},
	"cloudflare_secrets_count":        {Title: "Secrets Count", Unit: "", Color: "#0066cc"},
	"cloudflare_secrets_stores_total": {Title: "Secrets Stores Total", Unit: "", Color: "#00cc66"},
}

// Graphs maps graph name to its layout.
var Graphs = map[string]GraphInfo{
	"cloudflare_requests": {
		Title: "Cloudflare Requests",
		Metrics: []GraphMetric{
			{Name: "cloudflare_requests_total", Draw: "line", Title: "Total Requests"},
			{Name: "cloudflare_cached_requests", Draw: "line", Title: "Cached Requests"},
		},
	},
	"cloudflare_bandwidth": {
		Title: "Cloudflare Bandwidth",
		Metrics: []GraphMetric{
			{Name: "cloudflare_bandwidth_total", Draw: "area", Title: "Total Bandwidth"},
		},
	},
	"cloudflare_cache_hit_rate": {
		Title: "Cloudflare Cache Hit Rate",
		Metrics: []GraphMetric{
			{Name: "cloudflare_cache_hit_rate", Draw: "line", Title: "Cache Hit Rate"},
		},
	},
	"cloudflare_dns_records": {
		Title: "Cloudflare DNS Records",
		Metrics: []GraphMetric{
			{Name: "cloudflare_dns_records_total", Draw: "line", Title: "Total Records"},
		},
	},
	"cloudflare_d1_size": {
		Title: "Cloudflare D1 Database Size",
		Metrics: []GraphMetric{
			{Name: "cloudflare_d1_size", Draw: "area", Title: "Database Size"},
		},
	},
	"cloudflare_d1_databases": {
		Title: "Cloudflare D1 Databases",
		Metrics: []GraphMetric{
			{Name: "cloudflare_d1_databases_total", Draw: "line", Title: "Total Databases"},
		},
	},
	"cloudflare_pages_projects": {
		Title: "Cloudflare Pages Projects",
		Metrics: []GraphMetric{
			{Name: "cloudflare_pages_projects_total", Draw: "line", Title: "Total Projects"},
		},
	},
	"cloudflare_pages_domains": {
		Title: "Cloudflare Pages Domains",
		Metrics: []GraphMetric{
			{Name: "cloudflare_pages_domains_count", Draw: "line", Title: "Domains Count"},
		},
	},
	"cloudflare_secrets": {
		Title: "Cloudflare Secrets",
		Metrics: []GraphMetric{
			{Name: "cloudflare_secrets_count", Draw: "line", Title: "Secrets Count"},
			{Name: "cloudflare_secrets_stores_total", Draw: "line", Title: "Stores Total"},
		},
	},
}
