// Package specialagent turns configured datasource-program parameters
// into the command line of the agent binary.  Parameter documents may
// come from older rule versions, so legacy key spellings are migrated
// before decoding.
package specialagent

import (
	"strconv"

	"github.com/pkg/errors"
	validator "gopkg.in/go-playground/validator.v9"
	yaml "gopkg.in/yaml.v2"
)

// Params is the decoded datasource-program rule value.
type Params struct {
	Email     string `yaml:"email" validate:"required"`
	APIToken  string `yaml:"api_token" validate:"required"`
	AccountID string `yaml:"account_id"`
	// Timeout is the per-request timeout in seconds.
	Timeout int `yaml:"timeout" validate:"omitempty,min=1,max=300"`

	CDNCache     bool `yaml:"cdn_cache"`
	DNS          bool `yaml:"dns"`
	SSLTLS       bool `yaml:"ssl_tls"`
	Firewall     bool `yaml:"firewall"`
	WorkersPages bool `yaml:"workers_pages"`
	D1           bool `yaml:"d1"`
	Secrets      bool `yaml:"secrets"`
	Devices      bool `yaml:"devices"`
	Apps         bool `yaml:"apps"`
	Gateway      bool `yaml:"gateway"`
	Analytics    bool `yaml:"analytics"`

	FetchAll bool `yaml:"fetch_all"`
	Verbose  bool `yaml:"verbose"`
}

// Parse decodes and validates a parameter document.
func Parse(raw []byte) (*Params, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "could not decode agent params")
	}
	migrate(doc)

	buf, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "could not re-encode agent params")
	}
	params := &Params{}
	if err := yaml.Unmarshal(buf, params); err != nil {
		return nil, errors.Wrap(err, "could not decode agent params")
	}
	if err := validator.New().Struct(params); err != nil {
		return nil, errors.Wrap(err, "invalid agent params")
	}
	return params, nil
}

// migrate rewrites legacy key spellings in place: the hyphenated
// "api-token", the old nested "auth" structure and the retired api_key
// fields.
func migrate(doc map[string]interface{}) {
	if _, ok := doc["api_token"]; !ok {
		if v, ok := doc["api-token"]; ok {
			doc["api_token"] = v
		}
	}
	delete(doc, "api-token")

	if auth, ok := doc["auth"]; ok {
		delete(doc, "auth")
		switch a := auth.(type) {
		case []interface{}:
			if len(a) == 2 && a[0] == "api_token" {
				doc["api_token"] = a[1]
			}
		case map[interface{}]interface{}:
			if v, ok := a["api_token"]; ok {
				doc["api_token"] = v
			} else if v, ok := a["choice"]; ok {
				doc["api_token"] = v
			}
		}
	}

	delete(doc, "api_key")
	delete(doc, "api-key")
}

// Commands builds the agent argv for these params.  With fetch_all set
// the per-kind flags collapse into --all.
func (p *Params) Commands() []string {
	args := []string{"--email", p.Email, "--api-token", p.APIToken}
	if p.AccountID != "" {
		args = append(args, "--account-id", p.AccountID)
	}
	if p.Timeout > 0 {
		args = append(args, "--timeout", strconv.Itoa(p.Timeout))
	}

	if p.FetchAll {
		args = append(args, "--all")
	} else {
		flags := []struct {
			set  bool
			flag string
		}{
			{p.CDNCache, "--cdn-cache"},
			{p.DNS, "--dns"},
			{p.SSLTLS, "--ssl-tls"},
			{p.Firewall, "--firewall"},
			{p.WorkersPages, "--workers-pages"},
			{p.D1, "--d1"},
			{p.Secrets, "--secrets"},
			{p.Devices, "--devices"},
			{p.Apps, "--apps"},
			{p.Gateway, "--gateway"},
			{p.Analytics, "--analytics"},
		}
		for _, f := range flags {
			if f.set {
				args = append(args, f.flag)
			}
		}
	}

	if p.Verbose {
		args = append(args, "--verbose")
	}
	return args
}
