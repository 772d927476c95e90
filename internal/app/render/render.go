// Package render serializes the deploy configuration for the deploy tool and for humans.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"deploy_config/internal/domain/entity"
	networkdefinition "deploy_config/internal/infrastructure/network/definition"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format selects an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want json or yaml)", s)
	}
}

// Encode renders cfg in the requested format. JSON output keeps the field
// names the deploy tool reads (defaultNetwork, solidity.compilers, networks, etherscan.apiKey).
func Encode(cfg entity.DeployConfig, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode config as JSON: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, fmt.Errorf("failed to encode config as YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode config as YAML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

const redactedMark = "<redacted>"

// Mask hides a secret while keeping a hint of which value is configured.
// Empty stays empty so unset variables remain visible.
func Mask(secret string) string {
	switch {
	case secret == "":
		return ""
	case len(secret) <= 8:
		return redactedMark
	default:
		return secret[:4] + "..." + secret[len(secret)-4:]
	}
}

// Redact returns a copy of cfg with private keys and API keys masked,
// including API keys embedded in endpoint URLs.
func Redact(cfg entity.DeployConfig) entity.DeployConfig {
	out := cfg.Clone()
	defs := networkdefinition.Definitions()

	for name, p := range out.Networks {
		for i, key := range p.Accounts {
			p.Accounts[i] = Mask(key)
		}
		if def, ok := defs[name]; ok && def.URLKeyVar != "" {
			prefix := networkdefinition.RenderURL(def, "")
			if strings.HasPrefix(p.URL, prefix) {
				p.URL = prefix + Mask(strings.TrimPrefix(p.URL, prefix))
			}
		}
		out.Networks[name] = p
	}
	for k, v := range out.Etherscan.APIKey {
		out.Etherscan.APIKey[k] = Mask(v)
	}
	return out
}
