package restapi

import (
	"errors"
	"net/http"

	"deploy_config/internal/app/port"
	"deploy_config/internal/app/render"
	"deploy_config/internal/domain/entity"
	"deploy_config/internal/infrastructure/signer"

	"github.com/gin-gonic/gin"
)

// NetworkView is a network profile joined with its static definition.
type NetworkView struct {
	Identifier string                   `json:"identifier"`
	Profile    entity.NetworkProfile    `json:"profile"`
	Definition entity.NetworkDefinition `json:"definition"`
}

// ConfigHandler serves the assembled deploy configuration.
// Secrets are always masked on the wire.
type ConfigHandler struct {
	configs     port.ConfigProvider
	definitions port.NetworkDefinitionProvider
	probes      port.ProbeService
	explorers   port.ExplorerService
	signers     *signer.KeyResolver
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(
	configs port.ConfigProvider,
	definitions port.NetworkDefinitionProvider,
	probes port.ProbeService,
	explorers port.ExplorerService,
	signers *signer.KeyResolver,
) *ConfigHandler {
	return &ConfigHandler{
		configs:     configs,
		definitions: definitions,
		probes:      probes,
		explorers:   explorers,
		signers:     signers,
	}
}

// GetConfigHandler returns the whole configuration, redacted.
func (h *ConfigHandler) GetConfigHandler(c *gin.Context) {
	c.JSON(http.StatusOK, render.Redact(h.configs.GetConfig()))
}

// ListNetworksHandler returns every network with its definition, sorted by identifier.
func (h *ConfigHandler) ListNetworksHandler(c *gin.Context) {
	cfg := render.Redact(h.configs.GetConfig())
	defs := h.definitions.GetAllNetworkDefinitions()
	views := make([]NetworkView, 0, len(defs))
	for _, def := range defs {
		profile, ok := cfg.Network(def.Identifier)
		if !ok {
			continue
		}
		views = append(views, NetworkView{Identifier: def.Identifier, Profile: profile, Definition: def})
	}
	c.JSON(http.StatusOK, gin.H{"defaultNetwork": cfg.DefaultNetwork, "networks": views})
}

// GetNetworkHandler returns one network.
func (h *ConfigHandler) GetNetworkHandler(c *gin.Context) {
	name := c.Param("name")
	profile, ok := render.Redact(h.configs.GetConfig()).Network(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": entity.ErrUnknownNetwork.Error(), "network": name})
		return
	}
	def, _ := h.definitions.GetNetworkDefinitionByName(name)
	c.JSON(http.StatusOK, NetworkView{Identifier: name, Profile: profile, Definition: def})
}

// ProbeNetworkHandler probes one network's RPC endpoint.
func (h *ConfigHandler) ProbeNetworkHandler(c *gin.Context) {
	name := c.Param("name")
	result, err := h.probes.Probe(c.Request.Context(), name)
	if err != nil {
		status := http.StatusServiceUnavailable
		if errors.Is(err, entity.ErrUnknownNetwork) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error(), "network": name})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ProbeAllHandler probes every network, or those named in ?network=.
func (h *ConfigHandler) ProbeAllHandler(c *gin.Context) {
	results := h.probes.ProbeAll(c.Request.Context(), c.QueryArray("network"))
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// AccountsHandler returns the signer addresses derived from the configured keys.
func (h *ConfigHandler) AccountsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"accounts": h.signers.Accounts(h.configs.GetConfig())})
}

// ExplorersHandler checks every explorer credential.
func (h *ConfigHandler) ExplorersHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"explorers": h.explorers.CheckAll(c.Request.Context())})
}
