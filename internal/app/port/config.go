package port

import "deploy_config/internal/domain/entity"

// Environment is a read-only view of environment variables.
type Environment interface {
	// Lookup returns the value of key and whether it was set.
	Lookup(key string) (string, bool)
}

// ConfigProvider defines the interface for accessing the assembled deploy configuration.
type ConfigProvider interface {
	GetConfig() entity.DeployConfig
}
