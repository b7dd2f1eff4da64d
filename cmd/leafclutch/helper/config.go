package helper

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/leafclutch/leafclutch-backend/dao/query"
	"github.com/leafclutch/leafclutch-backend/internal/handler"
	"github.com/leafclutch/leafclutch-backend/pkg/config"
	"github.com/leafclutch/leafclutch-backend/pkg/storage"
)

// ConfigInitializer wires the backend config into runtime dependencies.
type ConfigInitializer struct {
	backendConfig *config.Config
}

func NewConfigInitializer() *ConfigInitializer {
	return &ConfigInitializer{
		backendConfig: config.GetConfig(),
	}
}

func (ci *ConfigInitializer) GetBackendConfig() *config.Config {
	return ci.backendConfig
}

// LoadDebugEnvironment overrides the listen address from .debug.env when the
// server runs in gin debug mode.
func (ci *ConfigInitializer) LoadDebugEnvironment() error {
	if gin.Mode() != gin.DebugMode {
		return nil
	}

	err := godotenv.Load(".debug.env")
	if err != nil {
		return err
	}

	be := os.Getenv("LEAFCLUTCH_BE_PORT")
	if be == "" {
		panic("LEAFCLUTCH_BE_PORT is not set")
	}
	ci.backendConfig.ServerAddr = ":" + be

	return nil
}

func (ci *ConfigInitializer) InitializeRegisterConfig() (*handler.RegisterConfig, error) {
	registerConfig := &handler.RegisterConfig{}

	// init db
	registerConfig.DB = query.GetDB()

	// init storage client
	registerConfig.Storage = storage.NewAppwriteClient(ci.backendConfig)

	return registerConfig, nil
}
