package main

import (
	"k8s.io/klog/v2"

	"github.com/leafclutch/leafclutch-backend/cmd/leafclutch/helper"
)

// @title						Leafclutch Admin API
// @version						1.0.0
// @description					This is the API server for the Leafclutch site admin panel.
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
// @description					Log in via /auth/login, then supply 'Bearer ${TOKEN}' to reach protected routes.
func main() {
	// Initialize configuration
	configInit := helper.NewConfigInitializer()
	backendConfig := configInit.GetBackendConfig()

	// Load debug environment if needed
	if err := configInit.LoadDebugEnvironment(); err != nil {
		klog.Fatalf("Failed to load env: %s", err)
	}

	// Initialize register config and dependencies
	registerConfig, err := configInit.InitializeRegisterConfig()
	if err != nil {
		klog.Fatalf("Failed to register config: %s\n", err)
	}

	// Start HTTP server
	serverRunner := helper.NewServerRunner(backendConfig)
	serverRunner.StartServer(registerConfig)
}
