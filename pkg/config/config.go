package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"
)

type Config struct {
	// Port Settings
	Host       string `json:"host"`       // The domain name of the server.
	ServerAddr string `json:"serverAddr"` // The address the server endpoint binds to.

	Auth struct {
		AccessTokenSecret      string `json:"accessTokenSecret"`
		RefreshTokenSecret     string `json:"refreshTokenSecret"`
		AccessTokenExpiryHour  int    `json:"accessTokenExpiryHour"`
		RefreshTokenExpiryHour int    `json:"refreshTokenExpiryHour"`
	} `json:"auth"`

	Postgres struct {
		Host     string `json:"host"`
		Port     string `json:"port"`
		DBName   string `json:"dbname"`
		User     string `json:"user"`
		Password string `json:"password"`
		SSLMode  string `json:"sslmode"`
		TimeZone string `json:"TimeZone"`
	} `json:"postgres"`

	// Cloudinary signed direct uploads (browser uploads the bytes itself).
	Cloudinary struct {
		CloudName string `json:"cloudName"`
		APIKey    string `json:"apiKey"`
		APISecret string `json:"apiSecret"`
	} `json:"cloudinary"`

	// Appwrite bucket used by the server-side proxy upload path.
	Appwrite struct {
		Endpoint  string `json:"endpoint"`
		ProjectID string `json:"projectID"`
		APIKey    string `json:"apiKey"`
		BucketID  string `json:"bucketID"`
	} `json:"appwrite"`
}

var (
	once   sync.Once
	config *Config
)

func GetConfig() *Config {
	once.Do(func() {
		config = initConfig()
	})
	return config
}

func IsDebugMode() bool {
	return gin.Mode() == gin.DebugMode
}

// initConfig reads the configuration file once at process start. In debug
// mode it reads a local file, otherwise the one mounted from the deployment.
// Missing required values abort the boot, never a request.
func initConfig() *Config {
	config := &Config{}
	var configPath string
	if IsDebugMode() {
		if os.Getenv("LEAFCLUTCH_DEBUG_CONFIG_PATH") != "" {
			configPath = os.Getenv("LEAFCLUTCH_DEBUG_CONFIG_PATH")
		} else {
			configPath = "./etc/debug-config.yaml"
		}
	} else {
		configPath = "/etc/config/config.yaml"
	}
	klog.Info("config path: ", configPath)

	if err := readConfig(configPath, config); err != nil {
		klog.Error("init config", err)
		panic(err)
	}
	if err := config.validate(); err != nil {
		klog.Error("validate config", err)
		panic(err)
	}
	return config
}

func readConfig(filePath string, config *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, config)
}

// validate fails fast on anything the process cannot run without.
// The Cloudinary API secret is deliberately not checked here: the signature
// endpoint reports a distinct configuration error when it is missing.
func (c *Config) validate() error {
	required := map[string]string{
		"serverAddr":              c.ServerAddr,
		"auth.accessTokenSecret":  c.Auth.AccessTokenSecret,
		"auth.refreshTokenSecret": c.Auth.RefreshTokenSecret,
		"postgres.host":           c.Postgres.Host,
		"postgres.port":           c.Postgres.Port,
		"postgres.dbname":         c.Postgres.DBName,
		"postgres.user":           c.Postgres.User,
		"appwrite.endpoint":       c.Appwrite.Endpoint,
		"appwrite.projectID":      c.Appwrite.ProjectID,
		"appwrite.apiKey":         c.Appwrite.APIKey,
		"appwrite.bucketID":       c.Appwrite.BucketID,
	}
	for key, value := range required {
		if value == "" {
			return fmt.Errorf("config: %s is not set", key)
		}
	}
	if c.Auth.AccessTokenExpiryHour == 0 {
		c.Auth.AccessTokenExpiryHour = 2
	}
	if c.Auth.RefreshTokenExpiryHour == 0 {
		c.Auth.RefreshTokenExpiryHour = 168
	}
	return nil
}
