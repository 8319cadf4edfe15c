package config

import (
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port        string `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
	CORSOrigin  string `mapstructure:"corsOrigin"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration string `mapstructure:"expiration"`
}

type S3Config struct {
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	AccessKeyID      string `mapstructure:"accessKeyID"`
	SecretAccessKey  string `mapstructure:"secretAccessKey"`
	CloudFrontDomain string `mapstructure:"cloudFrontDomain"`
}

type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
	// MaxConcurrent bounds how many validation tasks a worker runs at once.
	MaxConcurrent int `mapstructure:"maxConcurrent"`
}

type DocIntelConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	APIKey   string `mapstructure:"apiKey"`
	ModelID  string `mapstructure:"modelID"`
	// PollIntervalSeconds is the delay between result polls.
	PollIntervalSeconds int `mapstructure:"pollIntervalSeconds"`
	// RequestsPerSecond caps outbound analyze calls.
	RequestsPerSecond float64 `mapstructure:"requestsPerSecond"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Sender   string `mapstructure:"sender"`
	Password string `mapstructure:"password"`
	// ResetBaseURL is the frontend page the password-reset email links to.
	ResetBaseURL string `mapstructure:"resetBaseURL"`
}

// FabricConfig drives the optional compliance audit ledger. When Enabled is
// false the remaining fields are ignored.
type FabricConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	ChannelName       string `mapstructure:"channelName"`
	ChaincodeName     string `mapstructure:"chaincodeName"`
	OrgName           string `mapstructure:"orgName"`
	UserName          string `mapstructure:"userName"`
	ConnectionProfile string `mapstructure:"connectionProfile"`
	UserCertPath      string `mapstructure:"userCertPath"`
	UserKeyDir        string `mapstructure:"userKeyDir"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	S3       S3Config       `mapstructure:"s3"`
	NATS     NATSConfig     `mapstructure:"nats"`
	DocIntel DocIntelConfig `mapstructure:"docintel"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Fabric   FabricConfig   `mapstructure:"fabric"`
}

// LoadConfig reads config.yaml from path and overlays environment variables.
// A missing config file is not an error; env vars alone are enough to run.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.environment", "SERVER_ENVIRONMENT")
	viper.BindEnv("server.corsOrigin", "SERVER_CORS_ORIGIN")
	viper.BindEnv("mongo.uri", "MONGO_URI")
	viper.BindEnv("mongo.dbName", "MONGO_DBNAME")
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	viper.BindEnv("s3.bucket", "S3_BUCKET")
	viper.BindEnv("s3.region", "S3_REGION")
	viper.BindEnv("s3.accessKeyID", "S3_ACCESS_KEY_ID")
	viper.BindEnv("s3.secretAccessKey", "S3_SECRET_ACCESS_KEY")
	viper.BindEnv("s3.cloudFrontDomain", "S3_CLOUDFRONT_DOMAIN")
	viper.BindEnv("nats.url", "NATS_URL")
	viper.BindEnv("nats.subject", "NATS_SUBJECT")
	viper.BindEnv("nats.maxConcurrent", "NATS_MAX_CONCURRENT")
	viper.BindEnv("docintel.endpoint", "DOCINTEL_ENDPOINT")
	viper.BindEnv("docintel.apiKey", "DOCINTEL_API_KEY")
	viper.BindEnv("docintel.modelID", "DOCINTEL_MODEL_ID")
	viper.BindEnv("smtp.host", "SMTP_HOST")
	viper.BindEnv("smtp.port", "SMTP_PORT")
	viper.BindEnv("smtp.sender", "SMTP_SENDER")
	viper.BindEnv("smtp.password", "SMTP_PASSWORD")
	viper.BindEnv("smtp.resetBaseURL", "SMTP_RESET_BASE_URL")
	viper.BindEnv("fabric.enabled", "FABRIC_ENABLED")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.environment", "development")
	viper.SetDefault("nats.url", "nats://127.0.0.1:4222")
	viper.SetDefault("nats.subject", "documents.validate")
	viper.SetDefault("nats.maxConcurrent", 4)
	viper.SetDefault("docintel.modelID", "general-safety-compliance-docs")
	viper.SetDefault("docintel.pollIntervalSeconds", 2)
	viper.SetDefault("docintel.requestsPerSecond", 5)

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return
}
