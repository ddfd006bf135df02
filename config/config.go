package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// RoomSeed describes one room of the ledger every new session starts with.
type RoomSeed struct {
	ID    string  `mapstructure:"id"`
	Type  string  `mapstructure:"type"`
	Price float64 `mapstructure:"price"`
}

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Mongo configuration.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Conversation sessions.
	SessionBackend       string        `mapstructure:"SESSION_BACKEND"`
	SessionTTL           time.Duration `mapstructure:"SESSION_TTL"`
	SessionSweepSchedule string        `mapstructure:"SESSION_SWEEP_SCHEDULE"`
	DefaultUserName      string        `mapstructure:"DEFAULT_USER_NAME"`
	Rooms                []RoomSeed    `mapstructure:"rooms"`

	// Language model.
	GeminiAPIKey  string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel   string `mapstructure:"GEMINI_MODEL"`
	ReplyLanguage string `mapstructure:"REPLY_LANGUAGE"`

	// Google Maps API Key.
	GoogleAPIKey             string `mapstructure:"GOOGLE_API_KEY"`
	GoogleServiceAccountFile string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_FILE"`

	// Voice.
	VoiceBackend string `mapstructure:"VOICE_BACKEND"`
	STTLanguage  string `mapstructure:"STT_LANGUAGE"`
	TTSLanguage  string `mapstructure:"TTS_LANGUAGE"`
	TTSVoice     string `mapstructure:"TTS_VOICE"`

	ExternalTimeout time.Duration `mapstructure:"EXTERNAL_TIMEOUT"`

	// Hotel location.
	HotelName string  `mapstructure:"HOTEL_NAME"`
	HotelLat  float64 `mapstructure:"HOTEL_LAT"`
	HotelLng  float64 `mapstructure:"HOTEL_LNG"`

	// Staff notifications.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	StaffTopic              string `mapstructure:"STAFF_TOPIC"`

	// Reply audio hosting.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	AudioFolder         string `mapstructure:"AUDIO_FOLDER"`
}

var AppConfig Config

// DefaultRooms is the ledger used when config.yaml does not list any rooms.
var DefaultRooms = []RoomSeed{
	{ID: "room_101", Type: "single", Price: 100},
	{ID: "room_102", Type: "double", Price: 150},
	{ID: "room_103", Type: "suite", Price: 300},
	{ID: "room_104", Type: "single", Price: 100},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_SESSION_DB", 0)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "hotel_support")
	v.SetDefault("SESSION_BACKEND", "memory")
	v.SetDefault("SESSION_TTL", "2h")
	v.SetDefault("SESSION_SWEEP_SCHEDULE", "@every 10m")
	v.SetDefault("DEFAULT_USER_NAME", "User")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "models/gemini-2.0-flash")
	v.SetDefault("REPLY_LANGUAGE", "English")
	v.SetDefault("GOOGLE_API_KEY", "")
	v.SetDefault("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	v.SetDefault("VOICE_BACKEND", "none")
	v.SetDefault("STT_LANGUAGE", "ar-EG")
	v.SetDefault("TTS_LANGUAGE", "ar-XA")
	v.SetDefault("TTS_VOICE", "ar-XA-Chirp3-HD-Callirrhoe")
	v.SetDefault("EXTERNAL_TIMEOUT", "20s")
	v.SetDefault("HOTEL_NAME", "Hilton Green Plaza, Alexandria")
	v.SetDefault("HOTEL_LAT", 31.206692802811737)
	v.SetDefault("HOTEL_LNG", 29.965618756378323)
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("STAFF_TOPIC", "hotel-staff")
	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	v.SetDefault("CLOUDINARY_API_KEY", "")
	v.SetDefault("CLOUDINARY_API_SECRET", "")
	v.SetDefault("AUDIO_FOLDER", "hotel-support/replies")
}

// Load reads configuration from an optional .env file, config.yaml and the
// environment into a fresh Config.
func Load(v *viper.Viper) (Config, error) {
	if err := godotenv.Load(".env"); err == nil {
		log.Println("Loaded configuration from .env file")
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if len(cfg.Rooms) == 0 {
		cfg.Rooms = append([]RoomSeed(nil), DefaultRooms...)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	switch c.SessionBackend {
	case "memory", "redis", "mongo":
	default:
		return fmt.Errorf("unsupported SESSION_BACKEND %q", c.SessionBackend)
	}
	switch c.VoiceBackend {
	case "none", "google":
	default:
		return fmt.Errorf("unsupported VOICE_BACKEND %q", c.VoiceBackend)
	}
	if c.ExternalTimeout <= 0 {
		return fmt.Errorf("EXTERNAL_TIMEOUT must be positive")
	}
	return nil
}

// LoadConfig populates AppConfig and exits on failure.
func LoadConfig() {
	cfg, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
