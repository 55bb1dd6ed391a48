package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration: where inputs live
// and where results go. Simulation parameters live in the scenario file, see
// Simulation.
type AppConfig struct {
	DataPath     string
	ProductsFile string
	BrandsFile   string
	ScenarioFile string
	ResultsDir   string
	LogDir       string

	EnableMermaidCharts bool
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory first.
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	resultsDir := getEnv("RESULTS_FOLDER", filepath.Join(dataPath, "results"))
	logDir := getEnv("LOGS_FOLDER", filepath.Join(dataPath, "logs"))

	for _, dir := range []string{resultsDir, logDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Warn().Err(err).Str("path", dir).Msg("Failed to create directory")
		}
	}

	cfg := &AppConfig{
		DataPath:            dataPath,
		ProductsFile:        getEnv("PRODUCTS_FILE", filepath.Join(dataPath, "data", "products.json")),
		BrandsFile:          getEnv("BRANDS_FILE", filepath.Join(dataPath, "data", "brands.json")),
		ScenarioFile:        getEnv("SCENARIO_FILE", filepath.Join(dataPath, "data", "simulation.yaml")),
		ResultsDir:          resultsDir,
		LogDir:              logDir,
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", true),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
