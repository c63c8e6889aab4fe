// Package config 提供配置管理
package config

import (
	"os"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	App     AppConfig     `yaml:"app"`
	API     APIConfig     `yaml:"api"`
	Planner PlannerConfig `yaml:"planner"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name     string `yaml:"name"`
	Env      string `yaml:"env"`
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`
	APIKey   string `yaml:"api_key"` // 为空时不启用鉴权
}

// APIConfig API配置
type APIConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// PlannerConfig 规划引擎配置
type PlannerConfig struct {
	TimeLimit     time.Duration `yaml:"time_limit"`      // 单次求解时间上限，透传给求解器
	MaxPeriods    int           `yaml:"max_periods"`     // API 层接受的最大规划月数
	WhatIfWorkers int           `yaml:"whatif_workers"`  // what-if 并行求解协程数
	MaxScenarios  int           `yaml:"max_scenarios"`   // 单次 what-if 最大场景数
}

// MetricsConfig 监控配置
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load 从环境变量加载配置
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:     getEnv("APP_NAME", "renli"),
			Env:      getEnv("APP_ENV", "development"),
			Port:     getEnvInt("APP_PORT", 7021),
			LogLevel: getEnv("APP_LOG_LEVEL", "info"),
			APIKey:   getEnv("APP_API_KEY", ""),
		},
		API: APIConfig{
			Timeout: getEnvDuration("API_TIMEOUT", 30*time.Second),
		},
		Planner: PlannerConfig{
			TimeLimit:     getEnvDuration("PLANNER_TIME_LIMIT", 60*time.Second),
			MaxPeriods:    getEnvInt("PLANNER_MAX_PERIODS", 24),
			WhatIfWorkers: getEnvInt("PLANNER_WHATIF_WORKERS", 4),
			MaxScenarios:  getEnvInt("PLANNER_MAX_SCENARIOS", 20),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
	}

	return cfg, nil
}

// IsDevelopment 检查是否为开发环境
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction 检查是否为生产环境
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// 辅助函数
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
