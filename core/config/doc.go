// Package config loads typed configuration from environment variables.
//
// A .env file in the working directory is applied once, on first use, without
// overriding variables that are already set. Structs are parsed with
// caarlos0/env, so fields are described with `env` and `envDefault` tags:
//
//	type StorageConfig struct {
//		Driver    string `env:"STORAGE_DRIVER" envDefault:"local"`
//		OutputDir string `env:"OUTPUT_DIR" envDefault:"./static/optimized"`
//	}
//
//	var cfg StorageConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Each configuration type is parsed once per process and cached; later calls
// for the same type copy the cached value into the destination. Use Reset in
// tests that mutate the environment between loads.
package config
