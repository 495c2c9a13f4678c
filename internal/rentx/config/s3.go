package config

import "time"

// S3Config holds the listing image storage settings. Endpoint is left empty
// for AWS proper and set for S3-compatible stores such as MinIO.
type S3Config struct {
	Region     string        `yaml:"region" env:"RENTX_S3_REGION" env-default:"us-east-1"`
	Bucket     string        `yaml:"bucket" env:"RENTX_S3_BUCKET" env-default:"rentx-images"`
	Endpoint   string        `yaml:"endpoint" env:"RENTX_S3_ENDPOINT" env-default:""`
	AccessKey  string        `yaml:"access_key" env:"RENTX_S3_ACCESS_KEY" env-default:""`
	SecretKey  string        `yaml:"secret_key" env:"RENTX_S3_SECRET_KEY" env-default:""`
	PresignTTL time.Duration `yaml:"presign_ttl" env:"RENTX_S3_PRESIGN_TTL" env-default:"15m"`
}
