package config

type StorageType string

const (
	StorageTypeFilesystem StorageType = "filesystem"
	StorageTypeS3         StorageType = "s3"
)

// StorageConfig selects where generated report files are stored.
type StorageConfig struct {
	// Type is the storage backend type. Supported: filesystem, s3
	Type StorageType `yaml:"type"`
	// BasePath is the directory for report files when the filesystem backend is used.
	BasePath string `yaml:"base_path"`
	// S3 configures the S3 compatible backend.
	S3 S3StorageConfig `yaml:"s3"`
}

// S3StorageConfig contains the settings for an S3 compatible object store,
// for example AWS S3, MinIO or DigitalOcean Spaces.
type S3StorageConfig struct {
	// Bucket is the name of the bucket.
	Bucket string `yaml:"bucket"`
	// Region is the AWS region.
	Region string `yaml:"region"`
	// Endpoint overrides the default AWS endpoint for S3 compatible services.
	Endpoint string `yaml:"endpoint"`
	// UsePathStyle forces path style bucket addressing, needed by MinIO.
	UsePathStyle bool `yaml:"use_path_style"`
	// Prefix is prepended to all object keys.
	Prefix string `yaml:"prefix"`
	// AccessKeyID and SecretAccessKey configure static credentials. If both
	// are empty, the default AWS credential chain is used instead.
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}
