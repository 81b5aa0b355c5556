package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	DevMode  bool   `env:"DEV_MODE" envDefault:"false"`

	// 图像生成供应商
	OpenAIAPIKey  string `env:"OPENAI_API_KEY" envDefault:""`
	OpenAIAPIBase string `env:"OPENAI_API_BASE" envDefault:"https://api.openai.com"`

	// 视频生成供应商
	RunwayAPIKey  string `env:"RUNWAY_API_KEY" envDefault:""`
	RunwayAPIBase string `env:"RUNWAY_API_BASE" envDefault:"https://api.dev.runwayml.com"`

	// Seedream 备选图像供应商
	VolcengineAPIKey string `env:"VOLCENGINE_API_KEY" envDefault:""`

	// 用量上报（PostgREST 风格数据存储），缺省时仅禁用上报
	UsageSinkURL        string `env:"USAGE_SINK_URL" envDefault:""`
	UsageSinkServiceKey string `env:"USAGE_SINK_SERVICE_KEY" envDefault:""`

	DBType     string `env:"DBType" envDefault:""`
	DSNURL     string `env:"DSN_URL" envDefault:""`
	DBUser     string `env:"DBUser" envDefault:""`
	DBPassword string `env:"DBPassword" envDefault:""`
	DBAddr     string `env:"DBAddr" envDefault:""`
	DBName     string `env:"DBName" envDefault:"creative"`
	DBPath     string `env:"DBPath" envDefault:"datas/creative.db"`
	DBPort     string `env:"DBPort" envDefault:"3306"`

	// 归档存储配置，空类型表示关闭归档
	ArchiveType     string `env:"ARCHIVE_TYPE" envDefault:""`
	ArchiveLocalDir string `env:"ARCHIVE_LOCAL_DIR" envDefault:"datas/archive"`

	ArchiveS3Region          string `env:"ARCHIVE_S3_REGION"`
	ArchiveS3Bucket          string `env:"ARCHIVE_S3_BUCKET"`
	ArchiveS3Prefix          string `env:"ARCHIVE_S3_PREFIX"`
	ArchiveS3Endpoint        string `env:"ARCHIVE_S3_ENDPOINT"`
	ArchiveS3AccessKeyID     string `env:"ARCHIVE_S3_ACCESS_KEY_ID"`
	ArchiveS3SecretAccessKey string `env:"ARCHIVE_S3_SECRET_ACCESS_KEY"`
	ArchiveS3SessionToken    string `env:"ARCHIVE_S3_SESSION_TOKEN"`
	ArchiveS3ForcePathStyle  bool   `env:"ARCHIVE_S3_FORCE_PATH_STYLE" envDefault:"false"`
	ArchiveS3PublicBaseURL   string `env:"ARCHIVE_S3_PUBLIC_BASE_URL"`

	ArchiveR2AccountID       string `env:"ARCHIVE_R2_ACCOUNT_ID"`
	ArchiveR2Endpoint        string `env:"ARCHIVE_R2_ENDPOINT"`
	ArchiveR2Region          string `env:"ARCHIVE_R2_REGION" envDefault:"auto"`
	ArchiveR2Bucket          string `env:"ARCHIVE_R2_BUCKET"`
	ArchiveR2Prefix          string `env:"ARCHIVE_R2_PREFIX"`
	ArchiveR2AccessKeyID     string `env:"ARCHIVE_R2_ACCESS_KEY_ID"`
	ArchiveR2SecretAccessKey string `env:"ARCHIVE_R2_SECRET_ACCESS_KEY"`
	ArchiveR2PublicBaseURL   string `env:"ARCHIVE_R2_PUBLIC_BASE_URL"`

	ArchiveOSSEndpoint        string `env:"ARCHIVE_OSS_ENDPOINT"`
	ArchiveOSSBucket          string `env:"ARCHIVE_OSS_BUCKET"`
	ArchiveOSSPrefix          string `env:"ARCHIVE_OSS_PREFIX"`
	ArchiveOSSAccessKeyID     string `env:"ARCHIVE_OSS_ACCESS_KEY_ID"`
	ArchiveOSSAccessKeySecret string `env:"ARCHIVE_OSS_ACCESS_KEY_SECRET"`
	ArchiveOSSPublicBaseURL   string `env:"ARCHIVE_OSS_PUBLIC_BASE_URL"`

	ArchiveCOSBucketURL string `env:"ARCHIVE_COS_BUCKET_URL"`
	ArchiveCOSPrefix    string `env:"ARCHIVE_COS_PREFIX"`
	ArchiveCOSSecretID  string `env:"ARCHIVE_COS_SECRET_ID"`
	ArchiveCOSSecretKey string `env:"ARCHIVE_COS_SECRET_KEY"`

	// 管理接口认证
	AdminKeyHash         string `env:"ADMIN_KEY_HASH" envDefault:""`
	JWTSecret            string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTIssuer            string `env:"JWT_ISSUER" envDefault:"creative-api"`
	JWTExpirationMinutes int    `env:"JWT_EXPIRATION_MINUTES" envDefault:"1440"`
}

func ParseConfig() (Config, error) {
	var Conf Config
	err := env.Parse(&Conf)
	if err != nil {
		logrus.WithError(err).Error("env.Parse error")
		return Config{}, err
	}
	logrus.Debugf("%#v\n", Conf)
	return Conf, nil
}
