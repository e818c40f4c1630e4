package config

// COSConfig 腾讯云对象存储配置，用于保存帖子图片
type COSConfig struct {
	Enabled    bool   `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	SecretID   string `mapstructure:"secretID" json:"-" yaml:"secretID"`
	SecretKey  string `mapstructure:"secretKey" json:"-" yaml:"secretKey"`
	BucketName string `mapstructure:"bucketName" json:"bucketName" yaml:"bucketName"`
	AppID      string `mapstructure:"appID" json:"appID" yaml:"appID"`
	Region     string `mapstructure:"region" json:"region" yaml:"region"`
	// BaseURL 公共访问地址 (CDN 或自定义域名)，为空时使用存储桶默认域名
	BaseURL string `mapstructure:"baseURL" json:"baseURL" yaml:"baseURL"`
}
