package config

// Config 配置主体
type Config struct {
	Server                Server           `mapstructure:"server"`
	DB                    DBConfig         `mapstructure:"database"`
	Redis                 RedisConfig      `mapstructure:"redis"`
	Logstash              LogstashConfig   `mapstructure:"logstash"`
	Moderation            ModerationConfig `mapstructure:"moderation"`
	Kafka                 KafkaConfig      `mapstructure:"kafka"`
	KafkaAIFlagConsumer   KafkaConsumer    `mapstructure:"kafka_ai_flag_consumer"`
	KafkaReportConsumer   KafkaConsumer    `mapstructure:"kafka_report_consumer"`
}

// Server Server配置
type Server struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LogstashConfig 日志上报配置
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// ModerationConfig 审核策略配置
// 阈值是产品策略而非机制，默认值与线上策略一致
type ModerationConfig struct {
	AIScoreHighThreshold  int `mapstructure:"ai_score_high_threshold"`  // aiScore 达到该值直接 high
	ReportCountHigh       int `mapstructure:"report_count_high"`        // 独立举报人数达到该值升 high
	ReportCountMedium     int `mapstructure:"report_count_medium"`      // 独立举报人数达到该值升 medium
	SoftDeleteRetainDays  int `mapstructure:"soft_delete_retain_days"`  // 软删除保留窗口
	ExpertValidityMonths  int `mapstructure:"expert_validity_months"`   // 专家认证有效期
	EditRequestsPerHour   int `mapstructure:"edit_requests_per_hour"`   // 编辑请求滑动窗口限额（小时）
	EditRequestsPerDay    int `mapstructure:"edit_requests_per_day"`    // 编辑请求滑动窗口限额（天）
}

// ApplyDefaults 未配置时回落到默认策略
func (c *ModerationConfig) ApplyDefaults() {
	if c.AIScoreHighThreshold == 0 {
		c.AIScoreHighThreshold = 80
	}
	if c.ReportCountHigh == 0 {
		c.ReportCountHigh = 5
	}
	if c.ReportCountMedium == 0 {
		c.ReportCountMedium = 2
	}
	if c.SoftDeleteRetainDays == 0 {
		c.SoftDeleteRetainDays = 90
	}
	if c.ExpertValidityMonths == 0 {
		c.ExpertValidityMonths = 12
	}
	if c.EditRequestsPerHour == 0 {
		c.EditRequestsPerHour = 10
	}
	if c.EditRequestsPerDay == 0 {
		c.EditRequestsPerDay = 50
	}
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
