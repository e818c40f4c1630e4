package config

type KafkaConfig struct {
	Brokers         []string `mapstructure:"brokers" json:"brokers" yaml:"brokers"`
	Topics          Topics   `mapstructure:"topics" json:"topics" yaml:"topics"`
	ConsumerGroupID string   `mapstructure:"consumer_group_id" json:"consumer_group_id" yaml:"consumer_group_id"`
}

type Topics struct {
	PostEvents     string `mapstructure:"postEvents" json:"postEvents" yaml:"postEvents"`             //  帖子变更事件主题
	CommentEvents  string `mapstructure:"commentEvents" json:"commentEvents" yaml:"commentEvents"`    //  评论变更事件主题
	PublishToggles string `mapstructure:"publishToggles" json:"publishToggles" yaml:"publishToggles"` //  发布状态批量切换主题 (管理后台投递)
}
