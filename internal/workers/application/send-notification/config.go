// internal/workers/application/send-notification/config.go
package sendnotification

import (
	"time"

	"awards-portal/internal/common/config"
)

type Config struct {
	EmailEnabled     bool
	ReviewersEnabled bool
	FromEmail        string
	ReviewerTopicARN string
	Timeout          time.Duration
}

func LoadConfig(wcfg config.WorkerConfig, ncfg config.NotificationConfig) *Config {
	timeout := config.GetDuration(wcfg.Timeout)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Config{
		EmailEnabled:     ncfg.Email.Enabled,
		ReviewersEnabled: ncfg.Reviewers.Enabled,
		FromEmail:        ncfg.Email.FromEmail,
		ReviewerTopicARN: ncfg.Reviewers.TopicARN,
		Timeout:          timeout,
	}
}
