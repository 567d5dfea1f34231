package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/kookmin-feed/notice-crawler/internal/config"
)

// snsAPI is the subset of the SNS client the notifier uses.
type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNS publishes alerts to an SNS topic so operators get paged without
// tailing logs.
type SNS struct {
	client   snsAPI
	topicARN string
}

// NewSNS builds an SNS notifier from the notify configuration.
func NewSNS(ctx context.Context, cfg config.NotifyConfig) (*SNS, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewSNSWithClient(sns.NewFromConfig(awsCfg), cfg.TopicARN), nil
}

// NewSNSWithClient wraps an existing client. Tests use it with a fake.
func NewSNSWithClient(client snsAPI, topicARN string) *SNS {
	return &SNS{client: client, topicARN: topicARN}
}

// Notify publishes the alert with the source ID as subject.
func (s *SNS) Notify(ctx context.Context, sourceID, message string) error {
	subject := fmt.Sprintf("notice-crawler: %s failed", sourceID)
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("publish alert for %s: %w", sourceID, err)
	}
	return nil
}
