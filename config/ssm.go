package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// NewSSMClient builds an SSM client from the default AWS credential chain.
func NewSSMClient(ctx context.Context) (*ssm.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ssm.NewFromConfig(cfg), nil
}

// LoadSSM fetches every parameter below prefix and returns them keyed like
// environment variables: /blogly/prod/secret_key becomes SECRET_KEY.
func LoadSSM(ctx context.Context, client ssm.GetParametersByPathAPIClient, prefix string) (map[string]string, error) {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	params := make(map[string]string)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("get ssm parameters under %s: %w", prefix, err)
		}
		for _, parameter := range page.Parameters {
			key := parameterKey(prefix, aws.ToString(parameter.Name))
			if key == "" {
				continue
			}
			params[key] = aws.ToString(parameter.Value)
		}
	}

	return params, nil
}

func parameterKey(prefix, name string) string {
	key := strings.TrimPrefix(name, prefix)
	key = strings.Trim(key, "/")
	key = strings.NewReplacer("/", "_", "-", "_", ".", "_").Replace(key)
	return strings.ToUpper(key)
}
