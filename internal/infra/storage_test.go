package infra

import (
	"context"
	"strings"
	"testing"
	"time"

	"dealflow/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseS3URL(t *testing.T) {
	cases := []struct {
		raw    string
		bucket string
		key    string
		ok     bool
	}{
		{"s3://deal-docs/deals/42/cim.pptx", "deal-docs", "deals/42/cim.pptx", true},
		{"s3://deal-docs/", "", "", false},
		{"https://example.com/cim.pptx", "", "", false},
		{"not a url", "", "", false},
	}
	for _, tc := range cases {
		bucket, key, ok := ParseS3URL(tc.raw)
		assert.Equal(t, tc.ok, ok, tc.raw)
		assert.Equal(t, tc.bucket, bucket, tc.raw)
		assert.Equal(t, tc.key, key, tc.raw)
	}
}

func TestS3Presigner_PresignGet(t *testing.T) {
	p, err := NewS3Presigner(context.Background(), &config.Config{
		S3Region:          "us-east-1",
		S3Endpoint:        "http://localhost:9000",
		S3AccessKeyID:     "minio",
		S3SecretAccessKey: "minio-secret",
	})
	require.NoError(t, err)

	// presigning is local; no request reaches the endpoint
	u, err := p.PresignGet(context.Background(), "deal-docs", "deals/42/nda.pdf", 5*time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "http://localhost:9000/deal-docs/deals/42/nda.pdf?"), u)
	assert.Contains(t, u, "X-Amz-Expires=300")
}
