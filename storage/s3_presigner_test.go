package storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPresigner(endpoint string) *s3Presigner {
	cfg := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", ""),
	}
	return newS3Presigner(cfg, "dotateamfinder", endpoint)
}

func TestPresignPutCustomEndpoint(t *testing.T) {
	p := testPresigner("http://localhost:9000")

	signed, err := p.PresignPut(context.Background(), "team-logos/logo.png", "image/png", 300*time.Second)
	require.NoError(t, err)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/dotateamfinder/team-logos/logo.png", u.Path)
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestPresignPutDefaultEndpoint(t *testing.T) {
	p := testPresigner("")

	signed, err := p.PresignPut(context.Background(), "team-logos/a b.jpg", "image/jpeg", 5*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Contains(t, u.Host, "dotateamfinder")
	assert.Equal(t, "/team-logos/a b.jpg", u.Path)
}

func TestNewS3PresignerRequiresBucket(t *testing.T) {
	_, err := NewS3Presigner(context.Background(), S3PresignerConfig{Region: "us-east-1"})
	require.Error(t, err)
}
