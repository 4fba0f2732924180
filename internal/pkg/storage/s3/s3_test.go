package s3aws

import (
	"context"
	"testing"
	"time"

	"transfer-storefront/internal/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentTypeFromKey(t *testing.T) {
	assert.Equal(t, "text/html; charset=utf-8", contentTypeFromKey("receipts/TR-1.HTML"))
	assert.Equal(t, "application/pdf", contentTypeFromKey("a/b.pdf"))
	assert.Equal(t, "application/octet-stream", contentTypeFromKey("noext"))
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(S3Config{AWSRegion: "us-east-1"}, "", nil)
	assert.Error(t, err)
}

func TestGetPresignedURL_CachesInRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rds, err := redis.Setup(ctx, &redis.Config{Addr: mr.Addr()})
	require.NoError(t, err)
	defer rds.Close()

	client, err := New(S3Config{
		AWSRegion:          "us-east-1",
		AWSAccessKeyID:     "key",
		AWSSecretAccessKey: "secret",
		Endpoint:           "http://localhost:9000",
		PresignTTL:         time.Hour,
	}, "receipts", rds)
	require.NoError(t, err)

	first, err := client.GetPresignedURL("r/TR-1.html")
	require.NoError(t, err)
	assert.Contains(t, first, "http://localhost:9000/receipts/r/TR-1.html")
	assert.Contains(t, first, "X-Amz-Signature")

	cached, err := rds.Get(client.cacheKey("r/TR-1.html"))
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	second, err := client.GetPresignedURL("r/TR-1.html")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
