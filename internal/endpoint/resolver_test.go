package endpoint

import (
	"errors"
	"testing"

	"lstack/internal/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotReady = errors.New("not ready")

type notReadySource struct{}

func (notReadySource) Snapshot() (*snapshot.Snapshot, error) {
	return nil, errNotReady
}

func testSnapshot() *snapshot.Snapshot {
	return snapshot.New(map[string]int{
		S3:       4572,
		SQS:      4576,
		Kinesis:  4568,
		DynamoDB: 4569,
	})
}

func defaultOptions() Options {
	return Options{
		Scheme:       "http",
		Host:         "localhost",
		VirtualHosts: map[string]string{"s3": "test.localhost.atlassian.io"},
	}
}

func TestResolveS3UsesVirtualHost(t *testing.T) {
	r := NewResolver(Static(testSnapshot()), defaultOptions())

	url, err := r.Resolve(S3)
	require.NoError(t, err)
	assert.Equal(t, "http://test.localhost.atlassian.io:4572/", url)
}

func TestResolve(t *testing.T) {
	r := NewResolver(Static(testSnapshot()), defaultOptions())

	tests := []struct {
		service  string
		expected string
	}{
		{SQS, "http://localhost:4576/"},
		{"Kinesis", "http://localhost:4568/"},
		{" DYNAMODB ", "http://localhost:4569/"},
		{"S3", "http://test.localhost.atlassian.io:4572/"},
	}
	for _, tt := range tests {
		t.Run(tt.service, func(t *testing.T) {
			url, err := r.Resolve(tt.service)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, url)
		})
	}
}

func TestResolveUnknownService(t *testing.T) {
	r := NewResolver(Static(testSnapshot()), defaultOptions())

	_, err := r.Resolve(Lambda)
	assert.ErrorIs(t, err, ErrUnknownService)
}

func TestResolveBeforeReady(t *testing.T) {
	r := NewResolver(notReadySource{}, defaultOptions())

	_, err := r.Resolve(S3)
	assert.ErrorIs(t, err, errNotReady)

	_, err = r.All()
	assert.ErrorIs(t, err, errNotReady)
}

func TestResolveDefaults(t *testing.T) {
	r := NewResolver(Static(testSnapshot()), Options{})

	url, err := r.Resolve(S3)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4572/", url)
}

func TestResolveCustomSchemeAndHost(t *testing.T) {
	r := NewResolver(Static(testSnapshot()), Options{
		Scheme:       "https",
		Host:         "emulator.internal",
		VirtualHosts: map[string]string{"SQS": "queues.internal", "s3": ""},
	})

	url, err := r.Resolve(SQS)
	require.NoError(t, err)
	assert.Equal(t, "https://queues.internal:4576/", url)

	url, err = r.Resolve(S3)
	require.NoError(t, err)
	assert.Equal(t, "https://emulator.internal:4572/", url)
}

func TestAll(t *testing.T) {
	r := NewResolver(Static(testSnapshot()), defaultOptions())

	urls, err := r.All()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"s3":       "http://test.localhost.atlassian.io:4572/",
		"sqs":      "http://localhost:4576/",
		"kinesis":  "http://localhost:4568/",
		"dynamodb": "http://localhost:4569/",
	}, urls)
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "TEST_S3_URL", EnvName(S3))
	assert.Equal(t, "TEST_DYNAMODBSTREAMS_URL", EnvName("DynamoDBStreams"))
	assert.Equal(t, "TEST_WEB_UI_URL", EnvName("web_ui"))
	assert.Equal(t, "TEST_MY_SVC_URL", EnvName("my-svc"))
}
