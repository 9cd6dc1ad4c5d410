package publish

import (
	"context"
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	exists     bool
	existsErr  error
	made       []string
	putErr     error
	keys       []string
	types      []string
	existCalls int
}

func (f *fakeStore) BucketExists(_ context.Context, _ string) (bool, error) {
	f.existCalls++
	return f.exists, f.existsErr
}

func (f *fakeStore) MakeBucket(_ context.Context, bucket string, _ minio.MakeBucketOptions) error {
	f.made = append(f.made, bucket)
	return nil
}

func (f *fakeStore) FPutObject(_ context.Context, _, object, _ string, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	f.keys = append(f.keys, object)
	f.types = append(f.types, opts.ContentType)
	return minio.UploadInfo{Key: object, Size: 10}, nil
}

func TestConfigValidate(t *testing.T) {
	valid := Config{Endpoint: "localhost:9000", Bucket: "ppod", AccessKey: "a", SecretKey: "s"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no endpoint", func(c *Config) { c.Endpoint = " " }},
		{"no bucket", func(c *Config) { c.Bucket = "" }},
		{"no access key", func(c *Config) { c.AccessKey = "" }},
		{"no secret key", func(c *Config) { c.SecretKey = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNewS3PublisherRejectsInvalidConfig(t *testing.T) {
	_, err := NewS3Publisher(Config{}, nil)
	assert.Error(t, err)
}

func TestPublishKeys(t *testing.T) {
	store := &fakeStore{exists: true}
	p := newPublisher(store, Config{Bucket: "ppod", Prefix: "/graphs/"}, "us-east-1", nil)

	require.NoError(t, p.Publish(context.Background(), "run-1", "/tmp/out/ppod.ttl"))

	assert.Equal(t, []string{"graphs/run-1/ppod.ttl", "graphs/latest/ppod.ttl"}, store.keys)
	assert.Equal(t, []string{"text/turtle", "text/turtle"}, store.types)
	assert.Empty(t, store.made)
}

func TestPublishCreatesBucketOnce(t *testing.T) {
	store := &fakeStore{}
	p := newPublisher(store, Config{Bucket: "ppod"}, "us-east-1", nil)

	require.NoError(t, p.Publish(context.Background(), "run-1", "ppod.jsonld"))
	require.NoError(t, p.Publish(context.Background(), "run-2", "ppod.jsonld"))

	assert.Equal(t, []string{"ppod"}, store.made)
	assert.Equal(t, 1, store.existCalls)
	assert.Equal(t, "run-1/ppod.jsonld", store.keys[0])
	assert.Equal(t, "application/ld+json", store.types[0])
}

func TestPublishErrors(t *testing.T) {
	t.Run("missing run id", func(t *testing.T) {
		p := newPublisher(&fakeStore{exists: true}, Config{Bucket: "ppod"}, "", nil)
		err := p.Publish(context.Background(), "", "ppod.ttl")
		assert.True(t, IsError(err))
	})

	t.Run("bucket check", func(t *testing.T) {
		boom := errors.New("unreachable")
		p := newPublisher(&fakeStore{existsErr: boom}, Config{Bucket: "ppod"}, "", nil)
		err := p.Publish(context.Background(), "run-1", "ppod.ttl")
		assert.True(t, IsError(err))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("upload", func(t *testing.T) {
		boom := errors.New("denied")
		p := newPublisher(&fakeStore{exists: true, putErr: boom}, Config{Bucket: "ppod"}, "", nil)
		err := p.Publish(context.Background(), "run-1", "ppod.nt")

		var pe *Error
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "run-1/ppod.nt", pe.Key)
		assert.ErrorIs(t, err, boom)
	})
}
