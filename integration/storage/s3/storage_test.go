package s3_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/imagebatch/core/storage"
	"github.com/dmitrymomot/imagebatch/integration/storage/s3"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) PutObject(ctx context.Context, in *s3aws.PutObjectInput, _ ...func(*s3aws.Options)) (*s3aws.PutObjectOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*s3aws.PutObjectOutput)
	return out, args.Error(1)
}

func (m *mockClient) GetObject(ctx context.Context, in *s3aws.GetObjectInput, _ ...func(*s3aws.Options)) (*s3aws.GetObjectOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*s3aws.GetObjectOutput)
	return out, args.Error(1)
}

func (m *mockClient) ListObjectsV2(ctx context.Context, in *s3aws.ListObjectsV2Input, _ ...func(*s3aws.Options)) (*s3aws.ListObjectsV2Output, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*s3aws.ListObjectsV2Output)
	return out, args.Error(1)
}

func (m *mockClient) HeadBucket(ctx context.Context, in *s3aws.HeadBucketInput, _ ...func(*s3aws.Options)) (*s3aws.HeadBucketOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*s3aws.HeadBucketOutput)
	return out, args.Error(1)
}

func newStorage(t *testing.T, client *mockClient, prefix string) *s3.Storage {
	t.Helper()
	st, err := s3.New(context.Background(), s3.Config{Bucket: "images", Region: "us-east-1", Prefix: prefix}, s3.WithClient(client))
	require.NoError(t, err)
	return st
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := s3.New(context.Background(), s3.Config{Region: "us-east-1"})
	assert.ErrorIs(t, err, storage.ErrInvalidConfig)

	_, err = s3.New(context.Background(), s3.Config{Bucket: "b", Region: "r", Prefix: "../x"}, s3.WithClient(&mockClient{}))
	assert.ErrorIs(t, err, storage.ErrInvalidConfig)
}

func TestStorage_Put(t *testing.T) {
	t.Parallel()

	client := &mockClient{}
	st := newStorage(t, client, "optimized")

	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3aws.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "images" &&
			aws.ToString(in.Key) == "optimized/optimize_1_abc/cat-optimized.webp" &&
			aws.ToString(in.ContentType) == "image/webp" &&
			aws.ToInt64(in.ContentLength) == 4
	})).Return(&s3aws.PutObjectOutput{}, nil).Once()

	n, err := st.Put(context.Background(), "optimize_1_abc/cat-optimized.webp", strings.NewReader("RIFF"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	_, err = st.Put(context.Background(), "../cat.webp", bytes.NewReader(nil))
	assert.ErrorIs(t, err, storage.ErrInvalidPath)

	client.AssertExpectations(t)
}

func TestStorage_Open(t *testing.T) {
	t.Parallel()

	client := &mockClient{}
	st := newStorage(t, client, "")

	client.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3aws.GetObjectInput) bool {
		return aws.ToString(in.Key) == "s/a.webp"
	})).Return(&s3aws.GetObjectOutput{Body: io.NopCloser(strings.NewReader("data"))}, nil).Once()
	client.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3aws.GetObjectInput) bool {
		return aws.ToString(in.Key) == "s/missing.webp"
	})).Return(nil, &types.NoSuchKey{}).Once()

	rc, err := st.Open(context.Background(), "s/a.webp")
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	assert.Equal(t, "data", string(b))

	_, err = st.Open(context.Background(), "s/missing.webp")
	assert.ErrorIs(t, err, storage.ErrFileNotFound)
}

func TestStorage_ListPaginates(t *testing.T) {
	t.Parallel()

	client := &mockClient{}
	st := newStorage(t, client, "root")

	client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3aws.ListObjectsV2Input) bool {
		return aws.ToString(in.Prefix) == "root/" && aws.ToString(in.Delimiter) == "/" && in.ContinuationToken == nil
	})).Return(&s3aws.ListObjectsV2Output{
		CommonPrefixes:        []types.CommonPrefix{{Prefix: aws.String("root/optimize_1_abc/")}},
		Contents:              []types.Object{{Key: aws.String("root/legacy.webp"), Size: aws.Int64(7)}},
		IsTruncated:           aws.Bool(true),
		NextContinuationToken: aws.String("next"),
	}, nil).Once()
	client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3aws.ListObjectsV2Input) bool {
		return aws.ToString(in.ContinuationToken) == "next"
	})).Return(&s3aws.ListObjectsV2Output{
		CommonPrefixes: []types.CommonPrefix{{Prefix: aws.String("root/rename_2_def/")}},
		IsTruncated:    aws.Bool(false),
	}, nil).Once()

	entries, err := st.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, storage.Entry{Name: "optimize_1_abc", Path: "optimize_1_abc", IsDir: true}, entries[0])
	assert.Equal(t, "legacy.webp", entries[1].Name)
	assert.Equal(t, int64(7), entries[1].Size)
	assert.Equal(t, "rename_2_def", entries[2].Name)
	client.AssertExpectations(t)
}

func TestStorage_ListMissingDirectory(t *testing.T) {
	t.Parallel()

	client := &mockClient{}
	st := newStorage(t, client, "")
	client.On("ListObjectsV2", mock.Anything, mock.Anything).Return(&s3aws.ListObjectsV2Output{}, nil).Once()

	_, err := st.List(context.Background(), "nope")
	assert.ErrorIs(t, err, storage.ErrDirectoryNotFound)
}

func TestStorage_PingClassifiesErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "ok", err: nil, want: nil},
		{name: "access_denied", err: &smithy.GenericAPIError{Code: "AccessDenied"}, want: storage.ErrAccessDenied},
		{name: "slow_down", err: &smithy.GenericAPIError{Code: "SlowDown"}, want: storage.ErrServiceUnavailable},
		{name: "no_bucket", err: &types.NoSuchBucket{}, want: storage.ErrBucketNotFound},
		{name: "canceled", err: context.Canceled, want: storage.ErrOperationCanceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockClient{}
			st := newStorage(t, client, "")
			client.On("HeadBucket", mock.Anything, mock.Anything).Return(&s3aws.HeadBucketOutput{}, tt.err).Once()

			err := st.Ping(context.Background())
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("unknown_code_keeps_cause", func(t *testing.T) {
		cause := &smithy.GenericAPIError{Code: "Weird"}
		client := &mockClient{}
		st := newStorage(t, client, "")
		client.On("HeadBucket", mock.Anything, mock.Anything).Return(nil, cause).Once()

		err := st.Ping(context.Background())
		var apiErr smithy.APIError
		assert.True(t, errors.As(err, &apiErr))
	})
}
