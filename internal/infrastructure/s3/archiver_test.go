package s3

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mayorista-api/pkg/logger"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestArchive_SubeConPrefijo(t *testing.T) {
	fake := &fakeS3{}
	a := newArchiver(fake, Config{Bucket: "exports", Prefix: "audit"}, logger.Nop())

	loc, err := a.Archive(context.Background(), "u-super_2026-01-01_2026-01-31_1.json", []byte(`[]`))
	require.NoError(t, err)
	assert.Equal(t, "s3://exports/audit/u-super_2026-01-01_2026-01-31_1.json", loc)
	assert.Equal(t, "exports", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "application/json", aws.ToString(fake.input.ContentType))
	assert.Equal(t, []byte(`[]`), fake.body)
}

func TestArchive_ErrorDelCliente(t *testing.T) {
	a := newArchiver(&fakeS3{err: errors.New("AccessDenied")}, Config{Bucket: "exports"}, logger.Nop())

	_, err := a.Archive(context.Background(), "k.json", []byte(`[]`))
	assert.ErrorContains(t, err, "AccessDenied")
}
