package s3

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeS3 struct {
	objects map[string][]byte
	lastPut *s3.PutObjectInput
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = body
	f.lastPut = in
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "owner/letter.txt", want: "owner/letter.txt"},
		{name: "simple prefix", prefix: "artifacts", key: "owner/letter.txt", want: "artifacts/owner/letter.txt"},
		{name: "prefix and key slashes", prefix: "/artifacts/", key: "/owner/letter.txt", want: "artifacts/owner/letter.txt"},
		{name: "nested prefix", prefix: "prod/artifacts", key: "owner/letter.txt", want: "prod/artifacts/owner/letter.txt"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestPutOpenDeleteUsesPrefixAndEncryption(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	store := newWithClient(fake, "bucket", "/artifacts/", "kms-1")
	ctx := context.Background()

	stored, err := store.Put(ctx, "user-1", "cover-letter-acme.txt", "text/plain", strings.NewReader("letter body"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if stored.SizeBytes != int64(len("letter body")) {
		t.Fatalf("size = %d", stored.SizeBytes)
	}
	if !strings.HasPrefix(aws.ToString(fake.lastPut.Key), "artifacts/") {
		t.Fatalf("object key %q missing prefix", aws.ToString(fake.lastPut.Key))
	}
	if fake.lastPut.ServerSideEncryption != s3types.ServerSideEncryptionAwsKms {
		t.Fatalf("expected KMS encryption, got %q", fake.lastPut.ServerSideEncryption)
	}

	rc, err := store.Open(ctx, stored.Key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	body, _ := io.ReadAll(rc)
	rc.Close()
	if string(body) != "letter body" {
		t.Fatalf("body = %q", body)
	}

	if err := store.Delete(ctx, stored.Key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Open(ctx, stored.Key); err == nil {
		t.Fatalf("expected missing object after delete")
	}
}
