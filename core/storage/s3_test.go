package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_PutJSON(t *testing.T) {
	fake := &fakePutter{}
	store := newS3StoreWithClient(fake, "reports-bucket", "/reports/")

	key, err := store.PutJSON(context.Background(), "2025-03-10/weekly-sync.json", map[string]int{"invited": 10})
	if err != nil {
		t.Fatalf("PutJSON: %v", err)
	}
	if key != "reports/2025-03-10/weekly-sync.json" {
		t.Fatalf("key = %q", key)
	}
	if aws.ToString(fake.input.Bucket) != "reports-bucket" {
		t.Fatalf("bucket = %q", aws.ToString(fake.input.Bucket))
	}
	if aws.ToString(fake.input.ContentType) != "application/json" {
		t.Fatalf("content type = %q", aws.ToString(fake.input.ContentType))
	}
	var decoded map[string]int
	if err := json.Unmarshal(fake.body, &decoded); err != nil || decoded["invited"] != 10 {
		t.Fatalf("unexpected body %s (%v)", fake.body, err)
	}
}

func TestS3Store_PutJSONError(t *testing.T) {
	store := newS3StoreWithClient(&fakePutter{err: errors.New("denied")}, "b", "")
	if _, err := store.PutJSON(context.Background(), "k.json", 1); err == nil {
		t.Fatalf("expected error")
	}
}
