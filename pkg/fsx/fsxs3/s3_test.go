package fsxs3_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/Abraxas-365/applymint/pkg/fsx"
	"github.com/Abraxas-365/applymint/pkg/fsx/fsxs3"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, _ := io.ReadAll(in.Body)
	f.objects[aws.ToString(in.Key)] = data
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestUpload_PrefixesKeyAndReturnsURL(t *testing.T) {
	api := newFakeS3()
	fs := fsxs3.NewS3FileSystem(api, "board-assets", "uploads", fsxs3.WithBaseURL("https://cdn.example.com/"))

	url, err := fs.Upload(context.Background(), "share/job-1.png", []byte("png"), "image/png")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "https://cdn.example.com/uploads/share/job-1.png" {
		t.Errorf("url = %q", url)
	}
	if api.types["uploads/share/job-1.png"] != "image/png" {
		t.Errorf("content type = %q, want image/png", api.types["uploads/share/job-1.png"])
	}
}

func TestReadFile_MissingKey(t *testing.T) {
	fs := fsxs3.NewS3FileSystem(newFakeS3(), "b", "")
	_, err := fs.ReadFile(context.Background(), "nope")
	if !errors.Is(err, fsx.ErrNotExist) {
		t.Errorf("err = %v, want fsx.ErrNotExist", err)
	}
}

func TestWriteReadDelete(t *testing.T) {
	ctx := context.Background()
	fs := fsxs3.NewS3FileSystem(newFakeS3(), "b", "p")

	if err := fs.WriteFile(ctx, fs.Join("a", "b.txt"), []byte("hello")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := fs.ReadFile(ctx, "a/b.txt")
	if err != nil || string(got) != "hello" {
		t.Fatalf("ReadFile = (%q, %v), want hello", got, err)
	}
	if err := fs.DeleteFile(ctx, "a/b.txt"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := fs.ReadFile(ctx, "a/b.txt"); !errors.Is(err, fsx.ErrNotExist) {
		t.Errorf("after delete err = %v, want ErrNotExist", err)
	}
}
