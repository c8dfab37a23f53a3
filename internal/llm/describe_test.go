package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hyperjump/eiga/internal/errs"
)

type fakeVision struct {
	response string
	err      error
	prompts  []string
	images   [][]byte
}

func (f *fakeVision) GenerateWithImage(_ context.Context, prompt string, image []byte) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.images = append(f.images, image)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestRewriteQueryWithImage(t *testing.T) {
	client := &fakeVision{response: "  \"Paddington London marmalade\"  "}
	image := []byte{0xff, 0xd8, 0xff}

	got, err := RewriteQueryWithImage(context.Background(), client, "bear in a coat", image)
	if err != nil {
		t.Fatalf("RewriteQueryWithImage: %v", err)
	}
	if got != "Paddington London marmalade" {
		t.Errorf("rewritten = %q", got)
	}
	if len(client.prompts) != 1 || !strings.Contains(client.prompts[0], "bear in a coat") {
		t.Error("prompt missing the text query")
	}
	if len(client.images) != 1 || len(client.images[0]) != len(image) {
		t.Error("image not passed through to the client")
	}
}

func TestRewriteQueryWithImageEmptyResponse(t *testing.T) {
	client := &fakeVision{response: "   "}
	_, err := RewriteQueryWithImage(context.Background(), client, "q", []byte{1})
	if !errors.Is(err, errs.ErrProviderFailure) {
		t.Errorf("err = %v, want ProviderFailure", err)
	}
}

func TestRewriteQueryWithImageClientError(t *testing.T) {
	want := errs.ProviderFailure("model offline")
	client := &fakeVision{err: want}
	_, err := RewriteQueryWithImage(context.Background(), client, "q", []byte{1})
	if !errors.Is(err, errs.ErrProviderFailure) {
		t.Errorf("err = %v, want ProviderFailure", err)
	}
}

func TestRewriteQueryWithImageNilClient(t *testing.T) {
	_, err := RewriteQueryWithImage(context.Background(), nil, "q", []byte{1})
	if !errors.Is(err, errs.ErrInvalidArgument) {
		t.Errorf("err = %v, want InvalidArgument", err)
	}
}
