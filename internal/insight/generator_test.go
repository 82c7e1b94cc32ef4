package insight

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"roteiro/internal/crm"
	"roteiro/internal/llm"
)

// fakeClient replays a canned JSON response and records the messages it saw.
type fakeClient struct {
	response string
	err      error
	messages []llm.Message
}

func (f *fakeClient) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	f.messages = messages
	return f.response, f.err
}

func (f *fakeClient) ChatJSON(ctx context.Context, messages []llm.Message, result any) error {
	f.messages = messages
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.response), result)
}

func TestGenerate(t *testing.T) {
	prospect := &crm.Prospect{
		ID:      "p1",
		Name:    "Mercado Bom Preço",
		Segment: "grocery",
		City:    "Campinas",
	}

	t.Run("success", func(t *testing.T) {
		client := &fakeClient{response: `{
			"summary": "Mid-size grocery with growing foot traffic.",
			"recommended_products": ["bulk line", "snack line"],
			"approach_tips": ["visit before noon"]
		}`}

		in, err := NewGenerator(client).Generate(context.Background(), prospect)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.ProspectID != "p1" {
			t.Errorf("unexpected prospect id %q", in.ProspectID)
		}
		if in.Summary == "" || len(in.RecommendedProducts) != 2 || len(in.ApproachTips) != 1 {
			t.Errorf("response not mapped: %+v", in)
		}
		if in.GeneratedAt.IsZero() {
			t.Error("expected GeneratedAt to be set")
		}
	})

	t.Run("prompt carries prospect fields", func(t *testing.T) {
		client := &fakeClient{response: `{"summary": "ok"}`}
		if _, err := NewGenerator(client).Generate(context.Background(), prospect); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(client.messages) != 2 {
			t.Fatalf("expected system and user messages, got %d", len(client.messages))
		}
		user := client.messages[1].Content
		for _, want := range []string{"Mercado Bom Preço", "grocery", "Campinas"} {
			if !strings.Contains(user, want) {
				t.Errorf("prompt missing %q:\n%s", want, user)
			}
		}
	})

	t.Run("nil prospect", func(t *testing.T) {
		if _, err := NewGenerator(&fakeClient{}).Generate(context.Background(), nil); !errors.Is(err, crm.ErrEmptyName) {
			t.Errorf("expected ErrEmptyName, got %v", err)
		}
	})

	t.Run("client error wrapped", func(t *testing.T) {
		boom := errors.New("rate limited")
		client := &fakeClient{err: boom}
		if _, err := NewGenerator(client).Generate(context.Background(), prospect); !errors.Is(err, boom) {
			t.Errorf("expected wrapped client error, got %v", err)
		}
	})

	t.Run("empty summary rejected", func(t *testing.T) {
		client := &fakeClient{response: `{"summary": "  "}`}
		if _, err := NewGenerator(client).Generate(context.Background(), prospect); err == nil {
			t.Error("expected error for empty summary")
		}
	})
}
