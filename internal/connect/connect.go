package connect

// #region imports
import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/primecodex/emota-engine/internal/unity"
)

// #endregion imports

// #region errors

// ErrAPIKeyMissing is returned when no OpenAI API key is available. The
// key is read from the OPENAI_API_KEY environment variable or passed
// explicitly; it is never stored in configuration files.
var ErrAPIKeyMissing = errors.New("OPENAI_API_KEY environment variable not set")

const envAPIKey = "OPENAI_API_KEY"

// #endregion errors

// #region narrator

// Narrator turns a snapshot into a short natural-language account. The
// core engine never depends on this interface; it exists for the CLI and
// other outer surfaces.
type Narrator interface {
	Narrate(ctx context.Context, snap unity.Snapshot) (string, error)
}

// #endregion narrator

// #region chat-interface

// chatCompleter abstracts the one OpenAI endpoint used, so tests can
// inject a fake without a network connection or API key.
type chatCompleter interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// The SDK service has pointer-receiver methods; keep the live wiring in
// sync with the interface.
var _ chatCompleter = (*openai.ChatCompletionService)(nil)

// #endregion chat-interface

// #region openai-narrator

const defaultModel = openai.ChatModelGPT4o

// OpenAINarrator narrates snapshots via the OpenAI chat completions API.
type OpenAINarrator struct {
	chat  chatCompleter
	model string
}

// Option customizes an OpenAINarrator.
type Option func(*OpenAINarrator)

// WithModel overrides the completion model.
func WithModel(model string) Option {
	return func(n *OpenAINarrator) {
		if model != "" {
			n.model = model
		}
	}
}

// withCompleter injects a fake completion backend in tests.
func withCompleter(c chatCompleter) Option {
	return func(n *OpenAINarrator) { n.chat = c }
}

// NewOpenAINarrator builds a narrator. apiKey may be empty, in which case
// the OPENAI_API_KEY environment variable is consulted; with neither set
// construction fails with ErrAPIKeyMissing.
func NewOpenAINarrator(apiKey string, opts ...Option) (*OpenAINarrator, error) {
	n := &OpenAINarrator{model: defaultModel}
	for _, opt := range opts {
		opt(n)
	}
	if n.chat != nil {
		return n, nil
	}

	if apiKey == "" {
		apiKey = os.Getenv(envAPIKey)
	}
	if apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))
	n.chat = &client.Chat.Completions
	return n, nil
}

// #endregion openai-narrator

// #region narrate

const systemPrompt = "You describe the motivational state of a synthetic agent. " +
	"Given a JSON snapshot of its desire/fear dynamics and archetypal resonance, " +
	"write two or three plain sentences about what the agent is inclined to do and why. " +
	"Do not invent fields that are not in the snapshot."

// Narrate sends the snapshot to the completion API and returns the text.
func (n *OpenAINarrator) Narrate(ctx context.Context, snap unity.Snapshot) (string, error) {
	payload, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	resp, err := n.chat.New(ctx, openai.ChatCompletionNewParams{
		Model: n.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(string(payload)),
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("openai request failed (status=%d): %s",
				apiErr.StatusCode, strings.TrimSpace(apiErr.Message))
		}
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// #endregion narrate
