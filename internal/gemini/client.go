package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"github.com/Veraticus/easy-style/internal/common"
)

// Default model names.
const (
	DefaultTextModel  = "gemini-2.5-flash"
	DefaultImageModel = "gemini-2.5-flash-image-preview"
)

// Options configures a Client.
type Options struct {
	Logger      *slog.Logger
	APIKey      string
	TextModel   string
	ImageModel  string
	Timeout     time.Duration
	Temperature float32
	// RequestsPerMinute paces calls across all operations; zero disables pacing.
	RequestsPerMinute int
}

// generateRequest is one generateContent call.
type generateRequest struct {
	schema *genai.Schema
	model  string
	system string
	parts  []genai.Part
}

// generator sends a single request to the model API.
type generator interface {
	generate(ctx context.Context, req generateRequest) (*genai.GenerateContentResponse, error)
	close() error
}

// Client is the Gemini-backed AI gateway.
type Client struct {
	gen        generator
	limiter    *rate.Limiter
	logger     *slog.Logger
	textModel  string
	imageModel string
	timeout    time.Duration
}

// New connects to the Gemini API.
func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini api key", common.ErrMissingConfig)
	}
	gc, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return newClient(&genaiGenerator{client: gc, temperature: opts.Temperature}, opts), nil
}

func newClient(gen generator, opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = common.DiscardLogger()
	}
	textModel := opts.TextModel
	if textModel == "" {
		textModel = DefaultTextModel
	}
	imageModel := opts.ImageModel
	if imageModel == "" {
		imageModel = DefaultImageModel
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), opts.RequestsPerMinute)
	}
	return &Client{
		gen:        gen,
		limiter:    limiter,
		logger:     logger,
		textModel:  textModel,
		imageModel: imageModel,
		timeout:    opts.Timeout,
	}
}

// Close releases the underlying API client.
func (c *Client) Close() error {
	return c.gen.close()
}

func (c *Client) call(ctx context.Context, op string, req generateRequest) (*genai.GenerateContentResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: rate limiter: %w", op, err)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.gen.generate(ctx, req)
	c.logger.Debug("gemini call",
		"op", op,
		"model", req.model,
		"duration", time.Since(start),
		"ok", err == nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return resp, nil
}

type genaiGenerator struct {
	client      *genai.Client
	temperature float32
}

func (g *genaiGenerator) generate(ctx context.Context, req generateRequest) (*genai.GenerateContentResponse, error) {
	m := g.client.GenerativeModel(req.model)
	if g.temperature > 0 {
		m.SetTemperature(g.temperature)
	}
	if req.system != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.system)}}
	}
	if req.schema != nil {
		m.ResponseMIMEType = "application/json"
		m.ResponseSchema = req.schema
	}
	return m.GenerateContent(ctx, req.parts...)
}

func (g *genaiGenerator) close() error {
	return g.client.Close()
}
