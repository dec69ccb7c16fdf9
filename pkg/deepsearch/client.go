package deepsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
)

const completionsPath = "/v1/chat/completions"

// Fixed strings returned to the caller. The public operation reports every
// outcome as a string, so hosts can relay it into a chat without unwrapping
// anything.
const (
	errMissingAPIKey    = "Error: Jina DeepSearch API key missing. Set it in tool settings."
	errTimedOut         = "Error: request to DeepSearch timed out."
	emptyResultSentinel = "DeepSearch returned no readable content."
)

const (
	statusStarting = "DeepSearching... May take several minutes."
	statusReceived = "Received DeepSearch response."
	statusComplete = "DeepSearch complete."
)

// Client calls the Jina DeepSearch API. Construct once and reuse; each call
// owns its own HTTP request, transcript, and timeout.
type Client struct {
	cfg *Config
	log zerolog.Logger
}

// NewClient creates a client from the given config. Defaults are applied;
// the config is not mutated afterwards.
func NewClient(cfg *Config, log zerolog.Logger) *Client {
	return &Client{
		cfg: cfg.WithDefaults(),
		log: log.With().Str("component", "deepsearch").Logger(),
	}
}

// Options tunes a single DeepSearch call.
type Options struct {
	// Stream overrides the config's stream_by_default when non-nil.
	Stream *bool
	// Sink receives progress and stream events. May be nil, in which case
	// only the return value communicates the outcome.
	Sink Sink
}

// DeepSearch sends the query to the DeepSearch API and returns the answer
// as a single string: the aggregated transcript when streaming, the
// extracted (or pretty-printed) body otherwise, or one of the fixed error
// strings. It never returns an empty string.
func (c *Client) DeepSearch(ctx context.Context, query string, opts Options) string {
	if c.cfg.APIKey == "" {
		return errMissingAPIKey
	}

	payload := buildRequest(c.cfg, query, opts.Stream)
	body, err := json.Marshal(&payload)
	if err != nil {
		return c.unexpected(ctx, opts.Sink, err)
	}

	requestID := "ds_" + xid.New().String()
	log := c.log.With().Str("request_id", requestID).Logger()
	log.Debug().
		Bool("stream", payload.Stream).
		Str("reasoning_effort", payload.ReasoningEffort).
		Msg("Sending DeepSearch request")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+completionsPath, bytes.NewReader(body))
	if err != nil {
		return c.unexpected(ctx, opts.Sink, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("x-request-id", requestID)

	c.emit(ctx, opts.Sink, statusEvent(statusStarting, false))

	// One wall-clock bound covers connect, headers, and every chunk read.
	client := &http.Client{Timeout: time.Duration(c.cfg.TimeoutSecs) * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		if isTimeout(err) {
			log.Warn().Err(err).Msg("DeepSearch request timed out")
			return errTimedOut
		}
		return c.unexpected(ctx, opts.Sink, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errText, _ := io.ReadAll(resp.Body)
		log.Warn().Int("status", resp.StatusCode).Msg("DeepSearch API returned an error")
		c.emit(ctx, opts.Sink, statusEvent(fmt.Sprintf("DeepSearch API error %d", resp.StatusCode), true))
		return fmt.Sprintf("API Error %d: %s", resp.StatusCode, errText)
	}

	if !payload.Stream {
		return c.readWhole(ctx, log, resp.Body, opts.Sink)
	}
	return c.readStream(ctx, log, resp.Body, opts.Sink)
}

// readWhole handles the non-streaming path: one JSON body, one extraction.
func (c *Client) readWhole(ctx context.Context, log zerolog.Logger, body io.Reader, sink Sink) string {
	data, err := io.ReadAll(body)
	if err != nil {
		if isTimeout(err) {
			log.Warn().Err(err).Msg("DeepSearch response read timed out")
			return errTimedOut
		}
		return c.unexpected(ctx, sink, err)
	}
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return c.unexpected(ctx, sink, err)
	}
	c.emit(ctx, sink, statusEvent(statusReceived, true))
	if extracted := ExtractText(parsed); extracted != "" {
		return extracted
	}
	pretty, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return c.unexpected(ctx, sink, err)
	}
	return string(pretty)
}

// readStream drains the chunked body through the normalizer, forwarding
// each parsed fragment to the sink as it arrives.
func (c *Client) readStream(ctx context.Context, log zerolog.Logger, body io.Reader, sink Sink) string {
	norm := newNormalizer(c.cfg.LineBuffering, func(parsed any) {
		c.emit(ctx, sink, streamEvent(parsed))
	})

	buf := make([]byte, 1024)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			norm.feed(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			// The stream already started, so still attempt one terminal
			// status before giving up on the call.
			if isTimeout(err) {
				log.Warn().Err(err).Msg("DeepSearch stream timed out")
				c.emit(ctx, sink, statusEvent(errTimedOut, true))
				return errTimedOut
			}
			return c.unexpected(ctx, sink, err)
		}
	}

	final := norm.finish()
	log.Debug().Int("transcript_len", len(final)).Msg("DeepSearch stream drained")
	c.emit(ctx, sink, statusEvent(statusComplete, true))
	if final == "" {
		return emptyResultSentinel
	}
	return final
}

// unexpected reports a failure outside the known error classes: one
// best-effort terminal status, then the fixed unexpected-error string.
func (c *Client) unexpected(ctx context.Context, sink Sink, err error) string {
	c.log.Warn().Err(err).Msg("Unexpected DeepSearch failure")
	c.emit(ctx, sink, statusEvent(fmt.Sprintf("Unexpected error: %v", err), true))
	return fmt.Sprintf("Unexpected error during DeepSearch: %v", err)
}

// emit delivers one event to the sink, swallowing any failure. Delivery is
// fire-and-forget: a broken sink must never change the call's result.
func (c *Client) emit(ctx context.Context, sink Sink, evt Event) {
	if sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.log.Debug().Any("panic", r).Msg("Sink emit panicked")
		}
	}()
	if err := sink.Emit(ctx, evt); err != nil {
		c.log.Debug().Err(err).Str("event_type", string(evt.Type)).Msg("Sink emit failed")
	}
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return os.IsTimeout(err)
}
