package assistant

import (
	"context"
	"strings"
	"time"

	ports "github.com/koinonia-app/koinonia/koinonia/assistant/ports"
)

// DefaultReplayDelay is the pause between tokens when replaying a cached
// answer, chosen so cached and live responses render alike on the client.
const DefaultReplayDelay = 15 * time.Millisecond

// Chunk is one unit of the caller-facing stream. The final chunk has Done
// set; Err is only ever set on a terminal chunk, when a live upstream stream
// failed after bytes had already been delivered.
type Chunk struct {
	DeltaText string
	Done      bool
	Err       error
}

// ReplayStream synthesizes an incremental token stream from a cached answer.
// The answer is split on whitespace and each token after the first carries a
// single leading space, so concatenating every DeltaText reproduces the
// cached string exactly (for single-spaced answers). Emission stops as soon
// as ctx is cancelled.
func ReplayStream(ctx context.Context, answer string, delay time.Duration) <-chan Chunk {
	if delay <= 0 {
		delay = DefaultReplayDelay
	}
	out := make(chan Chunk)

	go func() {
		defer close(out)

		ticker := time.NewTicker(delay)
		defer ticker.Stop()

		for i, token := range strings.Fields(answer) {
			if i > 0 {
				token = " " + token
			}
			select {
			case out <- Chunk{DeltaText: token}:
			case <-ctx.Done():
				return
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}

		select {
		case out <- Chunk{Done: true}:
		case <-ctx.Done():
		}
	}()

	return out
}

// relayStream forwards provider chunks to the caller one-for-one, collecting
// the delivered text. When the upstream stream finishes cleanly, onFlush is
// invoked once with the reassembled answer; an upstream mid-stream failure is
// forwarded as a terminal chunk with Err set and suppresses the flush. Caller
// cancellation stops the relay; the provider sees the same ctx and aborts its
// upstream call.
func relayStream(ctx context.Context, in <-chan ports.CompletionChunk, onFlush func(answer string)) <-chan Chunk {
	out := make(chan Chunk)

	go func() {
		defer close(out)

		var full strings.Builder
		for {
			select {
			case chunk, ok := <-in:
				if !ok {
					// Upstream closed without a Done marker; treat what
					// arrived as the complete answer.
					onFlush(full.String())
					return
				}
				if chunk.Err != nil {
					select {
					case out <- Chunk{Done: true, Err: chunk.Err}:
					case <-ctx.Done():
					}
					return
				}
				if chunk.DeltaText != "" {
					full.WriteString(chunk.DeltaText)
					select {
					case out <- Chunk{DeltaText: chunk.DeltaText}:
					case <-ctx.Done():
						return
					}
				}
				if chunk.Done {
					onFlush(full.String())
					select {
					case out <- Chunk{Done: true}:
					case <-ctx.Done():
					}
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
