package ai

import "context"

type assistantChain struct {
	primary  Assistant
	fallback Assistant
}

// WithFallback returns an assistant that first tries the primary provider and
// falls back to the secondary when the primary is unavailable or fails.
func WithFallback(primary, fallback Assistant) Assistant {
	if primary == nil {
		return fallback
	}
	if fallback == nil {
		return primary
	}
	return &assistantChain{primary: primary, fallback: fallback}
}

func (c *assistantChain) Enabled() bool {
	if c == nil {
		return false
	}
	if c.primary != nil && c.primary.Enabled() {
		return true
	}
	if c.fallback != nil && c.fallback.Enabled() {
		return true
	}
	return false
}

func (c *assistantChain) Complete(ctx context.Context, req Request) (string, error) {
	if c == nil {
		return "", ErrDisabled
	}
	var firstErr error
	if c.primary != nil && c.primary.Enabled() {
		text, err := c.primary.Complete(ctx, req)
		if err == nil {
			return text, nil
		}
		firstErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	if c.fallback != nil && c.fallback.Enabled() {
		return c.fallback.Complete(ctx, req)
	}
	if firstErr != nil {
		return "", firstErr
	}
	return "", ErrDisabled
}
