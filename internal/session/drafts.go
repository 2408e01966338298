package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexedwards/scs/v2"

	"foodcost/internal/draft"
)

// Drafts reads and writes the order drafts of the current session.
type Drafts struct {
	manager *scs.SessionManager
}

// NewDrafts returns a Drafts bound to manager.
func NewDrafts(manager *scs.SessionManager) *Drafts {
	return &Drafts{manager: manager}
}

// Active returns the draft being worked on. An edit draft takes precedence
// over the new-order draft; when neither exists an empty draft for today is
// returned.
func (d *Drafts) Active(ctx context.Context, today string) (draft.Draft, error) {
	for _, key := range []string{draft.KeyEditOrder, draft.KeyNewOrder} {
		raw := d.manager.GetBytes(ctx, key)
		if len(raw) == 0 {
			continue
		}
		var current draft.Draft
		if err := json.Unmarshal(raw, &current); err != nil {
			return draft.Draft{}, fmt.Errorf("decode %s: %w", key, err)
		}
		return current, nil
	}
	return draft.New(today), nil
}

// Save stores current under its own session key.
func (d *Drafts) Save(ctx context.Context, current draft.Draft) error {
	raw, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	d.manager.Put(ctx, current.SessionKey(), raw)
	return nil
}

// Discard removes the session entry of current.
func (d *Drafts) Discard(ctx context.Context, current draft.Draft) {
	d.manager.Remove(ctx, current.SessionKey())
}
