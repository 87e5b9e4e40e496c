package gmail

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/gmail/v1"
)

// Applier adapts the client for callers that dispatch label applications
// asynchronously and need context cancellation, such as the drag-drop
// controller. The account key is accepted for interface symmetry; the
// underlying call always targets the authenticated user.
type Applier struct {
	Client *Client
}

// ApplyLabel applies a label to a message, honoring ctx cancellation.
func (a Applier) ApplyLabel(ctx context.Context, _ string, messageID, labelID string) error {
	if strings.TrimSpace(messageID) == "" || strings.TrimSpace(labelID) == "" {
		return fmt.Errorf("messageID and labelID cannot be empty: %w", ErrInvalidInput)
	}
	req := &gmail.ModifyMessageRequest{
		AddLabelIds: []string{labelID},
	}
	_, err := a.Client.Service.Users.Messages.Modify("me", messageID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("apply label: %w", classify(err))
	}
	return nil
}
