package gmail

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"google.golang.org/api/gmail/v1"
)

// labelCacheSize bounds the per-account label list cache. One entry per
// signed-in account; Gmail multi-login tops out well below this.
const labelCacheSize = 16

// Client wraps the gmail.Service and provides convenience methods
type Client struct {
	Service *gmail.Service

	labelCache *lru.Cache[string, []*gmail.Label]
}

// NewClient creates a new Gmail client
func NewClient(service *gmail.Service) *Client {
	cache, _ := lru.New[string, []*gmail.Label](labelCacheSize)
	return &Client{Service: service, labelCache: cache}
}

// ListLabels returns all labels for the account, caching per account key so
// a panel rebuild does not refetch on every reconciliation.
func (c *Client) ListLabels(accountKey string) ([]*gmail.Label, error) {
	if labels, ok := c.labelCache.Get(accountKey); ok {
		return labels, nil
	}
	res, err := c.Service.Users.Labels.List("me").Do()
	if err != nil {
		return nil, fmt.Errorf("list labels: %w", classify(err))
	}
	c.labelCache.Add(accountKey, res.Labels)
	return res.Labels, nil
}

// InvalidateLabels drops the cached label list for an account.
func (c *Client) InvalidateLabels(accountKey string) {
	c.labelCache.Remove(accountKey)
}

// ApplyLabel applies a label to a message
func (c *Client) ApplyLabel(messageID, labelID string) error {
	if strings.TrimSpace(messageID) == "" || strings.TrimSpace(labelID) == "" {
		return fmt.Errorf("messageID and labelID cannot be empty: %w", ErrInvalidInput)
	}
	req := &gmail.ModifyMessageRequest{
		AddLabelIds: []string{labelID},
	}
	if _, err := c.Service.Users.Messages.Modify("me", messageID, req).Do(); err != nil {
		return fmt.Errorf("apply label: %w", classify(err))
	}
	return nil
}

// RemoveLabel removes a label from a message
func (c *Client) RemoveLabel(messageID, labelID string) error {
	if strings.TrimSpace(messageID) == "" || strings.TrimSpace(labelID) == "" {
		return fmt.Errorf("messageID and labelID cannot be empty: %w", ErrInvalidInput)
	}
	req := &gmail.ModifyMessageRequest{
		RemoveLabelIds: []string{labelID},
	}
	if _, err := c.Service.Users.Messages.Modify("me", messageID, req).Do(); err != nil {
		return fmt.Errorf("remove label: %w", classify(err))
	}
	return nil
}

// ActiveAccountEmail returns the email address of the authenticated account.
func (c *Client) ActiveAccountEmail() (string, error) {
	profile, err := c.Service.Users.GetProfile("me").Do()
	if err != nil {
		return "", fmt.Errorf("get profile: %w", classify(err))
	}
	return profile.EmailAddress, nil
}
