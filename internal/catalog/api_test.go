package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmailapi "google.golang.org/api/gmail/v1"
)

type fakeLister struct {
	labels []*gmailapi.Label
	err    error
}

func (f *fakeLister) ListLabels(string) ([]*gmailapi.Label, error) {
	return f.labels, f.err
}

func TestAPISource_FetchLabels(t *testing.T) {
	lister := &fakeLister{labels: []*gmailapi.Label{
		{Id: "INBOX", Name: "Inbox", Type: "system"},
		{Id: "Label_17", Name: "Receipts", Type: "user", LabelListVisibility: "labelHide"},
		{Id: "Label_18", Name: "Newsletters", Type: "user", LabelListVisibility: "labelShowIfUnread",
			Color: &gmailapi.LabelColor{BackgroundColor: "#fb4c2f", TextColor: "#ffffff"}},
	}}

	labels, colors, err := NewAPISource(lister).FetchLabels(context.Background(), "0")
	require.NoError(t, err)
	require.Len(t, labels, 3)

	assert.Equal(t, TypeSystem, labels[0].Type)
	assert.Equal(t, StateShow, labels[0].State)

	assert.Equal(t, "Label_17", labels[1].ID)
	assert.Equal(t, StateHide, labels[1].State)

	assert.Equal(t, StateShowIfUnread, labels[2].State)
	require.NotNil(t, labels[2].Color)
	assert.Equal(t, "#fb4c2f", labels[2].Color.BackgroundColor)
	assert.Equal(t, Color{BackgroundColor: "#fb4c2f", TextColor: "#ffffff"}, colors["Label_18"])
}

func TestAPISource_FetchLabels_DedupesByName(t *testing.T) {
	lister := &fakeLister{labels: []*gmailapi.Label{
		{Id: "Label_1", Name: "Work"},
		{Id: "Label_2", Name: "Work"},
		{Id: "Label_3", Name: "  "},
	}}

	labels, _, err := NewAPISource(lister).FetchLabels(context.Background(), "0")
	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.Equal(t, "Label_1", labels[0].ID)
}

func TestAPISource_FetchLabels_PropagatesError(t *testing.T) {
	sentinel := errors.New("remote down")
	_, _, err := NewAPISource(&fakeLister{err: sentinel}).FetchLabels(context.Background(), "0")
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}

func TestAPISource_FetchLabels_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := NewAPISource(&fakeLister{}).FetchLabels(ctx, "0")
	assert.ErrorIs(t, err, context.Canceled)
}
