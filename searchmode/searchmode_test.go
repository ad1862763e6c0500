package searchmode

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yhkl-dev/navistream/domain"
)

type enqueueCall struct {
	id      string
	playNow bool
}

type recorder struct {
	calls []enqueueCall
	err   error
}

func (r *recorder) Enqueue(_ context.Context, t domain.Track, playNow bool) error {
	r.calls = append(r.calls, enqueueCall{t.ID, playNow})
	return r.err
}

var matches = []domain.Track{{ID: "a"}, {ID: "b"}, {ID: "c"}}

func TestController_StartsInactive(t *testing.T) {
	c := NewController()

	assert.False(t, c.Active())
	assert.Nil(t, c.Session())
}

func TestController_Begin(t *testing.T) {
	c := NewController()

	require.True(t, c.Begin(matches, Play, false))

	require.True(t, c.Active())
	s := c.Session()
	assert.Equal(t, 0, s.Position)
	assert.Equal(t, Play, s.Action)
	assert.False(t, s.StayOpen)
	assert.Equal(t, "a", s.Current().ID)
}

func TestController_Begin_EmptyStaysInactive(t *testing.T) {
	c := NewController()

	assert.False(t, c.Begin(nil, AddOnly, false))
	assert.False(t, c.Active())
}

func TestController_SelectionIsClamped(t *testing.T) {
	c := NewController()
	c.Begin(matches, AddOnly, false)

	c.SelectPrevious()
	assert.Equal(t, 0, c.Session().Position)

	c.SelectNext()
	c.SelectNext()
	assert.Equal(t, 2, c.Session().Position)

	c.SelectNext()
	assert.Equal(t, 2, c.Session().Position)

	c.SelectPrevious()
	assert.Equal(t, 1, c.Session().Position)
}

func TestController_Confirm_Closes(t *testing.T) {
	c := NewController()
	r := &recorder{}
	c.Begin(matches, Play, false)
	c.SelectNext()

	require.NoError(t, c.Confirm(context.Background(), r))

	assert.Equal(t, []enqueueCall{{"b", true}}, r.calls)
	assert.False(t, c.Active())
}

func TestController_Confirm_StayOpen(t *testing.T) {
	c := NewController()
	r := &recorder{}
	c.Begin(matches, AddOnly, true)
	ctx := context.Background()

	require.NoError(t, c.Confirm(ctx, r))
	require.True(t, c.Active())
	assert.Equal(t, 0, c.Session().Position)

	c.SelectNext()
	require.NoError(t, c.Confirm(ctx, r))
	require.NoError(t, c.Confirm(ctx, r))

	assert.True(t, c.Active())
	assert.Equal(t, []enqueueCall{{"a", false}, {"b", false}, {"b", false}}, r.calls)
}

func TestController_Confirm_ErrorStillCloses(t *testing.T) {
	c := NewController()
	r := &recorder{err: errors.New("stream failed")}
	c.Begin(matches, Play, false)

	assert.Error(t, c.Confirm(context.Background(), r))
	assert.False(t, c.Active())
}

func TestController_Cancel(t *testing.T) {
	c := NewController()
	r := &recorder{}
	c.Begin(matches, Play, true)

	c.Cancel()

	assert.False(t, c.Active())
	require.NoError(t, c.Confirm(context.Background(), r))
	assert.Empty(t, r.calls)
}

func TestController_SessionIsCopy(t *testing.T) {
	c := NewController()
	c.Begin(matches, AddOnly, false)

	c.Session().Position = 2

	assert.Equal(t, 0, c.Session().Position)
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "play", Play.String())
	assert.Equal(t, "add", AddOnly.String())
}
