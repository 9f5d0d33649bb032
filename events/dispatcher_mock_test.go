package events_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/heathj/gobrowse-events/dom"
	"github.com/heathj/gobrowse-events/events"
	"github.com/heathj/gobrowse-events/events/eventsmock"
)

func linkTree(t *testing.T) (*dom.Document, *dom.Node, *dom.Node) {
	t.Helper()
	doc := dom.NewDocument()
	nav, err := doc.AppendChild(dom.NewElement("nav", nil))
	require.NoError(t, err)
	a, err := nav.AppendChild(dom.NewElement("a", map[string]string{"href": "/next"}))
	require.NoError(t, err)
	return doc, nav, a
}

func TestHandlersRunInRegistrationOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	doc, nav, a := linkTree(t)
	reg := events.NewRegistry(doc)

	h1 := eventsmock.NewMockHandler(ctrl)
	h2 := eventsmock.NewMockHandler(ctrl)
	defaults := eventsmock.NewMockDefaultActionPerformer(ctrl)

	require.NoError(t, reg.Register(nav, "click", events.Bubbling, h1))
	require.NoError(t, reg.Register(nav, "click", events.Bubbling, h2))

	gomock.InOrder(
		h1.EXPECT().HandleEvent(gomock.Any()).DoAndReturn(func(e *events.Event) error {
			assert.Equal(t, nav, e.CurrentTarget())
			assert.Equal(t, events.Bubbling, e.Phase())
			return nil
		}),
		h2.EXPECT().HandleEvent(gomock.Any()).Return(nil),
		defaults.EXPECT().PerformDefault(gomock.Any()).DoAndReturn(func(e *events.Event) error {
			assert.Equal(t, a, e.Target())
			assert.Equal(t, events.StateCompleted, e.State())
			return nil
		}),
	)

	res, err := events.NewDispatcher(reg, events.WithDefaultActions(defaults)).Dispatch(a, "click")
	require.NoError(t, err)
	assert.True(t, res.DefaultPerformed)
	assert.Equal(t, "*eventsmock.MockHandler", res.Trace[0].Handler)
}

func TestPreventedDefaultNeverReachesPerformer(t *testing.T) {
	ctrl := gomock.NewController(t)
	doc, _, a := linkTree(t)
	reg := events.NewRegistry(doc)

	h := eventsmock.NewMockHandler(ctrl)
	defaults := eventsmock.NewMockDefaultActionPerformer(ctrl)
	require.NoError(t, reg.Register(a, "click", events.Bubbling, h))

	h.EXPECT().HandleEvent(gomock.Any()).DoAndReturn(func(e *events.Event) error {
		e.PreventDefault()
		return nil
	})
	defaults.EXPECT().PerformDefault(gomock.Any()).Times(0)

	res, err := events.NewDispatcher(reg, events.WithDefaultActions(defaults)).Dispatch(a, "click")
	require.NoError(t, err)
	assert.True(t, res.Event.DefaultPrevented())
	assert.False(t, res.DefaultPerformed)
}

func TestMockHandlerIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	doc, nav, _ := linkTree(t)
	reg := events.NewRegistry(doc)
	h := eventsmock.NewMockHandler(ctrl)

	require.NoError(t, reg.Register(nav, "click", events.Capturing, h))
	var dup *events.DuplicateHandlerError
	assert.ErrorAs(t, reg.Register(nav, "click", events.Capturing, h), &dup)
	require.NoError(t, reg.Unregister(nav, "click", events.Capturing, h))
	assert.Equal(t, 0, reg.Len(nav, "click"))
}
