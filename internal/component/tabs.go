package component

import (
	"github.com/dshills/loom/internal/event"
	"github.com/dshills/loom/internal/plugin"
	"github.com/dshills/loom/internal/ui"
)

// TabTheme colors a tab container.
type TabTheme struct {
	Background ui.Color
	Header     ui.Color
	Active     ui.Color
	Inactive   ui.Color
	Text       ui.Color

	// HeaderHeight is the header row height in cells.
	HeaderHeight int
}

// DefaultTabTheme returns the built-in tab colors.
func DefaultTabTheme() TabTheme {
	return TabTheme{
		Background:   ui.DefaultBackground,
		Header:       ui.RGB(0x25, 0x25, 0x26),
		Active:       ui.RGB(0x1e, 0x1e, 0x1e),
		Inactive:     ui.RGB(0x2d, 0x2d, 0x2d),
		Text:         ui.DefaultText,
		HeaderHeight: 1,
	}
}

// TabOption configures a TabContainer at creation.
type TabOption func(*tabConfig)

type tabConfig struct {
	rootID string
	active int
	theme  TabTheme
}

// WithRootID names the container's root node. By default an id is generated.
func WithRootID(id string) TabOption {
	return func(c *tabConfig) {
		c.rootID = id
	}
}

// WithActive sets the initially active tab. Out of range selects none.
func WithActive(i int) TabOption {
	return func(c *tabConfig) {
		c.active = i
	}
}

// WithTabTheme sets the colors. By default the registry's theme is used.
func WithTabTheme(t TabTheme) TabOption {
	return func(c *tabConfig) {
		c.theme = t
	}
}

type tab struct {
	// index is read by the button's click handler and rewritten whenever
	// tabs are inserted or removed before it.
	index   int
	button  *ui.Node
	label   *ui.Node
	content *ui.Node
}

// TabContainer is a header row of tab buttons over a content area in
// which only the active tab's content container is visible.
//
//	root
//	├── header   (left to right)
//	│   ├── button 0 ── label
//	│   └── button 1 ── label
//	└── content
//	    ├── content 0
//	    └── content 1 (hidden)
type TabContainer struct {
	id    ID
	reg   *Registry
	ctx   *plugin.Context
	theme TabTheme

	root    *ui.Node
	header  *ui.Node
	content *ui.Node

	tabs   []*tab
	active int
}

// NewTabContainer builds a tab container under parent with one tab per
// title. When ctx is non-nil the nodes are allocated from the plugin's
// pool and selection changes emit TabChanged events through its API.
func (r *Registry) NewTabContainer(ctx *plugin.Context, parent *ui.Node, titles []string, opts ...TabOption) (*TabContainer, error) {
	if parent == nil {
		return nil, ErrNoParent
	}
	cfg := tabConfig{theme: r.Theme()}
	for _, opt := range opts {
		opt(&cfg)
	}

	tc := &TabContainer{
		reg:    r,
		ctx:    ctx,
		theme:  cfg.theme,
		active: -1,
	}

	root, err := tc.alloc(cfg.rootID, ui.KindContainer)
	if err != nil {
		return nil, err
	}
	root.Style.Axis = ui.TopToBottom
	root.Style.Background = tc.theme.Background
	tc.root = root

	tc.header = tc.mustAlloc(ui.KindContainer)
	tc.header.Style.Axis = ui.LeftToRight
	tc.header.Style.Height = ui.Fixed(float64(max(tc.theme.HeaderHeight, 1)))
	tc.header.Style.Gap = 1
	tc.header.Style.Background = tc.theme.Header
	root.AddChild(tc.header)

	tc.content = tc.mustAlloc(ui.KindContainer)
	tc.content.Style.Height = ui.Grow()
	tc.content.Style.Background = ui.ColorNone
	root.AddChild(tc.content)

	for _, title := range titles {
		tc.insert(len(tc.tabs), title)
	}

	tc.id = r.reserve()
	r.add(tc)
	parent.AddChild(root)

	// The initial selection is part of construction and is not announced.
	if cfg.active >= 0 && cfg.active < len(tc.tabs) {
		tc.activate(cfg.active)
	}
	r.log.Debug("created tab container %d with %d tabs", tc.id, len(tc.tabs))
	return tc, nil
}

// alloc creates a node through the plugin's pool when there is one.
func (tc *TabContainer) alloc(id string, kind ui.Kind) (*ui.Node, error) {
	if tc.ctx != nil && tc.ctx.Nodes != nil {
		return tc.ctx.Nodes.Create(id, kind)
	}
	if id == "" {
		return ui.NewAnonymous(kind), nil
	}
	return ui.NewNode(id, kind), nil
}

// mustAlloc allocates an anonymous node. Generated ids never collide.
func (tc *TabContainer) mustAlloc(kind ui.Kind) *ui.Node {
	n, err := tc.alloc("", kind)
	if err != nil {
		n = ui.NewAnonymous(kind)
	}
	return n
}

// free releases n and forgets it in the plugin's pool.
func (tc *TabContainer) free(n *ui.Node) {
	if tc.ctx != nil && tc.ctx.Nodes != nil && tc.ctx.Nodes.Release(n.ID) {
		return
	}
	n.Release()
}

// ID returns the registry id.
func (tc *TabContainer) ID() ID { return tc.id }

// Root returns the container's root node.
func (tc *TabContainer) Root() *ui.Node { return tc.root }

// Header returns the header row.
func (tc *TabContainer) Header() *ui.Node { return tc.header }

// Active returns the active tab index, or -1 when there is none.
func (tc *TabContainer) Active() int { return tc.active }

// Len returns the number of tabs.
func (tc *TabContainer) Len() int { return len(tc.tabs) }

// Title returns the title of tab i.
func (tc *TabContainer) Title(i int) string {
	if i < 0 || i >= len(tc.tabs) {
		return ""
	}
	return tc.tabs[i].label.Text
}

// SetTitle renames tab i.
func (tc *TabContainer) SetTitle(i int, title string) bool {
	if tc.root == nil || i < 0 || i >= len(tc.tabs) {
		return false
	}
	tc.tabs[i].label.SetText(title)
	return true
}

// Content returns the content container of tab i, or nil. Callers attach
// the tab's widgets to it.
func (tc *TabContainer) Content(i int) *ui.Node {
	if i < 0 || i >= len(tc.tabs) {
		return nil
	}
	return tc.tabs[i].content
}

// Button returns the header button of tab i, or nil.
func (tc *TabContainer) Button(i int) *ui.Node {
	if i < 0 || i >= len(tc.tabs) {
		return nil
	}
	return tc.tabs[i].button
}

// Select makes tab i active and emits TabChanged. It does nothing and
// returns false when i is already active or out of range, or after Destroy.
func (tc *TabContainer) Select(i int) bool {
	if tc.root == nil || i == tc.active || i < 0 || i >= len(tc.tabs) {
		return false
	}
	old := tc.activate(i)
	tc.announce(old, i)
	return true
}

// activate switches the visible tab and returns the previous index.
func (tc *TabContainer) activate(i int) int {
	old := tc.active
	if old >= 0 && old < len(tc.tabs) {
		prev := tc.tabs[old]
		prev.button.Style.Background = tc.theme.Inactive
		prev.content.SetHidden(true)
	}
	next := tc.tabs[i]
	next.button.Style.Background = tc.theme.Active
	next.content.SetHidden(false)
	tc.active = i
	return old
}

func (tc *TabContainer) announce(old, i int) {
	if tc.ctx == nil || tc.ctx.API == nil {
		return
	}
	tc.ctx.API.Emit(event.TabChanged, event.Tab{
		ComponentID: uint64(tc.id),
		OldIndex:    old,
		NewIndex:    i,
		ContentID:   tc.tabs[i].content.ID,
	})
	tc.ctx.API.RequestRender()
}

// AddTab appends a tab and returns its index. When no tab is active the
// new tab is selected.
func (tc *TabContainer) AddTab(title string) int {
	return tc.InsertTab(len(tc.tabs), title)
}

// InsertTab inserts a tab at i, clamped to the valid range, and returns
// its index. A destroyed container takes no tabs and returns -1.
func (tc *TabContainer) InsertTab(i int, title string) int {
	if tc.root == nil {
		return -1
	}
	i = min(max(i, 0), len(tc.tabs))
	tc.insert(i, title)
	if tc.active >= i {
		tc.active++
	}
	if tc.active < 0 {
		tc.Select(i)
	}
	return i
}

func (tc *TabContainer) insert(i int, title string) {
	t := &tab{index: i}

	t.button = tc.mustAlloc(ui.KindContainer)
	t.button.Style.Width = ui.Fit()
	t.button.Style.Height = ui.Grow()
	t.button.Style.Padding = ui.Padding{Left: 1, Right: 1}
	t.button.Style.Background = tc.theme.Inactive
	t.button.Style.Cursor = ui.CursorPointer
	t.button.SetOnClick(func(*ui.Node) { tc.Select(t.index) })

	t.label = tc.mustAlloc(ui.KindText)
	t.label.Text = title
	t.label.Style.Width = ui.Fit()
	t.label.Style.Height = ui.Fit()
	t.label.Style.Background = ui.ColorNone
	t.label.Style.TextColor = tc.theme.Text
	t.button.AddChild(t.label)

	t.content = tc.mustAlloc(ui.KindContainer)
	t.content.Style.Background = tc.theme.Active
	t.content.Style.Hidden = true

	tc.header.InsertChild(i, t.button)
	tc.content.InsertChild(i, t.content)

	tc.tabs = append(tc.tabs, nil)
	copy(tc.tabs[i+1:], tc.tabs[i:])
	tc.tabs[i] = t
	tc.reindex(i + 1)
}

// reindex rewrites the indices seen by click handlers from i on.
func (tc *TabContainer) reindex(from int) {
	for j := from; j < len(tc.tabs); j++ {
		tc.tabs[j].index = j
	}
}

// RemoveTab removes tab i. Removing the active tab selects the tab that
// takes its place, or the new last tab, and leaves no active tab when the
// container becomes empty.
func (tc *TabContainer) RemoveTab(i int) bool {
	if tc.root == nil || i < 0 || i >= len(tc.tabs) {
		return false
	}
	t := tc.tabs[i]
	t.button.SetOnClick(nil)
	tc.free(t.button)
	tc.free(t.content)

	tc.tabs = append(tc.tabs[:i], tc.tabs[i+1:]...)
	tc.reindex(i)

	switch {
	case i == tc.active:
		tc.active = -1
		if len(tc.tabs) > 0 {
			tc.Select(min(i, len(tc.tabs)-1))
		}
	case i < tc.active:
		tc.active--
	}
	return true
}

// Destroy detaches and releases the container's subtree and removes it
// from its registry. Calling Destroy again does nothing.
func (tc *TabContainer) Destroy() {
	if tc.root == nil {
		return
	}
	for _, t := range tc.tabs {
		t.button.SetOnClick(nil)
	}
	tc.free(tc.root)
	tc.root, tc.header, tc.content = nil, nil, nil
	tc.tabs = nil
	tc.active = -1
	if tc.reg != nil {
		tc.reg.forget(tc.id)
	}
}
