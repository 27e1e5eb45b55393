package desktop

import (
	"log/slog"
	"strconv"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/eventlog"
	"github.com/1broseidon/deskwm/internal/platform"
)

// Options configures a Shell. Zero fields fall back to the defaults of
// the config package.
type Options struct {
	Canvas        Size
	TaskbarHeight float64
	MinSize       Size
	// BaseZ is the z-index of windows that declare none.
	BaseZ        int
	ActivePolicy config.ActivePolicy
	Logger       *slog.Logger
	Journal      *eventlog.Logger
}

// DefaultOptions returns the options of the default configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultConfig())
}

// OptionsFromConfig maps the effective configuration onto shell options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Canvas:        Size{Width: float64(cfg.Canvas.Width), Height: float64(cfg.Canvas.Height)},
		TaskbarHeight: float64(cfg.TaskbarHeight),
		MinSize:       Size{Width: float64(cfg.MinWindow.Width), Height: float64(cfg.MinWindow.Height)},
		BaseZ:         cfg.ZIndexBase,
		ActivePolicy:  cfg.TaskbarClickActive,
	}
}

func (o Options) withDefaults() Options {
	if o.Canvas.Width <= 0 || o.Canvas.Height <= 0 {
		o.Canvas = Size{Width: config.DefaultCanvasWidth, Height: config.DefaultCanvasHeight}
	}
	if o.TaskbarHeight < 0 {
		o.TaskbarHeight = 0
	}
	if o.MinSize.Width <= 0 {
		o.MinSize.Width = config.DefaultMinWindowWidth
	}
	if o.MinSize.Height <= 0 {
		o.MinSize.Height = config.DefaultMinWindowHeight
	}
	if o.ActivePolicy == "" {
		o.ActivePolicy = config.ActivePolicyMinimize
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// control identifies an optional window button.
type control int

const (
	controlMinimize control = iota
	controlMaximize
	controlClose
)

var controlClasses = []struct {
	class string
	ctl   control
}{
	{"min-btn", controlMinimize},
	{"max-btn", controlMaximize},
	{"close-btn", controlClose},
}

// controlHandlers receive the window id and read current state from the
// registry.
var controlHandlers = map[control]func(*Shell, string){
	controlMinimize: (*Shell).Minimize,
	controlMaximize: (*Shell).ToggleMaximize,
	controlClose:    (*Shell).Close,
}

// Shell hosts the window manager on a document. It is not safe for
// concurrent use; callers serialize events.
type Shell struct {
	doc  platform.Document
	opts Options
	log  *slog.Logger

	reg      *Registry
	zorder   *ZOrder
	max      Maximizer
	interact Interaction
	gesture  InteractionContext
	taskbar  Taskbar
	menu     StartMenu

	// blurred marks an outside click: window highlights are removed from
	// the document until the next bring-to-front.
	blurred bool

	// controls is the dispatch table of wired window buttons.
	controls map[string]map[control]platform.Element
}

// New scans doc for .window elements, injects resize handles, wires the
// optional buttons, creates taskbar items for the visible windows and
// activates the topmost one.
func New(doc platform.Document, opts Options) *Shell {
	opts = opts.withDefaults()
	s := &Shell{
		doc:      doc,
		opts:     opts,
		log:      opts.Logger,
		reg:      NewRegistry(),
		max:      Maximizer{Canvas: opts.Canvas, TaskbarHeight: opts.TaskbarHeight},
		interact: Interaction{MinSize: opts.MinSize},
		controls: make(map[string]map[control]platform.Element),
	}
	s.zorder = NewZOrder(s.reg)

	for _, el := range doc.QuerySelectorAll(".window") {
		w := s.windowFromElement(el)
		if w == nil {
			continue
		}
		if !s.reg.Add(w) {
			s.log.Warn("duplicate window id ignored", "window", w.ID)
			continue
		}
		s.injectResizers(el)
		s.wireControls(el)
	}

	for _, w := range s.reg.All() {
		if w.Visible {
			s.taskbar.Ensure(w.ID, w.Title)
		}
	}
	if top := s.zorder.Topmost(); top != nil {
		s.bringToFront(top.ID)
	}
	s.render()

	s.log.Debug("shell ready", "windows", s.reg.Len(), "policy", string(opts.ActivePolicy))
	return s
}

func (s *Shell) windowFromElement(el platform.Element) *Window {
	id := el.ID()
	if id == "" {
		s.log.Debug("window without id skipped")
		return nil
	}
	title, _ := el.Attr("data-title")
	if title == "" {
		title = DefaultTitle
	}
	z := s.opts.BaseZ
	if v, err := strconv.Atoi(el.Style("z-index")); err == nil {
		z = v
	}
	maximizable := true
	if v, ok := el.Attr("data-maximizable"); ok && v == "false" {
		maximizable = false
	}
	return &Window{
		ID:    id,
		Title: title,
		Geometry: platform.Rect{
			X:      platform.ParsePx(el.Style("left")),
			Y:      platform.ParsePx(el.Style("top")),
			Width:  platform.ParsePx(el.Style("width")),
			Height: platform.ParsePx(el.Style("height")),
		},
		Visible:     !el.HasClass("hidden"),
		Maximizable: maximizable,
		ZIndex:      z,
	}
}

// ResizerID returns the element id of a window's resize handle.
func ResizerID(windowID string, dir Direction) string {
	return windowID + "-resize-" + dir.String()
}

func (s *Shell) injectResizers(win platform.Element) {
	for _, dir := range handleDirections {
		id := ResizerID(win.ID(), dir)
		if s.doc.ElementByID(id) != nil {
			continue
		}
		r := s.doc.CreateElement("div")
		r.SetAttr("id", id)
		r.SetAttr("class", "resizer "+dir.String())
		r.SetAttr("data-dir", dir.String())
		win.AppendChild(r)
	}
}

// wireControls records the optional buttons found inside win. Missing
// buttons are simply not wired.
func (s *Shell) wireControls(win platform.Element) {
	wired := make(map[control]platform.Element)
	for _, cc := range controlClasses {
		btn := platform.FindDescendant(win, platform.WithClass(cc.class))
		if btn == nil {
			continue
		}
		wired[cc.ctl] = btn
	}
	s.controls[win.ID()] = wired
}

// Has reports whether id names a registered window.
func (s *Shell) Has(id string) bool {
	_, ok := s.reg.Get(id)
	return ok
}

// Element returns the document element with id, or nil.
func (s *Shell) Element(id string) platform.Element {
	return s.doc.ElementByID(id)
}

// Policy returns the taskbar policy for clicks on the active window.
func (s *Shell) Policy() config.ActivePolicy {
	return s.opts.ActivePolicy
}

// SetCanvas changes the available canvas and refits maximized windows.
func (s *Shell) SetCanvas(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	s.max.Canvas = Size{Width: width, Height: height}
	for _, w := range s.reg.All() {
		s.max.Refit(w)
	}
	s.render()
}

// WindowState is the snapshot of one window.
type WindowState struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Geometry platform.Rect `json:"geometry"`
	Visible  bool          `json:"visible"`
	// Minimized windows are hidden but still own a taskbar item.
	Minimized bool `json:"minimized"`
	Active    bool `json:"active"`
	// Highlighted is false for the active window after an outside click.
	Highlighted   bool           `json:"highlighted"`
	Maximized     bool           `json:"maximized"`
	Maximizable   bool           `json:"maximizable"`
	SavedGeometry *platform.Rect `json:"saved_geometry,omitempty"`
	ZIndex        int            `json:"z_index"`
}

// Open reports whether the window owns a taskbar item.
func (w WindowState) Open() bool {
	return w.Visible || w.Minimized
}

// GestureState is the snapshot of the interaction context.
type GestureState struct {
	Mode      string `json:"mode"`
	WindowID  string `json:"window_id,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// State is a point-in-time snapshot of the shell.
type State struct {
	Canvas        Size          `json:"canvas"`
	TaskbarHeight float64       `json:"taskbar_height"`
	Windows       []WindowState `json:"windows"`
	Taskbar       []TaskbarItem `json:"taskbar"`
	StartMenuOpen bool          `json:"start_menu_open"`
	Gesture       GestureState  `json:"gesture"`
}

// State returns a snapshot safe to hand to other goroutines.
func (s *Shell) State() State {
	st := State{
		Canvas:        s.max.Canvas,
		TaskbarHeight: s.max.TaskbarHeight,
		Taskbar:       s.taskbar.Items(),
		StartMenuOpen: s.menu.IsOpen(),
		Gesture: GestureState{
			Mode:     s.gesture.Mode.String(),
			WindowID: s.gesture.TargetWindowID,
		},
	}
	if s.gesture.Mode == Resizing {
		st.Gesture.Direction = s.gesture.Direction.String()
	}
	for _, w := range s.reg.All() {
		ws := WindowState{
			ID:          w.ID,
			Title:       w.Title,
			Geometry:    w.Geometry,
			Visible:     w.Visible,
			Minimized:   w.Minimized,
			Active:      w.Active,
			Highlighted: w.Active && !s.blurred,
			Maximized:   w.Maximized,
			Maximizable: w.Maximizable,
			ZIndex:      w.ZIndex,
		}
		if w.SavedGeometry != nil {
			saved := *w.SavedGeometry
			ws.SavedGeometry = &saved
		}
		st.Windows = append(st.Windows, ws)
	}
	return st
}

// Window returns the snapshot of one window.
func (st State) Window(id string) (WindowState, bool) {
	for _, w := range st.Windows {
		if w.ID == id {
			return w, true
		}
	}
	return WindowState{}, false
}

// Active returns the id of the active window, or "".
func (st State) Active() string {
	for _, w := range st.Windows {
		if w.Active {
			return w.ID
		}
	}
	return ""
}
