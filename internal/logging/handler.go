package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Handler writes compact single-line records for terminals:
//
//	3:04PM WARN  configuration directory is missing, recreating it dir=/x
//
// Colors are used only when enabled at construction.
type Handler struct {
	opts   slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
	colors *palette
}

type palette struct {
	time  *color.Color
	key   *color.Color
	trace *color.Color
	debug *color.Color
	info  *color.Color
	warn  *color.Color
	err   *color.Color
}

func newPalette() *palette {
	p := &palette{
		time:  color.New(color.FgHiBlack),
		key:   color.New(color.FgCyan),
		trace: color.New(color.FgHiBlack),
		debug: color.New(color.FgMagenta),
		info:  color.New(color.FgGreen),
		warn:  color.New(color.FgYellow),
		err:   color.New(color.FgRed, color.Bold),
	}
	// The handler decides for itself; the global color.NoColor tracks stdout.
	for _, c := range []*color.Color{p.time, p.key, p.trace, p.debug, p.info, p.warn, p.err} {
		c.EnableColor()
	}
	return p
}

// NewHandler returns a handler that colors output when out is a terminal.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	return NewColorHandler(out, opts, ColorAuto)
}

// NewColorHandler returns a handler whose coloring follows mode.
func NewColorHandler(out io.Writer, opts *slog.HandlerOptions, mode ColorMode) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	h := &Handler{
		opts: *opts,
		out:  out,
		mu:   &sync.Mutex{},
	}
	if UseColor(out, mode) {
		h.colors = newPalette()
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle writes r as one line with a single Write.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	if !r.Time.IsZero() {
		t := r.Time.Format(time.Kitchen)
		if h.colors != nil {
			t = h.colors.time.Sprint(t)
		}
		buf.WriteString(t + " ")
	}
	buf.WriteString(h.level(r.Level) + " " + r.Message)

	for _, a := range h.attrs {
		h.appendAttr(&buf, a, nil)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&buf, a, h.groups)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

// level renders the padded level name, naming LevelTrace TRACE.
func (h *Handler) level(l slog.Level) string {
	name := l.String()
	if l <= LevelTrace {
		name = "TRACE"
	}
	name = fmt.Sprintf("%-5s", name)
	if h.colors == nil {
		return name
	}

	switch {
	case l >= slog.LevelError:
		return h.colors.err.Sprint(name)
	case l >= slog.LevelWarn:
		return h.colors.warn.Sprint(name)
	case l >= slog.LevelInfo:
		return h.colors.info.Sprint(name)
	case l > LevelTrace:
		return h.colors.debug.Sprint(name)
	default:
		return h.colors.trace.Sprint(name)
	}
}

// appendAttr appends " key=value" to buf, prefixing the key with any open groups.
// Group-valued attributes are flattened into dotted keys.
func (h *Handler) appendAttr(buf *bytes.Buffer, a slog.Attr, groups []string) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		nested := groups
		if a.Key != "" {
			nested = append(slices.Clone(groups), a.Key)
		}
		for _, ga := range a.Value.Group() {
			h.appendAttr(buf, ga, nested)
		}
		return
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	if h.colors != nil {
		key = h.colors.key.Sprint(key)
	}

	value := a.Value.Any()
	if err, ok := value.(error); ok {
		value = err.Error()
	}
	if s, ok := value.(string); ok && strings.ContainsAny(s, " \t\n\"=") {
		value = strconv.Quote(s)
	}

	fmt.Fprintf(buf, " %s=%v", key, value)
}

// WithAttrs returns a new Handler with the given attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newH := *h
	newH.attrs = slices.Clone(h.attrs)
	for _, a := range attrs {
		if len(h.groups) > 0 {
			a = slog.Attr{Key: strings.Join(h.groups, "."), Value: slog.GroupValue(a)}
		}
		newH.attrs = append(newH.attrs, a)
	}
	return &newH
}

// WithGroup returns a new Handler with the given group name.
// Groups are rendered by prefixing keys, e.g. "store.path=...".
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.groups = make([]string, len(h.groups)+1)
	copy(newH.groups, h.groups)
	newH.groups[len(h.groups)] = name
	return &newH
}
