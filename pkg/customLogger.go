package disp

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

const moduleKey = "module"

// Handler writes one line per record:
//
//	[2006/01/02 15:04:05] [module] LEVEL message key=value ...
//
// The module attribute is pulled out into its own bracket, the level is
// only printed above Info, and every other attribute follows the message.
type Handler struct {
	level  slog.Leveler
	module string
	attrs  []slog.Attr
	group  string
	mu     *sync.Mutex
	out    io.Writer
}

func NewHandler(o io.Writer, opts *slog.HandlerOptions) *Handler {
	h := &Handler{out: o, level: slog.LevelInfo, mu: &sync.Mutex{}}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) clone() *Handler {
	c := *h
	c.attrs = append([]slog.Attr(nil), h.attrs...)
	return &c
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	for _, a := range attrs {
		c.add(a)
	}
	return c
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := h.clone()
	c.group = c.qualify(name)
	return c
}

func (h *Handler) qualify(key string) string {
	if h.group == "" {
		return key
	}
	return h.group + "." + key
}

// add records a, taking the module name aside when it is at top level.
func (h *Handler) add(a slog.Attr) {
	if a.Key == moduleKey && h.group == "" {
		h.module = a.Value.String()
		return
	}
	a.Key = h.qualify(a.Key)
	h.attrs = append(h.attrs, a)
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	line := h.clone()
	r.Attrs(func(a slog.Attr) bool {
		line.add(a)
		return true
	})

	var b strings.Builder
	b.WriteString(r.Time.Format("[2006/01/02 15:04:05]"))
	if line.module != "" {
		b.WriteString(" [" + line.module + "]")
	}
	if r.Level > slog.LevelInfo {
		b.WriteString(" " + r.Level.String())
	}
	b.WriteString(" " + r.Message)
	for _, a := range line.attrs {
		b.WriteString(" " + a.String())
	}
	b.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

// SlogLogger sends informational messages to InfoLog and errors to ErrorLog.
type SlogLogger struct {
	InfoLog  *slog.Logger
	ErrorLog *slog.Logger
}

// NewSlogLogger writes info messages as text to stdout and errors as JSON to stderr.
func NewSlogLogger(stdout, stderr io.Writer) SlogLogger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	return SlogLogger{
		InfoLog:  slog.New(NewHandler(stdout, opts)),
		ErrorLog: slog.New(slog.NewJSONHandler(stderr, opts)),
	}
}

func (l SlogLogger) Info(message string, module string) {
	l.InfoLog.Info(message, moduleKey, module)
}

func (l SlogLogger) Error(message string) {
	l.ErrorLog.Error(message)
}
