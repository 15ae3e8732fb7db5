package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// Compression gzips JSON responses for clients that accept it. The
// participants overview grows quadratically in pair entries, so large
// sessions benefit the most.
type Compression struct {
	level int
	pool  sync.Pool
}

// NewCompression creates the middleware with the given gzip level.
func NewCompression(level int) *Compression {
	if level < gzip.BestSpeed || level > gzip.BestCompression {
		level = gzip.DefaultCompression
	}
	c := &Compression{level: level}
	c.pool = sync.Pool{
		New: func() interface{} {
			gz, _ := gzip.NewWriterLevel(nil, c.level)
			return gz
		},
	}
	return c
}

// Handler returns the Gin middleware function.
func (c *Compression) Handler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !strings.Contains(ctx.GetHeader("Accept-Encoding"), "gzip") {
			ctx.Next()
			return
		}
		// Upgrade and event-stream responses must not be wrapped.
		if ctx.GetHeader("Connection") == "Upgrade" {
			ctx.Next()
			return
		}

		gz := c.pool.Get().(*gzip.Writer)
		gz.Reset(ctx.Writer)

		ctx.Header("Content-Encoding", "gzip")
		ctx.Header("Vary", "Accept-Encoding")
		ctx.Writer = &gzipWriter{ResponseWriter: ctx.Writer, gz: gz}

		defer func() {
			gz.Close()
			c.pool.Put(gz)
			ctx.Header("Content-Length", "")
		}()

		ctx.Next()
	}
}

type gzipWriter struct {
	gin.ResponseWriter
	gz *gzip.Writer
}

func (w *gzipWriter) Write(data []byte) (int, error) {
	return w.gz.Write(data)
}

func (w *gzipWriter) WriteString(s string) (int, error) {
	return w.gz.Write([]byte(s))
}

// WriteHeader drops the Content-Length set by handlers; the compressed
// length differs.
func (w *gzipWriter) WriteHeader(code int) {
	w.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(code)
}

var _ http.Flusher = (*gzipWriter)(nil)

func (w *gzipWriter) Flush() {
	_ = w.gz.Flush()
	w.ResponseWriter.Flush()
}
