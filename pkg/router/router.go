package router

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// --- ANSI color codes ---
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

type HandlerFunc func(http.ResponseWriter, *http.Request)

type route struct {
	method  string
	path    string
	handler HandlerFunc
}

// Router matches METHOD + path. A "*" segment matches exactly one path
// segment, except as the last segment where it also matches any deeper path.
// Routes are tried in registration order, exact-length matches first.
type Router struct {
	mux    *http.ServeMux
	routes []route
}

func New() *Router {
	r := &Router{mux: http.NewServeMux()}

	// Catch-all handler for registered routes
	r.mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		if h := r.lookup(req.Method, req.URL.Path); h != nil {
			h(lrw, req)
		} else if r.pathKnown(req.URL.Path) {
			// Path exists but method not allowed
			http.Error(lrw, "Method Not Allowed", http.StatusMethodNotAllowed)
		} else {
			http.Error(lrw, "Not Found", http.StatusNotFound)
		}

		logRequest(req, lrw.statusCode, start)
	})

	return r
}

func (r *Router) lookup(method, path string) HandlerFunc {
	for _, rt := range r.routes {
		if rt.method == method && matchSegments(path, rt.path) {
			return rt.handler
		}
	}
	for _, rt := range r.routes {
		if rt.method == method && matchWildcardTail(path, rt.path) {
			return rt.handler
		}
	}
	return nil
}

func (r *Router) pathKnown(path string) bool {
	for _, rt := range r.routes {
		if matchSegments(path, rt.path) || matchWildcardTail(path, rt.path) {
			return true
		}
	}
	return false
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}

// matchSegments requires the same number of segments; "*" matches any one.
func matchSegments(requestPath, routePattern string) bool {
	requestSegments := splitPath(requestPath)
	routeSegments := splitPath(routePattern)
	if len(requestSegments) != len(routeSegments) {
		return false
	}
	for i, routeSegment := range routeSegments {
		if routeSegment == "*" {
			if requestSegments[i] == "" {
				return false
			}
			continue
		}
		if requestSegments[i] != routeSegment {
			return false
		}
	}
	return true
}

// matchWildcardTail lets a trailing "*" absorb any number of extra segments.
func matchWildcardTail(requestPath, routePattern string) bool {
	routeSegments := splitPath(routePattern)
	if len(routeSegments) == 0 || routeSegments[len(routeSegments)-1] != "*" {
		return false
	}
	requestSegments := splitPath(requestPath)
	if len(requestSegments) < len(routeSegments) {
		return false
	}
	for i := 0; i < len(routeSegments)-1; i++ {
		if routeSegments[i] != "*" && requestSegments[i] != routeSegments[i] {
			return false
		}
	}
	return true
}

// --- Register paths ---
func (r *Router) register(method, path string, handler HandlerFunc) {
	r.routes = append(r.routes, route{method: method, path: path, handler: handler})
}

func (r *Router) GET(path string, handler HandlerFunc)   { r.register(http.MethodGet, path, handler) }
func (r *Router) POST(path string, handler HandlerFunc)  { r.register(http.MethodPost, path, handler) }
func (r *Router) PUT(path string, handler HandlerFunc)   { r.register(http.MethodPut, path, handler) }
func (r *Router) PATCH(path string, handler HandlerFunc) { r.register(http.MethodPatch, path, handler) }
func (r *Router) DELETE(path string, handler HandlerFunc) {
	r.register(http.MethodDelete, path, handler)
}

// Mount serves a plain http.Handler under a ServeMux pattern, e.g. "/metrics".
func (r *Router) Mount(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// Routes returns "METHOD:PATH" keys in registration order.
func (r *Router) Routes() []string {
	keys := make([]string, 0, len(r.routes))
	for _, rt := range r.routes {
		keys = append(keys, rt.method+":"+rt.path)
	}
	return keys
}

// ServeHTTP makes Router usable as an http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// --- Server ---
func (r *Router) Server(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           r.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// --- Logging response writer to capture status codes ---
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func logRequest(req *http.Request, status int, start time.Time) {
	log.Printf("%s[%s]%s %s%s%s %s %s%d%s %s(%v)%s",
		colorCyan, start.Format("2006-01-02 15:04:05"), colorReset,
		methodColor(req.Method), req.Method, colorReset,
		req.URL.Path,
		statusColor(status), status, colorReset,
		colorBlue, time.Since(start), colorReset,
	)
}

// --- Color helpers ---
func statusColor(code int) string {
	switch {
	case code >= 200 && code < 300:
		return colorGreen
	case code >= 300 && code < 400:
		return colorCyan
	case code >= 400 && code < 500:
		return colorYellow
	default:
		return colorRed
	}
}

func methodColor(method string) string {
	switch method {
	case http.MethodGet:
		return colorGreen
	case http.MethodPost:
		return colorBlue
	case http.MethodPut:
		return colorYellow
	case http.MethodPatch:
		return colorYellow
	case http.MethodDelete:
		return colorRed
	default:
		return colorCyan
	}
}
