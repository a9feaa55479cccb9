package server

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// reloadHub fans a rebuild notification out to connected SSE clients.
type reloadHub struct {
	mu      sync.Mutex
	clients map[chan struct{}]struct{}
	onCount func(n int)
}

func newReloadHub(onCount func(n int)) *reloadHub {
	return &reloadHub{clients: make(map[chan struct{}]struct{}), onCount: onCount}
}

func (h *reloadHub) subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.onCount(n)
	return ch
}

func (h *reloadHub) unsubscribe(ch chan struct{}) {
	h.mu.Lock()
	delete(h.clients, ch)
	n := len(h.clients)
	h.mu.Unlock()
	h.onCount(n)
}

// broadcast notifies every client; a slow client's pending notification is
// collapsed rather than queued.
func (h *reloadHub) broadcast() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// ServeHTTP streams reload events as SSE until the client disconnects.
func (h *reloadHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := h.subscribe()
	defer h.unsubscribe(ch)

	fmt.Fprint(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ch:
			fmt.Fprint(w, "data: reload\n\n")
			flusher.Flush()
		}
	}
}

const reloadScript = `<script>
(() => {
  if (window.__LANGMATRIX_LR__) return;
  window.__LANGMATRIX_LR__ = true;
  function connect() {
    const es = new EventSource('/livereload');
    es.onmessage = (e) => { if (e.data === 'reload') location.reload(); };
    es.onerror = () => { es.close(); setTimeout(connect, 2000); };
  }
  connect();
})();
</script></body>`

// injectReloadScript adds the livereload client before </body>. Pages
// without a closing body tag pass through unchanged.
func injectReloadScript(page []byte) []byte {
	return []byte(strings.Replace(string(page), "</body>", reloadScript, 1))
}
