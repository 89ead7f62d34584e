package wavemarkcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/oceanbiometrics/wavemark"
	"github.com/oceanbiometrics/wavemark/lib/xbrowser"
	"github.com/oceanbiometrics/wavemark/lib/xhttp"
	"github.com/oceanbiometrics/wavemark/lib/xmain"
	"github.com/oceanbiometrics/wavemark/wavepng"
	"github.com/oceanbiometrics/wavemark/wavesvg"
)

type watcherOpts struct {
	paramsPath string
	outputPath string
	format     exportExtension
	scale      float64
	applyFlags func(*wavemark.Params)
}

type watcher struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	ms *xmain.State
	watcherOpts

	renderCh chan struct{}

	fw *fsnotify.Watcher
	l  net.Listener

	wsclientsMu sync.Mutex
	closing     bool
	wsclientsWG sync.WaitGroup
	wsclients   map[*wsclient]struct{}

	errMu sync.Mutex
	err   error

	resMu sync.Mutex
	res   *renderResult
}

type renderResult struct {
	Err string `json:"err"`
	SVG string `json:"svg"`
}

func newWatcher(ctx context.Context, ms *xmain.State, opts watcherOpts) (*watcher, error) {
	ctx, cancel := context.WithCancel(ctx)

	w := &watcher{
		ctx:    ctx,
		cancel: cancel,

		ms:          ms,
		watcherOpts: opts,

		renderCh:  make(chan struct{}, 1),
		wsclients: make(map[*wsclient]struct{}),
	}
	err := w.init()
	if err != nil {
		cancel()
		return nil, err
	}
	return w, nil
}

func (w *watcher) init() error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fw = fw
	return w.listen()
}

func (w *watcher) run() error {
	defer w.close()

	w.goFunc(w.watchLoop)
	w.goFunc(w.renderLoop)

	err := w.goServe()
	if err != nil {
		return err
	}

	w.wg.Wait()
	w.close()
	return w.err
}

func (w *watcher) close() {
	w.wsclientsMu.Lock()
	if w.closing {
		w.wsclientsMu.Unlock()
		return
	}
	w.closing = true
	w.wsclientsMu.Unlock()

	w.cancel()
	if w.fw != nil {
		err := w.fw.Close()
		w.setErr(err)
	}
	if w.l != nil {
		err := w.l.Close()
		w.setErr(err)
	}

	w.wsclientsWG.Wait()
}

func (w *watcher) setErr(err error) {
	w.errMu.Lock()
	if w.err == nil {
		w.err = err
	}
	w.errMu.Unlock()
}

func (w *watcher) goFunc(fn func(context.Context) error) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.cancel()

		err := fn(w.ctx)
		w.setErr(err)
	}()
}

// File notification APIs are notoriously unreliable. The periodic modtime
// poll catches changes missed by fsnotify, the re-add after every event
// follows the file across atomic replaces, and the burst timer batches the
// event storms editors produce on a single save.
func (w *watcher) watchLoop(ctx context.Context) error {
	lastModified, err := w.ensureAddWatch(ctx)
	if err != nil {
		return err
	}
	w.ms.Log.Info.Printf("rendering %v...", w.paramsPath)
	w.requestRender()

	eatBurstTimer := time.NewTimer(0)
	<-eatBurstTimer.C
	pollTicker := time.NewTicker(time.Second * 10)
	defer pollTicker.Stop()

	for {
		select {
		case <-pollTicker.C:
			mt, err := w.ensureAddWatch(ctx)
			if err != nil {
				return err
			}
			if !mt.Equal(lastModified) {
				// We missed changes.
				lastModified = mt
				w.requestRender()
			}
		case ev, ok := <-w.fw.Events:
			if !ok {
				return errors.New("fsnotify watcher closed")
			}
			w.ms.Log.Debug.Printf("received file system event %v", ev)
			mt, err := w.ensureAddWatch(ctx)
			if err != nil {
				return err
			}
			if ev.Op == fsnotify.Chmod {
				if mt.Equal(lastModified) {
					// Benign Chmod.
					// See https://github.com/fsnotify/fsnotify/issues/15
					continue
				}
				// We missed changes.
				lastModified = mt
			}
			eatBurstTimer.Reset(time.Millisecond * 32)
		case <-eatBurstTimer.C:
			w.ms.Log.Info.Printf("detected change in %v: rerendering...", w.paramsPath)
			w.requestRender()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return errors.New("fsnotify watcher closed")
			}
			w.ms.Log.Error.Printf("fsnotify error: %v", err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *watcher) requestRender() {
	select {
	case w.renderCh <- struct{}{}:
	default:
	}
}

func (w *watcher) ensureAddWatch(ctx context.Context) (time.Time, error) {
	interval := time.Second
	tc := time.NewTimer(0)
	<-tc.C
	for {
		mt, err := w.addWatch(ctx)
		if err == nil {
			return mt, nil
		}
		w.ms.Log.Error.Printf("failed to watch params file %q: %v (retrying in %v)", w.paramsPath, err, interval)

		tc.Reset(interval)
		select {
		case <-tc.C:
			if interval < time.Second*16 {
				interval *= 2
			}
		case <-ctx.Done():
			return time.Time{}, ctx.Err()
		}
	}
}

func (w *watcher) addWatch(ctx context.Context) (time.Time, error) {
	err := w.fw.Add(w.paramsPath)
	if err != nil {
		return time.Time{}, err
	}
	var d os.FileInfo
	d, err = os.Stat(w.paramsPath)
	if err != nil {
		return time.Time{}, err
	}
	return d.ModTime(), nil
}

func (w *watcher) renderLoop(ctx context.Context) error {
	firstRender := true
	for {
		select {
		case <-w.renderCh:
		case <-ctx.Done():
			return ctx.Err()
		}

		rerenderedPrefix := ""
		if !firstRender {
			rerenderedPrefix = "re"
		}

		svg, err := w.render(ctx)
		if err != nil {
			err = fmt.Errorf("failed to %srender: %w", rerenderedPrefix, err)
			w.ms.Log.Error.Print(err)
			w.broadcast(&renderResult{
				Err: err.Error(),
			})
		} else {
			w.ms.Log.Success.Printf("successfully %srendered %v to %v", rerenderedPrefix, w.paramsPath, w.outputPath)
			w.broadcast(&renderResult{
				SVG: string(svg),
			})
		}

		if firstRender {
			firstRender = false
			if w.ms.Env.Getenv("BROWSER") != "0" {
				url := fmt.Sprintf("http://%s", w.l.Addr())
				err = xbrowser.OpenURL(ctx, w.ms.Env, url)
				if err != nil {
					w.ms.Log.Warn.Printf("failed to open browser to %v: %v", url, err)
				}
			}
		}
	}
}

// render reloads the params file, renders, writes the output file, and
// returns the SVG for the browser preview regardless of the output format.
func (w *watcher) render(ctx context.Context) ([]byte, error) {
	b, err := os.ReadFile(w.paramsPath)
	if err != nil {
		return nil, err
	}
	params := wavemark.Defaults()
	if err := json.Unmarshal(b, &params); err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", w.paramsPath, err)
	}
	w.applyFlags(&params)

	logo, err := wavemark.Render(ctx, params)
	if err != nil {
		return nil, err
	}
	svg, err := wavesvg.Render(logo)
	if err != nil {
		return nil, err
	}

	out := svg
	if w.format.requiresRasterizer() {
		out, err = wavepng.Render(logo, w.scale)
		if err != nil {
			return nil, err
		}
	}
	err = os.WriteFile(w.outputPath, out, 0644)
	if err != nil {
		return nil, err
	}
	return svg, nil
}

func (w *watcher) listen() error {
	host := "localhost"
	port := "0"
	hostEnv := w.ms.Env.Getenv("HOST")
	if hostEnv != "" {
		host = hostEnv
	}
	portEnv := w.ms.Env.Getenv("PORT")
	if portEnv != "" {
		port = portEnv
	}

	l, err := net.Listen("tcp", net.JoinHostPort(host, port))
	if err != nil {
		return err
	}
	w.l = l
	w.ms.Log.Success.Printf("listening on http://%v", w.l.Addr())
	return nil
}

func (w *watcher) goServe() error {
	m := http.NewServeMux()
	m.HandleFunc("/", w.handleRoot)
	m.HandleFunc("/watch", w.handleWatch)

	s := xhttp.NewServer(w.ms.Log.Warn, m)
	w.goFunc(func(ctx context.Context) error {
		return xhttp.Serve(ctx, time.Second*30, s, w.l)
	})

	return nil
}

func (w *watcher) getRes() *renderResult {
	w.resMu.Lock()
	defer w.resMu.Unlock()
	return w.res
}

func (w *watcher) handleRoot(hw http.ResponseWriter, r *http.Request) {
	hw.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(hw, `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>%s</title>
	<style>
		html, body { margin: 0; height: 100vh; }
		#wavemark-err { color: #b00020; font-family: monospace; padding: 1rem; white-space: pre-wrap; }
		#wavemark-svg { display: flex; justify-content: center; align-items: center; height: 100vh; }
	</style>
</head>
<body>
	<div id="wavemark-err" style="display: none"></div>
	<div id="wavemark-svg"></div>
	<script>
	(function connect() {
		const ws = new WebSocket("ws://" + window.location.host + "/watch");
		ws.onmessage = function(ev) {
			const msg = JSON.parse(ev.data);
			const errEl = document.getElementById("wavemark-err");
			const svgEl = document.getElementById("wavemark-svg");
			if (msg.err) {
				errEl.textContent = msg.err;
				errEl.style.display = "block";
			} else {
				errEl.style.display = "none";
				svgEl.innerHTML = msg.svg;
			}
		};
		ws.onclose = function() { setTimeout(connect, 1000); };
	})();
	</script>
</body>
</html>`, w.outputPath)
}

func (w *watcher) handleWatch(hw http.ResponseWriter, r *http.Request) {
	w.wsclientsMu.Lock()
	if w.closing {
		w.wsclientsMu.Unlock()
		http.Error(hw, "server shutting down...", http.StatusServiceUnavailable)
		return
	}
	// Register before upgrading the connection so that w.close() waits for
	// us. Registering after the hijack leaves a window where close may
	// return without waiting.
	w.wsclientsWG.Add(1)
	w.wsclientsMu.Unlock()

	c, err := websocket.Accept(hw, r, &websocket.AcceptOptions{
		CompressionMode: websocket.CompressionDisabled,
	})
	if err != nil {
		w.wsclientsWG.Done()
		w.ms.Log.Debug.Printf("websocket accept: %v", err)
		return
	}

	go func() {
		defer w.wsclientsWG.Done()
		defer c.Close(websocket.StatusInternalError, "the sky is falling")

		ctx, cancel := context.WithTimeout(w.ctx, time.Hour)
		defer cancel()

		cl := &wsclient{
			w:         w,
			resultsCh: make(chan struct{}, 1),
			c:         c,
		}

		w.wsclientsMu.Lock()
		w.wsclients[cl] = struct{}{}
		w.wsclientsMu.Unlock()
		defer func() {
			w.wsclientsMu.Lock()
			delete(w.wsclients, cl)
			w.wsclientsMu.Unlock()
		}()

		ctx = cl.c.CloseRead(ctx)
		go wsHeartbeat(ctx, cl.c)
		_ = cl.writeLoop(ctx)
	}()
}

type wsclient struct {
	w         *watcher
	resultsCh chan struct{}
	c         *websocket.Conn
}

func (cl *wsclient) writeLoop(ctx context.Context) error {
	for {
		res := cl.w.getRes()
		if res != nil {
			err := cl.write(ctx, res)
			if err != nil {
				return err
			}
		}

		select {
		case <-cl.resultsCh:
		case <-ctx.Done():
			cl.c.Close(websocket.StatusGoingAway, "server shutting down...")
			return ctx.Err()
		}
	}
}

func (cl *wsclient) write(ctx context.Context, res *renderResult) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*30)
	defer cancel()

	return wsjson.Write(ctx, cl.c, res)
}

func (w *watcher) broadcast(res *renderResult) {
	w.resMu.Lock()
	w.res = res
	w.resMu.Unlock()

	w.wsclientsMu.Lock()
	defer w.wsclientsMu.Unlock()
	clientsSuffix := ""
	if len(w.wsclients) != 1 {
		clientsSuffix = "s"
	}
	w.ms.Log.Info.Printf("broadcasting update to %d client%s", len(w.wsclients), clientsSuffix)
	for cl := range w.wsclients {
		select {
		case cl.resultsCh <- struct{}{}:
		default:
		}
	}
}

func wsHeartbeat(ctx context.Context, c *websocket.Conn) {
	defer c.Close(websocket.StatusInternalError, "the sky is falling")

	t := time.NewTimer(0)
	<-t.C
	for {
		err := c.Ping(ctx)
		if err != nil {
			return
		}

		t.Reset(time.Second * 30)
		select {
		case <-t.C:
		case <-ctx.Done():
			return
		}
	}
}
