package app

import (
	"io"
	"net"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// Gateway exposes app as a net/http handler for the FastCGI binary.
//
// It follows adaptor.FiberApp for the request side but writes the response
// with BodyWriteTo: adaptor.FiberApp calls Response.Body(), which buffers a
// body stream and closes it before any byte reaches w.
func Gateway(app *fiber.App) http.Handler {
	handler := app.Handler()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := fasthttp.AcquireRequest()
		defer fasthttp.ReleaseRequest(req)

		if r.Body != nil {
			n, err := io.Copy(req.BodyWriter(), r.Body)
			if err != nil {
				http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
				return
			}
			req.Header.SetContentLength(int(n))
		}
		req.Header.SetMethod(r.Method)
		req.SetRequestURI(r.RequestURI)
		req.SetHost(r.Host)
		req.Header.SetHost(r.Host)
		for key, values := range r.Header {
			for _, v := range values {
				req.Header.Add(key, v)
			}
		}

		var fctx fasthttp.RequestCtx
		fctx.Init(req, remoteAddr(r.RemoteAddr), nil)
		// Reset closes a stream left unwritten after a failed write.
		defer fctx.Response.Reset()

		handler(&fctx)

		fctx.Response.Header.VisitAll(func(k, v []byte) {
			w.Header().Add(string(k), string(v))
		})
		w.WriteHeader(fctx.Response.StatusCode())
		// Copies the stream, if any, then closes it.
		_ = fctx.Response.BodyWriteTo(w)
	})
}

// remoteAddr resolves the client address, or returns nil so fasthttp falls
// back to its zero address.
func remoteAddr(addr string) net.Addr {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, "80")
	}
	tcp, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil
	}
	return tcp
}
