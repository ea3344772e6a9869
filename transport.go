package breaker

import "net/http"

// RoundTripper wires a Breaker into an http.Client as outbound middleware.
// While the circuit is open, calls fail fast with ErrOpen without touching
// the network. A completed exchange counts as a failure when the transport
// errors or the response status is a server error (>= 500).
//
//	client := &http.Client{Transport: &breaker.RoundTripper{Breaker: b}}
type RoundTripper struct {
	// Base performs the actual exchange. http.DefaultTransport when nil.
	Base http.RoundTripper

	// Breaker guards the route.
	Breaker *Breaker
}

// RoundTrip implements http.RoundTripper.
func (rt *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	call := &httpCall{req: req}

	rt.Breaker.Request(call)
	if call.terminated {
		return nil, ErrOpen
	}

	resp, err := rt.base().RoundTrip(req)
	call.resp, call.err = resp, err

	rt.Breaker.Response(call)

	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (rt *RoundTripper) base() http.RoundTripper {
	if rt.Base != nil {
		return rt.Base
	}
	return http.DefaultTransport
}

// httpCall adapts one outbound HTTP exchange to the Call contract.
type httpCall struct {
	req        *http.Request
	resp       *http.Response
	err        error
	terminated bool
}

// Terminate tears down the exchange. Before the call it marks the request
// as rejected; after a response it closes the body, releasing the
// underlying connection. The server-error response itself stays readable
// via its headers.
func (c *httpCall) Terminate(reason string) {
	c.terminated = true
	if c.resp != nil {
		c.resp.Body.Close()
		c.resp.Body = http.NoBody
	}
}

// Failed classifies transport errors and 5xx responses as failures.
func (c *httpCall) Failed() bool {
	return c.err != nil || (c.resp != nil && c.resp.StatusCode >= http.StatusInternalServerError)
}

func (c *httpCall) Host() string { return c.req.URL.Host }
func (c *httpCall) Path() string { return c.req.URL.Path }
