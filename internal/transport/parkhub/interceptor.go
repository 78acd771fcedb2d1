package parkhub

import (
	"net/http"
	"sync"
)

// RequestInterceptor inspects or mutates an outgoing request before it is
// sent. Returning an error aborts the call.
type RequestInterceptor func(*http.Request) error

// ResponseInterceptor inspects a response before the envelope is decoded.
type ResponseInterceptor func(*http.Response) error

type requestEntry struct {
	id int
	fn RequestInterceptor
}

type responseEntry struct {
	id int
	fn ResponseInterceptor
}

// interceptorRegistry is an ordered, removable set of interceptors for
// cross-cutting concerns. It is data, not control flow: classification and
// retry never depend on it.
type interceptorRegistry struct {
	mu        sync.RWMutex
	nextID    int
	requests  []requestEntry
	responses []responseEntry
}

func newInterceptorRegistry() *interceptorRegistry {
	return &interceptorRegistry{nextID: 1}
}

func (r *interceptorRegistry) addRequest(fn RequestInterceptor) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.requests = append(r.requests, requestEntry{id: id, fn: fn})
	return id
}

func (r *interceptorRegistry) addResponse(fn ResponseInterceptor) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.responses = append(r.responses, responseEntry{id: id, fn: fn})
	return id
}

// remove deletes the interceptor with the given id from either list.
func (r *interceptorRegistry) remove(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.requests {
		if e.id == id {
			r.requests = append(r.requests[:i], r.requests[i+1:]...)
			return
		}
	}
	for i, e := range r.responses {
		if e.id == id {
			r.responses = append(r.responses[:i], r.responses[i+1:]...)
			return
		}
	}
}

func (r *interceptorRegistry) applyRequest(req *http.Request) error {
	r.mu.RLock()
	entries := make([]requestEntry, len(r.requests))
	copy(entries, r.requests)
	r.mu.RUnlock()

	for _, e := range entries {
		if err := e.fn(req); err != nil {
			return err
		}
	}
	return nil
}

func (r *interceptorRegistry) applyResponse(resp *http.Response) error {
	r.mu.RLock()
	entries := make([]responseEntry, len(r.responses))
	copy(entries, r.responses)
	r.mu.RUnlock()

	for _, e := range entries {
		if err := e.fn(resp); err != nil {
			return err
		}
	}
	return nil
}
