package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/levi-tabosa/jukebox/internal/dispatch"
	"github.com/levi-tabosa/jukebox/internal/shared"
)

// soapNS is the SOAP 1.1 envelope namespace.
const soapNS = "http://schemas.xmlsoap.org/soap/envelope/"

// DispatchHandler serves the payload-dispatch endpoint. It owns the
// transport concerns the dispatcher deliberately doesn't: envelope
// unwrapping, operation routing rejection, and fault encoding.
type DispatchHandler struct {
	dispatcher *dispatch.Dispatcher
	logger     *log.Logger
}

// NewDispatchHandler creates a handler over the given dispatcher.
func NewDispatchHandler(d *dispatch.Dispatcher, logger *log.Logger) *DispatchHandler {
	return &DispatchHandler{dispatcher: d, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *DispatchHandler) Routes() []string {
	return []string{"/ws"}
}

// ServeHTTP handles one dispatch request. The body may be a bare payload
// element or a payload wrapped in a SOAP 1.1 envelope; the response mirrors
// whichever shape arrived by always answering with an envelope.
func (h *DispatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	root, err := dispatch.Parse(r.Body)
	if err != nil {
		h.writeFault(w, "Client", fmt.Sprintf("unparseable request: %v", err), http.StatusBadRequest)
		return
	}

	payload, err := unwrapEnvelope(root)
	if err != nil {
		h.writeFault(w, "Client", err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.dispatcher.Dispatch(r.Context(), payload)
	if err != nil {
		h.logger.Warn("dispatch failed", "operation", payload.Local, "error", err)
		h.writeDispatchError(w, err)
		return
	}

	h.writeEnvelope(w, http.StatusOK, resp)
}

// unwrapEnvelope returns the payload element: the first child of Body for an
// enveloped request, or the root itself for a bare one.
func unwrapEnvelope(root *dispatch.Element) (*dispatch.Element, error) {
	if root.Space != soapNS || root.Local != "Envelope" {
		return root, nil
	}

	body := root.Find(soapNS, "Body")
	if body == nil || len(body.Children) == 0 {
		return nil, fmt.Errorf("envelope has no body payload")
	}
	return body.Children[0], nil
}

// writeDispatchError maps the dispatch error taxonomy onto faults. Malformed
// requests and unknown operations are the caller's fault; store failures are
// ours; a NotFound keeps its identity with a 404.
func (h *DispatchHandler) writeDispatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrMalformedRequest), errors.Is(err, shared.ErrUnknownOperation):
		h.writeFault(w, "Client", err.Error(), http.StatusBadRequest)
	case errors.Is(err, shared.ErrNotFound):
		h.writeFault(w, "Client", err.Error(), http.StatusNotFound)
	default:
		h.writeFault(w, "Server", err.Error(), http.StatusInternalServerError)
	}
}

func (h *DispatchHandler) writeFault(w http.ResponseWriter, code, message string, status int) {
	fault := dispatch.NewElement(soapNS, "Fault").Append(
		dispatch.TextElement(soapNS, "faultcode", code),
		dispatch.TextElement(soapNS, "faultstring", message),
	)
	h.writeEnvelope(w, status, fault)
}

func (h *DispatchHandler) writeEnvelope(w http.ResponseWriter, status int, payload *dispatch.Element) {
	envelope := dispatch.NewElement(soapNS, "Envelope").Append(
		dispatch.NewElement(soapNS, "Body").Append(payload),
	)

	data, err := dispatch.Marshal(envelope)
	if err != nil {
		h.logger.Error("failed to encode response envelope", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(status)
	w.Write(data)
}
