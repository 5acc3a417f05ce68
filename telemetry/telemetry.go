// Package telemetry batches analytics events and flushes them over HTTP once
// publishing goes quiet, using a debounced flush so rapid bursts of events
// produce a single request.
package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/Azizi-X/debounce"
	"github.com/buger/jsonparser"
)

const timeout = 10 * time.Second

var defaultHTTP = http.Client{Timeout: timeout, Transport: &http.Transport{
	ResponseHeaderTimeout: timeout,
}}

type Event struct {
	Type       string `json:"type"`
	Properties any    `json:"properties"`
}

type Sending struct {
	Token  string  `json:"token,omitempty"`
	Events []Event `json:"events"`
}

type Handle struct {
	Type       string `json:"type"`
	Properties []byte `json:"properties"`
	Raw        []byte `json:"raw"`
}

func (handle *Handle) Unmarshal(v any) error {
	return json.Unmarshal(handle.Properties, v)
}

type Telemetry struct {
	flush    func()
	callback func(handle Handle) error
	onFlush  func(sending Sending) error
	dispatch *worker[Handle]
	owner    *debounce.Owner
	http     *http.Client
	backend  string
	sending  Sending
	mu       sync.Mutex
}

// New returns a Telemetry whose flush timer lives on owner; closing the
// owner cancels any pending flush.
func New(owner *debounce.Owner) *Telemetry {
	if owner == nil {
		panic("owner can not be nil")
	}

	return &Telemetry{
		owner: owner,
		http:  &defaultHTTP,
	}
}

// Flush sends the accumulated events immediately and clears the batch.
func (a *Telemetry) Flush() error {
	a.mu.Lock()

	defer func() {
		a.sending.Events = nil
		a.mu.Unlock()
	}()

	if a.backend == "" && a.onFlush == nil {
		return errors.New("backend is not set")
	} else if len(a.sending.Events) == 0 {
		return nil
	}

	if a.onFlush != nil {
		err := a.onFlush(a.sending)

		if err != nil {
			return err
		}

		if a.backend == "" {
			return nil
		}
	}

	payload, err := json.Marshal(a.sending)
	if err != nil {
		return err
	}

	resp, err := a.http.Post(a.backend, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	return nil
}

// Publish queues an event and arms the debounced flush.
func (a *Telemetry) Publish(t string, properties any) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.backend == "" && a.onFlush == nil {
		return errors.New("backend is not set")
	} else if a.flush == nil {
		return errors.New("debounce is not set")
	}

	a.sending.Events = append(a.sending.Events, Event{
		Type:       t,
		Properties: properties,
	})

	a.flush()

	return nil
}

func (a *Telemetry) SetOnFlush(fn func(sending Sending) error) *Telemetry {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onFlush = fn
	return a
}

func (a *Telemetry) SetBackend(backend string) *Telemetry {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.backend = backend
	return a
}

func (a *Telemetry) SetToken(token string) *Telemetry {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sending.Token = token
	return a
}

func (a *Telemetry) SetHTTP(client *http.Client) *Telemetry {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.http = client
	return a
}

func (a *Telemetry) SetDebounce(after time.Duration) *Telemetry {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.flush = debounce.Func(func() {
		if err := a.Flush(); err != nil {
			debounce.Logger().Warn("telemetry flush: %v", err)
		}
	}, a.owner, after)

	return a
}

func (a *Telemetry) SetCallback(callback func(handle Handle) error) *Telemetry {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.callback = callback

	if a.dispatch == nil {
		a.dispatch = newWorker(4, 64, func(handle Handle) {
			a.mu.Lock()
			cb := a.callback
			a.mu.Unlock()

			if cb != nil {
				cb(handle)
			}
		})
	}

	return a
}

// Handle splits an inbound event batch and dispatches each event to the
// registered callback on the worker pool.
func (a *Telemetry) Handle(data []byte) error {
	a.mu.Lock()
	dispatch := a.dispatch
	a.mu.Unlock()

	if dispatch == nil {
		return errors.New("callback is not set")
	}

	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if err != nil {
			return
		}

		t, _ := jsonparser.GetString(value, "type")
		properties, _, _, _ := jsonparser.Get(value, "properties")

		dispatch.Send(Handle{
			Type:       t,
			Properties: properties,
			Raw:        value,
		})
	}, "events")

	return err
}

// Close drains and stops the dispatch worker pool.
func (a *Telemetry) Close() {
	a.mu.Lock()
	dispatch := a.dispatch
	a.mu.Unlock()

	if dispatch != nil {
		dispatch.Close()
	}
}
