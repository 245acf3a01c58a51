package baseclient

import (
	"encoding/json"
	"fmt"
)

// Response is a raw transport response; JSON parsing is deferred to the caller.
type Response struct {
	Body   []byte
	Status int
}

// NewResponse creates a response
func NewResponse(body []byte, status int) *Response {
	return &Response{Body: body, Status: status}
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// JSON parses the body into a generic JSON value; an empty body yields nil.
func (r *Response) JSON() (interface{}, error) {
	if len(r.Body) == 0 {
		return nil, nil
	}
	var ret interface{}
	if err := json.Unmarshal(r.Body, &ret); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialize, err)
	}
	return ret, nil
}

// Decode unmarshals the body into target.
func (r *Response) Decode(target interface{}) error {
	if err := json.Unmarshal(r.Body, target); err != nil {
		return fmt.Errorf("%w: %v", ErrDeserialize, err)
	}
	return nil
}

// String returns a diagnostic representation of the response.
func (r *Response) String() string {
	return fmt.Sprintf("Response{status=%d body=%s}", r.Status, r.Body)
}
