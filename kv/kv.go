package kv

import (
	"errors"
	"fmt"

	cerberus "github.com/neerajladkani/Project-Cerberus"
	sdkproto "github.com/tarmac-project/protobuf-go/sdk"
	proto "github.com/tarmac-project/protobuf-go/sdk/kvstore"
	wapc "github.com/wapc/wapc-guest-tinygo"
	pb "google.golang.org/protobuf/proto"
)

// Capability is the host capability that serves key/value requests.
const Capability = "kvstore"

// KV is a key/value store provided by the host.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}

// Config controls construction of a KV client.
type Config struct {
	// SDKConfig supplies the namespace used for host calls.
	SDKConfig cerberus.RuntimeConfig

	// HostCall performs the waPC host call. Defaults to wapc.HostCall.
	HostCall func(string, string, string, []byte) ([]byte, error)
}

type kvClient struct {
	runtime  cerberus.RuntimeConfig
	hostCall func(string, string, string, []byte) ([]byte, error)
}

var (
	// ErrInvalidKey is returned for an empty key.
	ErrInvalidKey = errors.New("key is invalid")

	// ErrInvalidValue is returned for an empty value.
	ErrInvalidValue = errors.New("value is invalid")

	// ErrKeyNotFound is returned when the host reports that a key does not exist.
	ErrKeyNotFound = errors.New("key not found")

	// ErrMarshalRequest is returned when a request cannot be encoded.
	ErrMarshalRequest = errors.New("failed to marshal request")

	// ErrUnmarshalResponse is returned when a host response cannot be decoded.
	ErrUnmarshalResponse = errors.New("failed to unmarshal response")

	// ErrHostCall, ErrHostResponseInvalid, and ErrHostError are shared with the root package.
	ErrHostCall            = cerberus.ErrHostCall
	ErrHostResponseInvalid = cerberus.ErrHostResponseInvalid
	ErrHostError           = cerberus.ErrHostError
)

// Host status codes the client distinguishes.
const (
	codeOK         = 0
	codeBadRequest = 400
	codeNotFound   = 404
)

// New creates a KV client from the provided Config.
func New(config Config) (KV, error) {
	c := &kvClient{
		runtime:  config.SDKConfig.WithDefaults(),
		hostCall: config.HostCall,
	}

	if c.hostCall == nil {
		c.hostCall = wapc.HostCall
	}

	return c, nil
}

// Close releases the client. It holds no resources.
func (c *kvClient) Close() error {
	return nil
}

// call sends req to function and decodes the host response into resp.
func (c *kvClient) call(function string, req, resp pb.Message) error {
	b, err := pb.Marshal(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMarshalRequest, err)
	}

	out, err := c.hostCall(c.runtime.Namespace, Capability, function, b)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrHostCall, function, err)
	}

	if err := pb.Unmarshal(out, resp); err != nil {
		return errors.Join(ErrHostResponseInvalid, fmt.Errorf("%w: %w", ErrUnmarshalResponse, err))
	}

	return nil
}

// checkStatus maps a host status onto the package errors.
func checkStatus(status *sdkproto.Status) error {
	if status == nil {
		return fmt.Errorf("%w: missing status", ErrHostResponseInvalid)
	}

	switch status.GetCode() {
	case codeOK:
		return nil
	case codeNotFound:
		return fmt.Errorf("%w: %s", ErrKeyNotFound, status.GetStatus())
	case codeBadRequest:
		return fmt.Errorf("%w: %s", ErrHostResponseInvalid, status.GetStatus())
	default:
		return fmt.Errorf("%w: %d %s", ErrHostError, status.GetCode(), status.GetStatus())
	}
}

// Get returns the value stored under key.
func (c *kvClient) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	var resp proto.KVStoreGetResponse
	if err := c.call("get", &proto.KVStoreGet{Key: key}, &resp); err != nil {
		return nil, err
	}

	if err := checkStatus(resp.GetStatus()); err != nil {
		return nil, err
	}

	return resp.GetData(), nil
}

// Set stores value under key.
func (c *kvClient) Set(key string, value []byte) error {
	if key == "" {
		return ErrInvalidKey
	}

	if len(value) == 0 {
		return ErrInvalidValue
	}

	var resp proto.KVStoreSetResponse
	if err := c.call("set", &proto.KVStoreSet{Key: key, Data: value}, &resp); err != nil {
		return err
	}

	return checkStatus(resp.GetStatus())
}

// Delete removes key.
func (c *kvClient) Delete(key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	var resp proto.KVStoreDeleteResponse
	if err := c.call("delete", &proto.KVStoreDelete{Key: key}, &resp); err != nil {
		return err
	}

	return checkStatus(resp.GetStatus())
}

// Keys returns every key in the store.
func (c *kvClient) Keys() ([]string, error) {
	var resp proto.KVStoreKeysResponse
	if err := c.call("keys", &proto.KVStoreKeys{ReturnProto: true}, &resp); err != nil {
		return nil, err
	}

	if err := checkStatus(resp.GetStatus()); err != nil {
		return nil, err
	}

	return resp.GetKeys(), nil
}
