package grpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// The loan messages in this package are plain structs rather than protobuf
// types, so calls are framed with a JSON codec instead of proto.
func init() {
	encoding.RegisterCodec(loanJSONCodec{})
}

type loanJSONCodec struct{}

func (loanJSONCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (loanJSONCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (loanJSONCodec) Name() string {
	return "json"
}
