// Package proto contains the wire definitions of the auth RPC surface and
// the code generated from them.
package proto

//go:generate protoc --go_out=../.. --go_opt=module=github.com/smelnikov/authsvc --go-grpc_out=../.. --go-grpc_opt=module=github.com/smelnikov/authsvc internal/proto/auth.proto
