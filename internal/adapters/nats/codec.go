package natsadapter

import (
	"fmt"

	"github.com/goccy/go-json"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/samirrijal/olistboard/internal/core/domain"
)

// ContentType is set on every published snapshot message.
const ContentType = "application/x-protobuf; messageType=google.protobuf.Struct"

// EncodeSnapshot serialises a snapshot as a protobuf Struct.
func EncodeSnapshot(snap *domain.Snapshot) ([]byte, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("flatten snapshot: %w", err)
	}
	st, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("snapshot struct: %w", err)
	}
	return proto.Marshal(st)
}

// DecodeSnapshot parses a message produced by EncodeSnapshot.
func DecodeSnapshot(data []byte) (*domain.Snapshot, error) {
	js, err := SnapshotJSON(data)
	if err != nil {
		return nil, err
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(js, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// SnapshotJSON converts a protobuf-encoded snapshot to JSON, the form the
// WebSocket relay forwards to browsers.
func SnapshotJSON(data []byte) ([]byte, error) {
	var st structpb.Struct
	if err := proto.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return protojson.Marshal(&st)
}
