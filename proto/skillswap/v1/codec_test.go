package skillswapv1

import (
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestCodecRegistered(t *testing.T) {
	if encoding.GetCodec(CodecName) == nil {
		t.Fatalf("codec %q not registered", CodecName)
	}
}

func TestCodecStructRoundTrip(t *testing.T) {
	at := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	in := &Session{Id: "s1", Skill: "Go", Status: "pending", ScheduledAt: timestamppb.New(at)}

	b, err := Codec{}.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(b), `"status":"pending"`) {
		t.Fatalf("unexpected encoding: %s", b)
	}

	var out Session
	if err := (Codec{}).Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Id != "s1" || !out.ScheduledAt.AsTime().Equal(at) {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestCodecProtoMessage(t *testing.T) {
	b, err := Codec{}.Marshal(&emptypb.Empty{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != "{}" {
		t.Fatalf("expected {}, got %s", b)
	}
	if err := (Codec{}).Unmarshal([]byte(`{"unknown":1}`), &emptypb.Empty{}); err != nil {
		t.Fatalf("unknown fields should be discarded: %v", err)
	}
}

func TestCodecRejectsGarbage(t *testing.T) {
	var out Session
	if err := (Codec{}).Unmarshal([]byte("not json"), &out); err == nil {
		t.Fatalf("expected error for invalid payload")
	}
}
