package cache

import (
	"context"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/mikgur/eth-address-review/apps/review/internal/model"
)

const testAddress = "0x1111111111111111111111111111111111111111"

func TestFileCacheRoundTrip(t *testing.T) {
	fc, err := NewFileCache(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	ctx := context.Background()

	events := []model.RawEvent{
		{Hash: "0xabc", TimeStamp: "1700000000", From: "0xfrom", To: "0xto",
			Value: "1500000", TokenDecimal: "6", TokenSymbol: "USDC"},
		{Hash: "0xdef", TimeStamp: "1700000100", From: "0xto", To: "0xfrom",
			Value: "2000000000000000000", Input: "0x"},
	}

	if err := fc.Put(ctx, testAddress, model.CategoryERC20, events); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok, err := fc.Get(ctx, testAddress, model.CategoryERC20)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit after Put")
	}
	if !reflect.DeepEqual(got, events) {
		t.Errorf("round trip mismatch:\ngot:  %+v\nwant: %+v", got, events)
	}
}

func TestFileCacheMiss(t *testing.T) {
	fc, err := NewFileCache(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}

	_, ok, err := fc.Get(context.Background(), testAddress, model.CategoryNormal)
	if err != nil {
		t.Fatalf("Get on empty cache returned error: %v", err)
	}
	if ok {
		t.Error("expected cache miss on empty cache")
	}
}

func TestFileCacheKeysAreIndependent(t *testing.T) {
	fc, err := NewFileCache(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	ctx := context.Background()

	normal := []model.RawEvent{{Hash: "0xnormal"}}
	internal := []model.RawEvent{{Hash: "0xinternal"}}

	if err := fc.Put(ctx, testAddress, model.CategoryNormal, normal); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := fc.Put(ctx, testAddress, model.CategoryInternal, internal); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok, err := fc.Get(ctx, testAddress, model.CategoryNormal)
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if got[0].Hash != "0xnormal" {
		t.Errorf("normal category returned %q", got[0].Hash)
	}

	otherAddress := "0x2222222222222222222222222222222222222222"
	if _, ok, _ := fc.Get(ctx, otherAddress, model.CategoryNormal); ok {
		t.Error("expected miss for a different address")
	}
}

func TestFileCachePutOverwrites(t *testing.T) {
	fc, err := NewFileCache(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileCache failed: %v", err)
	}
	ctx := context.Background()

	if err := fc.Put(ctx, testAddress, model.CategoryERC20, []model.RawEvent{{Hash: "0xold"}}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := fc.Put(ctx, testAddress, model.CategoryERC20, []model.RawEvent{{Hash: "0xnew"}, {Hash: "0xnew2"}}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok, err := fc.Get(ctx, testAddress, model.CategoryERC20)
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if len(got) != 2 || got[0].Hash != "0xnew" {
		t.Errorf("expected overwritten entry, got %+v", got)
	}
}
