package script

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/dop251/goja"
	"github.com/google/uuid"

	"scriptdeck/internal/catalog"
	"scriptdeck/internal/database/repository"
)

// HTTPBinding exposes plain GET requests to scripts.
type HTTPBinding struct {
	Client *http.Client
}

func NewHTTPBinding(timeout time.Duration) *HTTPBinding {
	return &HTTPBinding{Client: &http.Client{Timeout: timeout}}
}

func (b *HTTPBinding) Descriptor() catalog.Integration {
	return catalog.Integration{
		ID:          "http",
		Title:       "HTTP Client",
		Description: "Make web requests",
		Example:     `print(http.get("https://example.com"))`,
	}
}

func (b *HTTPBinding) Install(ctx context.Context, vm *goja.Runtime) error {
	obj := vm.NewObject()
	if err := obj.Set("get", func(url string) (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", err
		}
		resp, err := b.Client.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		if resp.StatusCode >= 400 {
			return "", fmt.Errorf("http.get %s: status %d", url, resp.StatusCode)
		}
		return string(body), nil
	}); err != nil {
		return err
	}
	return vm.Set("http", obj)
}

// StoreBinding exposes the persistent key/value table.
type StoreBinding struct {
	KV *repository.KVRepo
}

func (b *StoreBinding) Descriptor() catalog.Integration {
	return catalog.Integration{
		ID:          "store",
		Title:       "Key/Value Store",
		Description: "Persist small values between runs",
		Example:     `store.set("greeting", "hello"); print(store.get("greeting"))`,
	}
}

func (b *StoreBinding) Install(ctx context.Context, vm *goja.Runtime) error {
	obj := vm.NewObject()
	if err := obj.Set("set", func(key, value string) error {
		return b.KV.Set(ctx, key, value)
	}); err != nil {
		return err
	}
	if err := obj.Set("get", func(key string) (goja.Value, error) {
		v, ok, err := b.KV.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			return goja.Null(), nil
		}
		return vm.ToValue(v), nil
	}); err != nil {
		return err
	}
	if err := obj.Set("del", func(key string) error {
		return b.KV.Delete(ctx, key)
	}); err != nil {
		return err
	}
	if err := obj.Set("keys", func() ([]string, error) {
		entries, err := b.KV.List(ctx)
		if err != nil {
			return nil, err
		}
		keys := make([]string, 0, len(entries))
		for _, e := range entries {
			keys = append(keys, e.Key)
		}
		return keys, nil
	}); err != nil {
		return err
	}
	return vm.Set("store", obj)
}

// UUIDBinding generates identifiers.
type UUIDBinding struct{}

func (UUIDBinding) Descriptor() catalog.Integration {
	return catalog.Integration{
		ID:          "uuid",
		Title:       "UUIDs",
		Description: "Generate random and deterministic identifiers",
		Example:     `print(uuid.v4())`,
	}
}

func (UUIDBinding) Install(_ context.Context, vm *goja.Runtime) error {
	obj := vm.NewObject()
	if err := obj.Set("v4", func() string {
		return uuid.NewString()
	}); err != nil {
		return err
	}
	if err := obj.Set("sha1", func(name string) string {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
	}); err != nil {
		return err
	}
	return vm.Set("uuid", obj)
}

// TextBinding exposes string similarity helpers.
type TextBinding struct{}

func (TextBinding) Descriptor() catalog.Integration {
	return catalog.Integration{
		ID:          "text",
		Title:       "Text Similarity",
		Description: "Edit distance and similarity scoring",
		Example:     `print(text.distance("kitten", "sitting"))`,
	}
}

func (TextBinding) Install(_ context.Context, vm *goja.Runtime) error {
	obj := vm.NewObject()
	if err := obj.Set("distance", func(a, b string) int {
		return levenshtein.ComputeDistance(a, b)
	}); err != nil {
		return err
	}
	if err := obj.Set("similarity", func(a, b string) float64 {
		longest := len(a)
		if len(b) > longest {
			longest = len(b)
		}
		if longest == 0 {
			return 1
		}
		return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
	}); err != nil {
		return err
	}
	return vm.Set("text", obj)
}

// ClockBinding exposes timestamps.
type ClockBinding struct{}

func (ClockBinding) Descriptor() catalog.Integration {
	return catalog.Integration{
		ID:          "clock",
		Title:       "Clock",
		Description: "Current time as unix millis or ISO text",
		Example:     `print(clock.iso())`,
	}
}

func (ClockBinding) Install(_ context.Context, vm *goja.Runtime) error {
	obj := vm.NewObject()
	if err := obj.Set("now", func() int64 {
		return time.Now().UnixMilli()
	}); err != nil {
		return err
	}
	if err := obj.Set("iso", func() string {
		return time.Now().UTC().Format(time.RFC3339)
	}); err != nil {
		return err
	}
	return vm.Set("clock", obj)
}
