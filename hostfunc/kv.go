package hostfunc

import (
	"errors"
	"sync"

	"github.com/quillvm/quill/engine"
)

// KVStore is an in-memory string store exposed to scripts as host
// functions. It persists across calls for as long as the store lives.
type KVStore struct {
	data map[string]string
	mu   sync.RWMutex
}

func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string]string)}
}

// Get takes a key and returns the stored value, or nil when absent.
func (kv *KVStore) Get(s *engine.State, args []engine.Value) ([]engine.Value, error) {
	key, err := kvKey(args)
	if err != nil {
		return nil, err
	}

	kv.mu.RLock()
	val, exists := kv.data[key]
	kv.mu.RUnlock()

	if !exists {
		return []engine.Value{engine.Nil{}}, nil
	}
	return []engine.Value{engine.String(val)}, nil
}

// Set takes a key and a value and stores the pair.
func (kv *KVStore) Set(s *engine.State, args []engine.Value) ([]engine.Value, error) {
	if len(args) != 2 {
		return nil, errors.New("kv_set: key and value required")
	}
	key, err := engine.As[string](args[0])
	if err != nil {
		return nil, errors.New("kv_set: key must be a string")
	}
	val, err := engine.As[string](args[1])
	if err != nil {
		return nil, errors.New("kv_set: value must be a string")
	}

	kv.mu.Lock()
	kv.data[key] = val
	kv.mu.Unlock()

	return nil, nil
}

// Delete takes a key and removes it.
func (kv *KVStore) Delete(s *engine.State, args []engine.Value) ([]engine.Value, error) {
	key, err := kvKey(args)
	if err != nil {
		return nil, err
	}

	kv.mu.Lock()
	delete(kv.data, key)
	kv.mu.Unlock()

	return nil, nil
}

// InstallInto registers the store's functions under the conventional names.
func (kv *KVStore) InstallInto(r *Registry) {
	r.Register("kv_get", kv.Get)
	r.Register("kv_set", kv.Set)
	r.Register("kv_delete", kv.Delete)
}

func kvKey(args []engine.Value) (string, error) {
	if len(args) != 1 {
		return "", errors.New("kv: key required")
	}
	key, err := engine.As[string](args[0])
	if err != nil {
		return "", errors.New("kv: key must be a string")
	}
	return key, nil
}
