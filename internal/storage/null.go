package storage

// NullStore discards every blob and reports every key as absent. It backs
// the "null" storage config, useful for timing a tree Flush's own CPU and
// allocation cost without any backing I/O skewing the measurement.
type NullStore struct{}

func (NullStore) Get(Key) (Value, error) {
	return nil, ErrNotFound
}

func (NullStore) Put(Key, Value) error {
	return nil
}

func (NullStore) Delete(Key) error {
	return nil
}

func (NullStore) Contains(Key) (bool, error) {
	return false, nil
}

func (NullStore) ForEach(func(Key) error) error {
	return nil
}
