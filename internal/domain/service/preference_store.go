package service

// PreferenceStore is a small durable key/value store for client preferences
// such as the remembered session.
type PreferenceStore interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}
