package domain

// KeyPrefix namespaces every key remedex writes to the key-value store.
const KeyPrefix = "remedex:"
