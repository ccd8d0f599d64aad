// Package utils provides small helpers shared by the bridge: the resty
// client wrapper, JSON response writing, token inspection and identifier
// generation.
package utils
