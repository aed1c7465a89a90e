// Package shared holds the request decoding and response writing helpers used by
// every handler in the api package.
package shared
