// Package utils provides common helpers shared by the feed, reconcile and store code:
// lenient scalar conversion for loosely typed upstream JSON and CSV cells, and ISO-8601
// timestamp parsing.
package utils
