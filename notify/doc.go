// Package notify fans values out to subscribed channels without blocking
// the publisher.
//
// Delivery is non-blocking: when a subscriber's channel is full the value is
// dropped for that subscriber and counted in its Stats. Slow subscribers
// therefore lose notifications instead of delaying the writer.
package notify
